package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database per test. The shared
// cache keeps the schema alive across the pool's connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Customer{}))
	return db
}

func TestCustomerRepoCreateAndFind(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	c := &model.Customer{Name: "Acme ApS", Email: "billing@acme.example", IsCompany: true}
	require.NoError(t, repo.Create(ctx, c))
	require.NotEqual(t, uuid.Nil, c.ID, "BeforeCreate must assign an id")

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme ApS", found.Name)
	assert.True(t, found.IsCompany)
}

func TestCustomerRepoListOrdersByName(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Zebra Tours", "Acme ApS", "Midtown Hotels"} {
		require.NoError(t, repo.Create(ctx, &model.Customer{Name: name, Email: "x@example.com"}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Acme ApS", list[0].Name)
	assert.Equal(t, "Midtown Hotels", list[1].Name)
	assert.Equal(t, "Zebra Tours", list[2].Name)
}

func TestCustomerRepoUpdatePersistsChanges(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	c := &model.Customer{Name: "Acme ApS", Email: "old@acme.example"}
	require.NoError(t, repo.Create(ctx, c))

	c.Email = "new@acme.example"
	require.NoError(t, repo.Update(ctx, c))

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@acme.example", found.Email)
}

func TestCustomerRepoDeleteIsHardAndSilent(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	c := &model.Customer{Name: "Acme ApS", Email: "x@acme.example"}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Deleting an id that never existed is a silent no-op.
	assert.NoError(t, repo.Delete(ctx, uuid.New()))
}
