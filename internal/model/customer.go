package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents an invoice recipient. VAT is only meaningful when
// IsCompany is true; the renderer enforces that rule at display time.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Address   string
	Email     string
	Contact   *string
	VAT       *string `gorm:"column:vat"`
	IsCompany bool    `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Customer) TableName() string { return "customers" }

// BeforeCreate assigns the id application-side so the model works on both
// postgres and the sqlite driver used in tests.
func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
