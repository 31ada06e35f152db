package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/config"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/dto"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Customer{}))

	return New(&config.Config{Env: "test"}, db)
}

func createCustomer(t *testing.T, r *gin.Engine, body string) dto.CustomerResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/customers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.CustomerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// invoiceForm builds the multipart payload shared by the invoice endpoints.
func invoiceForm(t *testing.T, fields map[string]string, uploadName, uploadCSV string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if uploadName != "" {
		fw, err := mw.CreateFormFile("bookings", uploadName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(uploadCSV))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCustomerCRUDOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	created := createCustomer(t, r, `{"name":"Acme ApS","email":"billing@acme.example","is_company":true,"vat":"DK123"}`)
	require.NotEmpty(t, created.ID)

	// Partial update: only the email changes.
	req := httptest.NewRequest(http.MethodPut, "/v1/customers/"+created.ID,
		strings.NewReader(`{"email":"accounts@acme.example"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var updated dto.CustomerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "accounts@acme.example", updated.Email)
	assert.Equal(t, "Acme ApS", updated.Name)

	// List
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/customers", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list []dto.CustomerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// Delete
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/customers/"+created.ID, nil))
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestInvoiceDocumentEndpoint(t *testing.T) {
	r := newTestRouter(t)
	customer := createCustomer(t, r, `{"name":"Acme ApS","email":"billing@acme.example","is_company":true}`)

	body, contentType := invoiceForm(t, map[string]string{
		"customer_id":     customer.ID,
		"invoice_number":  "1001",
		"currency":        "DKK",
		"manual_total":    "4000",
		"manual_bookings": "10",
	}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/v1/invoices/document", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Invoice 1001 for Acme ApS.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestSpecificationEndpointRequiresBookings(t *testing.T) {
	r := newTestRouter(t)
	customer := createCustomer(t, r, `{"name":"Acme ApS","email":"billing@acme.example"}`)

	body, contentType := invoiceForm(t, map[string]string{
		"customer_id":    customer.ID,
		"invoice_number": "1002",
		"currency":       "DKK",
		"manual_total":   "4000",
	}, "", "")

	req := httptest.NewRequest(http.MethodPost, "/v1/invoices/specification", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSpecificationEndpointFromUpload(t *testing.T) {
	r := newTestRouter(t)
	customer := createCustomer(t, r, `{"name":"Acme ApS","email":"billing@acme.example"}`)

	csv := "Date,Passenger,From,To,Customer Reference,Base Rate\n" +
		"2026-06-01,A,CPH,Hotel,R1,395\n" +
		"2026-06-02,B,Hotel,CPH,R2,450\n"
	body, contentType := invoiceForm(t, map[string]string{
		"customer_id":    customer.ID,
		"invoice_number": "1003",
		"currency":       "DKK",
	}, "bookings.csv", csv)

	req := httptest.NewRequest(http.MethodPost, "/v1/invoices/specification", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "SERVICE SPECIFICATION FOR INVOICE 1003.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestInvoiceValidationErrors(t *testing.T) {
	r := newTestRouter(t)
	customer := createCustomer(t, r, `{"name":"Acme ApS","email":"billing@acme.example"}`)

	t.Run("missing invoice number", func(t *testing.T) {
		body, contentType := invoiceForm(t, map[string]string{
			"customer_id":  customer.ID,
			"currency":     "DKK",
			"manual_total": "4000",
		}, "", "")
		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/document", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("unsupported currency code", func(t *testing.T) {
		body, contentType := invoiceForm(t, map[string]string{
			"customer_id":    customer.ID,
			"invoice_number": "1004",
			"currency":       "SEK",
			"manual_total":   "4000",
		}, "", "")
		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/document", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("malformed upload", func(t *testing.T) {
		body, contentType := invoiceForm(t, map[string]string{
			"customer_id":    customer.ID,
			"invoice_number": "1005",
			"currency":       "DKK",
		}, "bookings.csv", "Date,Passenger\n2026-06-01,A\n")
		req := httptest.NewRequest(http.MethodPost, "/v1/invoices/document", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
