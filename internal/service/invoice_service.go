package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/apierror"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/dto"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/infra"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceService runs the generation pipeline: load customer → import
// bookings → price → render. Strictly linear and synchronous; the first
// error aborts the request and nothing partial is returned.
type InvoiceService interface {
	Generate(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.InvoiceDocument, error)
}

type invoiceService struct {
	customers repository.CustomerRepository
	importer  *BookingImporter
	pricing   *PricingEngine
	renderer  *infra.InvoiceRenderer
}

func NewInvoiceService(
	customers repository.CustomerRepository,
	importer *BookingImporter,
	pricing *PricingEngine,
	renderer *infra.InvoiceRenderer,
) InvoiceService {
	return &invoiceService{
		customers: customers,
		importer:  importer,
		pricing:   pricing,
		renderer:  renderer,
	}
}

func (s *invoiceService) Generate(ctx context.Context, req dto.GenerateInvoiceRequest) (*dto.InvoiceDocument, error) {
	// 1. Resolve the customer snapshot.
	id, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, &apierror.ValidationError{Field: "customer_id", Reason: "not a valid id"}
	}
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apierror.ValidationError{Field: "customer_id", Reason: "customer not found"}
		}
		return nil, err
	}

	// 2. Import booking rows when a spreadsheet was uploaded.
	var rows []model.BookingRow
	if len(req.UploadData) > 0 {
		rows, err = s.importer.Import(req.UploadName, req.UploadData, req.HeaderOffset)
		if err != nil {
			return nil, err
		}
	}

	// 3. Price.
	quote, err := s.pricing.Quote(PricingInput{
		ManualTotal:    req.ManualTotal,
		ManualBookings: req.ManualBookings,
		Rows:           rows,
		Currency:       req.Currency,
	})
	if err != nil {
		return nil, err
	}

	// 4. Render.
	pdfBytes, err := s.renderer.RenderPDF(infra.InvoiceData{
		Customer:      *customer,
		InvoiceNumber: req.InvoiceNumber,
		Currency:      req.Currency,
		DueDate:       req.DueDate,
		Description:   req.Description,
		Total:         quote.Total,
		Count:         quote.Count,
		Rate:          quote.Rate,
		HomeCurrency:  HomeCurrency,
	})
	if err != nil {
		return nil, err
	}

	doc := &dto.InvoiceDocument{
		PDF:         pdfBytes,
		PDFFilename: fmt.Sprintf("Invoice %s for %s.pdf", req.InvoiceNumber, customer.Name),
		Total:       quote.Total,
		Count:       quote.Count,
		Currency:    req.Currency,
	}

	// The companion spreadsheet only exists when bookings were imported. Its
	// total row reuses the pricing engine's home-currency total.
	if len(rows) > 0 {
		spec, err := s.renderer.RenderSpecification(rows, quote.HomeTotal)
		if err != nil {
			return nil, err
		}
		doc.Spreadsheet = spec
		doc.SpreadsheetFilename = fmt.Sprintf("SERVICE SPECIFICATION FOR INVOICE %s.xlsx", req.InvoiceNumber)
	}

	return doc, nil
}
