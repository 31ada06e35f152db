package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/apierror"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/dto"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/infra"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	pdfContentType  = "application/pdf"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type InvoicesHandler struct {
	svc    service.InvoiceService
	mailer *infra.Mailer
}

func NewInvoicesHandler(svc service.InvoiceService, mailer *infra.Mailer) *InvoicesHandler {
	return &InvoicesHandler{svc: svc, mailer: mailer}
}

// Document POST /v1/invoices/document — renders and returns the invoice PDF.
func (h *InvoicesHandler) Document(c *gin.Context) {
	doc, ok := h.generate(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.PDFFilename))
	c.Data(http.StatusOK, pdfContentType, doc.PDF)
}

// Specification POST /v1/invoices/specification — renders and returns the
// companion spreadsheet. Fails when no booking file was uploaded, since the
// specification only exists for imported bookings.
func (h *InvoicesHandler) Specification(c *gin.Context) {
	doc, ok := h.generate(c)
	if !ok {
		return
	}
	if doc.Spreadsheet == nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("No booking rows to export — upload a booking file"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.SpreadsheetFilename))
	c.Data(http.StatusOK, xlsxContentType, doc.Spreadsheet)
}

// Email POST /v1/invoices/email — renders the documents and mails them to the
// given recipient. Delivery is synchronous: the response reports the outcome.
func (h *InvoicesHandler) Email(c *gin.Context) {
	to := c.PostForm("to")
	if to == "" {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{"to": "required"}))
		return
	}
	doc, ok := h.generate(c)
	if !ok {
		return
	}

	attachments := []infra.Attachment{
		{Filename: doc.PDFFilename, ContentType: pdfContentType, Data: doc.PDF},
	}
	if doc.Spreadsheet != nil {
		attachments = append(attachments, infra.Attachment{
			Filename: doc.SpreadsheetFilename, ContentType: xlsxContentType, Data: doc.Spreadsheet,
		})
	}

	subject := "Invoice " + c.PostForm("invoice_number")
	body := "Please find the attached invoice."
	if err := h.mailer.SendInvoice(to, subject, body, attachments...); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, apierror.New("Failed to send invoice e-mail"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true, "to": to})
}

// generate parses the multipart form, runs the pipeline, and writes the error
// response itself on failure.
func (h *InvoicesHandler) generate(c *gin.Context) (*dto.InvoiceDocument, bool) {
	req, ok := parseInvoiceForm(c)
	if !ok {
		return nil, false
	}
	doc, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		writeDomainError(c, err)
		return nil, false
	}
	return doc, true
}

// parseInvoiceForm assembles a GenerateInvoiceRequest from multipart form
// fields plus the optional "bookings" file part.
func parseInvoiceForm(c *gin.Context) (dto.GenerateInvoiceRequest, bool) {
	req := dto.GenerateInvoiceRequest{
		CustomerID:    c.PostForm("customer_id"),
		InvoiceNumber: c.PostForm("invoice_number"),
		Currency:      c.PostForm("currency"),
		DueDate:       c.PostForm("due_date"),
		Description:   c.PostForm("description"),
	}

	if raw := c.PostForm("manual_total"); raw != "" {
		total, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("manual_total is not a number"))
			return req, false
		}
		req.ManualTotal = total
	}
	if raw := c.PostForm("manual_bookings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("manual_bookings is not a number"))
			return req, false
		}
		req.ManualBookings = n
	}
	if raw := c.PostForm("header_offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("header_offset is not a number"))
			return req, false
		}
		req.HeaderOffset = n
	}

	if fh, err := c.FormFile("bookings"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Cannot read uploaded file"))
			return req, false
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Cannot read uploaded file"))
			return req, false
		}
		req.UploadName = fh.Filename
		req.UploadData = data
	}

	return req, validateStruct(c, &req)
}
