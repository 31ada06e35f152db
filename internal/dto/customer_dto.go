package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateCustomerRequest struct {
	Name      string  `json:"name"       validate:"required,min=1"`
	Address   string  `json:"address"`
	Email     string  `json:"email"      validate:"required,email"`
	Contact   *string `json:"contact"`
	VAT       *string `json:"vat"`
	IsCompany bool    `json:"is_company"`
}

// UpdateCustomerRequest is a typed partial update: only non-nil fields are
// applied to the stored record.
type UpdateCustomerRequest struct {
	Name      *string `json:"name"       validate:"omitempty,min=1"`
	Address   *string `json:"address"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Contact   *string `json:"contact"`
	VAT       *string `json:"vat"`
	IsCompany *bool   `json:"is_company"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CustomerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Email     string  `json:"email"`
	Contact   *string `json:"contact,omitempty"`
	VAT       *string `json:"vat,omitempty"`
	IsCompany bool    `json:"is_company"`
}
