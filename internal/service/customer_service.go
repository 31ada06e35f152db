package service

import (
	"context"
	"errors"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/apierror"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/dto"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/model"
	"github.com/Amaan2660/InvoiceCreatorEL/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerService defines the CRUD operations backing the customer store.
type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerResponse, error)
	List(ctx context.Context) ([]dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

// mapCustomer converts a model to a DTO response.
func mapCustomer(c model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Address:   c.Address,
		Email:     c.Email,
		Contact:   c.Contact,
		VAT:       c.VAT,
		IsCompany: c.IsCompany,
	}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:      req.Name,
		Address:   req.Address,
		Email:     req.Email,
		Contact:   req.Contact,
		VAT:       req.VAT,
		IsCompany: req.IsCompany,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CustomerResponse{}, err
	}
	return mapCustomer(*c), nil
}

func (s *customerService) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCustomer(c))
	}
	return result, nil
}

// Update applies a typed partial update: only non-nil fields touch the record.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Silent no-op per the store contract — return the empty response.
			return dto.CustomerResponse{}, nil
		}
		return dto.CustomerResponse{}, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return dto.CustomerResponse{}, &apierror.ValidationError{Field: "name", Reason: "must not be empty"}
		}
		c.Name = *req.Name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Contact != nil {
		c.Contact = req.Contact
	}
	if req.VAT != nil {
		c.VAT = req.VAT
	}
	if req.IsCompany != nil {
		c.IsCompany = *req.IsCompany
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CustomerResponse{}, err
	}
	return mapCustomer(*c), nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
