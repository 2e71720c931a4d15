package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=product
type Repository interface {
	CreateProduct(ctx context.Context, p *Product, actor string) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	GetProductBySKU(ctx context.Context, sku string) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product, actor string) error

	// DeleteProduct removes the product together with its movements,
	// cycle counts and audit trail in one transaction. The cascade is
	// explicit here, never left to the storage engine.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	SKU               string
	Name              string
	Category          string
	Tags              string
	Description       string
	Quantity          int
	LowStockThreshold int
}

// ListFilter narrows product listings. Query matches name, SKU, category
// and tags. Archived is tri-state: nil means both.
type ListFilter struct {
	Query    string
	LowStock bool
	Archived *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams, actor string) (*Product, error) {
	if params.SKU == "" {
		return nil, fmt.Errorf("%w: sku is required", ErrInvalid)
	}

	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	if params.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrInvalid)
	}

	threshold := params.LowStockThreshold
	if threshold <= 0 {
		threshold = defaultLowStockThreshold
	}

	p := &Product{
		SKU:               params.SKU,
		Name:              params.Name,
		Category:          params.Category,
		Tags:              params.Tags,
		Description:       params.Description,
		Quantity:          params.Quantity,
		LowStockThreshold: threshold,
	}
	if err := s.repo.CreateProduct(ctx, p, actor); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) GetBySKU(ctx context.Context, sku string) (*Product, error) {
	return s.repo.GetProductBySKU(ctx, sku)
}

// Update persists descriptive field changes. Quantity is deliberately not
// updatable here; stock only moves through reconciliation or cycle counts.
func (s *Service) Update(ctx context.Context, p *Product, actor string) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}

	return s.repo.UpdateProduct(ctx, p, actor)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.ListProducts(ctx, filter)
}
