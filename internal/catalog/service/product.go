package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openshelf/catalog/internal/catalog/domain"
	"github.com/openshelf/catalog/internal/catalog/store"
	"github.com/openshelf/catalog/pkg/idx"
)

// ErrValidation is returned when a create/update payload is missing a
// required field.
var ErrValidation = errors.New("name and price are required")

type ProductService struct {
	Store store.Store
}

// ProductInput carries the mutable product fields. Image and Type are
// optional; defaults are filled identically on create and update.
type ProductInput struct {
	Name  string
	Price domain.Price
	Image string
	Type  string
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" || !in.Price.IsPositive() {
		return ErrValidation
	}
	return nil
}

func (in ProductInput) withDefaults() ProductInput {
	if strings.TrimSpace(in.Image) == "" {
		in.Image = domain.DefaultProductImage
	}
	if strings.TrimSpace(in.Type) == "" {
		in.Type = domain.DefaultProductType
	}
	return in
}

// Create validates the input, fills defaults and stores a new product.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}
	in = in.withDefaults()

	now := time.Now().UTC()
	p := domain.Product{
		ID:        idx.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		Image:     in.Image,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Products().CreateProduct(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// List returns all products.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.Store.Products().ListProducts(ctx)
}

// GetByID returns a single product, or store.ErrNotFound.
func (s *ProductService) GetByID(ctx context.Context, id string) (domain.Product, error) {
	return s.Store.Products().GetProductByID(ctx, id)
}

// Update fully replaces the mutable fields of an existing product, validated
// the same way as Create. Returns store.ErrNotFound for an unknown id.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}
	in = in.withDefaults()

	p := domain.Product{
		ID:        id,
		Name:      in.Name,
		Price:     in.Price,
		Image:     in.Image,
		Type:      in.Type,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Store.Products().UpdateProduct(ctx, p); err != nil {
		return domain.Product{}, err
	}

	// Re-read for the full document (created_at lives only in the store).
	return s.Store.Products().GetProductByID(ctx, id)
}

// Delete removes a product. Returns store.ErrNotFound for an unknown id.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.Store.Products().DeleteProduct(ctx, id)
}
