package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sethu9398/e-commerce/internal/domain"
	"github.com/Sethu9398/e-commerce/internal/repository"
)

// ProductService encapsulates catalog business logic.
type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

var ErrInvalidInput = errors.New("invalid input")

// Create adds a product owned by the calling admin.
func (s *ProductService) Create(ctx context.Context, adminID primitive.ObjectID, p domain.Product) (*domain.Product, error) {
	if p.Name == "" || p.Category == "" || p.Price <= 0 || p.Description == "" || p.Image == "" {
		return nil, ErrInvalidInput
	}
	if p.Stock < 0 {
		return nil, ErrInvalidInput
	}
	cp := p
	cp.CreatedBy = adminID
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update: zero-valued fields keep the stored
// value, except stock, where a negative value means "keep".
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, patch domain.Product) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != "" {
		p.Name = patch.Name
	}
	if patch.Category != "" {
		p.Category = patch.Category
	}
	if patch.Price > 0 {
		p.Price = patch.Price
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if patch.Image != "" {
		p.Image = patch.Image
	}
	if patch.Stock >= 0 {
		p.Stock = patch.Stock
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// MyProducts lists the calling admin's own products, newest first.
func (s *ProductService) MyProducts(ctx context.Context, adminID primitive.ObjectID) ([]domain.Product, error) {
	return s.repo.ListByCreator(ctx, adminID)
}
