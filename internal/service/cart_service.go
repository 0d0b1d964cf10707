package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sethu9398/e-commerce/internal/domain"
	"github.com/Sethu9398/e-commerce/internal/repository"
)

// CartService manages the per-user cart. Reads join each line with the
// live product record, the explicit counterpart of a populate-by-reference.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// CartViewItem is a cart line with product details resolved.
type CartViewItem struct {
	Product  domain.Product `json:"product"`
	Quantity int64          `json:"quantity"`
}

// CartView is what GET /cart returns. A missing cart reads as empty.
type CartView struct {
	Items []CartViewItem `json:"items"`
}

// Get returns the user's cart with product details. Lines whose product
// no longer exists are skipped in the view but stay in the stored cart.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*CartView, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &CartView{Items: []CartViewItem{}}, nil
		}
		return nil, err
	}
	view := &CartView{Items: make([]CartViewItem, 0, len(cart.Items))}
	for _, it := range cart.Items {
		p, err := s.products.GetByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		view.Items = append(view.Items, CartViewItem{Product: *p, Quantity: it.Quantity})
	}
	return view, nil
}

// Add puts a product into the cart, incrementing the line if it is
// already there. Quantity defaults to 1.
func (s *CartService) Add(ctx context.Context, userID, productID primitive.ObjectID, qty int64) (*domain.Cart, error) {
	if qty < 1 {
		qty = 1
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		cart = &domain.Cart{UserID: userID, Items: []domain.CartItem{}}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{ProductID: productID, Quantity: qty})
	}
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets an existing line to the given quantity.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID primitive.ObjectID, qty int64) (*domain.Cart, error) {
	if qty < 1 {
		return nil, ErrInvalidInput
	}
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = qty
			if err := s.carts.Upsert(ctx, cart); err != nil {
				return nil, err
			}
			return cart, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Remove drops a product line from the cart. Removing an absent line is
// not an error.
func (s *CartService) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*domain.Cart, error) {
	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
