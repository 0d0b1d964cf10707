package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sethu9398/e-commerce/internal/domain"
)

// ErrNotFound is returned when an entity does not exist (or is not
// visible to the caller).
var ErrNotFound = errors.New("not found")

// UserRepository stores accounts. Email lookup is exact-match on the
// lowercased address.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// ProductRepository stores the catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]domain.Product, error)
	// ListByCreator returns products created by the given admin, newest first.
	ListByCreator(ctx context.Context, adminID primitive.ObjectID) ([]domain.Product, error)
}

// CartRepository stores at most one cart per user.
type CartRepository interface {
	GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	// Upsert creates the cart on first save and replaces it afterwards.
	Upsert(ctx context.Context, c *domain.Cart) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

// OrderRepository stores placed orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	// GetByIDForUser resolves the order only when it belongs to userID.
	GetByIDForUser(ctx context.Context, id, userID primitive.ObjectID) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	// ListContainingProducts returns orders holding at least one line item
	// whose product id is in ids, newest first.
	ListContainingProducts(ctx context.Context, ids []primitive.ObjectID) ([]domain.Order, error)
}

// TxManager is the transaction abstraction. The in-memory store takes a
// global write lock; the mongo store is a passthrough, matching the
// source's lack of multi-document transactions.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
