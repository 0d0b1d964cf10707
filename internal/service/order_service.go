package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sethu9398/e-commerce/internal/domain"
	"github.com/Sethu9398/e-commerce/internal/repository"
)

// OrderService implements the order workflow: placement from the cart,
// line-item removal with recomputation, status transitions and the
// per-admin visibility scoping.
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	carts    repository.CartRepository
	tx       repository.TxManager

	// strictStatus rejects status values outside the enumeration.
	// Off unless configured, so admins can write any string.
	strictStatus bool
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, carts repository.CartRepository, tx repository.TxManager, strictStatus bool) *OrderService {
	return &OrderService{products: products, orders: orders, carts: carts, tx: tx, strictStatus: strictStatus}
}

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidShipping    = errors.New("all shipping address fields are required")
	ErrOrderNotModifiable = errors.New("cannot modify this order")
	ErrItemNotFound       = errors.New("product not found in order")
	ErrInvalidStatus      = errors.New("invalid order status")
)

// OutOfStockError names the product that could not be fulfilled.
type OutOfStockError struct {
	Product string
}

func (e *OutOfStockError) Error() string { return e.Product + " is out of stock" }

// Place converts the user's cart into an order: validates the shipping
// address, joins each cart line with its live product, snapshots
// name/price/quantity, checks and decrements stock per line in cart
// order, persists the order and deletes the cart.
//
// A stock shortfall aborts on the first insufficient line without
// undoing decrements already applied for earlier lines.
func (s *OrderService) Place(ctx context.Context, userID primitive.ObjectID, shipping domain.ShippingAddress) (*domain.Order, error) {
	if !shipping.Complete() {
		return nil, ErrInvalidShipping
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.carts.GetByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		// join lines with live products and build the snapshot
		type line struct {
			product *domain.Product
			qty     int64
		}
		lines := make([]line, 0, len(cart.Items))
		items := make([]domain.OrderItem, 0, len(cart.Items))
		var total float64
		for _, it := range cart.Items {
			p, err := s.products.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			lines = append(lines, line{product: p, qty: it.Quantity})
			items = append(items, domain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Quantity:  it.Quantity,
			})
			total += p.Price * float64(it.Quantity)
		}

		// check and decrement per line, in cart order
		for _, l := range lines {
			if l.product.Stock < l.qty {
				return &OutOfStockError{Product: l.product.Name}
			}
			l.product.Stock -= l.qty
			if err := s.products.Update(ctx, l.product); err != nil {
				return err
			}
		}

		o := domain.Order{
			UserID:          userID,
			Items:           items,
			ShippingAddress: shipping,
			TotalAmount:     total,
			PaymentMethod:   domain.DefaultPaymentMethod,
			Status:          domain.OrderStatusPending,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		if err := s.carts.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveItem takes one line item out of a pending order owned by
// userID. Stock is restored quantity-for-quantity; if the product has
// been deleted since placement the restore is skipped. The total is
// recomputed from the remaining lines, and an order left with no lines
// is deleted (deleted=true, nil order).
func (s *OrderService) RemoveItem(ctx context.Context, orderID, userID, productID primitive.ObjectID) (*domain.Order, bool, error) {
	var (
		updated *domain.Order
		deleted bool
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByIDForUser(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if o.Status != domain.OrderStatusPending {
			return ErrOrderNotModifiable
		}

		idx := -1
		for i, it := range o.Items {
			if it.ProductID == productID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrItemNotFound
		}
		removed := o.Items[idx]

		// restore stock, best effort: a product deleted since placement
		// is skipped, not fatal
		p, err := s.products.GetByID(ctx, productID)
		if err == nil {
			p.Stock += removed.Quantity
			if err := s.products.Update(ctx, p); err != nil {
				return err
			}
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
		o.TotalAmount = o.ItemsTotal()

		if len(o.Items) == 0 {
			if err := s.orders.Delete(ctx, o.ID); err != nil {
				return err
			}
			deleted = true
			return nil
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return updated, deleted, nil
}

// SetStatus overwrites the order's status. By default any value is
// accepted; with strictStatus the value must be a member of the
// enumeration.
func (s *OrderService) SetStatus(ctx context.Context, orderID primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error) {
	if s.strictStatus && !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	o.Status = status
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListForAdmin returns orders containing at least one line item whose
// product was created by the given admin, newest first. An admin with
// no products sees an empty list.
func (s *OrderService) ListForAdmin(ctx context.Context, adminID primitive.ObjectID) ([]domain.Order, error) {
	prods, err := s.products.ListByCreator(ctx, adminID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(prods))
	for _, p := range prods {
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		return []domain.Order{}, nil
	}
	return s.orders.ListContainingProducts(ctx, ids)
}
