package service

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sethu9398/e-commerce/internal/repository"
)

func setupCart(t *testing.T) (*ProductService, *CartService) {
	t.Helper()
	store := repository.NewMemoryStore()
	carts := repository.NewMemoryCarts(store)
	return NewProductService(store), NewCartService(carts, store)
}

func TestCart_AddAndIncrement(t *testing.T) {
	ctx := context.Background()
	ps, cs := setupCart(t)
	user := primitive.NewObjectID()
	p := seedProduct(t, ps, "Widget", 10, 5)

	cart, err := cs.Add(ctx, user, p.ID, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("bad cart: %+v", cart.Items)
	}

	// same product again increments the existing line
	cart, err = cs.Add(ctx, user, p.ID, 3)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 5 {
		t.Fatalf("line not incremented: %+v", cart.Items)
	}
}

func TestCart_AddDefaultsQuantity(t *testing.T) {
	ctx := context.Background()
	ps, cs := setupCart(t)
	user := primitive.NewObjectID()
	p := seedProduct(t, ps, "Widget", 10, 5)

	cart, err := cs.Add(ctx, user, p.ID, 0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if cart.Items[0].Quantity != 1 {
		t.Fatalf("quantity expected 1, got %v", cart.Items[0].Quantity)
	}
}

func TestCart_AddUnknownProduct(t *testing.T) {
	ctx := context.Background()
	_, cs := setupCart(t)
	user := primitive.NewObjectID()

	if _, err := cs.Add(ctx, user, primitive.NewObjectID(), 1); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCart_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	ps, cs := setupCart(t)
	user := primitive.NewObjectID()
	p := seedProduct(t, ps, "Widget", 10, 5)

	if _, err := cs.Add(ctx, user, p.ID, 1); err != nil {
		t.Fatal(err)
	}
	cart, err := cs.UpdateQuantity(ctx, user, p.ID, 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("quantity expected 4, got %v", cart.Items[0].Quantity)
	}

	if _, err := cs.UpdateQuantity(ctx, user, p.ID, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for zero quantity, got %v", err)
	}
	if _, err := cs.UpdateQuantity(ctx, user, primitive.NewObjectID(), 2); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found for missing line, got %v", err)
	}
}

func TestCart_RemoveLine(t *testing.T) {
	ctx := context.Background()
	ps, cs := setupCart(t)
	user := primitive.NewObjectID()
	p1 := seedProduct(t, ps, "A", 10, 5)
	p2 := seedProduct(t, ps, "B", 20, 5)

	if _, err := cs.Add(ctx, user, p1.ID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := cs.Add(ctx, user, p2.ID, 1); err != nil {
		t.Fatal(err)
	}

	cart, err := cs.Remove(ctx, user, p1.ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != p2.ID {
		t.Fatalf("wrong line removed: %+v", cart.Items)
	}

	// removing an absent line is not an error
	cart, err = cs.Remove(ctx, user, p1.ID)
	if err != nil || len(cart.Items) != 1 {
		t.Fatalf("absent-line remove: %v", err)
	}
}

func TestCart_GetJoinsProducts(t *testing.T) {
	ctx := context.Background()
	ps, cs := setupCart(t)
	user := primitive.NewObjectID()
	p := seedProduct(t, ps, "Widget", 42, 5)

	if _, err := cs.Add(ctx, user, p.ID, 2); err != nil {
		t.Fatal(err)
	}
	view, err := cs.Get(ctx, user)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(view.Items))
	}
	if view.Items[0].Product.Name != "Widget" || view.Items[0].Product.Price != 42 {
		t.Fatalf("product not joined: %+v", view.Items[0])
	}
	if view.Items[0].Quantity != 2 {
		t.Fatalf("quantity lost in view")
	}
}

func TestCart_GetMissingIsEmpty(t *testing.T) {
	ctx := context.Background()
	_, cs := setupCart(t)
	view, err := cs.Get(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty view")
	}
}

func TestCart_GetSkipsDeletedProducts(t *testing.T) {
	ctx := context.Background()
	ps, cs := setupCart(t)
	user := primitive.NewObjectID()
	p1 := seedProduct(t, ps, "A", 10, 5)
	p2 := seedProduct(t, ps, "B", 20, 5)

	if _, err := cs.Add(ctx, user, p1.ID, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := cs.Add(ctx, user, p2.ID, 1); err != nil {
		t.Fatal(err)
	}
	if err := ps.Delete(ctx, p1.ID); err != nil {
		t.Fatal(err)
	}

	view, err := cs.Get(ctx, user)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Product.ID != p2.ID {
		t.Fatalf("deleted product not skipped: %+v", view.Items)
	}
}
