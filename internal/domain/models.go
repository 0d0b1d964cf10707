package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role of a registered user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultUserImage is used when registration omits an avatar.
const DefaultUserImage = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcS8oghbsuzggpkknQSSU-Ch_xep_9v3m6EeBQ&s"

// User account. Password holds a bcrypt hash, never plaintext.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Image     string             `bson:"image" json:"image"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Product in the catalog. Stock is mutated by admin CRUD and by the
// order workflow.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Stock       int64              `bson:"stock" json:"stock"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty" json:"created_by"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// CartItem is one (product, quantity) line in a cart.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Quantity  int64              `bson:"quantity" json:"quantity"`
}

// Cart holds a user's pending purchases. One per user; deleted when an
// order is placed from it.
type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user_id"`
	Items     []CartItem         `bson:"items" json:"items"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// OrderStatus enumeration.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// ValidStatus reports whether s is a member of the status enumeration.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a snapshot of a product at placement time. Later edits
// to the live product do not touch it.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int64              `bson:"quantity" json:"quantity"`
}

// ShippingAddress. All five fields are required on order placement.
type ShippingAddress struct {
	FullName   string `bson:"fullName" json:"full_name"`
	Phone      string `bson:"phone" json:"phone"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postal_code"`
}

// Complete reports whether every shipping field is filled in.
func (a ShippingAddress) Complete() bool {
	return a.FullName != "" && a.Phone != "" && a.Address != "" &&
		a.City != "" && a.PostalCode != ""
}

// DefaultPaymentMethod is the only payment method supported.
const DefaultPaymentMethod = "Cash On Delivery"

// Order entity.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shipping_address"`
	TotalAmount     float64            `bson:"totalAmount" json:"total_amount"`
	PaymentMethod   string             `bson:"paymentMethod" json:"payment_method"`
	Status          OrderStatus        `bson:"orderStatus" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updated_at"`
}

// ItemsTotal sums price*quantity over the current items.
func (o *Order) ItemsTotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
