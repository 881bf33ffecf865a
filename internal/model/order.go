package model

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// Cancellable reports whether a customer may still cancel an order in this status.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentProvider identifies how an order is paid for.
type PaymentProvider string

const (
	PaymentProviderRazorpay PaymentProvider = "razorpay"
	PaymentProviderCOD      PaymentProvider = "cod"
)

// Order represents a customer order. Items and ShippingAddress are snapshots
// taken at checkout and are never re-derived from catalog or address data.
type Order struct {
	ID              string             `json:"id"`
	OrderNumber     string             `json:"orderNumber"`
	UserID          string             `json:"userId"`
	Items           []OrderItem        `json:"items"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   OrderPaymentMethod `json:"paymentMethod"`
	Pricing         Pricing            `json:"pricing"`
	Status          OrderStatus        `json:"status"`
	PaymentStatus   PaymentStatus      `json:"paymentStatus"`
	TrackingNumber  string             `json:"trackingNumber,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ProductID      string         `json:"productId" validate:"required"`
	ProductName    string         `json:"productName" validate:"required"`
	Price          float64        `json:"price" validate:"gte=0"`
	Quantity       int            `json:"quantity" validate:"gte=1"`
	Size           string         `json:"size,omitempty"`
	Image          string         `json:"image,omitempty"`
	Customizations map[string]any `json:"customizations,omitempty"`
}

// ShippingAddress is the denormalised delivery address copied onto an order.
type ShippingAddress struct {
	FullName     string `json:"fullName" validate:"required"`
	Phone        string `json:"phone" validate:"required,len=10,number"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required,len=6,number"`
	Country      string `json:"country,omitempty"`
}

// OrderPaymentMethod records how the order was paid. No gateway state is kept.
type OrderPaymentMethod struct {
	Method        PaymentProvider `json:"method" validate:"required,oneof=razorpay cod"`
	TransactionID string          `json:"transactionId,omitempty"`
	PaymentID     string          `json:"paymentId,omitempty"`
	CardLast4     string          `json:"cardLast4,omitempty"`
}

// Pricing holds client-computed totals. They are stored as submitted.
type Pricing struct {
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
	Shipping float64 `json:"shipping" validate:"gte=0"`
	Tax      float64 `json:"tax" validate:"gte=0"`
	Discount float64 `json:"discount" validate:"gte=0"`
	Total    float64 `json:"total" validate:"gte=0"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	Email           string             `json:"email" validate:"required,email"`
	Items           []OrderItem        `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress    `json:"shippingAddress"`
	PaymentMethod   OrderPaymentMethod `json:"paymentMethod"`
	Pricing         Pricing            `json:"pricing"`
	PaymentStatus   *PaymentStatus     `json:"paymentStatus,omitempty"`
	Notes           string             `json:"notes,omitempty"`
}

// OrderUpdate is a partial update. Nil fields are left untouched; a non-nil
// empty Notes clears the notes.
type OrderUpdate struct {
	Email          string         `json:"email,omitempty"`
	Status         *OrderStatus   `json:"status,omitempty"`
	PaymentStatus  *PaymentStatus `json:"paymentStatus,omitempty"`
	TrackingNumber *string        `json:"trackingNumber,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
}

// Validate checks that any supplied status values are known.
func (u *OrderUpdate) Validate() error {
	if u.Status != nil && !u.Status.Valid() {
		return NewValidationError(fmt.Sprintf("invalid order status: %s", *u.Status))
	}
	if u.PaymentStatus != nil && !u.PaymentStatus.Valid() {
		return NewValidationError(fmt.Sprintf("invalid payment status: %s", *u.PaymentStatus))
	}
	return nil
}

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	Status        OrderStatus
	PaymentStatus PaymentStatus
	Limit         int
	Skip          int
}

// OrderPage is one page of the admin order listing.
type OrderPage struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Skip   int     `json:"skip"`
}

// Cancel applies the customer cancellation transition. Only pending or
// confirmed orders may be cancelled; a paid order becomes refunded.
func (o *Order) Cancel() error {
	if !o.Status.Cancellable() {
		return ErrNotCancellable
	}
	o.Status = OrderStatusCancelled
	if o.PaymentStatus == PaymentStatusPaid {
		o.PaymentStatus = PaymentStatusRefunded
	}
	return nil
}

// ApplyUpdate overwrites every field present in u. No transition table is
// enforced here.
func (o *Order) ApplyUpdate(u OrderUpdate) {
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.PaymentStatus != nil {
		o.PaymentStatus = *u.PaymentStatus
	}
	if u.TrackingNumber != nil {
		o.TrackingNumber = *u.TrackingNumber
	}
	if u.Notes != nil {
		o.Notes = *u.Notes
	}
}

const orderNumberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// EnsureOrderNumber assigns an order number if the order has none.
func (o *Order) EnsureOrderNumber(now time.Time) error {
	if o.OrderNumber != "" {
		return nil
	}
	n, err := NewOrderNumber(now, rand.Reader)
	if err != nil {
		return err
	}
	o.OrderNumber = n
	return nil
}

// NewOrderNumber formats SLY-<base36 millis>-<4 random chars>. Bytes at or
// above the largest multiple of the alphabet size are discarded so every
// character is equally likely.
func NewOrderNumber(now time.Time, rnd io.Reader) (string, error) {
	const limit = 256 - 256%len(orderNumberAlphabet)

	suffix := make([]byte, 0, 4)
	buf := make([]byte, 4)
	for len(suffix) < cap(suffix) {
		want := buf[:cap(suffix)-len(suffix)]
		if _, err := io.ReadFull(rnd, want); err != nil {
			return "", fmt.Errorf("failed to generate order number: %w", err)
		}
		for _, b := range want {
			if int(b) < limit {
				suffix = append(suffix, orderNumberAlphabet[int(b)%len(orderNumberAlphabet)])
			}
		}
	}
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return "SLY-" + ts + "-" + string(suffix), nil
}
