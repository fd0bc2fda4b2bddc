package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	Items    []createOrderItem `json:"items" validate:"required,min=1,dive"`
	Customer customerPayload   `json:"customer"`
}

type createOrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type customerPayload struct {
	Name     string  `json:"name" validate:"required"`
	Phone    string  `json:"phone" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Address  string  `json:"address" validate:"required"`
	Landmark *string `json:"landmark,omitempty"`
}

type transitionRequest struct {
	Status     string             `json:"status" validate:"required"`
	Assignment *assignmentPayload `json:"assignment,omitempty"`
	Reason     string             `json:"reason,omitempty"`
}

type assignmentPayload struct {
	DeliveryBoyID   string     `json:"delivery_boy_id" validate:"required"`
	DeliveryBoyName string     `json:"delivery_boy_name,omitempty"`
	EstimatedAt     *time.Time `json:"estimated_at,omitempty"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type paymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}
