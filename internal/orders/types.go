package orders

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
)

// Customer holds the buyer contact details captured at order creation.
// The order keeps a copy; it never owns the customer record.
type Customer struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email,omitempty"`
	Address  string  `json:"address"`
	Landmark *string `json:"landmark,omitempty"`
}

// OrderItem is one line of an order. TotalPrice is always recomputed from
// Quantity and UnitPrice, never set independently.
type OrderItem struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Packed     bool            `json:"packed"`
	Available  bool            `json:"available"`
}

// DeliveryAssignment records the delivery person attached to an order once
// it reaches the assigned status. It is never cleared by later forward
// transitions.
type DeliveryAssignment struct {
	DeliveryBoyID   string     `json:"delivery_boy_id"`
	DeliveryBoyName string     `json:"delivery_boy_name,omitempty"`
	AssignedAt      time.Time  `json:"assigned_at"`
	EstimatedAt     *time.Time `json:"estimated_at,omitempty"`
}

// TimelineEvent is an immutable audit record. Exactly one is appended per
// accepted transition, plus one synthetic event at order creation.
type TimelineEvent struct {
	Status      enums.OrderStatus   `json:"status"`
	Timestamp   time.Time           `json:"timestamp"`
	Description string              `json:"description"`
	Actor       enums.TimelineActor `json:"actor"`
}

// Order is the aggregate owned by the Store. Callers outside this package
// only ever see defensive copies.
type Order struct {
	ID                 uuid.UUID           `json:"id"`
	Code               string              `json:"code"`
	Status             enums.OrderStatus   `json:"status"`
	Items              []OrderItem         `json:"items"`
	Customer           Customer            `json:"customer"`
	PaymentAmount      decimal.Decimal     `json:"payment_amount"`
	PaymentStatus      enums.PaymentStatus `json:"payment_status"`
	DeliveryAssignment *DeliveryAssignment `json:"delivery_assignment,omitempty"`
	Timeline           []TimelineEvent     `json:"timeline"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (o *Order) clone() *Order {
	if o == nil {
		return nil
	}
	dup := *o
	dup.Items = make([]OrderItem, len(o.Items))
	copy(dup.Items, o.Items)
	dup.Timeline = make([]TimelineEvent, len(o.Timeline))
	copy(dup.Timeline, o.Timeline)
	if o.DeliveryAssignment != nil {
		assignment := *o.DeliveryAssignment
		dup.DeliveryAssignment = &assignment
	}
	if o.Customer.Email != nil {
		email := *o.Customer.Email
		dup.Customer.Email = &email
	}
	if o.Customer.Landmark != nil {
		landmark := *o.Customer.Landmark
		dup.Customer.Landmark = &landmark
	}
	return &dup
}

// codeAlphabet skips ambiguous glyphs (0/O, 1/I) for readability on
// receipts and support calls.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codePrefix = "SD-"

// NewOrderCode generates the human-facing order code. It is display
// oriented and deliberately uses a different scheme from the internal id.
func NewOrderCode() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; fall back to
		// the uuid package rather than returning an empty code.
		return codePrefix + uuid.NewString()[:6]
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return codePrefix + string(buf)
}
