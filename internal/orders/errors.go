package orders

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
)

// NotFoundError reports a lookup for an order id with no record.
type NotFoundError struct {
	OrderID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("order %s not found", e.OrderID)
}

// InvalidTransitionError reports a requested status change that the
// lifecycle table does not permit. It carries both ends of the attempted
// move so callers can surface a precise message.
type InvalidTransitionError struct {
	From enums.OrderStatus
	To   enums.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}

// MissingAssignmentError reports a transition to assigned issued without a
// delivery assignment payload.
type MissingAssignmentError struct {
	OrderID uuid.UUID
}

func (e *MissingAssignmentError) Error() string {
	return fmt.Sprintf("order %s: transition to assigned requires a delivery assignment", e.OrderID)
}

// ConcurrentModificationError reports a mutation attempted while another
// mutation for the same order was still in flight.
type ConcurrentModificationError struct {
	OrderID uuid.UUID
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("order %s: another mutation is in flight", e.OrderID)
}

// ValidationError reports malformed input to a store command, such as an
// order created with no items.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
