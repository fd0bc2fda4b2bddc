package enums

import "fmt"

// OrderAction is a user-facing command that can be issued against an order.
// The set offered for a given status is derived from the transition table,
// never maintained separately.
type OrderAction string

const (
	OrderActionAccept         OrderAction = "accept"
	OrderActionDecline        OrderAction = "decline"
	OrderActionStartPreparing OrderAction = "start_preparing"
	OrderActionMarkReady      OrderAction = "mark_ready"
	OrderActionAssignDelivery OrderAction = "assign_delivery"
	OrderActionStartDelivery  OrderAction = "start_delivery"
	OrderActionMarkDelivered  OrderAction = "mark_delivered"
	OrderActionCancel         OrderAction = "cancel"
)

var validOrderActions = []OrderAction{
	OrderActionAccept,
	OrderActionDecline,
	OrderActionStartPreparing,
	OrderActionMarkReady,
	OrderActionAssignDelivery,
	OrderActionStartDelivery,
	OrderActionMarkDelivered,
	OrderActionCancel,
}

// String implements fmt.Stringer.
func (a OrderAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known OrderAction.
func (a OrderAction) IsValid() bool {
	for _, candidate := range validOrderActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOrderAction converts raw input into an OrderAction.
func ParseOrderAction(value string) (OrderAction, error) {
	for _, candidate := range validOrderActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order action %q", value)
}
