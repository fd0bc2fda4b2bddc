package orders

import (
	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
)

// transitionRule is a single row of the order lifecycle table. The table is
// the only authority on which moves are legal; the legality check, the
// action set offered to clients, and the timeline narrative are all derived
// from the same rows so they cannot drift apart.
type transitionRule struct {
	from        enums.OrderStatus
	to          enums.OrderStatus
	action      enums.OrderAction
	actor       enums.TimelineActor
	description string
}

var transitionTable = []transitionRule{
	{enums.OrderStatusNew, enums.OrderStatusAccepted, enums.OrderActionAccept, enums.TimelineActorSeller, "Order accepted by seller"},
	{enums.OrderStatusNew, enums.OrderStatusDeclined, enums.OrderActionDecline, enums.TimelineActorSeller, "Order declined by seller"},
	{enums.OrderStatusNew, enums.OrderStatusCancelled, enums.OrderActionCancel, enums.TimelineActorCustomer, "Order cancelled"},
	{enums.OrderStatusAccepted, enums.OrderStatusPreparing, enums.OrderActionStartPreparing, enums.TimelineActorSeller, "Order is being prepared"},
	{enums.OrderStatusAccepted, enums.OrderStatusCancelled, enums.OrderActionCancel, enums.TimelineActorCustomer, "Order cancelled"},
	{enums.OrderStatusPreparing, enums.OrderStatusReady, enums.OrderActionMarkReady, enums.TimelineActorSeller, "Order packed and ready for pickup"},
	{enums.OrderStatusPreparing, enums.OrderStatusCancelled, enums.OrderActionCancel, enums.TimelineActorCustomer, "Order cancelled"},
	{enums.OrderStatusReady, enums.OrderStatusAssigned, enums.OrderActionAssignDelivery, enums.TimelineActorSeller, "Delivery partner assigned"},
	{enums.OrderStatusReady, enums.OrderStatusCancelled, enums.OrderActionCancel, enums.TimelineActorCustomer, "Order cancelled"},
	{enums.OrderStatusAssigned, enums.OrderStatusOutForDelivery, enums.OrderActionStartDelivery, enums.TimelineActorDelivery, "Order is out for delivery"},
	{enums.OrderStatusAssigned, enums.OrderStatusCancelled, enums.OrderActionCancel, enums.TimelineActorCustomer, "Order cancelled"},
	{enums.OrderStatusOutForDelivery, enums.OrderStatusDelivered, enums.OrderActionMarkDelivered, enums.TimelineActorDelivery, "Order delivered"},
}

// creationDescription is the narrative for the synthetic event recorded
// when an order enters the store with status new.
const creationDescription = "Order placed"

// ValidTransitions returns the statuses reachable from the given status.
// Terminal statuses return an empty slice, never nil special-casing.
func ValidTransitions(from enums.OrderStatus) []enums.OrderStatus {
	out := make([]enums.OrderStatus, 0, 3)
	for _, rule := range transitionTable {
		if rule.from == from {
			out = append(out, rule.to)
		}
	}
	return out
}

// IsValidTransition reports whether from -> to appears in the lifecycle
// table.
func IsValidTransition(from, to enums.OrderStatus) bool {
	_, ok := ruleFor(from, to)
	return ok
}

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(status enums.OrderStatus) bool {
	return len(ValidTransitions(status)) == 0
}

// AvailableActions returns the user-facing commands that may be issued for
// an order in the given status, in table order.
func AvailableActions(status enums.OrderStatus) []enums.OrderAction {
	out := make([]enums.OrderAction, 0, 3)
	for _, rule := range transitionTable {
		if rule.from == status {
			out = append(out, rule.action)
		}
	}
	return out
}

func ruleFor(from, to enums.OrderStatus) (transitionRule, bool) {
	for _, rule := range transitionTable {
		if rule.from == from && rule.to == to {
			return rule, true
		}
	}
	return transitionRule{}, false
}

// pathFromNew returns the shortest legal status chain from new to the
// target, excluding new itself. Used by the seed loader to reconstruct a
// plausible timeline for orders seeded mid-lifecycle.
func pathFromNew(target enums.OrderStatus) ([]enums.OrderStatus, bool) {
	if target == enums.OrderStatusNew {
		return nil, true
	}
	type node struct {
		status enums.OrderStatus
		path   []enums.OrderStatus
	}
	visited := map[enums.OrderStatus]bool{enums.OrderStatusNew: true}
	queue := []node{{status: enums.OrderStatusNew}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range ValidTransitions(current.status) {
			if visited[next] {
				continue
			}
			path := append(append([]enums.OrderStatus{}, current.path...), next)
			if next == target {
				return path, true
			}
			visited[next] = true
			queue = append(queue, node{status: next, path: path})
		}
	}
	return nil, false
}
