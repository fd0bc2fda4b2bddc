package orders

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
	"github.com/sellerdesk/sellerdesk-backend/pkg/pagination"
)

// Stats summarizes the store for the dashboard. preparing aggregates
// accepted/preparing/ready, out_for_delivery aggregates assigned and
// out_for_delivery, cancelled folds in declined.
type Stats struct {
	Total          int `json:"total"`
	New            int `json:"new"`
	Preparing      int `json:"preparing"`
	OutForDelivery int `json:"out_for_delivery"`
	Delivered      int `json:"delivered"`
	Cancelled      int `json:"cancelled"`
	CompletionRate int `json:"completion_rate"`
}

var pendingStatuses = []enums.OrderStatus{
	enums.OrderStatusNew,
	enums.OrderStatusAccepted,
	enums.OrderStatusPreparing,
	enums.OrderStatusReady,
}

var activeDeliveryStatuses = []enums.OrderStatus{
	enums.OrderStatusAssigned,
	enums.OrderStatusOutForDelivery,
}

// ByStatus returns copies of every order whose status is in the given set,
// preserving insertion order.
func (s *Store) ByStatus(statuses ...enums.OrderStatus) []*Order {
	wanted := make(map[enums.OrderStatus]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0)
	for _, id := range s.ordered {
		if order := s.byID[id]; wanted[order.Status] {
			out = append(out, order.clone())
		}
	}
	return out
}

// OrderPage is one page of the order list.
type OrderPage struct {
	Orders     []*Order `json:"orders"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

// ListPage returns a page of orders in insertion order, optionally filtered
// by status. The cursor names the last order of the previous page.
func (s *Store) ListPage(params pagination.Params, statuses ...enums.OrderStatus) (*OrderPage, error) {
	afterID, hasCursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, &ValidationError{Reason: "invalid cursor"}
	}
	limit := pagination.NormalizeLimit(params.Limit)

	var source []*Order
	if len(statuses) == 0 {
		source = s.List()
	} else {
		source = s.ByStatus(statuses...)
	}

	start := 0
	if hasCursor {
		found := false
		for i, order := range source {
			if order.ID == afterID {
				start = i + 1
				found = true
				break
			}
		}
		if !found {
			return nil, &ValidationError{Reason: "cursor does not match any order"}
		}
	}

	end := start + limit
	page := &OrderPage{Orders: []*Order{}}
	if start < len(source) {
		if end > len(source) {
			end = len(source)
		}
		page.Orders = source[start:end]
	}
	if end < len(source) && len(page.Orders) > 0 {
		page.NextCursor = pagination.EncodeCursor(page.Orders[len(page.Orders)-1].ID)
	}
	return page, nil
}

// PendingOrders returns orders not yet handed to delivery and not terminal.
func (s *Store) PendingOrders() []*Order {
	return s.ByStatus(pendingStatuses...)
}

// ActiveDeliveries returns orders currently with a delivery partner.
func (s *Store) ActiveDeliveries() []*Order {
	return s.ByStatus(activeDeliveryStatuses...)
}

// TodayOrders returns orders created on the same calendar day as the
// reference time, midnight to midnight in the store's timezone.
func (s *Store) TodayOrders(reference time.Time) []*Order {
	refYear, refMonth, refDay := reference.In(s.loc).Date()

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0)
	for _, id := range s.ordered {
		order := s.byID[id]
		year, month, day := order.CreatedAt.In(s.loc).Date()
		if year == refYear && month == refMonth && day == refDay {
			out = append(out, order.clone())
		}
	}
	return out
}

// TotalRevenue sums the payment amount of orders that are both delivered
// and paid. Unpaid or undelivered orders never count as realized revenue.
func (s *Store) TotalRevenue() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, id := range s.ordered {
		order := s.byID[id]
		if order.Status == enums.OrderStatusDelivered && order.PaymentStatus == enums.PaymentStatusReceived {
			total = total.Add(order.PaymentAmount)
		}
	}
	return total
}

// Stats computes the dashboard aggregate over the current snapshot. Every
// order lands in exactly one bucket.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	for _, id := range s.ordered {
		stats.Total++
		switch s.byID[id].Status {
		case enums.OrderStatusNew:
			stats.New++
		case enums.OrderStatusAccepted, enums.OrderStatusPreparing, enums.OrderStatusReady:
			stats.Preparing++
		case enums.OrderStatusAssigned, enums.OrderStatusOutForDelivery:
			stats.OutForDelivery++
		case enums.OrderStatusDelivered:
			stats.Delivered++
		case enums.OrderStatusCancelled, enums.OrderStatusDeclined:
			stats.Cancelled++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Delivered) / float64(stats.Total) * 100))
	}
	return stats
}
