package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
)

// ChangeNotice describes one committed mutation. Subscribers receive it
// only after the order, its timeline, and any dependent fields are all
// updated. From is empty for order creation and equals To for payment-only
// updates.
type ChangeNotice struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderCode     string              `json:"order_code"`
	From          enums.OrderStatus   `json:"from,omitempty"`
	To            enums.OrderStatus   `json:"to"`
	PaymentStatus enums.PaymentStatus `json:"payment_status"`
	At            time.Time           `json:"at"`
}

// TransitionContext carries the optional payload of a transition command.
type TransitionContext struct {
	// Assignment is required when transitioning to assigned.
	Assignment *DeliveryAssignment
	// Reason is recorded as the cancellation reason when transitioning to
	// cancelled.
	Reason string
}

// StoreOption configures a Store at construction.
type StoreOption func(*Store)

// WithClock overrides the time source. Tests use it to pin timestamps.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithLocation sets the timezone used for calendar-day queries.
func WithLocation(loc *time.Location) StoreOption {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// Store holds the authoritative order collection. It is the only component
// that mutates an Order; the state machine and query layer only read.
// Mutations on a single order are serialized: a second command for the same
// id while one is in flight fails with ConcurrentModificationError.
type Store struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Order
	ordered []uuid.UUID

	inflightMu sync.Mutex
	inflight   map[uuid.UUID]struct{}

	subMu   sync.Mutex
	subs    map[int]func(ChangeNotice)
	nextSub int

	clock func() time.Time
	loc   *time.Location
}

// NewStore builds a store from the initial seed. Seed records must already
// satisfy the order invariants; a violation fails construction rather than
// admitting an unreachable state.
func NewStore(seed []Order, opts ...StoreOption) (*Store, error) {
	s := &Store{
		byID:     make(map[uuid.UUID]*Order, len(seed)),
		ordered:  make([]uuid.UUID, 0, len(seed)),
		inflight: make(map[uuid.UUID]struct{}),
		subs:     make(map[int]func(ChangeNotice)),
		clock:    time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}

	for i := range seed {
		order := seed[i].clone()
		recomputeItemTotals(order)
		if err := validateOrder(order); err != nil {
			return nil, fmt.Errorf("seed order %q: %w", order.Code, err)
		}
		if _, exists := s.byID[order.ID]; exists {
			return nil, fmt.Errorf("seed order %q: duplicate id %s", order.Code, order.ID)
		}
		s.byID[order.ID] = order
		s.ordered = append(s.ordered, order.ID)
	}
	return s, nil
}

// CreateItemInput is one requested line of a new order.
type CreateItemInput struct {
	ProductID string
	Name      string
	Quantity  int
	Unit      string
	UnitPrice decimal.Decimal
}

// CreateInput carries everything needed to admit a new order.
type CreateInput struct {
	Items    []CreateItemInput
	Customer Customer
}

// Create admits a new order with status new, payment pending, and the
// synthetic creation timeline event.
func (s *Store) Create(ctx context.Context, input CreateInput) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(input.Items) == 0 {
		return nil, &ValidationError{Reason: "order requires at least one item"}
	}
	if strings.TrimSpace(input.Customer.Phone) == "" {
		return nil, &ValidationError{Reason: "customer phone is required"}
	}
	if strings.TrimSpace(input.Customer.Address) == "" {
		return nil, &ValidationError{Reason: "customer address is required"}
	}

	now := s.now()
	total := decimal.Zero
	items := make([]OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, &ValidationError{Reason: fmt.Sprintf("item %q: quantity must be positive", in.Name)}
		}
		if in.UnitPrice.IsNegative() {
			return nil, &ValidationError{Reason: fmt.Sprintf("item %q: unit price must not be negative", in.Name)}
		}
		line := OrderItem{
			ProductID:  in.ProductID,
			Name:       in.Name,
			Quantity:   in.Quantity,
			Unit:       in.Unit,
			UnitPrice:  in.UnitPrice,
			TotalPrice: in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Available:  true,
		}
		total = total.Add(line.TotalPrice)
		items = append(items, line)
	}

	order := &Order{
		ID:            uuid.New(),
		Code:          NewOrderCode(),
		Status:        enums.OrderStatusNew,
		Items:         items,
		Customer:      input.Customer,
		PaymentAmount: total,
		PaymentStatus: enums.PaymentStatusPending,
		Timeline: []TimelineEvent{{
			Status:      enums.OrderStatusNew,
			Timestamp:   now,
			Description: creationDescription,
			Actor:       enums.TimelineActorCustomer,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.byID[order.ID] = order
	s.ordered = append(s.ordered, order.ID)
	s.mu.Unlock()

	s.notify(ChangeNotice{
		OrderID:       order.ID,
		OrderCode:     order.Code,
		To:            order.Status,
		PaymentStatus: order.PaymentStatus,
		At:            now,
	})
	return order.clone(), nil
}

// Transition applies a status change after validating it against the
// lifecycle table. On rejection the order is untouched: status, timeline,
// and dependent fields commit together or not at all.
func (s *Store) Transition(ctx context.Context, orderID uuid.UUID, to enums.OrderStatus, tctx TransitionContext) (*Order, error) {
	if !to.IsValid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown order status %q", to)}
	}
	if err := s.acquire(orderID); err != nil {
		return nil, err
	}
	defer s.release(orderID)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	current, ok := s.byID[orderID]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{OrderID: orderID}
	}

	rule, ok := ruleFor(current.Status, to)
	if !ok {
		return nil, &InvalidTransitionError{From: current.Status, To: to}
	}

	now := s.now()
	updated := current.clone()
	updated.Status = to
	updated.UpdatedAt = now

	if to == enums.OrderStatusAssigned {
		if tctx.Assignment == nil || strings.TrimSpace(tctx.Assignment.DeliveryBoyID) == "" {
			return nil, &MissingAssignmentError{OrderID: orderID}
		}
		assignment := *tctx.Assignment
		if assignment.AssignedAt.IsZero() {
			assignment.AssignedAt = now
		}
		updated.DeliveryAssignment = &assignment
	}

	description := rule.description
	if to == enums.OrderStatusCancelled {
		updated.CancellationReason = tctx.Reason
		if reason := strings.TrimSpace(tctx.Reason); reason != "" {
			description = fmt.Sprintf("%s: %s", rule.description, reason)
		}
	}

	updated.Timeline = append(updated.Timeline, TimelineEvent{
		Status:      to,
		Timestamp:   now,
		Description: description,
		Actor:       rule.actor,
	})

	// Cancellation must leave the prior state intact; nothing has been
	// committed yet, so bail before the swap.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.byID[orderID] = updated
	s.mu.Unlock()

	s.notify(ChangeNotice{
		OrderID:       orderID,
		OrderCode:     updated.Code,
		From:          current.Status,
		To:            to,
		PaymentStatus: updated.PaymentStatus,
		At:            now,
	})
	return updated.clone(), nil
}

// Cancel is sugar over Transition to cancelled and records the reason.
func (s *Store) Cancel(ctx context.Context, orderID uuid.UUID, reason string) (*Order, error) {
	return s.Transition(ctx, orderID, enums.OrderStatusCancelled, TransitionContext{Reason: reason})
}

// RecordPaymentStatus updates the payment lifecycle independently of
// fulfillment; it is not gated by the transition table.
func (s *Store) RecordPaymentStatus(ctx context.Context, orderID uuid.UUID, status enums.PaymentStatus) (*Order, error) {
	if !status.IsValid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown payment status %q", status)}
	}
	if err := s.acquire(orderID); err != nil {
		return nil, err
	}
	defer s.release(orderID)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	current, ok := s.byID[orderID]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{OrderID: orderID}
	}

	now := s.now()
	updated := current.clone()
	updated.PaymentStatus = status
	updated.UpdatedAt = now

	s.mu.Lock()
	s.byID[orderID] = updated
	s.mu.Unlock()

	s.notify(ChangeNotice{
		OrderID:       orderID,
		OrderCode:     updated.Code,
		From:          updated.Status,
		To:            updated.Status,
		PaymentStatus: status,
		At:            now,
	})
	return updated.clone(), nil
}

// Get returns a copy of the order with the given id.
func (s *Store) Get(orderID uuid.UUID) (*Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.byID[orderID]
	if !ok {
		return nil, &NotFoundError{OrderID: orderID}
	}
	return order.clone(), nil
}

// List returns copies of every order in insertion order.
func (s *Store) List() []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Order, 0, len(s.ordered))
	for _, id := range s.ordered {
		out = append(out, s.byID[id].clone())
	}
	return out
}

// Subscribe registers a callback fired after every committed mutation. The
// returned function removes the subscription. Callbacks run synchronously
// on the mutating goroutine and must not block.
func (s *Store) Subscribe(fn func(ChangeNotice)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(notice ChangeNotice) {
	s.subMu.Lock()
	callbacks := make([]func(ChangeNotice), 0, len(s.subs))
	for _, fn := range s.subs {
		callbacks = append(callbacks, fn)
	}
	s.subMu.Unlock()

	for _, fn := range callbacks {
		fn(notice)
	}
}

func (s *Store) acquire(orderID uuid.UUID) error {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if _, busy := s.inflight[orderID]; busy {
		return &ConcurrentModificationError{OrderID: orderID}
	}
	s.inflight[orderID] = struct{}{}
	return nil
}

func (s *Store) release(orderID uuid.UUID) {
	s.inflightMu.Lock()
	delete(s.inflight, orderID)
	s.inflightMu.Unlock()
}

func (s *Store) now() time.Time {
	return s.clock().In(s.loc)
}

// Location returns the timezone used for calendar-day queries.
func (s *Store) Location() *time.Location {
	return s.loc
}

func recomputeItemTotals(order *Order) {
	for i := range order.Items {
		order.Items[i].TotalPrice = order.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(order.Items[i].Quantity)))
	}
}

var preAssignmentStatuses = map[enums.OrderStatus]bool{
	enums.OrderStatusNew:       true,
	enums.OrderStatusAccepted:  true,
	enums.OrderStatusPreparing: true,
	enums.OrderStatusReady:     true,
}

func validateOrder(order *Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("order id is required")
	}
	if strings.TrimSpace(order.Code) == "" {
		return fmt.Errorf("order code is required")
	}
	if !order.Status.IsValid() {
		return fmt.Errorf("unknown order status %q", order.Status)
	}
	if !order.PaymentStatus.IsValid() {
		return fmt.Errorf("unknown payment status %q", order.PaymentStatus)
	}
	if order.PaymentAmount.IsNegative() {
		return fmt.Errorf("payment amount must not be negative")
	}
	if strings.TrimSpace(order.Customer.Phone) == "" {
		return fmt.Errorf("customer phone is required")
	}
	if strings.TrimSpace(order.Customer.Address) == "" {
		return fmt.Errorf("customer address is required")
	}
	if len(order.Timeline) == 0 {
		return fmt.Errorf("timeline must contain at least the creation event")
	}
	if last := order.Timeline[len(order.Timeline)-1].Status; last != order.Status {
		return fmt.Errorf("last timeline status %s does not match order status %s", last, order.Status)
	}
	switch {
	case preAssignmentStatuses[order.Status]:
		if order.DeliveryAssignment != nil {
			return fmt.Errorf("delivery assignment must be absent before status assigned")
		}
	case order.Status == enums.OrderStatusAssigned,
		order.Status == enums.OrderStatusOutForDelivery,
		order.Status == enums.OrderStatusDelivered:
		if order.DeliveryAssignment == nil {
			return fmt.Errorf("delivery assignment is required for status %s", order.Status)
		}
	}
	if order.Status != enums.OrderStatusNew &&
		order.Status != enums.OrderStatusCancelled &&
		order.Status != enums.OrderStatusDeclined &&
		len(order.Items) == 0 {
		return fmt.Errorf("orders past new require at least one item")
	}
	return nil
}
