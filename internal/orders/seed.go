package orders

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
)

// seedFile is the on-disk shape consumed at store construction. Records
// describe orders mid-lifecycle; the loader reconstructs a legal timeline
// by walking the lifecycle table from new to the seeded status.
type seedFile struct {
	Orders []seedRecord `json:"orders"`
}

type seedRecord struct {
	Code               string              `json:"code"`
	Status             string              `json:"status"`
	Customer           Customer            `json:"customer"`
	Items              []seedItem          `json:"items"`
	PaymentStatus      string              `json:"payment_status"`
	Delivery           *DeliveryAssignment `json:"delivery,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

type seedItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// seedEventSpacing separates reconstructed timeline events so seeded
// histories read chronologically.
const seedEventSpacing = 5 * time.Minute

// LoadSeed reads and validates a seed file. Per-record problems are
// aggregated so a bad file reports every offender at once.
func LoadSeed(path string) ([]Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var file seedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	var combined error
	out := make([]Order, 0, len(file.Orders))
	for i, record := range file.Orders {
		order, err := buildSeedOrder(record)
		if err != nil {
			combined = multierr.Append(combined, fmt.Errorf("record %d (%q): %w", i, record.Code, err))
			continue
		}
		out = append(out, order)
	}
	if combined != nil {
		return nil, combined
	}
	return out, nil
}

func buildSeedOrder(record seedRecord) (Order, error) {
	status, err := enums.ParseOrderStatus(record.Status)
	if err != nil {
		return Order{}, err
	}

	paymentStatus := enums.PaymentStatusPending
	if record.PaymentStatus != "" {
		paymentStatus, err = enums.ParsePaymentStatus(record.PaymentStatus)
		if err != nil {
			return Order{}, err
		}
	}

	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		return Order{}, fmt.Errorf("created_at is required")
	}

	code := strings.TrimSpace(record.Code)
	if code == "" {
		code = NewOrderCode()
	}

	total := decimal.Zero
	items := make([]OrderItem, 0, len(record.Items))
	for _, in := range record.Items {
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

	timeline, err := rebuildTimeline(status, createdAt, record.CancellationReason)
	if err != nil {
		return Order{}, err
	}

	order := Order{
		ID:                 uuid.New(),
		Code:               code,
		Status:             status,
		Items:              items,
		Customer:           record.Customer,
		PaymentAmount:      total,
		PaymentStatus:      paymentStatus,
		Timeline:           timeline,
		CancellationReason: record.CancellationReason,
		CreatedAt:          createdAt,
		UpdatedAt:          timeline[len(timeline)-1].Timestamp,
	}

	if record.Delivery != nil {
		assignment := *record.Delivery
		if assignment.AssignedAt.IsZero() {
			assignment.AssignedAt = order.UpdatedAt
		}
		order.DeliveryAssignment = &assignment
	}

	return order, nil
}

func rebuildTimeline(status enums.OrderStatus, createdAt time.Time, reason string) ([]TimelineEvent, error) {
	timeline := []TimelineEvent{{
		Status:      enums.OrderStatusNew,
		Timestamp:   createdAt,
		Description: creationDescription,
		Actor:       enums.TimelineActorCustomer,
	}}

	path, ok := pathFromNew(status)
	if !ok {
		return nil, fmt.Errorf("status %s is not reachable from new", status)
	}

	previous := enums.OrderStatusNew
	at := createdAt
	for _, step := range path {
		rule, ok := ruleFor(previous, step)
		if !ok {
			return nil, fmt.Errorf("no rule for %s -> %s", previous, step)
		}
		at = at.Add(seedEventSpacing)
		description := rule.description
		if step == enums.OrderStatusCancelled && strings.TrimSpace(reason) != "" {
			description = fmt.Sprintf("%s: %s", rule.description, reason)
		}
		timeline = append(timeline, TimelineEvent{
			Status:      step,
			Timestamp:   at,
			Description: description,
			Actor:       rule.actor,
		})
		previous = step
	}
	return timeline, nil
}
