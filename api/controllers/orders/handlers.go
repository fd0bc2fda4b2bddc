package orders

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sellerdesk/sellerdesk-backend/api/responses"
	"github.com/sellerdesk/sellerdesk-backend/api/validators"
	internalorders "github.com/sellerdesk/sellerdesk-backend/internal/orders"
	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
	pkgerrors "github.com/sellerdesk/sellerdesk-backend/pkg/errors"
	"github.com/sellerdesk/sellerdesk-backend/pkg/logger"
	"github.com/sellerdesk/sellerdesk-backend/pkg/metrics"
	"github.com/sellerdesk/sellerdesk-backend/pkg/pagination"
)

// Create admits a new order from the storefront checkout.
func Create(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := internalorders.CreateInput{
			Customer: internalorders.Customer{
				Name:     req.Customer.Name,
				Phone:    req.Customer.Phone,
				Email:    req.Customer.Email,
				Address:  req.Customer.Address,
				Landmark: req.Customer.Landmark,
			},
		}
		for _, item := range req.Items {
			input.Items = append(input.Items, internalorders.CreateItemInput{
				ProductID: item.ProductID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Unit:      item.Unit,
				UnitPrice: item.UnitPrice,
			})
		}

		order, err := store.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// Transition applies a lifecycle command to an order.
func Transition(store *internalorders.Store, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req transitionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid target status"))
			return
		}

		tctx := internalorders.TransitionContext{Reason: req.Reason}
		if req.Assignment != nil {
			tctx.Assignment = &internalorders.DeliveryAssignment{
				DeliveryBoyID:   req.Assignment.DeliveryBoyID,
				DeliveryBoyName: req.Assignment.DeliveryBoyName,
				EstimatedAt:     req.Assignment.EstimatedAt,
			}
		}

		ctx := logg.WithAction(r.Context(), string(status))
		order, err := store.Transition(ctx, orderID, status, tctx)
		if err != nil {
			countRejection(orderMetrics, err)
			responses.WriteError(ctx, logg, w, mapDomainError(err))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// Cancel rejects or aborts an order with a reason.
func Cancel(store *internalorders.Store, orderMetrics *metrics.OrderMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req cancelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := store.Cancel(r.Context(), orderID, req.Reason)
		if err != nil {
			countRejection(orderMetrics, err)
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// PaymentStatus records a payment lifecycle change.
func PaymentStatus(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req paymentStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
			return
		}

		order, err := store.RecordPaymentStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// List returns a page of orders, optionally filtered by a comma-separated
// status set.
func List(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := validators.ParseStatusesQuery(r, "status")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := pagination.Params{Cursor: r.URL.Query().Get("cursor")}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "limit must be an integer"))
				return
			}
			params.Limit = limit
		}

		page, err := store.ListPage(params, statuses...)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// Detail returns one order.
func Detail(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := store.Get(orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// Actions returns the commands the dashboard may offer for an order in its
// current status.
func Actions(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := store.Get(orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, mapDomainError(err))
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"status":  order.Status,
			"actions": internalorders.AvailableActions(order.Status),
		})
	}
}

// Pending returns orders not yet handed to delivery and not terminal.
func Pending(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.PendingOrders())
	}
}

// ActiveDeliveries returns orders currently out with a delivery partner.
func ActiveDeliveries(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.ActiveDeliveries())
	}
}

// Today returns orders created on the reference calendar day.
func Today(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference, err := validators.ParseDateQuery(r, "date", time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.TodayOrders(reference))
	}
}

// Stats returns the dashboard aggregate.
func Stats(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, store.Stats())
	}
}

// Revenue returns realized revenue: delivered orders whose payment was
// received.
func Revenue(store *internalorders.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{"total_revenue": store.TotalRevenue()})
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return orderID, nil
}

func countRejection(orderMetrics *metrics.OrderMetrics, err error) {
	var invalid *internalorders.InvalidTransitionError
	if errors.As(err, &invalid) {
		orderMetrics.IncRejected("invalid_transition")
		return
	}
	var concurrent *internalorders.ConcurrentModificationError
	if errors.As(err, &concurrent) {
		orderMetrics.IncRejected("concurrent_modification")
		return
	}
	var missing *internalorders.MissingAssignmentError
	if errors.As(err, &missing) {
		orderMetrics.IncRejected("missing_assignment")
	}
}

func mapDomainError(err error) error {
	var notFound *internalorders.NotFoundError
	if errors.As(err, &notFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
	}

	var invalid *internalorders.InvalidTransitionError
	if errors.As(err, &invalid) {
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err,
			fmt.Sprintf("cannot move order from %s to %s", invalid.From, invalid.To)).
			WithDetails(map[string]any{"from": invalid.From, "to": invalid.To})
	}

	var missing *internalorders.MissingAssignmentError
	if errors.As(err, &missing) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "assigning delivery requires a delivery assignment payload").
			WithDetails(map[string]any{"field": "assignment"})
	}

	var concurrent *internalorders.ConcurrentModificationError
	if errors.As(err, &concurrent) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order is being updated, retry shortly")
	}

	var validation *internalorders.ValidationError
	if errors.As(err, &validation) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, validation.Reason)
	}

	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order operation failed")
}
