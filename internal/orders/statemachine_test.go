package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerdesk/sellerdesk-backend/pkg/enums"
)

func TestValidTransitionsMatchLifecycleTable(t *testing.T) {
	expected := map[enums.OrderStatus][]enums.OrderStatus{
		enums.OrderStatusNew:            {enums.OrderStatusAccepted, enums.OrderStatusDeclined, enums.OrderStatusCancelled},
		enums.OrderStatusAccepted:       {enums.OrderStatusPreparing, enums.OrderStatusCancelled},
		enums.OrderStatusPreparing:      {enums.OrderStatusReady, enums.OrderStatusCancelled},
		enums.OrderStatusReady:          {enums.OrderStatusAssigned, enums.OrderStatusCancelled},
		enums.OrderStatusAssigned:       {enums.OrderStatusOutForDelivery, enums.OrderStatusCancelled},
		enums.OrderStatusOutForDelivery: {enums.OrderStatusDelivered},
		enums.OrderStatusDelivered:      {},
		enums.OrderStatusCancelled:      {},
		enums.OrderStatusDeclined:       {},
	}

	for from, want := range expected {
		assert.ElementsMatch(t, want, ValidTransitions(from), "transitions from %s", from)
	}
}

func TestIsValidTransitionClosedOverStatusPairs(t *testing.T) {
	for _, from := range enums.OrderStatuses() {
		allowed := map[enums.OrderStatus]bool{}
		for _, to := range ValidTransitions(from) {
			allowed[to] = true
		}
		for _, to := range enums.OrderStatuses() {
			assert.Equal(t, allowed[to], IsValidTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	terminals := []enums.OrderStatus{
		enums.OrderStatusDelivered,
		enums.OrderStatusCancelled,
		enums.OrderStatusDeclined,
	}
	for _, status := range terminals {
		assert.True(t, IsTerminal(status), "%s should be terminal", status)
		assert.Empty(t, ValidTransitions(status))
		assert.Empty(t, AvailableActions(status))
	}
	for _, status := range enums.OrderStatuses() {
		if status == enums.OrderStatusDelivered || status == enums.OrderStatusCancelled || status == enums.OrderStatusDeclined {
			continue
		}
		assert.False(t, IsTerminal(status), "%s should not be terminal", status)
	}
}

func TestAvailableActionsDerivedFromTable(t *testing.T) {
	assert.ElementsMatch(t,
		[]enums.OrderAction{enums.OrderActionAccept, enums.OrderActionDecline, enums.OrderActionCancel},
		AvailableActions(enums.OrderStatusNew),
	)
	assert.ElementsMatch(t,
		[]enums.OrderAction{enums.OrderActionStartDelivery, enums.OrderActionCancel},
		AvailableActions(enums.OrderStatusAssigned),
	)
	assert.ElementsMatch(t,
		[]enums.OrderAction{enums.OrderActionMarkDelivered},
		AvailableActions(enums.OrderStatusOutForDelivery),
	)

	// One action per legal exit, always.
	for _, status := range enums.OrderStatuses() {
		assert.Len(t, AvailableActions(status), len(ValidTransitions(status)), "status %s", status)
	}
}

func TestEveryRuleCarriesActorAndDescription(t *testing.T) {
	for _, rule := range transitionTable {
		assert.True(t, rule.actor.IsValid(), "%s -> %s actor", rule.from, rule.to)
		assert.NotEmpty(t, rule.description, "%s -> %s description", rule.from, rule.to)
		assert.True(t, rule.action.IsValid(), "%s -> %s action", rule.from, rule.to)
	}
}

func TestPathFromNewReachesEveryStatus(t *testing.T) {
	for _, status := range enums.OrderStatuses() {
		path, ok := pathFromNew(status)
		require.True(t, ok, "status %s must be reachable from new", status)
		if status == enums.OrderStatusNew {
			assert.Empty(t, path)
			continue
		}
		require.NotEmpty(t, path)
		assert.Equal(t, status, path[len(path)-1])

		previous := enums.OrderStatusNew
		for _, step := range path {
			assert.True(t, IsValidTransition(previous, step), "%s -> %s", previous, step)
			previous = step
		}
	}
}
