// Package lifecycle owns the order status state machine: which transitions are
// legal, which status an admin should advance to next, and how far along an
// order is. It performs no I/O; persistence layers must consult CanTransition
// before every status write.
package lifecycle

import (
	"strings"

	"github.com/thitipat-dev/petshop-backend/pkg/enums"
)

// transitions is the single source of truth for legality. Directed and not
// symmetric: OUT_FOR_DELIVERY may regress to SHIPPED after a failed delivery
// attempt, but nothing else moves backwards.
var transitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:        {enums.OrderStatusConfirmed, enums.OrderStatusCancelled},
	enums.OrderStatusConfirmed:      {enums.OrderStatusPaymentPending, enums.OrderStatusPaid, enums.OrderStatusPreparing, enums.OrderStatusCancelled},
	enums.OrderStatusPaymentPending: {enums.OrderStatusPaid, enums.OrderStatusCancelled},
	enums.OrderStatusPaid:           {enums.OrderStatusPreparing, enums.OrderStatusCancelled},
	enums.OrderStatusPreparing:      {enums.OrderStatusReadyForPickup, enums.OrderStatusShipped, enums.OrderStatusCancelled},
	enums.OrderStatusReadyForPickup: {enums.OrderStatusCompleted, enums.OrderStatusCancelled},
	enums.OrderStatusShipped:        {enums.OrderStatusOutForDelivery, enums.OrderStatusDelivered},
	enums.OrderStatusOutForDelivery: {enums.OrderStatusDelivered, enums.OrderStatusShipped},
	enums.OrderStatusDelivered:      {enums.OrderStatusCompleted},
	enums.OrderStatusCancelled:      {enums.OrderStatusRefunded},
	enums.OrderStatusCompleted:      {},
	enums.OrderStatusRefunded:       {},
}

// priorities give the linear progress scale for non-cancelled statuses.
var priorities = map[enums.OrderStatus]int{
	enums.OrderStatusPending:        1,
	enums.OrderStatusConfirmed:      2,
	enums.OrderStatusPaymentPending: 3,
	enums.OrderStatusPaid:           4,
	enums.OrderStatusPreparing:      5,
	enums.OrderStatusReadyForPickup: 6,
	enums.OrderStatusShipped:        6,
	enums.OrderStatusOutForDelivery: 7,
	enums.OrderStatusDelivered:      8,
	enums.OrderStatusCompleted:      9,
}

const maxPriority = 9

// OrderMeta carries the order fields the recommendation logic branches on.
type OrderMeta struct {
	RequiresDeposit bool
	ShippingMethod  string
	PaymentType     enums.PaymentType
}

// CanTransition reports whether moving from current to target is legal.
func CanTransition(current, target enums.OrderStatus) bool {
	for _, allowed := range transitions[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AvailableTransitions returns the legal target statuses for the current status.
func AvailableTransitions(current enums.OrderStatus) []enums.OrderStatus {
	allowed := transitions[current]
	out := make([]enums.OrderStatus, len(allowed))
	copy(out, allowed)
	return out
}

// RecommendNext returns the single status the admin "advance" action should
// move to, or false when there is nothing to recommend (terminal or cancelled
// statuses). Advisory only; callers still go through CanTransition.
func RecommendNext(current enums.OrderStatus, meta OrderMeta) (enums.OrderStatus, bool) {
	switch current {
	case enums.OrderStatusPending:
		return enums.OrderStatusConfirmed, true
	case enums.OrderStatusConfirmed:
		if meta.RequiresDeposit && meta.PaymentType == enums.PaymentTypeDeposit {
			return enums.OrderStatusPaymentPending, true
		}
		return enums.OrderStatusPaid, true
	case enums.OrderStatusPaymentPending:
		return enums.OrderStatusPaid, true
	case enums.OrderStatusPaid:
		return enums.OrderStatusPreparing, true
	case enums.OrderStatusPreparing:
		if IsSelfPickup(meta.ShippingMethod) {
			return enums.OrderStatusReadyForPickup, true
		}
		return enums.OrderStatusShipped, true
	case enums.OrderStatusReadyForPickup:
		return enums.OrderStatusCompleted, true
	case enums.OrderStatusShipped:
		return enums.OrderStatusOutForDelivery, true
	case enums.OrderStatusOutForDelivery:
		return enums.OrderStatusDelivered, true
	case enums.OrderStatusDelivered:
		return enums.OrderStatusCompleted, true
	case enums.OrderStatusCompleted, enums.OrderStatusCancelled, enums.OrderStatusRefunded:
		return "", false
	default:
		return "", false
	}
}

// selfPickupPhrases covers the Thai storefront labels for in-store handover.
var selfPickupPhrases = []string{"pickup", "รับที่ร้าน", "รับด้วยตนเอง", "รับเอง"}

// IsSelfPickup reports whether a free-form shipping method label means the
// order is handed over in store.
func IsSelfPickup(method string) bool {
	normalized := strings.ToLower(strings.TrimSpace(method))
	if normalized == "" {
		return false
	}
	for _, phrase := range selfPickupPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status has no legal outgoing transitions.
func IsTerminal(status enums.OrderStatus) bool {
	return len(transitions[status]) == 0
}

// IsCancelled reports whether the status belongs to the cancelled family.
func IsCancelled(status enums.OrderStatus) bool {
	return status == enums.OrderStatusCancelled || status == enums.OrderStatusRefunded
}

// Progress maps a status onto a 0-100 scale for display. Cancelled-family
// statuses always report 0.
func Progress(status enums.OrderStatus) int {
	if IsCancelled(status) {
		return 0
	}
	priority, ok := priorities[status]
	if !ok {
		return 0
	}
	return (priority - 1) * 100 / (maxPriority - 1)
}
