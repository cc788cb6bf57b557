package models

import "time"

// statusAliases rewrites the human-facing status strings the web clients
// send into stored states. Cancellation collapses into Rejected; every
// other value, recognized or not, passes through unchanged.
var statusAliases = map[string]OrderState{
	"Cancelled": StateRejected,
	"Canceled":  StateRejected,
}

// Rejection reasons distinguish who ended the order
const (
	ReasonCancelledByBuyer = "Cancelled by buyer"
	ReasonRejectedBySeller = "Rejected by seller"
)

// NormalizeStatus translates an incoming status string into an order state.
// The second return reports whether the input was a cancellation alias.
func NormalizeStatus(status string) (OrderState, bool) {
	if mapped, ok := statusAliases[status]; ok {
		return mapped, true
	}
	return OrderState(status), false
}

// ApplyTransition moves the order to the target state and records the
// stage timestamp that state carries. No ordering is enforced: any state
// is reachable from any other, matching the existing endpoints.
func (o *Order) ApplyTransition(target OrderState, cancelled bool, now time.Time) {
	o.State = target

	switch target {
	case StateProcessing:
		o.ProcessingAt = &now
	case StateShipped:
		o.ShippedAt = &now
	case StateDelivered:
		o.DeliveredAt = &now
	case StateRejected:
		o.RejectedAt = &now
		if cancelled {
			o.RejectionReason = ReasonCancelledByBuyer
		} else {
			o.RejectionReason = ReasonRejectedBySeller
		}
	}
}
