package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      OrderState
		cancelled bool
	}{
		{"cancelled maps to rejected", "Cancelled", StateRejected, true},
		{"american spelling maps to rejected", "Canceled", StateRejected, true},
		{"known state passes through", "Shipped", StateShipped, false},
		{"accepted passes through", "Accepted", StateAccepted, false},
		{"unknown status passes through unchanged", "On Hold", OrderState("On Hold"), false},
		{"case sensitive", "cancelled", OrderState("cancelled"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cancelled := NormalizeStatus(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.cancelled, cancelled)
		})
	}
}

func TestApplyTransition_CancellationSetsRejection(t *testing.T) {
	now := time.Now()
	order := &Order{State: StatePending}

	target, cancelled := NormalizeStatus("Cancelled")
	order.ApplyTransition(target, cancelled, now)

	assert.Equal(t, StateRejected, order.State)
	require.NotNil(t, order.RejectedAt)
	assert.Equal(t, now, *order.RejectedAt)
	assert.Equal(t, ReasonCancelledByBuyer, order.RejectionReason)
}

func TestApplyTransition_SellerRejection(t *testing.T) {
	now := time.Now()
	order := &Order{State: StatePending}

	order.ApplyTransition(StateRejected, false, now)

	assert.Equal(t, StateRejected, order.State)
	require.NotNil(t, order.RejectedAt)
	assert.Equal(t, ReasonRejectedBySeller, order.RejectionReason)
}

func TestApplyTransition_StageTimestamps(t *testing.T) {
	now := time.Now()

	tests := []struct {
		target OrderState
		check  func(t *testing.T, o *Order)
	}{
		{StateProcessing, func(t *testing.T, o *Order) { require.NotNil(t, o.ProcessingAt) }},
		{StateShipped, func(t *testing.T, o *Order) { require.NotNil(t, o.ShippedAt) }},
		{StateDelivered, func(t *testing.T, o *Order) { require.NotNil(t, o.DeliveredAt) }},
	}

	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			order := &Order{State: StateAccepted}
			order.ApplyTransition(tt.target, false, now)
			assert.Equal(t, tt.target, order.State)
			tt.check(t, order)
		})
	}
}

func TestApplyTransition_NoOrderingEnforced(t *testing.T) {
	now := time.Now()
	order := &Order{State: StateDelivered}

	// a delivered order can still be moved back
	order.ApplyTransition(StateProcessing, false, now)

	assert.Equal(t, StateProcessing, order.State)
	require.NotNil(t, order.ProcessingAt)
}

func TestApplyTransition_IntermediateStateLeavesNoTimestamp(t *testing.T) {
	order := &Order{State: StateAccepted}

	order.ApplyTransition(StateQualityCheck, false, time.Now())

	assert.Equal(t, StateQualityCheck, order.State)
	assert.Nil(t, order.ProcessingAt)
	assert.Nil(t, order.ShippedAt)
	assert.Nil(t, order.DeliveredAt)
	assert.Nil(t, order.RejectedAt)
}
