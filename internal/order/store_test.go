package order

import (
	"fmt"
	"testing"

	"trade-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func testDraft() model.OrderDraft {
	return model.OrderDraft{
		CustomerID: "C001",
		CustomerInfo: model.CustomerInfo{
			Name:    "Dana West",
			Email:   "dana@westaudio.example",
			Phone:   "555-0142",
			Company: "West Audio Installs",
		},
		Items: []model.CartLine{
			{
				ProductID:          "P001",
				Name:               "6.5\" Component Speaker Set",
				SKU:                "SP-6.5",
				Category:           "speakers",
				UnitRetailPrice:    249.99,
				UnitWholesalePrice: 179.99,
				Quantity:           10,
				MinOrderQty:        5,
				MaxOrderQty:        intPtr(50),
				AvailableStock:     100,
			},
		},
		Subtotal:      1799.90,
		Tax:           143.99,
		Shipping:      75,
		Total:         2018.89,
		PaymentMethod: "credit_card",
		ShippingAddress: model.Address{
			Street: "14 Harbor Rd", City: "Portsmouth", State: "NH", Zip: "03801",
		},
		BillingAddress: model.Address{
			Street: "14 Harbor Rd", City: "Portsmouth", State: "NH", Zip: "03801",
		},
	}
}

func TestCreate(t *testing.T) {
	store := NewStore(zerolog.Nop())

	o, err := store.Create(testDraft())
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.NotEqual(t, uuid.Nil, o.ID)
	assert.Equal(t, "ORD-1001", o.OrderNumber)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.Equal(t, model.PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)
	assert.InDelta(t, o.Subtotal+o.Tax+o.Shipping, o.Total, 1e-9)
	require.Len(t, o.Items, 1)
	assert.Equal(t, 10, o.Items[0].Quantity)
}

func TestCreate_EmptyItemsRejected(t *testing.T) {
	store := NewStore(zerolog.Nop())

	draft := testDraft()
	draft.Items = nil

	o, err := store.Create(draft)
	assert.Nil(t, o)
	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeEmptyOrder, domainErr.Code)
	assert.Empty(t, store.All())
}

func TestCreate_SequentialOrderNumbers(t *testing.T) {
	store := NewStore(zerolog.Nop())

	var numbers []string
	for i := 0; i < 5; i++ {
		o, err := store.Create(testDraft())
		require.NoError(t, err)
		numbers = append(numbers, o.OrderNumber)
	}

	seen := make(map[string]bool)
	for i, n := range numbers {
		assert.Equal(t, fmt.Sprintf("ORD-%d", 1001+i), n)
		assert.False(t, seen[n], "order numbers must be unique")
		seen[n] = true
	}
	assert.IsIncreasing(t, numbers)
}

func TestCreate_SnapshotImmutable(t *testing.T) {
	store := NewStore(zerolog.Nop())

	draft := testDraft()
	o, err := store.Create(draft)
	require.NoError(t, err)

	// Mutating the draft's lines after creation must not reach the order
	draft.Items[0].Quantity = 1
	draft.Items[0].UnitWholesalePrice = 0.01

	stored := store.ByID(o.ID)
	require.NotNil(t, stored)
	assert.Equal(t, 10, stored.Items[0].Quantity)
	assert.InDelta(t, 179.99, stored.Items[0].UnitWholesalePrice, 1e-9)

	// Mutating a returned copy must not reach the store either
	stored.Items[0].Quantity = 999
	assert.Equal(t, 10, store.ByID(o.ID).Items[0].Quantity)
}

func TestUpdateStatus_ForwardPath(t *testing.T) {
	store := NewStore(zerolog.Nop())
	o, err := store.Create(testDraft())
	require.NoError(t, err)

	path := []model.OrderStatus{
		model.OrderStatusConfirmed,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
	}
	for _, status := range path {
		require.NoError(t, store.UpdateStatus(o.ID, status))
		assert.Equal(t, status, store.ByID(o.ID).Status)
	}
}

func TestUpdateStatus_IllegalJumpRejected(t *testing.T) {
	store := NewStore(zerolog.Nop())
	o, err := store.Create(testDraft())
	require.NoError(t, err)

	err = store.UpdateStatus(o.ID, model.OrderStatusShipped)
	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInvalidTransition, domainErr.Code)
	assert.Equal(t, model.OrderStatusPending, store.ByID(o.ID).Status)
}

func TestUpdateStatus_CancelledFromAnyNonTerminal(t *testing.T) {
	for _, from := range []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
	} {
		t.Run(string(from), func(t *testing.T) {
			store := NewStore(zerolog.Nop())
			o, err := store.Create(testDraft())
			require.NoError(t, err)
			require.NoError(t, store.ForceStatus(o.ID, from))

			require.NoError(t, store.UpdateStatus(o.ID, model.OrderStatusCancelled))
			assert.Equal(t, model.OrderStatusCancelled, store.ByID(o.ID).Status)
		})
	}
}

func TestUpdateStatus_TerminalStatesFrozen(t *testing.T) {
	for _, terminal := range []model.OrderStatus{model.OrderStatusDelivered, model.OrderStatusCancelled} {
		t.Run(string(terminal), func(t *testing.T) {
			store := NewStore(zerolog.Nop())
			o, err := store.Create(testDraft())
			require.NoError(t, err)
			require.NoError(t, store.ForceStatus(o.ID, terminal))

			for _, next := range []model.OrderStatus{
				model.OrderStatusPending, model.OrderStatusConfirmed,
				model.OrderStatusShipped, model.OrderStatusCancelled,
			} {
				err := store.UpdateStatus(o.ID, next)
				require.Error(t, err)
			}
			assert.Equal(t, terminal, store.ByID(o.ID).Status)
		})
	}
}

func TestUpdateStatus_ShippedStampsTracking(t *testing.T) {
	store := NewStore(zerolog.Nop())
	o, err := store.Create(testDraft())
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(o.ID, model.OrderStatusConfirmed))
	require.NoError(t, store.UpdateStatus(o.ID, model.OrderStatusProcessing))
	require.NoError(t, store.UpdateStatus(o.ID, model.OrderStatusShipped))

	shipped := store.ByID(o.ID)
	assert.NotEmpty(t, shipped.TrackingNumber)
	require.NotNil(t, shipped.EstimatedDelivery)
	assert.True(t, shipped.EstimatedDelivery.After(shipped.CreatedAt))
}

func TestUpdateStatus_UnknownOrder(t *testing.T) {
	store := NewStore(zerolog.Nop())
	assert.ErrorIs(t, store.UpdateStatus(uuid.New(), model.OrderStatusConfirmed), model.ErrOrderNotFound)
}

func TestForceStatus_BypassesTable(t *testing.T) {
	store := NewStore(zerolog.Nop())
	o, err := store.Create(testDraft())
	require.NoError(t, err)

	require.NoError(t, store.ForceStatus(o.ID, model.OrderStatusDelivered))
	assert.Equal(t, model.OrderStatusDelivered, store.ByID(o.ID).Status)
}

func TestUpdatePaymentStatus(t *testing.T) {
	store := NewStore(zerolog.Nop())
	o, err := store.Create(testDraft())
	require.NoError(t, err)

	require.NoError(t, store.UpdatePaymentStatus(o.ID, model.PaymentStatusPaid))
	require.NoError(t, store.UpdatePaymentStatus(o.ID, model.PaymentStatusRefunded))

	err = store.UpdatePaymentStatus(o.ID, model.PaymentStatusPaid)
	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInvalidTransition, domainErr.Code)
}

func TestUpdatePaymentStatus_OrthogonalToStatus(t *testing.T) {
	store := NewStore(zerolog.Nop())
	o, err := store.Create(testDraft())
	require.NoError(t, err)

	require.NoError(t, store.UpdatePaymentStatus(o.ID, model.PaymentStatusPaid))
	require.NoError(t, store.UpdateStatus(o.ID, model.OrderStatusCancelled))

	// Cancelled while still paid, pending a refund
	got := store.ByID(o.ID)
	assert.Equal(t, model.OrderStatusCancelled, got.Status)
	assert.Equal(t, model.PaymentStatusPaid, got.PaymentStatus)

	require.NoError(t, store.UpdatePaymentStatus(o.ID, model.PaymentStatusRefunded))
	assert.Equal(t, model.PaymentStatusRefunded, store.ByID(o.ID).PaymentStatus)
}

func TestQueries(t *testing.T) {
	store := NewStore(zerolog.Nop())

	first, err := store.Create(testDraft())
	require.NoError(t, err)

	other := testDraft()
	other.CustomerID = "C002"
	second, err := store.Create(other)
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(second.ID, model.OrderStatusConfirmed))

	assert.Nil(t, store.ByID(uuid.New()))
	assert.Len(t, store.ByCustomer("C001"), 1)
	assert.Empty(t, store.ByCustomer("C999"))
	assert.Len(t, store.ByStatus(model.OrderStatusPending), 1)
	assert.Equal(t, first.ID, store.ByStatus(model.OrderStatusPending)[0].ID)
	assert.Len(t, store.All(), 2)
}
