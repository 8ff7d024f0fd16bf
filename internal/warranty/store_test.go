package warranty

import (
	"testing"

	"trade-kart/internal/model"
	"trade-kart/internal/order"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWithOrder(t *testing.T) (*Store, *model.Order) {
	t.Helper()

	orders := order.NewStore(zerolog.Nop())
	o, err := orders.Create(model.OrderDraft{
		CustomerID: "C001",
		CustomerInfo: model.CustomerInfo{
			Name:  "Dana West",
			Email: "dana@westaudio.example",
			Phone: "555-0142",
		},
		Items: []model.CartLine{
			{ProductID: "P001", Name: "6.5\" Component Speaker Set", SKU: "SP-6.5", Quantity: 10, UnitWholesalePrice: 179.99},
		},
		Subtotal:      1799.90,
		Tax:           143.99,
		Total:         1943.89,
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)

	return NewStore(orders, zerolog.Nop()), o
}

func TestRegister(t *testing.T) {
	store, o := newStoreWithOrder(t)

	record, err := store.Register("P001", "SN-0001", o.ID)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "SN-0001", record.SerialNumber)
	assert.Equal(t, "6.5\" Component Speaker Set", record.ProductName)
	assert.Equal(t, o.ID, record.OrderID)
	assert.Equal(t, "C001", record.CustomerID)
	assert.Equal(t, o.CreatedAt, record.PurchaseDate)
	assert.Equal(t, model.WarrantyStatusActive, record.Status)
	assert.True(t, record.WarrantyEnd.After(record.WarrantyStart))
	assert.NotEmpty(t, record.Coverage)
	assert.Empty(t, record.Claims)
}

func TestRegister_Failures(t *testing.T) {
	store, o := newStoreWithOrder(t)

	tests := []struct {
		name         string
		productID    string
		serialNumber string
		orderID      uuid.UUID
		wantCode     string
	}{
		{
			name:         "Unknown order",
			productID:    "P001",
			serialNumber: "SN-0002",
			orderID:      uuid.New(),
			wantCode:     model.ErrCodeOrderNotFound,
		},
		{
			name:         "Product not on order",
			productID:    "P999",
			serialNumber: "SN-0003",
			orderID:      o.ID,
			wantCode:     model.ErrCodeOrderItemNotFound,
		},
		{
			name:         "Missing serial number",
			productID:    "P001",
			serialNumber: "",
			orderID:      o.ID,
			wantCode:     model.ErrCodeMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, err := store.Register(tt.productID, tt.serialNumber, tt.orderID)
			assert.Nil(t, record)
			require.Error(t, err)

			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
		})
	}
}

func TestRegister_DuplicateSerial(t *testing.T) {
	store, o := newStoreWithOrder(t)

	_, err := store.Register("P001", "SN-0001", o.ID)
	require.NoError(t, err)

	record, err := store.Register("P001", "SN-0001", o.ID)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, model.ErrDuplicateSerial)
}

func TestBySerial(t *testing.T) {
	store, o := newStoreWithOrder(t)

	_, err := store.Register("P001", "SN-0001", o.ID)
	require.NoError(t, err)

	record := store.BySerial("SN-0001")
	require.NotNil(t, record)
	assert.Equal(t, "P001", record.ProductID)

	// No warranty on file is a valid outcome, not an error
	assert.Nil(t, store.BySerial("SN-UNKNOWN"))
}

func TestByCustomer(t *testing.T) {
	store, o := newStoreWithOrder(t)

	_, err := store.Register("P001", "SN-0001", o.ID)
	require.NoError(t, err)
	_, err = store.Register("P001", "SN-0002", o.ID)
	require.NoError(t, err)

	assert.Len(t, store.ByCustomer("C001"), 2)
	assert.Empty(t, store.ByCustomer("C999"))
}

func TestSetStatus(t *testing.T) {
	store, o := newStoreWithOrder(t)

	record, err := store.Register("P001", "SN-0001", o.ID)
	require.NoError(t, err)

	require.NoError(t, store.SetStatus(record.ID, model.WarrantyStatusVoided))
	assert.Equal(t, model.WarrantyStatusVoided, store.ByID(record.ID).Status)

	assert.ErrorIs(t, store.SetStatus(uuid.New(), model.WarrantyStatusExpired), model.ErrWarrantyNotFound)
}

func TestCreateClaim(t *testing.T) {
	store, o := newStoreWithOrder(t)

	record, err := store.Register("P001", "SN-0001", o.ID)
	require.NoError(t, err)

	claim, err := store.CreateClaim(record.ID, "blown tweeter", "No output above 5kHz on the left channel")
	require.NoError(t, err)
	require.NotNil(t, claim)
	assert.Equal(t, model.ClaimStatusPending, claim.Status)
	assert.Equal(t, record.ID, claim.WarrantyID)

	stored := store.ByID(record.ID)
	require.Len(t, stored.Claims, 1)

	_, err = store.CreateClaim(uuid.New(), "anything", "")
	assert.ErrorIs(t, err, model.ErrWarrantyNotFound)
}

func TestUpdateClaimStatus_StateMachine(t *testing.T) {
	store, o := newStoreWithOrder(t)
	record, err := store.Register("P001", "SN-0001", o.ID)
	require.NoError(t, err)
	claim, err := store.CreateClaim(record.ID, "blown tweeter", "")
	require.NoError(t, err)

	// pending -> resolved is not allowed
	err = store.UpdateClaimStatus(claim.ID, model.ClaimStatusResolved, "")
	require.Error(t, err)

	require.NoError(t, store.UpdateClaimStatus(claim.ID, model.ClaimStatusApproved, ""))
	require.NoError(t, store.UpdateClaimStatus(claim.ID, model.ClaimStatusResolved, "tweeter replaced under warranty"))

	stored := store.ByID(record.ID)
	require.Len(t, stored.Claims, 1)
	assert.Equal(t, model.ClaimStatusResolved, stored.Claims[0].Status)
	assert.Equal(t, "tweeter replaced under warranty", stored.Claims[0].Resolution)
	require.NotNil(t, stored.Claims[0].ResolvedDate)

	// resolved is terminal
	err = store.UpdateClaimStatus(claim.ID, model.ClaimStatusApproved, "")
	require.Error(t, err)
}

func TestUpdateClaimStatus_RejectedIsTerminal(t *testing.T) {
	store, o := newStoreWithOrder(t)
	record, err := store.Register("P001", "SN-0001", o.ID)
	require.NoError(t, err)
	claim, err := store.CreateClaim(record.ID, "cracked housing", "")
	require.NoError(t, err)

	require.NoError(t, store.UpdateClaimStatus(claim.ID, model.ClaimStatusRejected, ""))
	assert.Error(t, store.UpdateClaimStatus(claim.ID, model.ClaimStatusResolved, ""))

	assert.ErrorIs(t, store.UpdateClaimStatus(uuid.New(), model.ClaimStatusApproved, ""), model.ErrClaimNotFound)
}
