// Package warranty derives coverage records from delivered order lines and
// tracks the claims filed against them.
package warranty

import (
	"fmt"
	"sync"
	"time"

	"trade-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CoveragePeriod is the fixed coverage window granted at registration.
const CoveragePeriod = 24 * 30 * 24 * time.Hour // 24 months

var standardCoverage = []string{
	"manufacturing defects",
	"component failure",
	"parts and labour",
}

// allowedClaimTransitions is the claim state machine: pending claims are
// approved or rejected, approved claims are resolved.
var allowedClaimTransitions = map[model.ClaimStatus][]model.ClaimStatus{
	model.ClaimStatusPending:  {model.ClaimStatusApproved, model.ClaimStatusRejected},
	model.ClaimStatusApproved: {model.ClaimStatusResolved},
	model.ClaimStatusRejected: {},
	model.ClaimStatusResolved: {},
}

// OrderLookup is the slice of the order store the warranty store needs:
// registration must reference an existing order and one of its lines.
type OrderLookup interface {
	ByID(orderID uuid.UUID) *model.Order
}

// Store owns warranty records, keyed by unique serial number. Records are
// only ever created, claimed against, and status-flipped.
type Store struct {
	mu       sync.Mutex
	records  []model.WarrantyRecord
	bySerial map[string]int
	byID     map[uuid.UUID]int
	orders   OrderLookup
	logger   zerolog.Logger
}

// NewStore creates an empty warranty store backed by the given order lookup.
func NewStore(orders OrderLookup, logger zerolog.Logger) *Store {
	return &Store{
		bySerial: make(map[string]int),
		byID:     make(map[uuid.UUID]int),
		orders:   orders,
		logger:   logger.With().Str("store", "warranty").Logger(),
	}
}

// Register creates a warranty record for one serialised unit of a purchased
// product. The order and a matching order line must exist and the serial
// number must be unused; each failure is reported explicitly so callers can
// tell "registered" from "ignored".
func (s *Store) Register(productID, serialNumber string, orderID uuid.UUID) (*model.WarrantyRecord, error) {
	if serialNumber == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Serial number is required")
	}

	order := s.orders.ByID(orderID)
	if order == nil {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("serial_number", serialNumber).
			Msg("warranty registration against unknown order")
		return nil, model.ErrOrderNotFound
	}

	var line *model.OrderLine
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			line = &order.Items[i]
			break
		}
	}
	if line == nil {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("product_id", productID).
			Msg("warranty registration against product not on order")
		return nil, model.ErrOrderItemNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bySerial[serialNumber]; exists {
		return nil, model.ErrDuplicateSerial
	}

	start := time.Now()
	record := model.WarrantyRecord{
		ID:            uuid.New(),
		ProductID:     productID,
		ProductName:   line.Name,
		SerialNumber:  serialNumber,
		OrderID:       orderID,
		CustomerID:    order.CustomerID,
		CustomerInfo:  order.CustomerInfo,
		PurchaseDate:  order.CreatedAt,
		WarrantyStart: start,
		WarrantyEnd:   start.Add(CoveragePeriod),
		WarrantyType:  "standard",
		Coverage:      append([]string(nil), standardCoverage...),
		Status:        model.WarrantyStatusActive,
	}

	s.bySerial[serialNumber] = len(s.records)
	s.byID[record.ID] = len(s.records)
	s.records = append(s.records, record)

	s.logger.Info().
		Str("warranty_id", record.ID.String()).
		Str("serial_number", serialNumber).
		Str("order_id", orderID.String()).
		Msg("warranty registered")

	return copyRecord(&record), nil
}

// BySerial returns a copy of the record for a serial number, or nil when no
// warranty is on file. Absence is an expected outcome, not an error.
func (s *Store) BySerial(serialNumber string) *model.WarrantyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.bySerial[serialNumber]
	if !ok {
		return nil
	}
	return copyRecord(&s.records[idx])
}

// ByID returns a copy of the record, or nil when absent.
func (s *Store) ByID(warrantyID uuid.UUID) *model.WarrantyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[warrantyID]
	if !ok {
		return nil
	}
	return copyRecord(&s.records[idx])
}

// ByCustomer returns copies of all records for a customer, in registration
// order.
func (s *Store) ByCustomer(customerID string) []model.WarrantyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.WarrantyRecord
	for i := range s.records {
		if s.records[i].CustomerID == customerID {
			out = append(out, *copyRecord(&s.records[i]))
		}
	}
	return out
}

// SetStatus flips a record's coverage status (active, expired, voided).
func (s *Store) SetStatus(warrantyID uuid.UUID, status model.WarrantyStatus) error {
	switch status {
	case model.WarrantyStatusActive, model.WarrantyStatusExpired, model.WarrantyStatusVoided:
	default:
		return model.NewDomainError(model.ErrCodeInvalidStatus, fmt.Sprintf("Unknown warranty status %q", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[warrantyID]
	if !ok {
		return model.ErrWarrantyNotFound
	}
	s.records[idx].Status = status

	s.logger.Info().
		Str("warranty_id", warrantyID.String()).
		Str("status", string(status)).
		Msg("warranty status updated")

	return nil
}

// CreateClaim appends a pending claim to a record's claim list.
func (s *Store) CreateClaim(warrantyID uuid.UUID, issue, description string) (*model.WarrantyClaim, error) {
	if issue == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Claim issue is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[warrantyID]
	if !ok {
		return nil, model.ErrWarrantyNotFound
	}

	claim := model.WarrantyClaim{
		ID:          uuid.New(),
		WarrantyID:  warrantyID,
		ClaimDate:   time.Now(),
		Issue:       issue,
		Description: description,
		Status:      model.ClaimStatusPending,
	}
	s.records[idx].Claims = append(s.records[idx].Claims, claim)

	s.logger.Info().
		Str("warranty_id", warrantyID.String()).
		Str("claim_id", claim.ID.String()).
		Str("issue", issue).
		Msg("warranty claim created")

	return &claim, nil
}

// UpdateClaimStatus moves a claim along its state machine. Resolving a claim
// records the resolution text and timestamp.
func (s *Store) UpdateClaimStatus(claimID uuid.UUID, status model.ClaimStatus, resolution string) error {
	switch status {
	case model.ClaimStatusPending, model.ClaimStatusApproved, model.ClaimStatusRejected, model.ClaimStatusResolved:
	default:
		return model.NewDomainError(model.ErrCodeInvalidStatus, fmt.Sprintf("Unknown claim status %q", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for r := range s.records {
		for c := range s.records[r].Claims {
			claim := &s.records[r].Claims[c]
			if claim.ID != claimID {
				continue
			}

			if !transitionAllowed(allowedClaimTransitions[claim.Status], status) {
				return model.NewDomainError(model.ErrCodeInvalidTransition,
					fmt.Sprintf("Cannot move claim from %s to %s", claim.Status, status))
			}

			claim.Status = status
			if status == model.ClaimStatusResolved {
				claim.Resolution = resolution
				now := time.Now()
				claim.ResolvedDate = &now
			}

			s.logger.Info().
				Str("claim_id", claimID.String()).
				Str("status", string(status)).
				Msg("warranty claim status updated")
			return nil
		}
	}

	return model.ErrClaimNotFound
}

func transitionAllowed(allowed []model.ClaimStatus, target model.ClaimStatus) bool {
	for _, a := range allowed {
		if a == target {
			return true
		}
	}
	return false
}

// copyRecord deep-copies a record so callers cannot reach the store's
// internal state.
func copyRecord(r *model.WarrantyRecord) *model.WarrantyRecord {
	out := *r
	out.Coverage = append([]string(nil), r.Coverage...)
	out.Claims = make([]model.WarrantyClaim, len(r.Claims))
	copy(out.Claims, r.Claims)
	return &out
}
