package models

import (
	"strings"
	"time"

	"github.com/finsync/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Commitment types. A static commitment has a fixed amount every month, a
// dynamic one is an estimate that can be adjusted at payment time.
const (
	CommitmentTypeStatic  = "static"
	CommitmentTypeDynamic = "dynamic"
)

// Commitment represents a recurring or one-off financial obligation.
type Commitment struct {
	DefaultModel
	User       User      `json:"-"`
	UserID     uuid.UUID // Owner of the commitment. Sharing never transfers ownership.
	Title      string
	Category   string
	Amount     decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Nominal amount. For dynamic commitments this is an estimate.
	Type       string          `gorm:"default:static"`
	Recurring  bool            // Applies every month instead of once
	Shared     bool            // Visible to the accepted members of the group
	GroupID    *uuid.UUID
	Group      *Group `json:"-"`
	Imported   bool   // Bulk-loaded historical record, excluded from default views
	ImportedAt *time.Time
	StartDate  time.Time
}

// CommitmentFilter selects which subsets of commitments are visible.
// The zero value selects nothing.
type CommitmentFilter struct {
	IncludePersonal bool
	IncludeShared   bool
	IncludeImported bool
}

// CommitmentWithStatus is a commitment annotated with its payment state for
// one specific month.
//
// AmountPaid is nil for unpaid commitments. It can differ from the nominal
// amount, e.g. for a dynamic commitment's actual bill.
type CommitmentWithStatus struct {
	Commitment
	IsPaid     bool             `json:"isPaid"`
	AmountPaid *decimal.Decimal `json:"amountPaid"`

	// Payments carries the raw payment rows for unreconciled group listings
	// where no month was requested
	Payments []CommitmentPayment `json:"payments,omitempty"`
}

// Paid returns the amount that was actually paid, falling back to the
// nominal amount when the payment did not record its own.
func (c CommitmentWithStatus) Paid() decimal.Decimal {
	if c.AmountPaid != nil {
		return *c.AmountPaid
	}

	return c.Amount
}

// BeforeSave validates the commitment and trims whitespace from all strings
func (c *Commitment) BeforeSave(_ *gorm.DB) error {
	c.Title = strings.TrimSpace(c.Title)
	c.Category = strings.TrimSpace(c.Category)

	if c.Type == "" {
		c.Type = CommitmentTypeStatic
	}

	if c.Type != CommitmentTypeStatic && c.Type != CommitmentTypeDynamic {
		return ErrCommitmentTypeInvalid
	}

	if c.Amount.IsNegative() {
		return ErrCommitmentAmountNegative
	}

	if c.StartDate.IsZero() {
		c.StartDate = time.Now().In(time.UTC)
	} else {
		c.StartDate = c.StartDate.In(time.UTC)
	}

	return nil
}

func (c *Commitment) BeforeCreate(tx *gorm.DB) error {
	_ = c.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Commitment)
	return c.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the commitment before
// committing an update to the database.
func (c *Commitment) BeforeUpdate(tx *gorm.DB) error {
	toSave := *c
	if dest, ok := tx.Statement.Dest.(Commitment); ok {
		toSave = dest
	}

	if tx.Statement.Changed("UserID", "Shared", "GroupID", "Imported") {
		// Apply the pending changes on top of the current state for the check
		if !tx.Statement.Changed("UserID") {
			toSave.UserID = c.UserID
		}
		if !tx.Statement.Changed("GroupID") {
			toSave.GroupID = c.GroupID
		}
		if !tx.Statement.Changed("Shared") {
			toSave.Shared = c.Shared
		}
		if !tx.Statement.Changed("Imported") {
			toSave.Imported = c.Imported
		}

		return c.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources and the sharing
// invariants: a shared commitment must reference a group its owner is an
// accepted member of, and an imported commitment is always personal-only.
func (c *Commitment) checkIntegrity(tx *gorm.DB, toSave Commitment) error {
	err := tx.First(&User{}, toSave.UserID).Error
	if err != nil {
		return err
	}

	if !toSave.Shared {
		return nil
	}

	if toSave.Imported {
		return ErrCommitmentImportedShared
	}

	if toSave.GroupID == nil {
		return ErrCommitmentGroupNotSet
	}

	var count int64
	err = tx.Model(&GroupMember{}).
		Where(&GroupMember{GroupID: *toSave.GroupID, UserID: toSave.UserID, Status: MemberStatusAccepted}).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return ErrCommitmentNotGroupMember
	}

	return nil
}

// CommitmentsForMonth returns the commitments visible to a user, annotated
// with their payment state for the month.
//
// The result is the union of the subsets enabled by the filter: personal
// commitments owned by the user, commitments shared with groups the user is
// an accepted member of, and the user's imported commitments. A filter that
// enables nothing selects nothing.
func CommitmentsForMonth(db *gorm.DB, userID uuid.UUID, month types.Month, filter CommitmentFilter) ([]CommitmentWithStatus, error) {
	var conditions []*gorm.DB

	if filter.IncludePersonal {
		conditions = append(conditions, personalCondition(db, userID))
	}

	if filter.IncludeShared {
		groupIDs, err := AcceptedGroupIDs(db, userID)
		if err != nil {
			return nil, err
		}

		// No accepted membership contributes nothing, it is not an error
		if len(groupIDs) > 0 {
			conditions = append(conditions, db.Where("shared = ?", true).Where("group_id IN ?", groupIDs))
		}
	}

	if filter.IncludeImported {
		conditions = append(conditions, db.Where("user_id = ?", userID).Where("imported = ?", true))
	}

	if len(conditions) == 0 {
		return make([]CommitmentWithStatus, 0), nil
	}

	query := conditions[0]
	for _, condition := range conditions[1:] {
		query = query.Or(condition)
	}

	var commitments []Commitment
	err := db.Where(query).Order("created_at DESC").Find(&commitments).Error
	if err != nil {
		return nil, err
	}

	return WithPaymentStatus(db, commitments, month)
}

// personalCondition selects the commitments owned by the user that are
// neither shared nor imported.
func personalCondition(db *gorm.DB, userID uuid.UUID) *gorm.DB {
	return db.Where("user_id = ?", userID).Where("shared = ?", false).Where("imported = ?", false)
}

// WithPaymentStatus joins commitments against the payment rows for one
// month. It is a pure read-side join: the input is not modified and no
// writes are performed.
func WithPaymentStatus(db *gorm.DB, commitments []Commitment, month types.Month) ([]CommitmentWithStatus, error) {
	// When there are no resources, we want an empty list, not null
	result := make([]CommitmentWithStatus, 0, len(commitments))
	if len(commitments) == 0 {
		return result, nil
	}

	ids := make([]uuid.UUID, 0, len(commitments))
	for _, commitment := range commitments {
		ids = append(ids, commitment.ID)
	}

	var payments []CommitmentPayment
	err := db.Where("commitment_id IN ?", ids).Where("month = ?", month).Find(&payments).Error
	if err != nil {
		return nil, err
	}

	paymentFor := make(map[uuid.UUID]CommitmentPayment, len(payments))
	for _, payment := range payments {
		paymentFor[payment.CommitmentID] = payment
	}

	for _, commitment := range commitments {
		annotated := CommitmentWithStatus{Commitment: commitment}
		if payment, ok := paymentFor[commitment.ID]; ok {
			amount := payment.AmountPaid
			annotated.IsPaid = true
			annotated.AmountPaid = &amount
		}
		result = append(result, annotated)
	}

	return result, nil
}

// DeleteCommitment removes the commitment and all of its payment history.
func DeleteCommitment(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where(&CommitmentPayment{CommitmentID: id}).Delete(&CommitmentPayment{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&Commitment{}, id).Error
	})
}
