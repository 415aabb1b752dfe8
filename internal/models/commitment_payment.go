package models

import (
	"time"

	"github.com/finsync/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommitmentPayment records that a commitment was satisfied for one
// specific month.
//
// There is at most one row per (commitment, month): the existence of the row
// is what makes the commitment paid for that month, and recording another
// payment for the same month overwrites that row. Deleting the row reverts
// the commitment to unpaid without touching the commitment itself.
type CommitmentPayment struct {
	DefaultModel
	Commitment   Commitment      `json:"-"`
	CommitmentID uuid.UUID       `gorm:"uniqueIndex:payment_commitment_month"`
	User         User            `json:"-"`
	UserID       uuid.UUID       // The paying user, independent of commitment ownership
	Month        types.Month     `gorm:"uniqueIndex:payment_commitment_month"`
	AmountPaid   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaidAt       time.Time
}

func (p *CommitmentPayment) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*CommitmentPayment)
	return p.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (p *CommitmentPayment) checkIntegrity(tx *gorm.DB, toSave CommitmentPayment) error {
	err := tx.First(&Commitment{}, toSave.CommitmentID).Error
	if err != nil {
		return err
	}

	return tx.First(&User{}, toSave.UserID).Error
}

// BeforeSave sets the payment timestamp in UTC.
func (p *CommitmentPayment) BeforeSave(_ *gorm.DB) error {
	if !p.AmountPaid.IsPositive() {
		return ErrPaymentAmountNotPositive
	}

	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().In(time.UTC)
	} else {
		p.PaidAt = p.PaidAt.In(time.UTC)
	}

	return nil
}

// MarkPaid records a payment for the commitment and month.
//
// Marking a commitment paid twice for the same month results in exactly one
// row, with the later call overwriting the amount and payer.
func MarkPaid(db *gorm.DB, commitmentID, userID uuid.UUID, month types.Month, amount decimal.Decimal) (CommitmentPayment, error) {
	payment := CommitmentPayment{
		CommitmentID: commitmentID,
		UserID:       userID,
		Month:        month,
		AmountPaid:   amount,
	}

	// Upsert on the (commitment, month) unique index so that two payments
	// racing for the same month collapse into one row instead of the second
	// one failing on the index
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "commitment_id"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "amount_paid", "paid_at", "updated_at"}),
	}).Create(&payment).Error
	if err != nil {
		return CommitmentPayment{}, err
	}

	// On overwrite the existing row keeps its ID, so read it back
	var saved CommitmentPayment
	err = db.Where(&CommitmentPayment{CommitmentID: commitmentID, Month: month}).First(&saved).Error
	if err != nil {
		return CommitmentPayment{}, err
	}

	return saved, nil
}

// MarkUnpaid deletes the payment row for the commitment and month,
// reverting it to unpaid. The commitment itself persists.
func MarkUnpaid(db *gorm.DB, commitmentID uuid.UUID, month types.Month) error {
	var payment CommitmentPayment
	err := db.Where(&CommitmentPayment{CommitmentID: commitmentID, Month: month}).First(&payment).Error
	if err != nil {
		return err
	}

	// Hard delete so that the unique index allows marking the month as paid
	// again later
	return db.Unscoped().Delete(&payment).Error
}

// PaymentsForMonth returns all payments a user recorded for one month.
func PaymentsForMonth(db *gorm.DB, userID uuid.UUID, month types.Month) ([]CommitmentPayment, error) {
	payments := make([]CommitmentPayment, 0)
	err := db.Where(&CommitmentPayment{UserID: userID, Month: month}).Order("paid_at DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}
