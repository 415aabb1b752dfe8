package models

import (
	"github.com/finsync/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Summary is the computed balance dashboard for one user and month.
type Summary struct {
	Month                types.Month            `json:"month" example:"2025-03"`
	Income               decimal.Decimal        `json:"income" example:"5000"`                // Income set for the month, 0 when unset
	TotalCommitments     decimal.Decimal        `json:"totalCommitments" example:"1600"`      // Sum of nominal amounts, regardless of paid status
	PaidCommitments      decimal.Decimal        `json:"paidCommitments" example:"1200"`       // Sum of the amounts actually paid
	RemainingCommitments decimal.Decimal        `json:"remainingCommitments" example:"400"`   // TotalCommitments - PaidCommitments
	AvailableBalance     decimal.Decimal        `json:"availableBalance" example:"3800"`      // Income - PaidCommitments
	Commitments          int                    `json:"commitments" example:"2"`              // Number of commitments in the list
	UnpaidCount          int                    `json:"unpaidCount" example:"1"`              // Number of unpaid commitments
	CommitmentsList      []CommitmentWithStatus `json:"commitmentsList"`
}

// DashboardSummary computes the balance dashboard for a user and month.
//
// The candidate set is the default visibility (personal commitments only).
// An unset income counts as zero. The available balance deliberately
// subtracts the paid sum, not the total, so it reflects the cash actually
// consumed so far in the month.
func DashboardSummary(db *gorm.DB, userID uuid.UUID, month types.Month) (Summary, error) {
	income, err := IncomeAmount(db, userID, month)
	if err != nil {
		return Summary{}, err
	}

	commitments, err := CommitmentsForMonth(db, userID, month, CommitmentFilter{IncludePersonal: true})
	if err != nil {
		return Summary{}, err
	}

	total := decimal.Zero
	paid := decimal.Zero
	unpaid := 0

	for _, commitment := range commitments {
		total = total.Add(commitment.Amount)

		if commitment.IsPaid {
			paid = paid.Add(commitment.Paid())
		} else {
			unpaid++
		}
	}

	return Summary{
		Month:                month,
		Income:               income,
		TotalCommitments:     total,
		PaidCommitments:      paid,
		RemainingCommitments: total.Sub(paid),
		AvailableBalance:     income.Sub(paid),
		Commitments:          len(commitments),
		UnpaidCount:          unpaid,
		CommitmentsList:      commitments,
	}, nil
}
