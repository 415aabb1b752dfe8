package v1

import (
	"fmt"
	"time"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommitmentEditable represents all user configurable parameters
type CommitmentEditable struct {
	UserID    uuid.UUID       `json:"userId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"`    // ID of the user owning the commitment
	Title     string          `json:"title" example:"Rent" default:""`                          // Title of the commitment
	Category  string          `json:"category" example:"Housing" default:""`                    // Free-form category
	Amount    decimal.Decimal `json:"amount" example:"1200" default:"0"`                        // Nominal amount, an estimate for dynamic commitments
	Type      string          `json:"type" example:"static" default:"static"`                   // Either "static" or "dynamic"
	Recurring bool            `json:"recurring" example:"true" default:"false"`                 // Applies every month instead of once
	Shared    bool            `json:"shared" example:"false" default:"false"`                   // Shared with the group members
	GroupID   *uuid.UUID      `json:"groupId" example:"2f76c6b6-c8b6-4e31-ae4f-1fae9d1b4d81"`   // ID of the group the commitment is shared with
	StartDate time.Time       `json:"startDate" example:"2025-03-01T00:00:00Z" default:"now"`   // Time the commitment starts to apply
}

func (editable CommitmentEditable) model() models.Commitment {
	return models.Commitment{
		UserID:    editable.UserID,
		Title:     editable.Title,
		Category:  editable.Category,
		Amount:    editable.Amount,
		Type:      editable.Type,
		Recurring: editable.Recurring,
		Shared:    editable.Shared,
		GroupID:   editable.GroupID,
		StartDate: editable.StartDate,
	}
}

type CommitmentLinks struct {
	Self     string `json:"self" example:"https://example.com/v1/commitments/447e1c09-8424-4476-be12-9ac2c2e8e0b2"`          // The commitment itself
	Payments string `json:"payments" example:"https://example.com/v1/commitments/447e1c09-8424-4476-be12-9ac2c2e8e0b2/pay"` // Payment endpoint for this commitment
}

type Commitment struct {
	models.DefaultModel
	CommitmentEditable
	Imported   bool            `json:"imported" example:"false"` // Bulk-loaded historical record
	ImportedAt *time.Time      `json:"importedAt"`               // Time the commitment was imported, null otherwise
	Links      CommitmentLinks `json:"links"`
}

func newCommitment(c *gin.Context, model models.Commitment) Commitment {
	url := httputil.RequestPathV1(c)

	return Commitment{
		DefaultModel: model.DefaultModel,
		CommitmentEditable: CommitmentEditable{
			UserID:    model.UserID,
			Title:     model.Title,
			Category:  model.Category,
			Amount:    model.Amount,
			Type:      model.Type,
			Recurring: model.Recurring,
			Shared:    model.Shared,
			GroupID:   model.GroupID,
			StartDate: model.StartDate,
		},
		Imported:   model.Imported,
		ImportedAt: model.ImportedAt,
		Links: CommitmentLinks{
			Self:     fmt.Sprintf("%s/commitments/%s", url, model.ID),
			Payments: fmt.Sprintf("%s/commitments/%s/pay", url, model.ID),
		},
	}
}

// MonthCommitment is a commitment annotated with its payment state for the
// requested month.
type MonthCommitment struct {
	Commitment
	IsPaid     bool             `json:"isPaid" example:"true"`    // Is the commitment paid for the month?
	AmountPaid *decimal.Decimal `json:"amountPaid" example:"87.31"` // Amount actually paid, null when unpaid
}

func newMonthCommitment(c *gin.Context, model models.CommitmentWithStatus) MonthCommitment {
	return MonthCommitment{
		Commitment: newCommitment(c, model.Commitment),
		IsPaid:     model.IsPaid,
		AmountPaid: model.AmountPaid,
	}
}

type CommitmentResponse struct {
	Data  *Commitment `json:"data"`                                                          // The commitment
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CommitmentListResponse struct {
	Data  []Commitment `json:"data"`                                                          // List of commitments
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MonthCommitmentListResponse struct {
	Data  []MonthCommitment `json:"data"`                                                          // List of commitments with their payment state
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// CommitmentQueryFilter contains the fields a commitment list can be
// filtered with.
type CommitmentQueryFilter struct {
	UserID   string `form:"userId" filterField:"false"`   // By ID of the owning user
	Title    string `form:"title" filterField:"false"`    // By glob match on the title
	Category string `form:"category"`                     // By exact category
	Type     string `form:"type"`                         // By commitment type
	Shared   bool   `form:"shared"`                       // Is the commitment shared?
	Imported bool   `form:"imported"`                     // Is the commitment imported?
}

func (f CommitmentQueryFilter) model() (models.Commitment, error) {
	var userID uuid.UUID

	if f.UserID != "" {
		parsed, err := uuid.Parse(f.UserID)
		if err != nil {
			return models.Commitment{}, err
		}
		userID = parsed
	}

	return models.Commitment{
		UserID:   userID,
		Category: f.Category,
		Type:     f.Type,
		Shared:   f.Shared,
		Imported: f.Imported,
	}, nil
}

// CommitmentMonthQuery selects the visibility subsets for the per-month
// listing. Personal commitments are part of the listing unless the caller
// disables them with includePersonal=false, the other subsets are opt-in.
type CommitmentMonthQuery struct {
	IncludePersonal *bool `form:"includePersonal" default:"true"`  // Include the user's personal commitments
	IncludeShared   bool  `form:"includeShared" default:"false"`   // Include commitments shared with the user's groups
	IncludeImported bool  `form:"includeImported" default:"false"` // Include the user's imported commitments
}

func (q CommitmentMonthQuery) filter() models.CommitmentFilter {
	return models.CommitmentFilter{
		IncludePersonal: q.IncludePersonal == nil || *q.IncludePersonal,
		IncludeShared:   q.IncludeShared,
		IncludeImported: q.IncludeImported,
	}
}

// PaymentEditable represents all user configurable parameters of a payment
type PaymentEditable struct {
	UserID uuid.UUID       `json:"userId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"` // ID of the paying user
	Month  types.Month     `json:"month" example:"2025-03"`                               // Month the payment applies to
	Amount decimal.Decimal `json:"amount" example:"1200" default:"0"`                     // Amount actually paid
}

type Payment struct {
	models.DefaultModel
	CommitmentID uuid.UUID       `json:"commitmentId" example:"447e1c09-8424-4476-be12-9ac2c2e8e0b2"` // ID of the paid commitment
	UserID       uuid.UUID       `json:"userId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"`       // ID of the paying user
	Month        types.Month     `json:"month" example:"2025-03"`                                     // Month the payment applies to
	AmountPaid   decimal.Decimal `json:"amountPaid" example:"1200"`                                   // Amount actually paid
	PaidAt       time.Time       `json:"paidAt" example:"2025-03-27T08:11:02.06148Z"`                 // Time the payment was recorded
}

func newPayment(model models.CommitmentPayment) Payment {
	return Payment{
		DefaultModel: model.DefaultModel,
		CommitmentID: model.CommitmentID,
		UserID:       model.UserID,
		Month:        model.Month,
		AmountPaid:   model.AmountPaid,
		PaidAt:       model.PaidAt,
	}
}

type PaymentResponse struct {
	Data  *Payment `json:"data"`                                                          // The payment
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type PaymentListResponse struct {
	Data  []Payment `json:"data"`                                                          // List of payments
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
