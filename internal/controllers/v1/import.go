package v1

import (
	"net/http"
	"time"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ImportCommitmentEditable is one commitment of an import batch. Sharing and
// import flags are not configurable, the import forces them.
type ImportCommitmentEditable struct {
	Title     string          `json:"title" example:"Rent" default:""`        // Title of the commitment
	Category  string          `json:"category" example:"Housing" default:""`  // Free-form category, can be overridden by a category rule
	Amount    decimal.Decimal `json:"amount" example:"1200" default:"0"`      // Nominal amount
	Type      string          `json:"type" example:"static" default:"static"` // Either "static" or "dynamic"
	Recurring bool            `json:"recurring" example:"true" default:"false"`
	StartDate time.Time       `json:"startDate" example:"2025-03-01T00:00:00Z" default:"now"`
}

// CategoryRule maps a title glob to a category during import.
type CategoryRule struct {
	Pattern  string `json:"pattern" example:"Netflix*"`      // Glob pattern, matched against the title
	Category string `json:"category" example:"Subscriptions"` // Category to assign on match
}

// ImportQuery is the request body for a bulk import.
type ImportQuery struct {
	UserID        uuid.UUID                  `json:"userId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"` // ID of the user the commitments are imported for
	Commitments   []ImportCommitmentEditable `json:"commitments"`                                           // The commitments to import
	CategoryRules []CategoryRule             `json:"categoryRules"`                                         // Optional rules mapping title globs to categories
}

type ImportResponse struct {
	Count int     `json:"count" example:"12"`                                            // Number of imported commitments
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/commitments/import [options]
func OptionsCommitmentImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import commitments
// @Description	Bulk-imports historical commitments for a user. All imported commitments are marked as imported and are never shared. The import is transactional, a single invalid commitment fails the whole batch.
// @Tags			Import
// @Accept			json
// @Produce		json
// @Success		201		{object}	ImportResponse
// @Failure		400		{object}	ImportResponse
// @Failure		404		{object}	ImportResponse
// @Failure		500		{object}	ImportResponse
// @Param			import	body		ImportQuery	true	"Import batch"
// @Router			/v1/commitments/import [post]
func ImportCommitments(c *gin.Context) {
	var query ImportQuery

	err := httputil.BindData(c, &query)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{Error: &e})
		return
	}

	if len(query.Commitments) == 0 {
		e := errImportNoCommitments.Error()
		c.JSON(http.StatusBadRequest, ImportResponse{Error: &e})
		return
	}

	importedAt := time.Now().In(time.UTC)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, editable := range query.Commitments {
			commitment := models.Commitment{
				UserID:     query.UserID,
				Title:      editable.Title,
				Category:   applyCategoryRules(query.CategoryRules, editable.Title, editable.Category),
				Amount:     editable.Amount,
				Type:       editable.Type,
				Recurring:  editable.Recurring,
				StartDate:  editable.StartDate,
				Imported:   true,
				ImportedAt: &importedAt,
			}

			if err := tx.Create(&commitment).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ImportResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{Count: len(query.Commitments)})
}

// applyCategoryRules resolves the category for an imported commitment.
// The first rule whose pattern matches the title wins, with no match the
// category from the import data is kept.
func applyCategoryRules(rules []CategoryRule, title, fallback string) string {
	for _, rule := range rules {
		if glob.Glob(rule.Pattern, title) {
			return rule.Category
		}
	}

	return fallback
}
