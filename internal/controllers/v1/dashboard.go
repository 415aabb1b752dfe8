package v1

import (
	"net/http"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:userId", OptionsDashboard)
	r.GET("/:userId", GetDashboard)
	r.OPTIONS("/:userId/:month", OptionsDashboard)
	r.GET("/:userId/:month", GetDashboard)
}

// Dashboard is the computed balance overview for one user and month.
type Dashboard struct {
	Month                types.Month       `json:"month" example:"2025-03"`
	Income               decimal.Decimal   `json:"income" example:"5000"`              // Income set for the month, 0 when unset
	TotalCommitments     decimal.Decimal   `json:"totalCommitments" example:"1600"`    // Sum of the nominal amounts
	PaidCommitments      decimal.Decimal   `json:"paidCommitments" example:"1200"`     // Sum of the amounts actually paid
	RemainingCommitments decimal.Decimal   `json:"remainingCommitments" example:"400"` // Total minus paid
	AvailableBalance     decimal.Decimal   `json:"availableBalance" example:"3800"`    // Income minus paid
	Commitments          int               `json:"commitments" example:"2"`            // Number of commitments for the month
	UnpaidCount          int               `json:"unpaidCount" example:"1"`            // Number of unpaid commitments
	CommitmentsList      []MonthCommitment `json:"commitmentsList"`                    // The commitments the numbers are computed from
}

func newDashboard(c *gin.Context, model models.Summary) Dashboard {
	list := make([]MonthCommitment, 0, len(model.CommitmentsList))
	for _, commitment := range model.CommitmentsList {
		list = append(list, newMonthCommitment(c, commitment))
	}

	return Dashboard{
		Month:                model.Month,
		Income:               model.Income,
		TotalCommitments:     model.TotalCommitments,
		PaidCommitments:      model.PaidCommitments,
		RemainingCommitments: model.RemainingCommitments,
		AvailableBalance:     model.AvailableBalance,
		Commitments:          model.Commitments,
		UnpaidCount:          model.UnpaidCount,
		CommitmentsList:      list,
	}
}

type DashboardResponse struct {
	Data  *Dashboard `json:"data"`                                                          // The dashboard
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Failure		400		{object}	httpError
// @Param			userId	path		string	true	"ID of the user"
// @Router			/v1/dashboard/{userId} [options]
func OptionsDashboard(c *gin.Context) {
	var uri URIUserID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns the balance dashboard for a user and month. Without a month in the path the current month is used. An unset income counts as zero.
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	DashboardResponse
// @Failure		400		{object}	DashboardResponse
// @Failure		500		{object}	DashboardResponse
// @Param			userId	path		string	true	"ID of the user"
// @Param			month	path		string	false	"The month in YYYY-MM format, defaults to the current month"
// @Router			/v1/dashboard/{userId}/{month} [get]
func GetDashboard(c *gin.Context) {
	var uri URIUserID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	month := types.CurrentMonth()
	if param := c.Param("month"); param != "" {
		month, err = types.ParseMonth(param)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, DashboardResponse{Error: &e})
			return
		}
	}

	summary, err := models.DashboardSummary(models.DB, uri.UserID.UUID, month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), DashboardResponse{Error: &e})
		return
	}

	data := newDashboard(c, summary)
	c.JSON(http.StatusOK, DashboardResponse{Data: &data})
}
