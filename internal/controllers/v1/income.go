package v1

import (
	"net/http"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterMonthlyIncomeRoutes registers the routes for monthly incomes with
// the RouterGroup that is passed.
func RegisterMonthlyIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMonthlyIncomeList)
		r.POST("", SetMonthlyIncome)
	}

	{
		r.OPTIONS("/:userId/:month", OptionsMonthlyIncomeDetail)
		r.GET("/:userId/:month", GetMonthlyIncome)
	}
}

// MonthlyIncomeEditable represents all user configurable parameters
type MonthlyIncomeEditable struct {
	UserID uuid.UUID       `json:"userId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"` // ID of the user the income belongs to
	Month  types.Month     `json:"month" example:"2025-03"`                               // Month the income applies to
	Amount decimal.Decimal `json:"amount" example:"5000" default:"0"`                     // Income for the month
}

type MonthlyIncome struct {
	models.DefaultModel
	MonthlyIncomeEditable
}

func newMonthlyIncome(model models.MonthlyIncome) MonthlyIncome {
	return MonthlyIncome{
		DefaultModel: model.DefaultModel,
		MonthlyIncomeEditable: MonthlyIncomeEditable{
			UserID: model.UserID,
			Month:  model.Month,
			Amount: model.Amount,
		},
	}
}

type MonthlyIncomeResponse struct {
	Data  *MonthlyIncome `json:"data"`                                                          // The monthly income
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MonthlyIncome
// @Success		204
// @Router			/v1/monthly-income [options]
func OptionsMonthlyIncomeList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MonthlyIncome
// @Success		204
// @Failure		400		{object}	httpError
// @Param			userId	path		string	true	"ID of the user"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/monthly-income/{userId}/{month} [options]
func OptionsMonthlyIncomeDetail(c *gin.Context) {
	var uri URIUserMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Set monthly income
// @Description	Sets the income for a user and month. Creates the income if it does not exist yet and updates it otherwise.
// @Tags			MonthlyIncome
// @Produce		json
// @Success		200		{object}	MonthlyIncomeResponse
// @Failure		400		{object}	MonthlyIncomeResponse
// @Failure		404		{object}	MonthlyIncomeResponse
// @Failure		500		{object}	MonthlyIncomeResponse
// @Param			income	body		MonthlyIncomeEditable	true	"MonthlyIncome"
// @Router			/v1/monthly-income [post]
func SetMonthlyIncome(c *gin.Context) {
	var editable MonthlyIncomeEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyIncomeResponse{Error: &e})
		return
	}

	income, err := models.SetMonthlyIncome(models.DB, editable.UserID, editable.Month, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyIncomeResponse{Error: &e})
		return
	}

	data := newMonthlyIncome(income)
	c.JSON(http.StatusOK, MonthlyIncomeResponse{Data: &data})
}

// @Summary		Get monthly income
// @Description	Returns the income for a user and month. Responds with 404 when no income is set for the month.
// @Tags			MonthlyIncome
// @Produce		json
// @Success		200		{object}	MonthlyIncomeResponse
// @Failure		400		{object}	MonthlyIncomeResponse
// @Failure		404		{object}	MonthlyIncomeResponse
// @Failure		500		{object}	MonthlyIncomeResponse
// @Param			userId	path		string	true	"ID of the user"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/monthly-income/{userId}/{month} [get]
func GetMonthlyIncome(c *gin.Context) {
	var uri URIUserMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyIncomeResponse{Error: &e})
		return
	}

	income, err := models.GetMonthlyIncome(models.DB, uri.UserID.UUID, uri.Month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthlyIncomeResponse{Error: &e})
		return
	}

	data := newMonthlyIncome(income)
	c.JSON(http.StatusOK, MonthlyIncomeResponse{Data: &data})
}
