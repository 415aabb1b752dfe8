package v1

import (
	"net/http"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterPaymentRoutes registers the routes for payments with
// the RouterGroup that is passed.
func RegisterPaymentRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/user/:userId/month/:month", OptionsPaymentMonth)
	r.GET("/user/:userId/month/:month", GetMonthPayments)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Payments
// @Success		204
// @Param			userId	path	string	true	"ID of the user"
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/payments/user/{userId}/month/{month} [options]
func OptionsPaymentMonth(c *gin.Context) {
	var uri URIUserMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get payments
// @Description	Returns all payments a user recorded for a month
// @Tags			Payments
// @Produce		json
// @Success		200		{object}	PaymentListResponse
// @Failure		400		{object}	PaymentListResponse
// @Failure		500		{object}	PaymentListResponse
// @Param			userId	path		string	true	"ID of the user"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/payments/user/{userId}/month/{month} [get]
func GetMonthPayments(c *gin.Context) {
	var uri URIUserMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{Error: &e})
		return
	}

	payments, err := models.PaymentsForMonth(models.DB, uri.UserID.UUID, uri.Month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentListResponse{Error: &e})
		return
	}

	data := make([]Payment, 0, len(payments))
	for _, payment := range payments {
		data = append(data, newPayment(payment))
	}

	c.JSON(http.StatusOK, PaymentListResponse{Data: data})
}
