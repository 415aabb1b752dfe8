package v1

import (
	"net/http"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
)

// RegisterCommitmentRoutes registers the routes for commitments with
// the RouterGroup that is passed.
func RegisterCommitmentRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCommitmentList)
		r.GET("", GetCommitments)
		r.POST("", CreateCommitment)
	}

	// Bulk import
	{
		r.OPTIONS("/import", OptionsCommitmentImport)
		r.POST("/import", ImportCommitments)
	}

	// Per-user month view
	{
		r.OPTIONS("/user/:userId/month/:month", OptionsCommitmentMonth)
		r.GET("/user/:userId/month/:month", GetMonthCommitments)
	}

	// Commitment with ID
	{
		r.OPTIONS("/:id", OptionsCommitmentDetail)
		r.GET("/:id", GetCommitment)
		r.PATCH("/:id", UpdateCommitment)
		r.DELETE("/:id", DeleteCommitment)
	}

	// Payment state of a commitment
	{
		r.OPTIONS("/:id/pay", OptionsCommitmentPay)
		r.POST("/:id/pay", PayCommitment)
		r.OPTIONS("/:id/pay/:month", OptionsCommitmentUnpay)
		r.DELETE("/:id/pay/:month", UnpayCommitment)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Commitments
// @Success		204
// @Router			/v1/commitments [options]
func OptionsCommitmentList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Commitments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/commitments/{id} [options]
func OptionsCommitmentDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Commitment{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Commitments
// @Success		204
// @Param			userId	path	string	true	"ID of the user"
// @Param			month	path	string	true	"The month in YYYY-MM format"
// @Router			/v1/commitments/user/{userId}/month/{month} [options]
func OptionsCommitmentMonth(c *gin.Context) {
	var uri URIUserMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Commitments
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/commitments/{id}/pay [options]
func OptionsCommitmentPay(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Commitment{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Commitments
// @Success		204
// @Failure		400		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/commitments/{id}/pay/{month} [options]
func OptionsCommitmentUnpay(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Create commitment
// @Description	Creates a new commitment
// @Tags			Commitments
// @Produce		json
// @Success		201			{object}	CommitmentResponse
// @Failure		400			{object}	CommitmentResponse
// @Failure		404			{object}	CommitmentResponse
// @Failure		500			{object}	CommitmentResponse
// @Param			commitment	body		CommitmentEditable	true	"Commitment"
// @Router			/v1/commitments [post]
func CreateCommitment(c *gin.Context) {
	var editable CommitmentEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	commitment := editable.model()
	err = models.DB.Create(&commitment).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	data := newCommitment(c, commitment)
	c.JSON(http.StatusCreated, CommitmentResponse{Data: &data})
}

// @Summary		Get commitments
// @Description	Returns a list of commitments
// @Tags			Commitments
// @Produce		json
// @Success		200	{object}	CommitmentListResponse
// @Failure		400	{object}	CommitmentListResponse
// @Failure		500	{object}	CommitmentListResponse
// @Router			/v1/commitments [get]
// @Param			userId		query	string	false	"Filter by user ID"
// @Param			title		query	string	false	"Filter by glob match on the title"
// @Param			category	query	string	false	"Filter by category"
// @Param			type		query	string	false	"Filter by commitment type"
// @Param			shared		query	bool	false	"Is the commitment shared?"
// @Param			imported	query	bool	false	"Is the commitment imported?"
func GetCommitments(c *gin.Context) {
	var filter CommitmentQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentListResponse{Error: &e})
		return
	}

	q := models.DB.
		Order("created_at DESC").
		Where(&filterModel, queryFields...)

	if filter.UserID != "" {
		q = q.Where("user_id = ?", filterModel.UserID)
	}

	var commitments []models.Commitment
	err = q.Find(&commitments).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentListResponse{Error: &e})
		return
	}

	data := make([]Commitment, 0, len(commitments))
	for _, commitment := range commitments {
		// The title filter is a glob match, which the database cannot do
		if filter.Title != "" && !glob.Glob(filter.Title, commitment.Title) {
			continue
		}

		data = append(data, newCommitment(c, commitment))
	}

	c.JSON(http.StatusOK, CommitmentListResponse{Data: data})
}

// @Summary		Get commitments for a month
// @Description	Returns the commitments visible to a user, annotated with their payment state for the month. Personal commitments are included unless includePersonal=false, shared and imported commitments are opt-in.
// @Tags			Commitments
// @Produce		json
// @Success		200	{object}	MonthCommitmentListResponse
// @Failure		400	{object}	MonthCommitmentListResponse
// @Failure		500	{object}	MonthCommitmentListResponse
// @Router			/v1/commitments/user/{userId}/month/{month} [get]
// @Param			userId			path	string	true	"ID of the user"
// @Param			month			path	string	true	"The month in YYYY-MM format"
// @Param			includePersonal	query	bool	false	"Include personal commitments, defaults to true"
// @Param			includeShared	query	bool	false	"Include commitments shared with the user's groups"
// @Param			includeImported	query	bool	false	"Include imported commitments"
func GetMonthCommitments(c *gin.Context) {
	var uri URIUserMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthCommitmentListResponse{Error: &e})
		return
	}

	var query CommitmentMonthQuery
	err = c.ShouldBindQuery(&query)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthCommitmentListResponse{Error: &e})
		return
	}

	commitments, err := models.CommitmentsForMonth(models.DB, uri.UserID.UUID, uri.Month, query.filter())
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthCommitmentListResponse{Error: &e})
		return
	}

	data := make([]MonthCommitment, 0, len(commitments))
	for _, commitment := range commitments {
		data = append(data, newMonthCommitment(c, commitment))
	}

	c.JSON(http.StatusOK, MonthCommitmentListResponse{Data: data})
}

// @Summary		Get commitment
// @Description	Returns a specific commitment
// @Tags			Commitments
// @Produce		json
// @Success		200	{object}	CommitmentResponse
// @Failure		400	{object}	CommitmentResponse
// @Failure		404	{object}	CommitmentResponse
// @Failure		500	{object}	CommitmentResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/commitments/{id} [get]
func GetCommitment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	var commitment models.Commitment
	err = models.DB.First(&commitment, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	data := newCommitment(c, commitment)
	c.JSON(http.StatusOK, CommitmentResponse{Data: &data})
}

// @Summary		Update commitment
// @Description	Update an existing commitment. Only values to be updated need to be specified.
// @Tags			Commitments
// @Accept			json
// @Produce		json
// @Success		200			{object}	CommitmentResponse
// @Failure		400			{object}	CommitmentResponse
// @Failure		404			{object}	CommitmentResponse
// @Failure		500			{object}	CommitmentResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			commitment	body		CommitmentEditable	true	"Commitment"
// @Router			/v1/commitments/{id} [patch]
func UpdateCommitment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	var commitment models.Commitment
	err = models.DB.First(&commitment, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CommitmentEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	var data CommitmentEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	err = models.DB.Model(&commitment).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CommitmentResponse{Error: &e})
		return
	}

	apiResource := newCommitment(c, commitment)
	c.JSON(http.StatusOK, CommitmentResponse{Data: &apiResource})
}

// DeleteQuery selects the scope of a commitment deletion.
type DeleteQuery struct {
	Scope string `form:"scope" default:"all"`    // Either "all" or "single"
	Month string `form:"month" example:"2025-03"` // Month to delete, required for scope=single
}

// @Summary		Delete commitment
// @Description	Deletes a commitment. With scope=all (the default) the commitment and its entire payment history are removed. With scope=single and a month only the payment record for that month is removed, the commitment stays.
// @Tags			Commitments
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			scope	query		string	false	"Either 'all' (default) or 'single'"
// @Param			month	query		string	false	"The month in YYYY-MM format, required for scope=single"
// @Router			/v1/commitments/{id} [delete]
func DeleteCommitment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var commitment models.Commitment
	err = models.DB.First(&commitment, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var query DeleteQuery
	_ = c.Bind(&query)

	switch query.Scope {
	case "", "all":
		err = models.DeleteCommitment(models.DB, commitment.ID)

	case "single":
		if query.Month == "" {
			c.JSON(http.StatusBadRequest, httpError{Error: models.ErrDeleteMonthRequired.Error()})
			return
		}

		month, parseErr := types.ParseMonth(query.Month)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: parseErr.Error()})
			return
		}

		err = models.MarkUnpaid(models.DB, commitment.ID, month)

	default:
		c.JSON(http.StatusBadRequest, httpError{Error: models.ErrDeleteScopeInvalid.Error()})
		return
	}

	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Pay commitment
// @Description	Records a payment for the commitment and month. Paying the same month again overwrites the recorded amount and payer.
// @Tags			Commitments
// @Produce		json
// @Success		201		{object}	PaymentResponse
// @Failure		400		{object}	PaymentResponse
// @Failure		404		{object}	PaymentResponse
// @Failure		500		{object}	PaymentResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		PaymentEditable	true	"Payment"
// @Router			/v1/commitments/{id}/pay [post]
func PayCommitment(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	var editable PaymentEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	if editable.Month.IsZero() {
		e := errPayMonthNotSetInBody.Error()
		c.JSON(http.StatusBadRequest, PaymentResponse{Error: &e})
		return
	}

	payment, err := models.MarkPaid(models.DB, uri.ID.UUID, editable.UserID, editable.Month, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), PaymentResponse{Error: &e})
		return
	}

	data := newPayment(payment)
	c.JSON(http.StatusCreated, PaymentResponse{Data: &data})
}

// @Summary		Unpay commitment
// @Description	Deletes the payment record for the commitment and month, reverting it to unpaid. The commitment itself is not touched.
// @Tags			Commitments
// @Success		204
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	path		string	true	"The month in YYYY-MM format"
// @Router			/v1/commitments/{id}/pay/{month} [delete]
func UnpayCommitment(c *gin.Context) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.MarkUnpaid(models.DB, uri.ID.UUID, uri.Month)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
