package v1

import (
	"fmt"
	"net/http"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsUserList)
		r.POST("", CreateUser)
	}

	{
		r.OPTIONS("/:id", OptionsUserDetail)
		r.GET("/:id", GetUser)
		r.PATCH("/:id", UpdateUser)
	}
}

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Email string `json:"email" example:"jane@example.com" default:""` // Email address, unique across all users
	Name  string `json:"name" example:"Jane Doe" default:""`          // Display name
}

func (editable UserEditable) model() models.User {
	return models.User{
		Email: editable.Email,
		Name:  editable.Name,
	}
}

type UserLinks struct {
	Self      string `json:"self" example:"https://example.com/v1/users/d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"`      // The user itself
	Dashboard string `json:"dashboard" example:"https://example.com/v1/dashboard/d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"` // Dashboard for this user
	Groups    string `json:"groups" example:"https://example.com/v1/groups/user/d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"`  // Groups the user is a member of
}

type User struct {
	models.DefaultModel
	UserEditable
	MonthlyIncome decimal.Decimal `json:"monthlyIncome" example:"5000"` // Cached snapshot of the most recently set income
	Links         UserLinks       `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := httputil.RequestPathV1(c)

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Email: model.Email,
			Name:  model.Name,
		},
		MonthlyIncome: model.MonthlyIncome,
		Links: UserLinks{
			Self:      fmt.Sprintf("%s/users/%s", url, model.ID),
			Dashboard: fmt.Sprintf("%s/dashboard/%s", url, model.ID),
			Groups:    fmt.Sprintf("%s/groups/user/%s", url, model.ID),
		},
	}
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // The user
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func OptionsUserList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [options]
func OptionsUserDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.User{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatch(c)
}

// @Summary		Create user
// @Description	Creates a new user
// @Tags			Users
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users [post]
func CreateUser(c *gin.Context) {
	var editable UserEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	user := editable.model()
	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	data := newUser(c, user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// @Summary		Get user
// @Description	Returns a specific user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	UserResponse
// @Failure		404	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [get]
func GetUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	var user models.User
	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	data := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update user
// @Description	Update an existing user. Only values to be updated need to be specified.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		404		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users/{id} [patch]
func UpdateUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	var user models.User
	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, UserEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	var data UserEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	err = models.DB.Model(&user).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	apiResource := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &apiResource})
}
