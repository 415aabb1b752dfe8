package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/finsync/backend/internal/controllers/v1"
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestUserResponse(editable v1.UserEditable) v1.UserResponse {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", editable)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return response
}

func (suite *TestSuiteStandard) TestUserCreate() {
	response := suite.createTestUserResponse(v1.UserEditable{Email: "jane@example.com", Name: "Jane Doe"})

	require.NotNil(suite.T(), response.Data)
	assert.Equal(suite.T(), "jane@example.com", response.Data.Email)
	assert.Equal(suite.T(), "Jane Doe", response.Data.Name)
	assert.Contains(suite.T(), response.Data.Links.Self, response.Data.ID.String())
}

func (suite *TestSuiteStandard) TestUserCreateDuplicateEmail() {
	suite.createTestUserResponse(v1.UserEditable{Email: "jane@example.com"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", v1.UserEditable{Email: "jane@example.com"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ErrUserEmailNotUnique.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestUserCreateInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/users", `{ "email": `)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUserGet() {
	user := suite.createTestUser(models.User{Name: "Jane Doe"})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/users/%s", user.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), user.ID, response.Data.ID)
	assert.Equal(suite.T(), "Jane Doe", response.Data.Name)
}

func (suite *TestSuiteStandard) TestUserGetNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users/4e743e94-6a4b-44d6-aba5-d77c87103ff7", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUserGetInvalidID() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/users/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUserUpdate() {
	user := suite.createTestUser(models.User{Name: "Jane Doe"})

	// A partial update must not touch fields that are not in the body
	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/users/%s", user.ID), map[string]any{
		"name": "Jane Smith",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.UserResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Jane Smith", response.Data.Name)
	assert.Equal(suite.T(), user.Email, response.Data.Email)
}

func (suite *TestSuiteStandard) TestUserUpdateNotFound() {
	recorder := test.Request(suite.T(), http.MethodPatch, "http://example.com/v1/users/4e743e94-6a4b-44d6-aba5-d77c87103ff7", map[string]any{
		"name": "Jane Smith",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestUserOptions() {
	user := suite.createTestUser(models.User{})

	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/users", "")
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
	assert.Equal(suite.T(), "OPTIONS, POST", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/users/%s", user.ID), "")
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH", recorder.Header().Get("allow"))
}
