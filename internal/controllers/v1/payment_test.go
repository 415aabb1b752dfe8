package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/finsync/backend/internal/controllers/v1"
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/finsync/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestPaymentsOfMonth() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	rent := suite.createTestCommitment(models.Commitment{UserID: user.ID, Title: "Rent", Amount: decimal.NewFromFloat(1200)})
	groceries := suite.createTestCommitment(models.Commitment{UserID: user.ID, Title: "Groceries", Amount: decimal.NewFromFloat(400), Type: models.CommitmentTypeDynamic})
	internet := suite.createTestCommitment(models.Commitment{UserID: other.ID, Title: "Internet", Amount: decimal.NewFromFloat(49.99)})

	for _, payment := range []struct {
		commitment models.Commitment
		payer      models.User
		month      types.Month
	}{
		{rent, user, month},
		{groceries, user, types.NewMonth(2025, 4)},
		{internet, other, month},
	} {
		_, err := models.MarkPaid(models.DB, payment.commitment.ID, payment.payer.ID, payment.month, payment.commitment.Amount)
		require.Nil(suite.T(), err)
	}

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/payments/user/%s/month/2025-03", user.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PaymentListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Only the user's own payments for the requested month
	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), rent.ID, response.Data[0].CommitmentID)
	assert.Equal(suite.T(), "2025-03", response.Data[0].Month.String())
}

func (suite *TestSuiteStandard) TestPaymentsOfMonthEmpty() {
	user := suite.createTestUser(models.User{})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/payments/user/%s/month/2025-03", user.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.PaymentListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 0)
}

func (suite *TestSuiteStandard) TestPaymentsOfMonthInvalidMonth() {
	user := suite.createTestUser(models.User{})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/payments/user/%s/month/March", user.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
