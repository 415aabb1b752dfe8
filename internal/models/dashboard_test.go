package models_test

import (
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestDashboardSummary() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	_, err := models.SetMonthlyIncome(models.DB, user.ID, month, decimal.NewFromFloat(5000))
	require.Nil(suite.T(), err)

	rent := suite.createTestCommitment(models.Commitment{
		UserID: user.ID,
		Title:  "Rent",
		Amount: decimal.NewFromFloat(1200),
		Type:   models.CommitmentTypeStatic,
	})
	suite.createTestCommitment(models.Commitment{
		UserID: user.ID,
		Title:  "Groceries",
		Amount: decimal.NewFromFloat(400),
		Type:   models.CommitmentTypeDynamic,
	})

	_, err = models.MarkPaid(models.DB, rent.ID, user.ID, month, decimal.NewFromFloat(1200))
	require.Nil(suite.T(), err)

	summary, err := models.DashboardSummary(models.DB, user.ID, month)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), summary.Income.Equal(decimal.NewFromFloat(5000)), summary.Income.String())
	assert.True(suite.T(), summary.TotalCommitments.Equal(decimal.NewFromFloat(1600)), summary.TotalCommitments.String())
	assert.True(suite.T(), summary.PaidCommitments.Equal(decimal.NewFromFloat(1200)), summary.PaidCommitments.String())
	assert.True(suite.T(), summary.RemainingCommitments.Equal(decimal.NewFromFloat(400)), summary.RemainingCommitments.String())
	assert.True(suite.T(), summary.AvailableBalance.Equal(decimal.NewFromFloat(3800)), summary.AvailableBalance.String())
	assert.Equal(suite.T(), 2, summary.Commitments)
	assert.Equal(suite.T(), 1, summary.UnpaidCount)
	assert.Len(suite.T(), summary.CommitmentsList, 2)
}

func (suite *TestSuiteStandard) TestDashboardSummaryWithoutIncome() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	commitment := suite.createTestCommitment(models.Commitment{
		UserID: user.ID,
		Title:  "Rent",
		Amount: decimal.NewFromFloat(1200),
	})

	_, err := models.MarkPaid(models.DB, commitment.ID, user.ID, month, decimal.NewFromFloat(1200))
	require.Nil(suite.T(), err)

	// With no income set the balance goes negative, it is not clamped
	summary, err := models.DashboardSummary(models.DB, user.ID, month)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), summary.Income.IsZero())
	assert.True(suite.T(), summary.AvailableBalance.Equal(decimal.NewFromFloat(-1200)), summary.AvailableBalance.String())
}

func (suite *TestSuiteStandard) TestDashboardSummaryEmpty() {
	user := suite.createTestUser(models.User{})

	summary, err := models.DashboardSummary(models.DB, user.ID, types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)

	assert.True(suite.T(), summary.TotalCommitments.IsZero())
	assert.True(suite.T(), summary.AvailableBalance.IsZero())
	assert.Equal(suite.T(), 0, summary.Commitments)
	assert.Equal(suite.T(), 0, summary.UnpaidCount)
	assert.NotNil(suite.T(), summary.CommitmentsList)
}

func (suite *TestSuiteStandard) TestDashboardSummaryPartialPayment() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	commitment := suite.createTestCommitment(models.Commitment{
		UserID: user.ID,
		Title:  "Electricity",
		Amount: decimal.NewFromFloat(120),
		Type:   models.CommitmentTypeDynamic,
	})

	// The amount actually paid counts, not the nominal amount
	_, err := models.MarkPaid(models.DB, commitment.ID, user.ID, month, decimal.NewFromFloat(87.31))
	require.Nil(suite.T(), err)

	summary, err := models.DashboardSummary(models.DB, user.ID, month)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), summary.PaidCommitments.Equal(decimal.NewFromFloat(87.31)), summary.PaidCommitments.String())
	assert.True(suite.T(), summary.RemainingCommitments.Equal(decimal.NewFromFloat(32.69)), summary.RemainingCommitments.String())
	assert.Equal(suite.T(), 0, summary.UnpaidCount)
}

func (suite *TestSuiteStandard) TestDashboardSummaryExcludesSharedAndImported() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	group := suite.createTestGroup("Household", user.ID)

	suite.createTestCommitment(models.Commitment{
		UserID: user.ID,
		Title:  "Rent",
		Amount: decimal.NewFromFloat(1200),
	})
	suite.createTestCommitment(models.Commitment{
		UserID:  user.ID,
		Title:   "Internet",
		Amount:  decimal.NewFromFloat(49.99),
		Shared:  true,
		GroupID: &group.ID,
	})
	suite.createTestCommitment(models.Commitment{
		UserID:   user.ID,
		Title:    "Streaming",
		Amount:   decimal.NewFromFloat(12.99),
		Imported: true,
	})

	// The dashboard only reflects personal commitments
	summary, err := models.DashboardSummary(models.DB, user.ID, month)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), 1, summary.Commitments)
	assert.True(suite.T(), summary.TotalCommitments.Equal(decimal.NewFromFloat(1200)), summary.TotalCommitments.String())
}
