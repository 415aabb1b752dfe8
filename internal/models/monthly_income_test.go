package models_test

import (
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSetMonthlyIncomeIsUpsert() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	first, err := models.SetMonthlyIncome(models.DB, user.ID, month, decimal.NewFromFloat(5000))
	require.Nil(suite.T(), err)

	// Setting the income again for the same month updates the existing row
	_, err = models.SetMonthlyIncome(models.DB, user.ID, month, decimal.NewFromFloat(5200))
	require.Nil(suite.T(), err)

	var incomes []models.MonthlyIncome
	require.Nil(suite.T(), models.DB.Where("user_id = ?", user.ID).Find(&incomes).Error)
	require.Len(suite.T(), incomes, 1)
	assert.Equal(suite.T(), first.ID, incomes[0].ID)
	assert.True(suite.T(), incomes[0].Amount.Equal(decimal.NewFromFloat(5200)))
}

func (suite *TestSuiteStandard) TestSetMonthlyIncomeRefreshesSnapshot() {
	user := suite.createTestUser(models.User{})

	_, err := models.SetMonthlyIncome(models.DB, user.ID, types.NewMonth(2025, 3), decimal.NewFromFloat(5000))
	require.Nil(suite.T(), err)

	var reloaded models.User
	require.Nil(suite.T(), models.DB.First(&reloaded, user.ID).Error)
	assert.True(suite.T(), reloaded.MonthlyIncome.Equal(decimal.NewFromFloat(5000)))
}

func (suite *TestSuiteStandard) TestSetMonthlyIncomeUnknownUser() {
	_, err := models.SetMonthlyIncome(models.DB, uuid.New(), types.NewMonth(2025, 3), decimal.NewFromFloat(5000))
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestGetMonthlyIncomeUnset() {
	user := suite.createTestUser(models.User{})

	_, err := models.GetMonthlyIncome(models.DB, user.ID, types.NewMonth(2025, 4))
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestIncomeAmountDefaultsToZero() {
	user := suite.createTestUser(models.User{})

	// An unset income is a valid state reporting zero, not an error
	amount, err := models.IncomeAmount(models.DB, user.ID, types.NewMonth(2025, 4))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), amount.IsZero())
}

func (suite *TestSuiteStandard) TestMonthlyIncomeScopedToMonth() {
	user := suite.createTestUser(models.User{})

	_, err := models.SetMonthlyIncome(models.DB, user.ID, types.NewMonth(2025, 3), decimal.NewFromFloat(5000))
	require.Nil(suite.T(), err)

	income, err := models.GetMonthlyIncome(models.DB, user.ID, types.NewMonth(2025, 3))
	require.Nil(suite.T(), err)
	assert.True(suite.T(), income.Amount.Equal(decimal.NewFromFloat(5000)))

	_, err = models.GetMonthlyIncome(models.DB, user.ID, types.NewMonth(2025, 4))
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}
