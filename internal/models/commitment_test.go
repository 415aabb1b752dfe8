package models_test

import (
	"strings"
	"time"

	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCommitmentTrimWhitespace() {
	user := suite.createTestUser(models.User{})

	commitment := suite.createTestCommitment(models.Commitment{
		UserID:   user.ID,
		Title:    "  Rent \t",
		Category: " Housing ",
		Amount:   decimal.NewFromFloat(1200),
	})

	assert.Equal(suite.T(), strings.TrimSpace("  Rent \t"), commitment.Title)
	assert.Equal(suite.T(), "Housing", commitment.Category)
}

func (suite *TestSuiteStandard) TestCommitmentTypeDefaultsToStatic() {
	user := suite.createTestUser(models.User{})

	commitment := suite.createTestCommitment(models.Commitment{
		UserID: user.ID,
		Title:  "Netflix",
		Amount: decimal.NewFromFloat(15.99),
	})

	assert.Equal(suite.T(), models.CommitmentTypeStatic, commitment.Type)
}

func (suite *TestSuiteStandard) TestCommitmentTypeInvalid() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Commitment{
		UserID: user.ID,
		Title:  "Rent",
		Amount: decimal.NewFromFloat(1200),
		Type:   "sometimes",
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrCommitmentTypeInvalid)
}

func (suite *TestSuiteStandard) TestCommitmentOwnerMustExist() {
	err := models.DB.Create(&models.Commitment{
		UserID: uuid.New(),
		Title:  "Rent",
		Amount: decimal.NewFromFloat(1200),
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestCommitmentSharedRequiresGroup() {
	user := suite.createTestUser(models.User{})

	err := models.DB.Create(&models.Commitment{
		UserID: user.ID,
		Title:  "Internet",
		Amount: decimal.NewFromFloat(50),
		Shared: true,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrCommitmentGroupNotSet)
}

func (suite *TestSuiteStandard) TestCommitmentSharedRequiresAcceptedMembership() {
	owner := suite.createTestUser(models.User{})
	outsider := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Flat", owner.ID)

	// The outsider is not a member of the group
	err := models.DB.Create(&models.Commitment{
		UserID:  outsider.ID,
		Title:   "Internet",
		Amount:  decimal.NewFromFloat(50),
		Shared:  true,
		GroupID: &group.ID,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCommitmentNotGroupMember)

	// The owner has an accepted membership from group creation
	commitment := suite.createTestCommitment(models.Commitment{
		UserID:  owner.ID,
		Title:   "Internet",
		Amount:  decimal.NewFromFloat(50),
		Shared:  true,
		GroupID: &group.ID,
	})
	assert.True(suite.T(), commitment.Shared)
}

func (suite *TestSuiteStandard) TestCommitmentImportedCannotBeShared() {
	owner := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Flat", owner.ID)

	err := models.DB.Create(&models.Commitment{
		UserID:   owner.ID,
		Title:    "Old rent",
		Amount:   decimal.NewFromFloat(900),
		Shared:   true,
		GroupID:  &group.ID,
		Imported: true,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrCommitmentImportedShared)
}

func (suite *TestSuiteStandard) TestCommitmentsForMonthVisibility() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	personal := suite.createTestCommitment(models.Commitment{
		UserID: user.ID,
		Title:  "Rent",
		Amount: decimal.NewFromFloat(1200),
	})
	suite.createTestCommitment(models.Commitment{
		UserID: other.ID,
		Title:  "Their rent",
		Amount: decimal.NewFromFloat(800),
	})
	suite.createTestCommitment(models.Commitment{
		UserID:   user.ID,
		Title:    "Old bill",
		Amount:   decimal.NewFromFloat(100),
		Imported: true,
	})

	// A filter with no subsets enabled selects nothing, disabling the
	// personal subset is honored
	commitments, err := models.CommitmentsForMonth(models.DB, user.ID, month, models.CommitmentFilter{})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), commitments, 0)

	commitments, err = models.CommitmentsForMonth(models.DB, user.ID, month, models.CommitmentFilter{IncludePersonal: true})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), commitments, 1)
	assert.Equal(suite.T(), personal.ID, commitments[0].ID)

	// The personal commitment is invisible to other users regardless of flags
	commitments, err = models.CommitmentsForMonth(models.DB, other.ID, month, models.CommitmentFilter{
		IncludePersonal: true,
		IncludeShared:   true,
		IncludeImported: true,
	})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), commitments, 1)
	assert.NotEqual(suite.T(), personal.ID, commitments[0].ID)
}

func (suite *TestSuiteStandard) TestCommitmentsForMonthImported() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	suite.createTestCommitment(models.Commitment{
		UserID: user.ID,
		Title:  "Rent",
		Amount: decimal.NewFromFloat(1200),
	})
	imported := suite.createTestCommitment(models.Commitment{
		UserID:   user.ID,
		Title:    "Old bill",
		Amount:   decimal.NewFromFloat(100),
		Imported: true,
	})

	// Imported commitments are excluded from the default view
	commitments, err := models.CommitmentsForMonth(models.DB, user.ID, month, models.CommitmentFilter{IncludePersonal: true})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), commitments, 1)
	assert.NotEqual(suite.T(), imported.ID, commitments[0].ID)

	commitments, err = models.CommitmentsForMonth(models.DB, user.ID, month, models.CommitmentFilter{IncludeImported: true})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), commitments, 1)
	assert.Equal(suite.T(), imported.ID, commitments[0].ID)
}

func (suite *TestSuiteStandard) TestCommitmentsForMonthSharedRequiresAcceptance() {
	owner := suite.createTestUser(models.User{})
	invited := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Flat", owner.ID)
	month := types.NewMonth(2025, 3)

	shared := suite.createTestCommitment(models.Commitment{
		UserID:  owner.ID,
		Title:   "Internet",
		Amount:  decimal.NewFromFloat(50),
		Shared:  true,
		GroupID: &group.ID,
	})

	_, err := models.InviteMember(models.DB, group.ID, invited.ID, owner.ID)
	require.Nil(suite.T(), err)

	// Merely invited members do not see shared commitments
	commitments, err := models.CommitmentsForMonth(models.DB, invited.ID, month, models.CommitmentFilter{IncludeShared: true})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), commitments, 0)

	_, err = models.AcceptInvitation(models.DB, group.ID, invited.ID)
	require.Nil(suite.T(), err)

	commitments, err = models.CommitmentsForMonth(models.DB, invited.ID, month, models.CommitmentFilter{IncludeShared: true})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), commitments, 1)
	assert.Equal(suite.T(), shared.ID, commitments[0].ID)
}

func (suite *TestSuiteStandard) TestDeleteCommitmentCascadesPayments() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 5)

	commitment := suite.createTestCommitment(models.Commitment{
		UserID:    user.ID,
		Title:     "Gym",
		Amount:    decimal.NewFromFloat(30),
		Recurring: true,
	})

	_, err := models.MarkPaid(models.DB, commitment.ID, user.ID, month, decimal.NewFromFloat(30))
	require.Nil(suite.T(), err)

	err = models.DeleteCommitment(models.DB, commitment.ID)
	require.Nil(suite.T(), err)

	// The commitment is absent from every month thereafter
	for _, m := range []types.Month{month, month.AddDate(0, 1)} {
		commitments, err := models.CommitmentsForMonth(models.DB, user.ID, m, models.CommitmentFilter{IncludePersonal: true})
		require.Nil(suite.T(), err)
		assert.Len(suite.T(), commitments, 0)
	}

	var count int64
	err = models.DB.Model(&models.CommitmentPayment{}).Where("commitment_id = ?", commitment.ID).Count(&count).Error
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(0), count)
}

func (suite *TestSuiteStandard) TestDeleteSingleMonthKeepsCommitment() {
	user := suite.createTestUser(models.User{})
	may := types.NewMonth(2025, 5)
	june := types.NewMonth(2025, 6)

	commitment := suite.createTestCommitment(models.Commitment{
		UserID:    user.ID,
		Title:     "Gym",
		Amount:    decimal.NewFromFloat(30),
		Recurring: true,
	})

	_, err := models.MarkPaid(models.DB, commitment.ID, user.ID, may, decimal.NewFromFloat(30))
	require.Nil(suite.T(), err)

	// Deleting with scope=single only removes the payment row for the month
	err = models.MarkUnpaid(models.DB, commitment.ID, may)
	require.Nil(suite.T(), err)

	for _, m := range []types.Month{may, june} {
		commitments, err := models.CommitmentsForMonth(models.DB, user.ID, m, models.CommitmentFilter{IncludePersonal: true})
		require.Nil(suite.T(), err)
		require.Len(suite.T(), commitments, 1)
		assert.False(suite.T(), commitments[0].IsPaid)
	}
}

func (suite *TestSuiteStandard) TestWithPaymentStatusDoesNotWrite() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2025, 3)

	commitment := suite.createTestCommitment(models.Commitment{
		UserID:    user.ID,
		Title:     "Rent",
		Amount:    decimal.NewFromFloat(1200),
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	before := commitment.UpdatedAt
	_, err := models.WithPaymentStatus(models.DB, []models.Commitment{commitment}, month)
	require.Nil(suite.T(), err)

	var reloaded models.Commitment
	require.Nil(suite.T(), models.DB.First(&reloaded, commitment.ID).Error)
	assert.Equal(suite.T(), before, reloaded.UpdatedAt)
}
