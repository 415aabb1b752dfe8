package models_test

import (
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCreateGroupTrimsName() {
	owner := suite.createTestUser(models.User{})

	group, err := models.CreateGroup(models.DB, " Household ", owner.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), "Household", group.Name)
}

func (suite *TestSuiteStandard) TestCreateGroupOwnerIsAcceptedMember() {
	owner := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	members, err := group.Members(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), members, 1)
	assert.Equal(suite.T(), owner.ID, members[0].UserID)
	assert.Equal(suite.T(), models.MemberRoleOwner, members[0].Role)
	assert.Equal(suite.T(), models.MemberStatusAccepted, members[0].Status)
}

func (suite *TestSuiteStandard) TestCreateGroupUnknownOwner() {
	_, err := models.CreateGroup(models.DB, "Household", uuid.New())
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestInviteMemberRequiresAcceptedInviter() {
	owner := suite.createTestUser(models.User{})
	outsider := suite.createTestUser(models.User{})
	invitee := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	// A user without any membership cannot invite
	_, err := models.InviteMember(models.DB, group.ID, invitee.ID, outsider.ID)
	assert.ErrorIs(suite.T(), err, models.ErrNotAuthorized)

	// An invited but not yet accepted member cannot invite either
	_, err = models.InviteMember(models.DB, group.ID, outsider.ID, owner.ID)
	require.Nil(suite.T(), err)

	_, err = models.InviteMember(models.DB, group.ID, invitee.ID, outsider.ID)
	assert.ErrorIs(suite.T(), err, models.ErrNotAuthorized)
}

func (suite *TestSuiteStandard) TestInviteMemberDuplicate() {
	owner := suite.createTestUser(models.User{})
	invitee := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	_, err := models.InviteMember(models.DB, group.ID, invitee.ID, owner.ID)
	require.Nil(suite.T(), err)

	// A second invitation for the same user cannot be created
	_, err = models.InviteMember(models.DB, group.ID, invitee.ID, owner.ID)
	assert.ErrorIs(suite.T(), err, models.ErrMembershipExists)

	// The same holds once the invitation is accepted
	_, err = models.AcceptInvitation(models.DB, group.ID, invitee.ID)
	require.Nil(suite.T(), err)

	_, err = models.InviteMember(models.DB, group.ID, invitee.ID, owner.ID)
	assert.ErrorIs(suite.T(), err, models.ErrMembershipExists)
}

func (suite *TestSuiteStandard) TestAcceptInvitation() {
	owner := suite.createTestUser(models.User{})
	invitee := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	invitation, err := models.InviteMember(models.DB, group.ID, invitee.ID, owner.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), models.MemberStatusInvited, invitation.Status)

	member, err := models.AcceptInvitation(models.DB, group.ID, invitee.ID)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), invitation.ID, member.ID)

	var reloaded models.GroupMember
	require.Nil(suite.T(), models.DB.First(&reloaded, member.ID).Error)
	assert.Equal(suite.T(), models.MemberStatusAccepted, reloaded.Status)
	assert.Equal(suite.T(), models.MemberRoleMember, reloaded.Role)
}

func (suite *TestSuiteStandard) TestAcceptInvitationWithoutInvitation() {
	owner := suite.createTestUser(models.User{})
	user := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	_, err := models.AcceptInvitation(models.DB, group.ID, user.ID)
	assert.ErrorIs(suite.T(), err, models.ErrInvitationNotFound)

	// Accepting twice does not work, the invitation is gone
	suite.createTestMembership(group.ID, user.ID, owner.ID)
	_, err = models.AcceptInvitation(models.DB, group.ID, user.ID)
	assert.ErrorIs(suite.T(), err, models.ErrInvitationNotFound)
}

func (suite *TestSuiteStandard) TestRemoveMemberOwnerOnly() {
	owner := suite.createTestUser(models.User{})
	member := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	membership := suite.createTestMembership(group.ID, member.ID, owner.ID)
	suite.createTestMembership(group.ID, other.ID, owner.ID)

	// An accepted non-owner member cannot remove anyone
	err := models.RemoveMember(models.DB, group.ID, membership.ID, other.ID)
	assert.ErrorIs(suite.T(), err, models.ErrNotAuthorized)

	err = models.RemoveMember(models.DB, group.ID, membership.ID, owner.ID)
	require.Nil(suite.T(), err)

	members, err := group.Members(models.DB)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), members, 2)
}

func (suite *TestSuiteStandard) TestRemoveMemberAllowsReinvite() {
	owner := suite.createTestUser(models.User{})
	member := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	membership := suite.createTestMembership(group.ID, member.ID, owner.ID)
	require.Nil(suite.T(), models.RemoveMember(models.DB, group.ID, membership.ID, owner.ID))

	// The removed user can be invited again
	_, err := models.InviteMember(models.DB, group.ID, member.ID, owner.ID)
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestRemoveMemberNotFound() {
	owner := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	err := models.RemoveMember(models.DB, group.ID, uuid.New(), owner.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	err = models.RemoveMember(models.DB, uuid.New(), uuid.New(), owner.ID)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestUserGroups() {
	owner := suite.createTestUser(models.User{})
	user := suite.createTestUser(models.User{})

	accepted := suite.createTestGroup("Beta", owner.ID)
	invitedOnly := suite.createTestGroup("Alpha", owner.ID)
	suite.createTestGroup("Unrelated", owner.ID)

	suite.createTestMembership(accepted.ID, user.ID, owner.ID)
	_, err := models.InviteMember(models.DB, invitedOnly.ID, user.ID, owner.ID)
	require.Nil(suite.T(), err)

	// Only accepted memberships count
	groups, err := models.UserGroups(models.DB, user.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), groups, 1)
	assert.Equal(suite.T(), accepted.ID, groups[0].ID)

	// The owner is an accepted member of all their groups, sorted by name
	groups, err = models.UserGroups(models.DB, owner.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), groups, 3)
	assert.Equal(suite.T(), "Alpha", groups[0].Name)
}

func (suite *TestSuiteStandard) TestUserGroupsEmpty() {
	user := suite.createTestUser(models.User{})

	groups, err := models.UserGroups(models.DB, user.ID)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), groups, 0)
}

func (suite *TestSuiteStandard) TestUserInvitations() {
	owner := suite.createTestUser(models.User{})
	user := suite.createTestUser(models.User{})

	open := suite.createTestGroup("Open", owner.ID)
	done := suite.createTestGroup("Done", owner.ID)

	_, err := models.InviteMember(models.DB, open.ID, user.ID, owner.ID)
	require.Nil(suite.T(), err)
	suite.createTestMembership(done.ID, user.ID, owner.ID)

	invitations, err := models.UserInvitations(models.DB, user.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), invitations, 1)
	assert.Equal(suite.T(), open.ID, invitations[0].GroupID)
}

func (suite *TestSuiteStandard) TestGroupCommitmentsRequiresMembership() {
	owner := suite.createTestUser(models.User{})
	outsider := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	_, err := models.GroupCommitments(models.DB, group.ID, outsider.ID, types.Month{})
	assert.ErrorIs(suite.T(), err, models.ErrNotAuthorized)

	// An open invitation is not enough
	_, err = models.InviteMember(models.DB, group.ID, outsider.ID, owner.ID)
	require.Nil(suite.T(), err)

	_, err = models.GroupCommitments(models.DB, group.ID, outsider.ID, types.Month{})
	assert.ErrorIs(suite.T(), err, models.ErrNotAuthorized)
}

func (suite *TestSuiteStandard) TestGroupCommitmentsReconciled() {
	owner := suite.createTestUser(models.User{})
	member := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)
	suite.createTestMembership(group.ID, member.ID, owner.ID)

	month := types.NewMonth(2025, 3)

	shared := suite.createTestCommitment(models.Commitment{
		UserID:  owner.ID,
		Title:   "Internet",
		Amount:  decimal.NewFromFloat(49.99),
		Shared:  true,
		GroupID: &group.ID,
	})

	// Personal commitments of the owner never show up in the group view
	suite.createTestCommitment(models.Commitment{
		UserID: owner.ID,
		Title:  "Gym",
		Amount: decimal.NewFromFloat(30),
	})

	_, err := models.MarkPaid(models.DB, shared.ID, member.ID, month, decimal.NewFromFloat(49.99))
	require.Nil(suite.T(), err)

	commitments, err := models.GroupCommitments(models.DB, group.ID, member.ID, month)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), commitments, 1)
	assert.True(suite.T(), commitments[0].IsPaid)
	assert.True(suite.T(), commitments[0].AmountPaid.Equal(decimal.NewFromFloat(49.99)))
}

func (suite *TestSuiteStandard) TestGroupCommitmentsWithoutMonth() {
	owner := suite.createTestUser(models.User{})
	group := suite.createTestGroup("Household", owner.ID)

	shared := suite.createTestCommitment(models.Commitment{
		UserID:  owner.ID,
		Title:   "Internet",
		Amount:  decimal.NewFromFloat(49.99),
		Shared:  true,
		GroupID: &group.ID,
	})

	_, err := models.MarkPaid(models.DB, shared.ID, owner.ID, types.NewMonth(2025, 3), decimal.NewFromFloat(49.99))
	require.Nil(suite.T(), err)
	_, err = models.MarkPaid(models.DB, shared.ID, owner.ID, types.NewMonth(2025, 4), decimal.NewFromFloat(49.99))
	require.Nil(suite.T(), err)

	// Without a month the raw payment history is returned instead of a
	// reconciled status
	commitments, err := models.GroupCommitments(models.DB, group.ID, owner.ID, types.Month{})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), commitments, 1)
	assert.False(suite.T(), commitments[0].IsPaid)
	assert.Len(suite.T(), commitments[0].Payments, 2)
}
