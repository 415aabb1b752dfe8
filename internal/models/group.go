package models

import (
	"errors"
	"strings"

	"github.com/finsync/backend/internal/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Membership roles and statuses.
//
// An invitation is a two-step lifecycle: a member is created as invited and
// becomes accepted only by an explicit action of the invitee. There is no
// declined state, the absence of acceptance is the only negative signal.
const (
	MemberRoleOwner  = "owner"
	MemberRoleMember = "member"

	MemberStatusInvited  = "invited"
	MemberStatusAccepted = "accepted"
)

// Group is a set of users that can share commitments with each other.
type Group struct {
	DefaultModel
	Name    string
	Owner   User      `json:"-"`
	OwnerID uuid.UUID // OwnerID is the single source of truth for ownership checks
}

// BeforeSave trims whitespace from all strings
func (g *Group) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	return nil
}

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Group)
	return tx.First(&User{}, toSave.OwnerID).Error
}

// GroupMember is the membership of one user in one group.
type GroupMember struct {
	DefaultModel
	Group   Group     `json:"-"`
	GroupID uuid.UUID `gorm:"uniqueIndex:member_group_user"`
	User    User      `json:"-"`
	UserID  uuid.UUID `gorm:"uniqueIndex:member_group_user"`
	Role    string    `gorm:"default:member"`
	Status  string    `gorm:"default:invited"`
}

// BeforeSave validates role and status.
func (m *GroupMember) BeforeSave(_ *gorm.DB) error {
	if m.Role == "" {
		m.Role = MemberRoleMember
	}
	if m.Status == "" {
		m.Status = MemberStatusInvited
	}

	if m.Role != MemberRoleOwner && m.Role != MemberRoleMember {
		return ErrMemberRoleInvalid
	}

	if m.Status != MemberStatusInvited && m.Status != MemberStatusAccepted {
		return ErrMemberStatusInvalid
	}

	return nil
}

// CreateGroup creates a group and inserts the owner as an accepted,
// role=owner member in the same transaction. The owner is never left
// outside their own group's membership list.
func CreateGroup(db *gorm.DB, name string, ownerID uuid.UUID) (Group, error) {
	group := Group{Name: name, OwnerID: ownerID}

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&group).Error
		if err != nil {
			return err
		}

		return tx.Create(&GroupMember{
			GroupID: group.ID,
			UserID:  ownerID,
			Role:    MemberRoleOwner,
			Status:  MemberStatusAccepted,
		}).Error
	})
	if err != nil {
		return Group{}, err
	}

	return group, nil
}

// InviteMember invites a user to a group.
//
// The inviter must be an accepted member of the group. A user with any
// existing membership row, invited or accepted, cannot be invited again.
func InviteMember(db *gorm.DB, groupID, userID, invitedBy uuid.UUID) (GroupMember, error) {
	accepted, err := isAcceptedMember(db, groupID, invitedBy)
	if err != nil {
		return GroupMember{}, err
	}
	if !accepted {
		return GroupMember{}, ErrNotAuthorized
	}

	var count int64
	err = db.Model(&GroupMember{}).
		Where(&GroupMember{GroupID: groupID, UserID: userID}).
		Count(&count).Error
	if err != nil {
		return GroupMember{}, err
	}
	if count > 0 {
		return GroupMember{}, ErrMembershipExists
	}

	member := GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    MemberRoleMember,
		Status:  MemberStatusInvited,
	}

	err = db.Create(&member).Error
	if err != nil {
		return GroupMember{}, err
	}

	return member, nil
}

// AcceptInvitation transitions an invited membership to accepted.
// It fails when no open invitation exists for the user and group.
func AcceptInvitation(db *gorm.DB, groupID, userID uuid.UUID) (GroupMember, error) {
	var member GroupMember
	err := db.Where(&GroupMember{GroupID: groupID, UserID: userID, Status: MemberStatusInvited}).First(&member).Error
	if errors.Is(err, ErrResourceNotFound) {
		return GroupMember{}, ErrInvitationNotFound
	}
	if err != nil {
		return GroupMember{}, err
	}

	err = db.Model(&member).Select("Status").Updates(GroupMember{Status: MemberStatusAccepted}).Error
	if err != nil {
		return GroupMember{}, err
	}

	return member, nil
}

// RemoveMember deletes a membership row outright.
//
// Only the group owner may remove members. Ownership is checked against
// Group.OwnerID, not the role field, so an edited role can never grant
// removal rights.
func RemoveMember(db *gorm.DB, groupID, memberID, requesterID uuid.UUID) error {
	var group Group
	err := db.First(&group, groupID).Error
	if err != nil {
		return err
	}

	if group.OwnerID != requesterID {
		return ErrNotAuthorized
	}

	var member GroupMember
	err = db.Where(&GroupMember{GroupID: groupID}).First(&member, memberID).Error
	if err != nil {
		return err
	}

	// Hard delete so that the unique index allows inviting the user again
	return db.Unscoped().Delete(&member).Error
}

// UserGroups returns all groups the user is an accepted member of.
func UserGroups(db *gorm.DB, userID uuid.UUID) ([]Group, error) {
	groupIDs, err := AcceptedGroupIDs(db, userID)
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0)
	if len(groupIDs) == 0 {
		return groups, nil
	}

	err = db.Where("id IN ?", groupIDs).Order("name ASC").Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// UserInvitations returns all open invitations for the user.
func UserInvitations(db *gorm.DB, userID uuid.UUID) ([]GroupMember, error) {
	invitations := make([]GroupMember, 0)
	err := db.Where(&GroupMember{UserID: userID, Status: MemberStatusInvited}).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}

	return invitations, nil
}

// Members returns the membership list of the group.
func (g Group) Members(db *gorm.DB) ([]GroupMember, error) {
	members := make([]GroupMember, 0)
	err := db.Where(&GroupMember{GroupID: g.ID}).Order("created_at ASC").Find(&members).Error
	if err != nil {
		return nil, err
	}

	return members, nil
}

// AcceptedGroupIDs resolves the groups the user is an accepted member of.
// Invited memberships do not count.
func AcceptedGroupIDs(db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	var groupIDs []uuid.UUID
	err := db.Model(&GroupMember{}).
		Where(&GroupMember{UserID: userID, Status: MemberStatusAccepted}).
		Pluck("group_id", &groupIDs).Error
	if err != nil {
		return nil, err
	}

	return groupIDs, nil
}

// GroupCommitments returns the shared commitments of a group, reconciled
// against the month when one is given.
//
// The caller must be an accepted member of the group.
func GroupCommitments(db *gorm.DB, groupID, userID uuid.UUID, month types.Month) ([]CommitmentWithStatus, error) {
	accepted, err := isAcceptedMember(db, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !accepted {
		return nil, ErrNotAuthorized
	}

	var commitments []Commitment
	err = db.Where("group_id = ?", groupID).Where("shared = ?", true).
		Order("created_at DESC").
		Find(&commitments).Error
	if err != nil {
		return nil, err
	}

	// Without a month there is nothing to reconcile against, the raw
	// payment history is included instead
	if month.IsZero() {
		result := make([]CommitmentWithStatus, 0, len(commitments))
		for _, commitment := range commitments {
			payments := make([]CommitmentPayment, 0)
			err := db.Where(&CommitmentPayment{CommitmentID: commitment.ID}).Find(&payments).Error
			if err != nil {
				return nil, err
			}

			result = append(result, CommitmentWithStatus{Commitment: commitment, Payments: payments})
		}
		return result, nil
	}

	return WithPaymentStatus(db, commitments, month)
}

func isAcceptedMember(db *gorm.DB, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&GroupMember{}).
		Where(&GroupMember{GroupID: groupID, UserID: userID, Status: MemberStatusAccepted}).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
