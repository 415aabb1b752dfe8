package v1

import (
	"fmt"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GroupEditable represents all user configurable parameters
type GroupEditable struct {
	Name    string    `json:"name" example:"Household" default:""`                    // Name of the group
	OwnerID uuid.UUID `json:"ownerId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"` // ID of the user owning the group
}

type GroupLinks struct {
	Self        string `json:"self" example:"https://example.com/v1/groups/2f76c6b6-c8b6-4e31-ae4f-1fae9d1b4d81"`             // The group itself
	Commitments string `json:"commitments" example:"https://example.com/v1/groups/2f76c6b6-c8b6-4e31-ae4f-1fae9d1b4d81/commitments"` // Shared commitments of this group
}

type Group struct {
	models.DefaultModel
	GroupEditable
	Links GroupLinks `json:"links"`

	// These fields are computed
	Members []GroupMember `json:"members"` // Membership list of the group
}

func newGroup(c *gin.Context, model models.Group, members []models.GroupMember) Group {
	url := httputil.RequestPathV1(c)

	group := Group{
		DefaultModel: model.DefaultModel,
		GroupEditable: GroupEditable{
			Name:    model.Name,
			OwnerID: model.OwnerID,
		},
		Links: GroupLinks{
			Self:        fmt.Sprintf("%s/groups/%s", url, model.ID),
			Commitments: fmt.Sprintf("%s/groups/%s/commitments", url, model.ID),
		},
		Members: make([]GroupMember, 0, len(members)),
	}

	for _, member := range members {
		group.Members = append(group.Members, newGroupMember(member))
	}

	return group
}

type GroupMember struct {
	models.DefaultModel
	GroupID uuid.UUID `json:"groupId" example:"2f76c6b6-c8b6-4e31-ae4f-1fae9d1b4d81"` // ID of the group
	UserID  uuid.UUID `json:"userId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"`  // ID of the member
	Role    string    `json:"role" example:"member"`                                  // Either "owner" or "member"
	Status  string    `json:"status" example:"accepted"`                              // Either "invited" or "accepted"
}

func newGroupMember(model models.GroupMember) GroupMember {
	return GroupMember{
		DefaultModel: model.DefaultModel,
		GroupID:      model.GroupID,
		UserID:       model.UserID,
		Role:         model.Role,
		Status:       model.Status,
	}
}

type GroupResponse struct {
	Data  *Group  `json:"data"`                                                          // The group
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GroupListResponse struct {
	Data  []Group `json:"data"`                                                          // List of groups
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GroupMemberResponse struct {
	Data  *GroupMember `json:"data"`                                                          // The membership
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GroupMemberListResponse struct {
	Data  []GroupMember `json:"data"`                                                          // List of memberships
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// GroupCommitment is a shared commitment of a group. The reconciliation
// fields are only set when the listing was requested for a month, otherwise
// the raw payment history is included.
type GroupCommitment struct {
	MonthCommitment
	Payments []Payment `json:"payments,omitempty"` // Raw payment history for listings without a month
}

func newGroupCommitment(c *gin.Context, model models.CommitmentWithStatus) GroupCommitment {
	commitment := GroupCommitment{
		MonthCommitment: newMonthCommitment(c, model),
	}

	for _, payment := range model.Payments {
		commitment.Payments = append(commitment.Payments, newPayment(payment))
	}

	return commitment
}

type GroupCommitmentListResponse struct {
	Data  []GroupCommitment `json:"data"`                                                          // Shared commitments of the group
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// InviteEditable is the request body for an invitation.
type InviteEditable struct {
	GroupID   uuid.UUID `json:"groupId" example:"2f76c6b6-c8b6-4e31-ae4f-1fae9d1b4d81"`   // ID of the group
	UserID    uuid.UUID `json:"userId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"`    // ID of the user to invite
	InvitedBy uuid.UUID `json:"invitedBy" example:"8a6b9d57-08ec-4a4f-b093-c6d68d8a8e4f"` // ID of the inviting user, must be an accepted member
}

// AcceptEditable is the request body for accepting an invitation.
type AcceptEditable struct {
	GroupID uuid.UUID `json:"groupId" example:"2f76c6b6-c8b6-4e31-ae4f-1fae9d1b4d81"` // ID of the group
	UserID  uuid.UUID `json:"userId" example:"d1b9a83a-7cd7-4b83-ba45-d26d1e5eab4b"`  // ID of the invited user
}
