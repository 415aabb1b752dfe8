package v1

import (
	"net/http"

	"github.com/finsync/backend/internal/httputil"
	"github.com/finsync/backend/internal/models"
	"github.com/finsync/backend/internal/types"
	fs_uuid "github.com/finsync/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

// RegisterGroupRoutes registers the routes for groups with
// the RouterGroup that is passed.
func RegisterGroupRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsGroupList)
		r.POST("", CreateGroup)
	}

	// Invitation lifecycle
	{
		r.OPTIONS("/invite", OptionsGroupInvite)
		r.POST("/invite", InviteGroupMember)
		r.OPTIONS("/accept", OptionsGroupAccept)
		r.POST("/accept", AcceptGroupInvitation)
		r.OPTIONS("/invitations/:userId", OptionsGroupInvitations)
		r.GET("/invitations/:userId", GetGroupInvitations)
	}

	// Per-user group list
	{
		r.OPTIONS("/user/:userId", OptionsGroupUser)
		r.GET("/user/:userId", GetUserGroups)
	}

	// Group with ID
	{
		r.OPTIONS("/:id", OptionsGroupDetail)
		r.GET("/:id", GetGroup)
		r.OPTIONS("/:id/commitments", OptionsGroupCommitments)
		r.GET("/:id/commitments", GetGroupCommitments)
		r.OPTIONS("/:id/members/:memberId", OptionsGroupMember)
		r.DELETE("/:id/members/:memberId", RemoveGroupMember)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Router			/v1/groups [options]
func OptionsGroupList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groups/{id} [options]
func OptionsGroupDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Group{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Router			/v1/groups/invite [options]
func OptionsGroupInvite(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Router			/v1/groups/accept [options]
func OptionsGroupAccept(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400		{object}	httpError
// @Param			userId	path		string	true	"ID of the user"
// @Router			/v1/groups/invitations/{userId} [options]
func OptionsGroupInvitations(c *gin.Context) {
	var uri URIUserID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400		{object}	httpError
// @Param			userId	path		string	true	"ID of the user"
// @Router			/v1/groups/user/{userId} [options]
func OptionsGroupUser(c *gin.Context) {
	var uri URIUserID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groups/{id}/commitments [options]
func OptionsGroupCommitments(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Group{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Groups
// @Success		204
// @Failure		400			{object}	httpError
// @Param			id			path		string	true	"ID of the group"
// @Param			memberId	path		string	true	"ID of the membership"
// @Router			/v1/groups/{id}/members/{memberId} [options]
func OptionsGroupMember(c *gin.Context) {
	var uri URIGroupMember
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Create group
// @Description	Creates a new group. The owner is added as an accepted member with the owner role in the same transaction.
// @Tags			Groups
// @Produce		json
// @Success		201		{object}	GroupResponse
// @Failure		400		{object}	GroupResponse
// @Failure		404		{object}	GroupResponse
// @Failure		500		{object}	GroupResponse
// @Param			group	body		GroupEditable	true	"Group"
// @Router			/v1/groups [post]
func CreateGroup(c *gin.Context) {
	var editable GroupEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	group, err := models.CreateGroup(models.DB, editable.Name, editable.OwnerID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	members, err := group.Members(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	data := newGroup(c, group, members)
	c.JSON(http.StatusCreated, GroupResponse{Data: &data})
}

// @Summary		Get group
// @Description	Returns a specific group with its membership list
// @Tags			Groups
// @Produce		json
// @Success		200	{object}	GroupResponse
// @Failure		400	{object}	GroupResponse
// @Failure		404	{object}	GroupResponse
// @Failure		500	{object}	GroupResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/groups/{id} [get]
func GetGroup(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	var group models.Group
	err = models.DB.First(&group, uri.ID).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	members, err := group.Members(models.DB)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupResponse{Error: &e})
		return
	}

	data := newGroup(c, group, members)
	c.JSON(http.StatusOK, GroupResponse{Data: &data})
}

// @Summary		Get groups of a user
// @Description	Returns all groups the user is an accepted member of
// @Tags			Groups
// @Produce		json
// @Success		200		{object}	GroupListResponse
// @Failure		400		{object}	GroupListResponse
// @Failure		500		{object}	GroupListResponse
// @Param			userId	path		string	true	"ID of the user"
// @Router			/v1/groups/user/{userId} [get]
func GetUserGroups(c *gin.Context) {
	var uri URIUserID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupListResponse{Error: &e})
		return
	}

	groups, err := models.UserGroups(models.DB, uri.UserID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupListResponse{Error: &e})
		return
	}

	data := make([]Group, 0, len(groups))
	for _, group := range groups {
		members, err := group.Members(models.DB)
		if err != nil {
			e := err.Error()
			c.JSON(status(err), GroupListResponse{Error: &e})
			return
		}

		data = append(data, newGroup(c, group, members))
	}

	c.JSON(http.StatusOK, GroupListResponse{Data: data})
}

// @Summary		Invite member
// @Description	Invites a user to a group. The inviting user must be an accepted member of the group.
// @Tags			Groups
// @Produce		json
// @Success		201			{object}	GroupMemberResponse
// @Failure		400			{object}	GroupMemberResponse
// @Failure		403			{object}	GroupMemberResponse
// @Failure		500			{object}	GroupMemberResponse
// @Param			invitation	body		InviteEditable	true	"Invitation"
// @Router			/v1/groups/invite [post]
func InviteGroupMember(c *gin.Context) {
	var editable InviteEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupMemberResponse{Error: &e})
		return
	}

	member, err := models.InviteMember(models.DB, editable.GroupID, editable.UserID, editable.InvitedBy)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupMemberResponse{Error: &e})
		return
	}

	data := newGroupMember(member)
	c.JSON(http.StatusCreated, GroupMemberResponse{Data: &data})
}

// @Summary		Accept invitation
// @Description	Accepts an open invitation, transitioning the membership to accepted
// @Tags			Groups
// @Produce		json
// @Success		200			{object}	GroupMemberResponse
// @Failure		400			{object}	GroupMemberResponse
// @Failure		404			{object}	GroupMemberResponse
// @Failure		500			{object}	GroupMemberResponse
// @Param			invitation	body		AcceptEditable	true	"Invitation"
// @Router			/v1/groups/accept [post]
func AcceptGroupInvitation(c *gin.Context) {
	var editable AcceptEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupMemberResponse{Error: &e})
		return
	}

	member, err := models.AcceptInvitation(models.DB, editable.GroupID, editable.UserID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupMemberResponse{Error: &e})
		return
	}

	data := newGroupMember(member)
	c.JSON(http.StatusOK, GroupMemberResponse{Data: &data})
}

// @Summary		Get invitations
// @Description	Returns all open invitations for a user
// @Tags			Groups
// @Produce		json
// @Success		200		{object}	GroupMemberListResponse
// @Failure		400		{object}	GroupMemberListResponse
// @Failure		500		{object}	GroupMemberListResponse
// @Param			userId	path		string	true	"ID of the user"
// @Router			/v1/groups/invitations/{userId} [get]
func GetGroupInvitations(c *gin.Context) {
	var uri URIUserID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupMemberListResponse{Error: &e})
		return
	}

	invitations, err := models.UserInvitations(models.DB, uri.UserID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupMemberListResponse{Error: &e})
		return
	}

	data := make([]GroupMember, 0, len(invitations))
	for _, invitation := range invitations {
		data = append(data, newGroupMember(invitation))
	}

	c.JSON(http.StatusOK, GroupMemberListResponse{Data: data})
}

// @Summary		Get group commitments
// @Description	Returns the shared commitments of a group. With a month in the query string each commitment is reconciled against that month, without one the raw payment history is included. The requesting user must be an accepted member of the group.
// @Tags			Groups
// @Produce		json
// @Success		200		{object}	GroupCommitmentListResponse
// @Failure		400		{object}	GroupCommitmentListResponse
// @Failure		403		{object}	GroupCommitmentListResponse
// @Failure		500		{object}	GroupCommitmentListResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			userId	query		string	true	"ID of the requesting user"
// @Param			month	query		string	false	"The month in YYYY-MM format"
// @Router			/v1/groups/{id}/commitments [get]
func GetGroupCommitments(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupCommitmentListResponse{Error: &e})
		return
	}

	var query GroupCommitmentQuery
	err = c.ShouldBindQuery(&query)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupCommitmentListResponse{Error: &e})
		return
	}

	commitments, err := models.GroupCommitments(models.DB, uri.ID.UUID, query.UserID.UUID, query.Month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), GroupCommitmentListResponse{Error: &e})
		return
	}

	data := make([]GroupCommitment, 0, len(commitments))
	for _, commitment := range commitments {
		data = append(data, newGroupCommitment(c, commitment))
	}

	c.JSON(http.StatusOK, GroupCommitmentListResponse{Data: data})
}

// @Summary		Remove member
// @Description	Removes a member from a group. Only the group owner may remove members.
// @Tags			Groups
// @Success		204
// @Failure		400			{object}	httpError
// @Failure		403			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		string	true	"ID of the group"
// @Param			memberId	path		string	true	"ID of the membership to remove"
// @Param			requesterId	query		string	true	"ID of the requesting user"
// @Router			/v1/groups/{id}/members/{memberId} [delete]
func RemoveGroupMember(c *gin.Context) {
	var uri URIGroupMember
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var query RemoveMemberQuery
	err = c.ShouldBindQuery(&query)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if query.RequesterID.UUID == fs_uuid.Nil.UUID {
		c.JSON(http.StatusBadRequest, httpError{Error: errRequesterIDParameter.Error()})
		return
	}

	err = models.RemoveMember(models.DB, uri.ID.UUID, uri.MemberID.UUID, query.RequesterID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// URIGroupMember identifies one membership of one group.
type URIGroupMember struct {
	URIID
	MemberID fs_uuid.UUID `uri:"memberId" binding:"required" format:"UUID"` // ID of the membership
}

// GroupCommitmentQuery is the query string for the group commitment listing.
type GroupCommitmentQuery struct {
	UserID fs_uuid.UUID `form:"userId"` // ID of the requesting user
	Month  types.Month  `form:"month"`  // Month to reconcile against, optional
}

// RemoveMemberQuery is the query string for removing a member.
type RemoveMemberQuery struct {
	RequesterID fs_uuid.UUID `form:"requesterId"` // ID of the requesting user
}
