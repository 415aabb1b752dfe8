package models

import (
	"errors"
	"fmt"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrNotAuthorized    = errors.New("you are not authorized for this action")
)

// User errors
var ErrUserEmailNotUnique = errors.New("a user with this email already exists")

// Monthly income errors
var (
	ErrIncomeAmountNegative = errors.New("the monthly income must not be negative")
	ErrIncomeMonthNotUnique = errors.New("there is already a monthly income for this user and month")
)

// Commitment errors
var (
	ErrCommitmentTypeInvalid    = errors.New("the commitment type must be either static or dynamic")
	ErrCommitmentGroupNotSet    = errors.New("a shared commitment must reference a group")
	ErrCommitmentNotGroupMember = errors.New("the commitment owner must be an accepted member of the group it is shared with")
	ErrCommitmentImportedShared = errors.New("an imported commitment cannot be shared")
	ErrCommitmentAmountNegative = errors.New("the commitment amount must not be negative")
	ErrDeleteMonthRequired      = errors.New("deleting a single month requires the month parameter")
	ErrDeleteScopeInvalid       = errors.New("the delete scope must be either single or all")
)

// Payment errors
var (
	ErrPaymentAmountNotPositive = errors.New("the payment amount must be larger than zero")
	ErrPaymentMonthNotUnique    = errors.New("there is already a payment for this commitment and month")
)

// Group errors
var (
	ErrMembershipExists    = errors.New("the user is already a member of this group or has been invited")
	ErrInvitationNotFound  = fmt.Errorf("%w open invitation for this user and group", ErrResourceNotFound)
	ErrMemberStatusInvalid = errors.New("the membership status must be either invited or accepted")
	ErrMemberRoleInvalid   = errors.New("the membership role must be either owner or member")
)
