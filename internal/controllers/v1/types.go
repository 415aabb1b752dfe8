package v1

import (
	"github.com/finsync/backend/internal/types"
	fs_uuid "github.com/finsync/backend/internal/uuid"
)

type URIID struct {
	ID fs_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIMonth struct {
	URIID
	Month types.Month `uri:"month" binding:"required" example:"2025-03"` // Year and month in YYYY-MM format
}

type URIUserID struct {
	UserID fs_uuid.UUID `uri:"userId" binding:"required" format:"UUID"` // ID of the user
}

type URIUserMonth struct {
	URIUserID
	Month types.Month `uri:"month" binding:"required" example:"2025-03"` // Year and month in YYYY-MM format
}
