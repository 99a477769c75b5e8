package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes.
var (
	// ErrSameStatus: a moderation decision must change the status.
	ErrSameStatus = errors.New("content already has this status")
	// ErrInvalidStatus: moderation may only approve or reject.
	ErrInvalidStatus = errors.New("status must be approved or rejected")
	// ErrNotOwner: the caller does not own the resource.
	ErrNotOwner = errors.New("resource belongs to another account")
	// ErrNotApproved: activation toggles require approved content.
	ErrNotApproved = errors.New("content is not approved")
)
