package service

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindForbidden
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	}
	return "unknown"
}

// Error is a rejection the caller can act on. Anything else returned by a
// service is an unexpected failure.
type Error struct {
	Kind    ErrorKind
	Message string
	// Field names the offending request field for validation errors.
	Field string
}

func (e *Error) Error() string { return e.Message }

// Is matches on kind and message so wrapped sentinels compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func validation(field, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

var (
	ErrUserNotFound         = notFound("User not found")
	ErrOrganizationNotFound = notFound("Organization not found")
	ErrPhotoNotFound        = notFound("Photo not found")
	ErrGalleryNotFound      = notFound("Gallery not found")
	ErrCompetitionNotFound  = notFound("Competition not found")

	ErrNotAdmin          = forbidden("Only organization admins can perform this action")
	ErrNotMember         = forbidden("You must be a member of this organization")
	ErrNotPhotoOwner     = forbidden("You can only modify your own photos")
	ErrNotGalleryOwner   = forbidden("You can only modify your own galleries")
	ErrCannotWithdraw    = forbidden("Only the photo owner or an organization admin can remove this submission")
	ErrCompetitionClosed = validation("competition_id", "Competition is not active")
	ErrLastAdmin         = validation("user_id", "The last admin cannot leave the organization")
	ErrNotSubmitted      = validation("competition_id", "Photo is not submitted to this competition")
	ErrUsernameTaken     = validation("username", "Username is already taken")
	ErrCompetitionNeeded = validation("competition_id", "Competition ID is required for competition ratings")
	ErrInvalidDateRange  = validation("end_date", "End date must not be before start date")
	ErrUploadDisabled    = validation("file", "Uploads are not configured")
)

// KindOf reports the kind of a service error, or 0 for unexpected errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
