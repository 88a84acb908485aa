package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every expected domain failure. Handlers map kinds
// to status codes; services only ever look at the kind, never the text.
type ErrorKind string

const (
	KindGuardViolation       ErrorKind = "guard_violation"
	KindNotFound             ErrorKind = "not_found"
	KindAlreadyExists        ErrorKind = "already_exists"
	KindUpdateFailed         ErrorKind = "update_failed"
	KindForbidden            ErrorKind = "forbidden"
	KindIncorrectCredentials ErrorKind = "incorrect_credentials"
)

// Error is the one domain error type. It travels inside result.Result
// values; it is never panicked.
type Error struct {
	Kind    ErrorKind
	Entity  string
	Message string
}

func (e *Error) Error() string {
	if e.Entity == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Entity, e.Message)
}

// KindOf extracts the domain kind from an error chain. Errors that did
// not originate in the domain layer (store unreachable, context
// cancelled) report an empty kind.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// Guard violations. Fixed values so tests and callers can compare with
// errors.Is.
var (
	ErrDocumentMissingFileName  = &Error{Kind: KindGuardViolation, Entity: "document", Message: "file name must not be empty"}
	ErrDocumentMissingExtension = &Error{Kind: KindGuardViolation, Entity: "document", Message: "file extension missing for a dotted file name"}
	ErrDocumentMissingFilePath  = &Error{Kind: KindGuardViolation, Entity: "document", Message: "file path must not be empty"}
	ErrTagNameEmpty             = &Error{Kind: KindGuardViolation, Entity: "tag", Message: "tag name must not be empty"}
	ErrTagNameTooLong           = &Error{Kind: KindGuardViolation, Entity: "tag", Message: "tag name must be at most 50 characters"}
	ErrTagInvalidDocumentID     = &Error{Kind: KindGuardViolation, Entity: "tag", Message: "linked document id is not a valid identifier"}
	ErrPermissionTypeEmpty      = &Error{Kind: KindGuardViolation, Entity: "permission", Message: "permission type must not be empty"}
	ErrUsernameEmpty            = &Error{Kind: KindGuardViolation, Entity: "user", Message: "username must not be empty"}
	ErrInvalidUserRole          = &Error{Kind: KindGuardViolation, Entity: "user", Message: "role must be User or Admin"}
	ErrInvalidEmail             = &Error{Kind: KindGuardViolation, Entity: "user", Message: "email address is not valid"}
)

// Authorization and credential failures.
var (
	ErrInvalidPermissionOnDocument = &Error{Kind: KindForbidden, Entity: "document", Message: "requester has no permission on this document"}
	ErrIncorrectCredentials        = &Error{Kind: KindIncorrectCredentials, Entity: "user", Message: "incorrect username or password"}
)

// Lookup, conflict and write failures carry the identifier that missed.

func ErrDocumentNotFound(id string) error {
	return &Error{Kind: KindNotFound, Entity: "document", Message: fmt.Sprintf("no document with id %s", id)}
}

func ErrDocumentAlreadyExists(id string) error {
	return &Error{Kind: KindAlreadyExists, Entity: "document", Message: fmt.Sprintf("document %s already exists", id)}
}

func ErrDocumentUpdateFailed(id string) error {
	return &Error{Kind: KindUpdateFailed, Entity: "document", Message: fmt.Sprintf("update of document %s affected no rows", id)}
}

func ErrTagNotFound(id string) error {
	return &Error{Kind: KindNotFound, Entity: "tag", Message: fmt.Sprintf("no tag with id %s", id)}
}

func ErrTagAlreadyExists(name string) error {
	return &Error{Kind: KindAlreadyExists, Entity: "tag", Message: fmt.Sprintf("tag %q already exists", name)}
}

func ErrTagUpdateFailed(id string) error {
	return &Error{Kind: KindUpdateFailed, Entity: "tag", Message: fmt.Sprintf("update of tag %s affected no rows", id)}
}

func ErrPermissionNotFound(id string) error {
	return &Error{Kind: KindNotFound, Entity: "permission", Message: fmt.Sprintf("no permission with id %s", id)}
}

func ErrPermissionAlreadyExists(id string) error {
	return &Error{Kind: KindAlreadyExists, Entity: "permission", Message: fmt.Sprintf("permission %s already exists", id)}
}

func ErrUserNotFound(key string) error {
	return &Error{Kind: KindNotFound, Entity: "user", Message: fmt.Sprintf("no user matching %s", key)}
}

func ErrUserAlreadyExists(username string) error {
	return &Error{Kind: KindAlreadyExists, Entity: "user", Message: fmt.Sprintf("user %q already exists", username)}
}

func ErrUserUpdateFailed(id string) error {
	return &Error{Kind: KindUpdateFailed, Entity: "user", Message: fmt.Sprintf("update of user %s affected no rows", id)}
}
