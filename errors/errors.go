package errors

import (
	goerrors "errors"
	"fmt"
)

// Validation failures. They short-circuit before any network call.
var (
	ErrEmptyText       = fmt.Errorf("message text is empty")
	ErrNoActiveChat    = fmt.Errorf("no active chat")
	ErrEmptyGroupName  = fmt.Errorf("group name is empty")
	ErrNoMembers       = fmt.Errorf("group has no members")
	ErrAdminNotMember  = fmt.Errorf("admin must be a group member")
	ErrEmptyEmoji      = fmt.Errorf("reaction emoji is empty")
	ErrMessageNotFound = fmt.Errorf("message not found in current thread")
	ErrMessageRemoved  = fmt.Errorf("message has been removed")
	ErrInvalidCommand  = fmt.Errorf("invalid command")
	ErrUnknownSection  = fmt.Errorf("unknown section")
)

// Transport and response failures.
var (
	ErrTransport         = fmt.Errorf("transport failure")
	ErrUnexpectedStatus  = fmt.Errorf("unexpected status code")
	ErrMalformedResponse = fmt.Errorf("malformed response")
	ErrRequestRejected   = fmt.Errorf("request rejected by server")
)

var (
	ErrStaleResponse = fmt.Errorf("response discarded, active chat changed")
	ErrWorkerPanic   = fmt.Errorf("worker panic")
)

type Category string

const (
	CategoryTransport  Category = "transport"
	CategoryResponse   Category = "response"
	CategoryValidation Category = "validation"
	CategoryUnknown    Category = "unknown"
)

// CategoryOf places err in the client failure taxonomy.
func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case goerrors.Is(err, ErrTransport), goerrors.Is(err, ErrUnexpectedStatus):
		return CategoryTransport
	case goerrors.Is(err, ErrMalformedResponse), goerrors.Is(err, ErrRequestRejected):
		return CategoryResponse
	case goerrors.Is(err, ErrEmptyText), goerrors.Is(err, ErrNoActiveChat),
		goerrors.Is(err, ErrEmptyGroupName), goerrors.Is(err, ErrNoMembers),
		goerrors.Is(err, ErrAdminNotMember), goerrors.Is(err, ErrEmptyEmoji),
		goerrors.Is(err, ErrMessageNotFound), goerrors.Is(err, ErrMessageRemoved),
		goerrors.Is(err, ErrInvalidCommand), goerrors.Is(err, ErrUnknownSection):
		return CategoryValidation
	default:
		return CategoryUnknown
	}
}
