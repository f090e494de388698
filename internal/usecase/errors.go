package usecase

import "fmt"

// ErrorCode classifies a failed post attempt. INVALID_POST means the draft was
// rejected before publishing, PUBLISH_FAILED means the platform accepted the
// request but returned no post id, and UPSTREAM_ERROR covers any failed call
// to the model or the platform.
type ErrorCode string

const (
	ErrorInvalidPost   ErrorCode = "INVALID_POST"
	ErrorPublishFailed ErrorCode = "PUBLISH_FAILED"
	ErrorUpstream      ErrorCode = "UPSTREAM_ERROR"
)

// Error is returned by PostService.Post. Reason names the step that failed
// (model_error, post_too_long, publish_error, ...). Err, when set, is the
// upstream error exactly as the client returned it.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	return fmt.Sprintf("usecase: %s (%s): %v", e.Code, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}
