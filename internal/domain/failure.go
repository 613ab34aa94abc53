package domain

// Fixed failure messages shared by every repository operation.
const (
	MsgUnexpectedError = "an unexpected error occurred"
	MsgNullBody        = "response body is null"
)

// Failure is the uniform error shape returned by every fallible repository
// operation. Repositories never return a raw transport or decoding error to
// callers; everything is absorbed into a Failure.
type Failure struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// Error implements the error interface so a Failure can flow through
// error-aware call sites.
func (f *Failure) Error() string {
	return f.Message
}

// UnexpectedFailure is the failure produced when a transport-level error is
// caught at the repository boundary. The underlying detail is logged, never
// surfaced.
func UnexpectedFailure() *Failure {
	return &Failure{Message: MsgUnexpectedError}
}

// NullBodyFailure is the failure produced by strict operations when the
// backend claims success but sends no usable body.
func NullBodyFailure() *Failure {
	return &Failure{Message: MsgNullBody}
}
