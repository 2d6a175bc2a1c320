package services

// Result is the outcome of a command whose failure is a business outcome
// rather than an error, such as registration depending on a confirmation
// email send.
type Result struct {
	Succeeded bool     `json:"succeeded"`
	Errors    []string `json:"errors,omitempty"`
}

// Ok returns a successful Result.
func Ok() Result {
	return Result{Succeeded: true}
}

// Fail returns a failed Result with the given messages.
func Fail(errs ...string) Result {
	return Result{Succeeded: false, Errors: errs}
}
