package schema

import "fmt"

// Failure is the single diagnostic reported for a rejected payload.
type Failure struct {
	Status    int
	Code      Code
	Key       string   // offending key; empty for MISSING_REQUIRED_PARAM
	Keys      []string // keys listed by MISSING_REQUIRED_PARAM
	Offenders []any    // offending values or elements
	Message   string
}

func (f *Failure) String() string {
	return fmt.Sprintf("%d %s: %s", f.Status, f.Code, f.Message)
}

// Result is the outcome of validating a payload: either OK or a Failure.
// The zero value is OK.
type Result struct {
	failure *Failure
}

// Ok returns a passing result.
func Ok() Result { return Result{} }

// Fail wraps f into a failing result.
func Fail(f *Failure) Result { return Result{failure: f} }

// OK reports whether the payload passed.
func (r Result) OK() bool { return r.failure == nil }

// Failure returns the diagnostic of a failing result.
func (r Result) Failure() (*Failure, bool) {
	return r.failure, r.failure != nil
}

// StatusCode returns 200 for a passing result and the failure status otherwise.
func (r Result) StatusCode() int {
	if r.failure == nil {
		return StatusOK
	}
	return r.failure.Status
}

// Code returns the diagnostic code, or "" when the result passed.
func (r Result) Code() Code {
	if r.failure == nil {
		return ""
	}
	return r.failure.Code
}

// Message returns the diagnostic message, or "" when the result passed.
func (r Result) Message() string {
	if r.failure == nil {
		return ""
	}
	return r.failure.Message
}

func (r Result) String() string {
	if r.failure == nil {
		return "200 OK"
	}
	return r.failure.String()
}
