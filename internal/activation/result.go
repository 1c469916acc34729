// Package activation recovers nine-group activation codes from OCR text of
// activation dialog screenshots.
package activation

// NotFoundMessage is what callers show when no strategy located a code.
const NotFoundMessage = "Код установки не найден."

// Result is either a located code or NotFound. The zero value is NotFound.
type Result struct {
	code  string
	found bool
}

// Found wraps a located code
func Found(code string) Result {
	return Result{code: code, found: true}
}

// NotFound is the result when no code was located
func NotFound() Result {
	return Result{}
}

// Code returns the located code and true, or "" and false.
func (r Result) Code() (string, bool) {
	return r.code, r.found
}

// IsFound reports whether a code was located
func (r Result) IsFound() bool {
	return r.found
}

// String renders the code, or NotFoundMessage.
func (r Result) String() string {
	if !r.found {
		return NotFoundMessage
	}
	return r.code
}
