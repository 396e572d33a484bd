// Package synerr holds common error objects used across the synthesizer.
// Notably, it contains the Error type, which can be created with one or more
// 'cause' errors. Calling errors.Is() on this Error type with an argument
// consisting of any of the errors it has as a cause will return true.
//
// This package also holds sentinel error values for grammar errors,
// evaluation errors, solver errors, and checkpoint errors. Timeout and
// exhaustion have no sentinel: they are reported as a not-found result, not
// an error. Grammar and checkpoint errors are the ones returned as Go errors
// from this module's public API (the checkpoint entry points can also return
// plain file errors); evaluation failures are represented internally as
// lang.Fail, and solver failures are swallowed and downgrade config.
package synerr

var (
	ErrGrammar    = errorString("the grammar is malformed")
	ErrEval       = errorString("an error occurred evaluating a candidate")
	ErrSolver     = errorString("the equivalence solver failed")
	ErrCheckpoint = errorString("a checkpoint could not be read or written")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// Error is a typed error. It contains both a message explaining what
// happened as well as one or more error values it considers to be its
// causes. Error is compatible with the use of errors.Is() - calling
// errors.Is on some Error value err along with any value of error it holds
// as one of its causes will return true.
//
// Error should not be used directly; call New to create one.
type Error struct {
	msg   string
	cause []error
}

// Error returns the message defined for the Error, concatenated with the
// result of calling Error() on its first cause if one is defined.
func (e Error) Error() string {
	if e.msg == "" && e.cause != nil {
		return e.cause[0].Error()
	}
	if e.cause != nil {
		return e.msg + ": " + e.cause[0].Error()
	}
	return e.msg
}

// Unwrap returns the causes of Error, for use with errors.Is/errors.As.
func (e Error) Unwrap() []error {
	if len(e.cause) > 0 {
		return e.cause
	}
	return nil
}

// New creates a new Error with the given message, along with any errors it
// should wrap as its causes.
func New(msg string, causes ...error) Error {
	err := Error{msg: msg}
	if len(causes) > 0 {
		err.cause = make([]error, len(causes))
		copy(err.cause, causes)
	}
	return err
}
