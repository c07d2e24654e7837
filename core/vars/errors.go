package vars

import "errors"

var (
	// ErrDuplicateName is returned when a variable name is already in use.
	ErrDuplicateName = errors.New("variable already exists")
	// ErrNotFound is returned when a referenced variable doesn't exist.
	ErrNotFound = errors.New("variable does not exist")
	// ErrImmutable is returned when writing to a frozen variable.
	ErrImmutable = errors.New("variable is immutable")
	// ErrTypeMismatch is returned when a value doesn't fit the variable's kind.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrConstruction is returned if no constructor accepted a literal. String
	// construction always succeeds, so seeing this is a programming error.
	ErrConstruction = errors.New("no variable kind accepts value")
)

// Error records a failed variable operation, similar to os.PathError.
type Error struct {
	Op   string
	Name string
	Err  error
}

func (e *Error) Error() string {
	return e.Op + " " + e.Name + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, name string, err error) error {
	return &Error{Op: op, Name: name, Err: err}
}
