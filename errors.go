package taskspace

import (
	"errors"
	"fmt"
)

// Sentinel errors for the scheduler's three error kinds. Allocation failure
// is never panicked: it is a normal, recoverable outcome that spawn reports
// as a null Future, not as an error value, so no function in this package
// returns ErrPoolExhausted itself. ErrMisuse and
// ErrTypeIncompatible back panics at points a contract violation is
// considered fatal rather than recoverable; they are still
// errors.Is-comparable because the panic value wraps them.
var (
	ErrPoolExhausted    = errors.New("taskspace: memory pool exhausted")
	ErrMisuse           = errors.New("taskspace: contract violation")
	ErrTypeIncompatible = errors.New("taskspace: future type/execution-space mismatch")
)

func misuse(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMisuse, fmt.Sprintf(format, args...))
}

func typeIncompatible(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTypeIncompatible, fmt.Sprintf(format, args...))
}
