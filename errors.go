package cogcmp

import (
	"errors"
	"fmt"

	"github.com/cogstack/cogcmp/lib/tabular"
)

// Sentinel errors for component operations.
//
// Concrete failures wrap one of these via %w so callers can classify with
// errors.Is (or the IsXxx helpers) while still reading the full cause chain.
var (
	// ErrUsage marks a malformed call: an unlabeled argument, a reserved
	// argument name, conflicting source locators, or an out-of-range tab
	// index. Never retried; surfaced to the caller immediately.
	ErrUsage = errors.New("cogcmp: invalid usage")

	// ErrMissingDependency marks an absent optional capability, such as a
	// context constructed without a tabular codec receiving a table argument.
	ErrMissingDependency = errors.New("cogcmp: missing dependency")

	// ErrEncoding marks a failed JSON or tabular encoding step. The original
	// cause is attached to the chain.
	ErrEncoding = errors.New("cogcmp: encoding failed")

	// ErrDuplicateComponent marks a registry collision on a
	// module-qualified component name.
	ErrDuplicateComponent = errors.New("cogcmp: component already registered")
)

// IsUsageError reports whether err is a malformed-call error.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUsage)
}

// IsMissingDependency reports whether err stems from an absent optional
// capability.
func IsMissingDependency(err error) bool {
	return errors.Is(err, ErrMissingDependency)
}

// IsEncodingError reports whether err stems from a failed encoding step.
func IsEncodingError(err error) bool {
	return errors.Is(err, ErrEncoding)
}

// usageErrorf builds an ErrUsage with a formatted message.
func usageErrorf(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, a...))
}

// wrapTabularError lifts lib/tabular errors into the package taxonomy.
func wrapTabularError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, tabular.ErrColumnLength) || errors.Is(err, tabular.ErrBadBuffer) {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return err
}
