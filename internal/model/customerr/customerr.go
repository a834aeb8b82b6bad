package customerr

import "errors"

// NotFoundError means no record matched an (id, owner) pair. It is a normal
// outcome, produced identically whether the record is absent or owned by
// someone else.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
