package imports

import (
	"fmt"

	"beyondbridge/internal/entities"
)

// DuplicateError indicates a host artifact for the provider id already
// exists and the run was started without the overwrite flag. The existing
// artifact is left untouched.
type DuplicateError struct {
	Kind entities.ContentKind
	ID   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists and overwrite is disabled", e.Kind.DisplayName())
}
