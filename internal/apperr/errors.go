package apperr

import "errors"

// ErrNotFound marks lookups of records, Konvolute or entities that do not
// exist in the current snapshot.
var ErrNotFound = errors.New("not found")
