package errors

import "errors"

// ErrOptimisticLock the row was modified by another writer; reload and retry.
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")
