package data

import "errors"

// ErrNilDB is returned by repositories constructed without a database handle.
var ErrNilDB = errors.New("data: database handle is nil")
