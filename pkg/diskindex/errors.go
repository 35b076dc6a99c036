package diskindex

import "errors"

// ErrAlreadyStarted is returned by SetWorkerCount once Start has run.
var ErrAlreadyStarted = errors.New("indexer already started")

// ErrInvalidThreadCount is returned by SetWorkerCount for a count of 0.
var ErrInvalidThreadCount = errors.New("worker count must be at least 1")
