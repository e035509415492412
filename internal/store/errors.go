package store

import "errors"

// ErrNotFound indicates a requested user or lesson does not exist.
// Absence is an expected outcome; callers branch on it with errors.Is.
var ErrNotFound = errors.New("not found")
