package community

import "errors"

// ErrNotFound is returned when the referenced user, post or comment doesn't
// exist. Unlike the best-effort progress paths, like and comment operations
// surface it: silently dropping a user-visible action would be misleading.
var ErrNotFound = errors.New("referenced entity not found")

// ErrNotOwner is returned when a user tries to delete content they don't own.
var ErrNotOwner = errors.New("not the owner of this content")
