package model

import "errors"

// ErrNotFound marks a missing habit, record or setting. Repositories
// translate pgx.ErrNoRows into this so callers never import pgx.
var ErrNotFound = errors.New("not found")
