package storage

import "errors"

var (
	// ErrNotFound is returned when the addressed document does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a unique index
	// (user email, favorite (userEmail, foodId)).
	ErrDuplicate = errors.New("duplicate: entity already exists")
)
