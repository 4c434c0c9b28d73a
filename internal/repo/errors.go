package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrHasDependentMovements blocks deletion of a product whose movement history
// is non-empty. Movements are append-only and never cascaded away.
var ErrHasDependentMovements = errors.New("product has dependent movements")

// ErrDuplicatedValueUnique is returned on unique-constraint violations.
var ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")
