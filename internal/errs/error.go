package errs

import (
	"errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrValidation   = errors.New("validation failed")
	ErrUserExists   = errors.New("username already taken")
)
