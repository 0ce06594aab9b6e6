package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a domain entity fails validation.
// Every field-specific error below wraps it.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyEmail       = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most %d bytes long", ErrValidation, MaxPasswordLength)
	ErrEmptyItemTitle   = fmt.Errorf("%w: item title cannot be empty", ErrValidation)
	ErrItemTitleTooLong = fmt.Errorf("%w: item title must be at most %d characters", ErrValidation, MaxItemTitleLength)
	ErrItemDescTooLong  = fmt.Errorf("%w: item description must be at most %d characters", ErrValidation, MaxItemDescriptionLength)
	ErrInvalidOwnerID   = fmt.Errorf("%w: item owner ID must be positive", ErrValidation)
	ErrInvalidID        = fmt.Errorf("%w: invalid ID", ErrValidation)
)
