package service

import (
	"fmt"

	"github.com/phrazzld/stash-api/internal/domain"
)

// ErrInvalidPage is returned for a negative skip.
var ErrInvalidPage = fmt.Errorf("%w: skip must not be negative", domain.ErrValidation)
