package usecase

import (
	"fmt"

	clicks "click-stats-service/internal/clicks/core/domain"
)

var (
	ErrInvalidDate   = fmt.Errorf("%w: date must be YYYY-MM-DD", clicks.ErrValidation)
	ErrInvalidWindow = fmt.Errorf("%w: days out of range", clicks.ErrValidation)
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"
