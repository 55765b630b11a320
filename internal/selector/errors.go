package selector

import "errors"

var (
	ErrUnknownCondition = errors.New("selector: unknown condition")
	ErrInvalidDate      = errors.New("selector: invalid date")
)
