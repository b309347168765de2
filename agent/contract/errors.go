package contract

import "errors"

var (
	ErrModelInvoke        = errors.New("model invoke failed")
	ErrPromptRender       = errors.New("prompt render failed")
	ErrValidation         = errors.New("validation failed")
	ErrFetch              = errors.New("page fetch failed")
	ErrCancelNotSupported = errors.New("cancellation not supported")
)
