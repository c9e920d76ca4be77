package types

import "errors"

// Failure kinds of a unit of work. Causes are wrapped alongside them, so match with errors.Is.
var (
	ErrDetectionFailed   = errors.New("language detection failed")
	ErrTranslationFailed = errors.New("translation failed")
	ErrSendFailed        = errors.New("send failed")
	ErrChunkLinkFailed   = errors.New("continuation chunk failed to send")
)
