package media

import "errors"

var (
	ErrInputNotFound        = errors.New("input not found")
	ErrNotADirectory        = errors.New("not a directory")
	ErrUnsupportedExtension = errors.New("unsupported extension")
	ErrMissingPairArgument  = errors.New("both --photo and --video must be provided")
	ErrUnimplementedFeature = errors.New("not implemented")
	// ErrExternalTool marks a failed metadata tool invocation. It is not fatal
	// unless the merger is configured to abort on metadata failures.
	ErrExternalTool = errors.New("metadata tool failed")
)
