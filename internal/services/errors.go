package services

import "errors"

// Dashboard service errors
var (
	ErrDatasetNotLoaded  = errors.New("dataset not loaded")
	ErrUnknownView       = errors.New("unknown view")
	ErrUnknownSummary    = errors.New("unknown summary")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrInvalidQuery      = errors.New("invalid query")
)
