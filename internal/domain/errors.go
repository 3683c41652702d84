package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrRunNotFound         = errors.New("reconciliation run not found")
	ErrInvalidDocumentKind = errors.New("invalid document kind")
	ErrInvalidDecision     = errors.New("invalid suggestion decision")
	ErrUnknownSuggestion   = errors.New("property key is not part of this run")
	ErrUnsupportedExport   = errors.New("unsupported export format")
	ErrExportFailed        = errors.New("review sheet export failed")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidJob          = errors.New("invalid reconciliation job")
)
