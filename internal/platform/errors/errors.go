package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrSelectionIncomplete = errors.New("selection incomplete")
	ErrTemplateNotFound    = errors.New("template not found")
)
