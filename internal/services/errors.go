package services

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("no diary entries found")
	ErrNoData             = errors.New("no diary data available")
	ErrMissingFile        = errors.New("no file uploaded")
	ErrExtractionFailed   = errors.New("could not extract text from image")
	ErrPersistenceFailed  = errors.New("failed to persist data")
	ErrUpstream           = errors.New("language model request failed")
)
