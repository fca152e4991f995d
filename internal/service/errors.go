package service

import "errors"

// Error kinds returned (wrapped) by services. Controllers map them to HTTP
// status codes with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrEmptyTest  = errors.New("test has no questions")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)
