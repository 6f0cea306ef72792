package api

import "errors"

// Expected input problems. All are recovered locally and returned as a
// structured {"error": message} payload; none may escape the handler.
var (
	// ErrNoInput: neither query nor url carried content.
	ErrNoInput = errors.New("no query or URL provided")

	// ErrInvalidURL: the url field fails the scheme+host check.
	ErrInvalidURL = errors.New("invalid URL provided")

	// ErrEmptyText: the resolved query text is blank.
	ErrEmptyText = errors.New("extracted text is empty")
)
