package state

import "errors"

var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNotFound         = errors.New("not found")
	ErrMalformedInput   = errors.New("malformed input")
	ErrUnknownCommand   = errors.New("unknown command")
)
