package model

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrIO         = errors.New("io error")
	ErrScheduler  = errors.New("scheduler error")
	ErrExecution  = errors.New("execution error")
	ErrBusy       = errors.New("another run is in progress")
)
