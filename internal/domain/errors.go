package domain

import "errors"

var ErrValidation = errors.New("validation failed")
var ErrDuplicateEntity = errors.New("duplicate entity")
var ErrRecordNotFound = errors.New("record not found")
var ErrInvalidStateTransition = errors.New("invalid state transition")
var ErrStoreUnavailable = errors.New("store unavailable")
