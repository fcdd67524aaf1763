package domain

import "errors"

var (
	ErrStaffNotFound  = errors.New("staff member not found")
	ErrSpinInProgress = errors.New("a spin is already in progress")
)
