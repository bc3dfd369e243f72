package services

import "errors"

var (
	ErrSlotTaken          = errors.New("slot already booked")
	ErrForbidden          = errors.New("not allowed")
	ErrAlreadyCancelled   = errors.New("appointment already cancelled")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrChannelDisabled    = errors.New("notification channel not configured")
)
