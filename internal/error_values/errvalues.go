package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrOwnerNotFound      = errors.New("owner doesn't exists")
	ErrWrongOwner         = errors.New("resource has different owner")
	ErrMedicationNotFound = errors.New("medication doesn't exists")
	ErrMedicationExists   = errors.New("user already has such medication")

	ErrDoseLogNotFound = errors.New("dose log doesn't exists")
	ErrBadReminderTime = errors.New("reminder time must be HH:MM 24-hour")

	ErrBadReportDays       = errors.New("days must be between 1 and 365")
	ErrBadReportMedication = errors.New("invalid medication id filter")
)
