package main

import "errors"

var (
	// ErrEmptyMusicians indicates a problem without musicians.
	ErrEmptyMusicians = errors.New("problem has no musicians")
	// ErrEmptyAttendees indicates a problem without attendees.
	ErrEmptyAttendees = errors.New("problem has no attendees")
	// ErrMissingTaste indicates a musician plays an instrument some attendee has no taste for.
	ErrMissingTaste = errors.New("taste vector misses a referenced instrument")
	// ErrBadProblem covers other malformed problem geometry.
	ErrBadProblem = errors.New("malformed problem")
	// ErrCoincidentPoints indicates an attendee standing exactly on a musician.
	ErrCoincidentPoints = errors.New("attendee and musician coincide")
	// ErrCoincidentMusicians indicates two same-instrument musicians at one spot.
	ErrCoincidentMusicians = errors.New("musicians coincide")
	// ErrPlacementSize indicates a placement whose row count differs from the musician count.
	ErrPlacementSize = errors.New("placement size does not match musician count")
	// ErrSamplingRatio indicates a Monte-Carlo sampling ratio outside (0, 1].
	ErrSamplingRatio = errors.New("sampling ratio must be in (0, 1]")
	// ErrBadConfig indicates an unusable search configuration.
	ErrBadConfig = errors.New("invalid search configuration")
	// ErrNoMetadata indicates no stored solution exists for a problem.
	ErrNoMetadata = errors.New("no stored solution metadata")
)
