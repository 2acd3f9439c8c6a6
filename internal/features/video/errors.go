package video

import "errors"

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrInvalidID     = errors.New("invalid video id")
	ErrInvalidBody   = errors.New("invalid video payload")
)
