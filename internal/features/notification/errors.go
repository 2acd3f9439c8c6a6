package notification

import "errors"

var (
	// ErrInvalidRecipients is returned when userIds is not a list.
	ErrInvalidRecipients = errors.New("userIds must be an array")
	// ErrInvalidVideoData is returned when videoData is not an object.
	ErrInvalidVideoData = errors.New("videoData must be an object")
)
