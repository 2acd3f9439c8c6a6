package user

import "errors"

var (
	ErrUserIDRequired = errors.New("userId is required")
	ErrInvalidVideoID = errors.New("invalid video id")
)
