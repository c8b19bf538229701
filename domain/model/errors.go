package model

import "errors"

var (
	ErrInvalidVideoURL   = errors.New("invalid youtube video url")
	ErrInvalidChannelURL = errors.New("invalid youtube channel url")
	// ErrNotFound is returned by stores when the requested key does not exist.
	ErrNotFound = errors.New("not found")
)
