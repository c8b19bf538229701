package repository

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDuplicatePost means the platform already holds an identical post.
	ErrDuplicatePost = errors.New("duplicate post")
	// ErrMessageTooLong means the platform rejected the text for its length.
	ErrMessageTooLong = errors.New("message too long")
)

// IPublisher posts a notification and returns the id of the created post.
type IPublisher interface {
	Publish(ctx context.Context, message string) (string, error)
}

// PublishError carries the platform response of a rejected post.
// Err is ErrDuplicatePost, ErrMessageTooLong or nil.
type PublishError struct {
	StatusCode int
	Code       int
	Detail     string
	Err        error
}

func (e *PublishError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publish failed with status %d: %v: %s", e.StatusCode, e.Err, e.Detail)
	}
	return fmt.Sprintf("publish failed with status %d: %s", e.StatusCode, e.Detail)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
