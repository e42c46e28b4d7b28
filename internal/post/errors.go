package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("post belongs to another user")
	ErrInvalidPage  = errors.New("invalid paging parameters")
)
