package dashboard

import "errors"

var (
	ErrFetchingStats = errors.New("error fetching dashboard statistics")
	ErrUserNotFound  = errors.New("dashboard user not found")
)
