package services

import "errors"

// Common errors. Validation and conflict errors are user-correctable;
// ErrInvalidSession is recoverable only by re-authentication.
var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrParentNotFound     = errors.New("parent task not found")
	ErrDuplicateTask      = errors.New("task already exists")
	ErrReparentNotAllowed = errors.New("changing a task's parent is not supported")
	ErrInvalidInput       = errors.New("invalid input")
)
