package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrRoleNotFound = errors.New("role not found")
var ErrProductNotFound = errors.New("product not found")

var ErrUsernameTaken = errors.New("username already exists")
var ErrRoleExists = errors.New("role already exists")

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")

// ErrDefaultRoleMissing means the USER role was absent during registration.
// It is a deployment precondition failure, not a client error.
var ErrDefaultRoleMissing = errors.New("default role not configured")
