package services

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrCategoryExists     = errors.New("category already exists")
	ErrDefaultCategory    = errors.New("the default category still holds products; delete them with removeProducts")
	ErrInvalidFilter      = errors.New("invalid filter settings")
	ErrInvalidFeed        = errors.New("invalid feed")
)
