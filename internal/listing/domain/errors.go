package domain

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrForbidden        = errors.New("user not authorized to perform this action")
	ErrInvalidStatus    = errors.New("invalid listing status")
	ErrUploadFailed     = errors.New("failed to upload images")
)
