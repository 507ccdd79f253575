package domain

import "errors"

var (
	ErrNoAccounts           = errors.New("no accounts configured")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrTokenUnavailable     = errors.New("anti-forgery token unavailable")
	ErrInvalidWindow        = errors.New("invalid schedule window")
	ErrSiteNotFound         = errors.New("site profile not found")
)
