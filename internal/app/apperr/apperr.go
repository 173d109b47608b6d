package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrSoftConflict      = errors.New("already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// market settlement
	ErrSelfPurchase    = errors.New("self purchase rejected")
	ErrItemUnavailable = errors.New("item is not available for sale")
	ErrItemGone        = errors.New("item no longer available")
	ErrNotTradeReady   = errors.New("user is not trade ready")
	ErrDispatchFailed  = errors.New("trade dispatch failed")
)
