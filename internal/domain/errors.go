package domain

import "errors"

var (
	// * Request errors, answered with 400.
	ErrValidation           = errors.New("validation failed")
	ErrMissingField         = errors.New("missing required parameters")
	ErrInvalidAmount        = errors.New("amount must be between 0.01 and 9999999999.99")
	ErrUnknownPaymentSystem = errors.New("unknown payment system")

	// * Authenticity errors. Never say which check failed.
	ErrInvalidSignature = errors.New("invalid signature")

	// * Data errors.
	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")

	// * Business errors.
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPromoNotFound       = errors.New("promo code not found")
	ErrPromoExhausted      = errors.New("promo code is no longer available")
	ErrPromoAlreadyUsed    = errors.New("promo code already activated")

	// * Configuration errors.
	ErrProviderNotConfigured = errors.New("payment system is not configured")
)
