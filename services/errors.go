package services

import "errors"

// Business errors surfaced by the wallet core. Controllers map these onto HTTP
// status codes; none of them leaves a partial mutation behind.
var (
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrGiftNotFound          = errors.New("gift not found")
	ErrOfferNotFound         = errors.New("offer not found or inactive")
	ErrNotCoinPackage        = errors.New("offer is not a coin package")
	ErrInvalidDay            = errors.New("reward day must be between 1 and 7")
	ErrRewardNotFound        = errors.New("daily reward not found")
	ErrSignatureVerification = errors.New("payment signature verification failed")
	ErrPaymentIncomplete     = errors.New("payment verification parameters incomplete")
	ErrGatewayNotConfigured  = errors.New("razorpay keys not configured")
	ErrMockPaymentForbidden  = errors.New("mock payments are not allowed in production")
)
