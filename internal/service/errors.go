package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrBookNotFound       = errors.New("book not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidQty         = errors.New("qty must be > 0")
	ErrEmptyCart          = errors.New("cart empty")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrInvalidPayment     = errors.New("invalid payment details")
)
