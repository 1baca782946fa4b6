package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindBusinessRule ErrorKind = "BUSINESS_RULE_VIOLATION"
	KindUpstream     ErrorKind = "UPSTREAM_UNAVAILABLE"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
)

// AppError is the structured error every service returns to its caller.
// Code names the specific failure; Kind groups codes for status mapping.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code when the target carries one, otherwise on Kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Code != "" {
		return e.Code == t.Code
	}
	return e.Kind == t.Kind
}

var (
	ErrNotFound     = &AppError{Kind: KindNotFound, Message: "resource not found"}
	ErrValidation   = &AppError{Kind: KindValidation, Message: "validation failed"}
	ErrBusinessRule = &AppError{Kind: KindBusinessRule, Message: "business rule violated"}
	ErrUpstream     = &AppError{Kind: KindUpstream, Message: "upstream service unavailable"}
	ErrUnauthorized = &AppError{Kind: KindUnauthorized, Message: "unauthorized"}

	ErrProductNotFound  = &AppError{Kind: KindNotFound, Code: "PRODUCT_NOT_FOUND", Message: "product not found"}
	ErrCategoryNotFound = &AppError{Kind: KindNotFound, Code: "CATEGORY_NOT_FOUND", Message: "category not found"}
	ErrCartNotFound     = &AppError{Kind: KindNotFound, Code: "CART_NOT_FOUND", Message: "cart not found"}
	ErrItemNotFound     = &AppError{Kind: KindNotFound, Code: "ITEM_NOT_FOUND", Message: "cart item not found"}
	ErrOrderNotFound    = &AppError{Kind: KindNotFound, Code: "ORDER_NOT_FOUND", Message: "order not found"}
	ErrUserNotFound     = &AppError{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "user not found"}

	ErrEmptyCart         = &AppError{Kind: KindBusinessRule, Code: "EMPTY_CART", Message: "cart is empty"}
	ErrInvalidTransition = &AppError{Kind: KindBusinessRule, Code: "INVALID_TRANSITION", Message: "invalid status transition"}
	ErrInsufficientStock = &AppError{Kind: KindBusinessRule, Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"}
	ErrDuplicateCategory = &AppError{Kind: KindBusinessRule, Code: "DUPLICATE_CATEGORY", Message: "category already exists"}
	ErrEmailExists       = &AppError{Kind: KindBusinessRule, Code: "EMAIL_EXISTS", Message: "email already exists"}

	ErrInvalidCredentials = &AppError{Kind: KindUnauthorized, Code: "INVALID_CREDENTIALS", Message: "invalid email or password"}
	ErrInactiveAccount    = &AppError{Kind: KindUnauthorized, Code: "INACTIVE_ACCOUNT", Message: "user account is inactive"}
)

// NewError copies base with a formatted message, keeping its kind and code.
func NewError(base *AppError, format string, args ...any) *AppError {
	return &AppError{
		Kind:    base.Kind,
		Code:    base.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError copies base and attaches cause.
func WrapError(base *AppError, cause error, format string, args ...any) *AppError {
	e := NewError(base, format, args...)
	e.Err = cause
	return e
}

func ValidationError(format string, args ...any) *AppError {
	return NewError(ErrValidation, format, args...)
}

// KindOf reports the kind of err, or "" when err is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
