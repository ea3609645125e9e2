package apperrors

import (
	"fmt"
	"net/http"
)

// Error is a domain failure with a stable code and an HTTP classification.
// The transport layer maps it onto the error response body.
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *Error) Error() string {
	return e.Message
}

func New(code, message string, httpStatus int) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Aborting errors: the workflow fails before any order is persisted.

func CartNotFound(customerID int64) *Error {
	return New("CART_NOT_FOUND", fmt.Sprintf("Cart not found for customer: %d", customerID), http.StatusNotFound)
}

func CartServiceError(err error) *Error {
	return New("CART_SERVICE_ERROR", fmt.Sprintf("Failed to fetch cart from cart-service: %s", err), http.StatusBadGateway)
}

func CartEmpty(customerID int64) *Error {
	return New("CART_EMPTY", "Cart is empty. Cannot create order.", http.StatusBadRequest)
}

func CustomerNotFound(customerID int64) *Error {
	return New("CLIENT_NOT_FOUND", fmt.Sprintf("Customer not found: %d", customerID), http.StatusNotFound)
}

func CustomerServiceError(err error) *Error {
	return New("CLIENT_SERVICE_ERROR", fmt.Sprintf("Failed to fetch customer from customer-service: %s", err), http.StatusBadGateway)
}

// Authorizer input errors: the in-flight order keeps whatever state it had
// before the authorization call.

func InvalidRejectionProbability(probability float64) *Error {
	return New("INVALID_REJECTION_PROBABILITY",
		fmt.Sprintf("Rejection probability must be between 0.0 and 1.0, got %g", probability),
		http.StatusBadRequest)
}

func InvalidRetryCount(count int) *Error {
	return New("INVALID_RETRY_COUNT",
		fmt.Sprintf("Retry count must be between 1 and 10, got %d", count),
		http.StatusBadRequest)
}

func InvalidToken(tok string) *Error {
	return New("INVALID_TOKEN", "Invalid token", http.StatusNotFound)
}

func TokenDecryptError() *Error {
	return New("TOKEN_DECRYPT_ERROR", "Invalid token data", http.StatusBadRequest)
}

func OrderNotFound(orderID int64) *Error {
	return New("ORDER_NOT_FOUND", fmt.Sprintf("Order not found: %d", orderID), http.StatusNotFound)
}
