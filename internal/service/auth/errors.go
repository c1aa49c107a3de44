package auth

import "errors"

// Token validation errors. Callers map all of them to 401 responses.
var (
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken is returned once exp has passed.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid is returned while nbf lies in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType is returned for tokens whose type claim is not "access".
	ErrWrongTokenType = errors.New("wrong token type")
)
