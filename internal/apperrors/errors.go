package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks before any
// store call was attempted.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates the caller is not allowed to perform the operation.
var ErrUnauthorized = errors.New("unauthorized")

// ErrAuthenticationRequired indicates a store call was attempted without an active session.
var ErrAuthenticationRequired = errors.New("authentication required")

// ErrStoreUnavailable indicates a transient backend failure (typically a
// missing-index/precondition failure). The transaction cache retries once before
// surfacing this as an informational "initializing" state.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrWriteFailed indicates a create/update/delete was rejected by the store.
var ErrWriteFailed = errors.New("write failed")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")
