package utils

import (
	"context"
	"errors"

	"synagogue-manager/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrSynagogueIDNotFound  = errors.New("synagogueID not found in context")
	ErrSynagogueIDNotString = errors.New("synagogueID in context is not a string")
	ErrUserIDNotFound       = errors.New("userID not found in context")
	ErrUserIDNotString      = errors.New("userID in context is not a string")
	ErrUserEmailNotFound    = errors.New("userEmail not found in context")
	ErrUserEmailNotString   = errors.New("userEmail in context is not a string")
	ErrRequestIDNotFound    = errors.New("requestID not found in context")
	ErrRequestIDNotString   = errors.New("requestID in context is not a string")
)

// GetSynagogueIDFromContext retrieves the tenant (synagogue) ID from the context.
func GetSynagogueIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.SynagogueIDKey)
	if val == nil {
		return "", ErrSynagogueIDNotFound
	}
	synagogueID, ok := val.(string)
	if !ok {
		return "", ErrSynagogueIDNotString
	}
	return synagogueID, nil
}

// GetUserIDFromContext retrieves the signed-in user's ID from the context.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserIDKey)
	if val == nil {
		return "", ErrUserIDNotFound
	}
	userID, ok := val.(string)
	if !ok {
		return "", ErrUserIDNotString
	}
	return userID, nil
}

// GetUserEmailFromContext retrieves the signed-in user's email from the context.
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserEmailKey)
	if val == nil {
		return "", ErrUserEmailNotFound
	}
	userEmail, ok := val.(string)
	if !ok {
		return "", ErrUserEmailNotString
	}
	return userEmail, nil
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RequestIDKey)
	if val == nil {
		return "", ErrRequestIDNotFound
	}
	requestID, ok := val.(string)
	if !ok {
		return "", ErrRequestIDNotString
	}
	return requestID, nil
}

// Context builder functions

// WithSynagogueID adds the tenant (synagogue) ID to context
func WithSynagogueID(ctx context.Context, synagogueID string) context.Context {
	return context.WithValue(ctx, contextkeys.SynagogueIDKey, synagogueID)
}

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// WithUserEmail adds user email to context
func WithUserEmail(ctx context.Context, userEmail string) context.Context {
	return context.WithValue(ctx, contextkeys.UserEmailKey, userEmail)
}

// WithUserRole adds the user's role to context
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithComponent adds component name to context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation adds operation name to context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

// Optional getters that return default values instead of errors

// GetSynagogueIDOrDefault retrieves the synagogue ID from context or returns a default value
func GetSynagogueIDOrDefault(ctx context.Context, def string) string {
	if v, err := GetSynagogueIDFromContext(ctx); err == nil {
		return v
	}
	return def
}

// GetUserIDOrDefault retrieves the user ID from context or returns a default value
func GetUserIDOrDefault(ctx context.Context, def string) string {
	if v, err := GetUserIDFromContext(ctx); err == nil {
		return v
	}
	return def
}

// GetUserEmailOrDefault retrieves the user email from context or returns a default value
func GetUserEmailOrDefault(ctx context.Context, def string) string {
	if v, err := GetUserEmailFromContext(ctx); err == nil {
		return v
	}
	return def
}
