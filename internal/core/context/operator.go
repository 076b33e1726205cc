// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// OperatorContext identifies the register operator behind a request.
// The store and terminal scope every lookup and every scan session.
type OperatorContext struct {
	OperatorID string
	StoreID    string
	TerminalID string
}

type operatorContextKey struct{}

// WithOperator adds OperatorContext to context.
func WithOperator(ctx context.Context, op *OperatorContext) context.Context {
	return context.WithValue(ctx, operatorContextKey{}, op)
}

// GetOperator returns OperatorContext from context.
func GetOperator(ctx context.Context) *OperatorContext {
	if v, ok := ctx.Value(operatorContextKey{}).(*OperatorContext); ok {
		return v
	}
	return nil
}

// GetStoreID returns store ID from context or empty string.
func GetStoreID(ctx context.Context) string {
	if op := GetOperator(ctx); op != nil {
		return op.StoreID
	}
	return ""
}

// GetTerminalID returns terminal ID from context or empty string.
func GetTerminalID(ctx context.Context) string {
	if op := GetOperator(ctx); op != nil {
		return op.TerminalID
	}
	return ""
}
