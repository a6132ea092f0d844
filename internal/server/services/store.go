package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
)

// storeCall runs call with a deadline of timeout. A call that fails because
// the deadline passed is reported as common.ErrorUnavailable.
func storeCall[T any](ctx context.Context, timeout time.Duration, call func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	v, err := call(ctx)
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)) {
		return v, fmt.Errorf("%w: %w", common.ErrorUnavailable, err)
	}
	return v, err
}

// storeExec is storeCall for calls that only return an error.
func storeExec(ctx context.Context, timeout time.Duration, call func(context.Context) error) error {
	_, err := storeCall(ctx, timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, call(ctx)
	})
	return err
}
