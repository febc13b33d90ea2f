package services

import "context"

// Service is a single use case. Decorators such as authentication wrap
// another Service with the same input and result types.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
