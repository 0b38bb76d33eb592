package repository

//go:generate mockgen -source=repository.go -destination=../../usecase/issue/mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"github.com/aquaticavenue/paynow-hub/internal/domain/entity"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrDuplicateReference is returned by Create or Commit when another
	// payment request already holds the reference.
	ErrDuplicateReference = errors.New("payment request reference already exists")
)

type PaymentRequestRepository interface {
	Create(ctx context.Context, req *entity.PaymentRequest) error
	FindByReference(ctx context.Context, reference string) (*entity.PaymentRequest, error)
}

type IdempotencyRepository interface {
	Find(ctx context.Context, key string) (*entity.IdempotencyRecord, error)
	Save(ctx context.Context, record *entity.IdempotencyRecord) error
	Lock(ctx context.Context, key string) error
}
