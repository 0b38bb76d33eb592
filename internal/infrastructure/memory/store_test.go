package memory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaticavenue/paynow-hub/internal/domain/entity"
	"github.com/aquaticavenue/paynow-hub/internal/domain/repository"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/memory"
)

func TestUnitOfWork_CommitPublishesWrites(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork(memory.NewStore())

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)

	req := entity.NewPaymentRequest("AA1", decimal.NewFromInt(10), "payload")
	require.NoError(t, tx.PaymentRequests().Create(ctx, req))
	require.NoError(t, tx.Idempotency().Save(ctx, entity.NewIdempotencyRecord("k1", 2, []byte(`{}`))))

	_, err = uow.PaymentRequests().FindByReference(ctx, "AA1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	found, err := tx.PaymentRequests().FindByReference(ctx, "AA1")
	require.NoError(t, err)
	assert.Equal(t, req.ID(), found.ID())

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	found, err = uow.PaymentRequests().FindByReference(ctx, "AA1")
	require.NoError(t, err)
	assert.Equal(t, "payload", found.Payload())

	rec, err := uow.Idempotency().Find(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 2, rec.ResponseCode())
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork(memory.NewStore())

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.PaymentRequests().Create(ctx, entity.NewPaymentRequest("AA2", decimal.Zero, "p")))
	require.NoError(t, tx.Rollback(ctx))

	_, err = uow.PaymentRequests().FindByReference(ctx, "AA2")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	rec, err := uow.Idempotency().Find(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestUnitOfWork_DuplicateReferenceRejected(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork(memory.NewStore())

	for i, wantErr := range []error{nil, memory.ErrDuplicateReference} {
		tx, err := uow.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.PaymentRequests().Create(ctx, entity.NewPaymentRequest("AA3", decimal.Zero, "p")))
		err = tx.Commit(ctx)
		if wantErr == nil {
			require.NoError(t, err, "commit %d", i)
		} else {
			require.ErrorIs(t, err, wantErr, "commit %d", i)
		}
	}
}

func TestUnitOfWork_WritesRequireTransaction(t *testing.T) {
	ctx := context.Background()
	uow := memory.NewUnitOfWork(memory.NewStore())

	err := uow.PaymentRequests().Create(ctx, entity.NewPaymentRequest("AA4", decimal.Zero, "p"))
	assert.ErrorIs(t, err, memory.ErrNoTransaction)
	assert.ErrorIs(t, uow.Idempotency().Lock(ctx, "k"), memory.ErrNoTransaction)
}
