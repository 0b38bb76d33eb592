package postgres_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaticavenue/paynow-hub/internal/domain/entity"
	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
	"github.com/aquaticavenue/paynow-hub/internal/domain/repository"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/postgres"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/issue"
)

func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("PAYNOW_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PAYNOW_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	t.Cleanup(pool.Close)
	return pool
}

func TestPaymentRequestRepo_CreateAndFind(t *testing.T) {
	pool := openPool(t)
	ctx := context.Background()
	uow := postgres.NewUnitOfWork(pool)

	reference := "IT" + uuid.NewString()[:8]
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM payment_requests WHERE reference = $1`, reference)
	})

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)
	pr := entity.NewPaymentRequest(reference, decimal.RequireFromString("12.30"), "payload")
	require.NoError(t, tx.PaymentRequests().Create(ctx, pr))
	require.NoError(t, tx.Commit(ctx))

	found, err := uow.PaymentRequests().FindByReference(ctx, reference)
	require.NoError(t, err)
	assert.Equal(t, pr.ID(), found.ID())
	assert.Equal(t, "12.30", found.Amount().StringFixed(2))

	_, err = uow.PaymentRequests().FindByReference(ctx, reference+"-missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	tx, err = uow.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()
	err = tx.PaymentRequests().Create(ctx, entity.NewPaymentRequest(reference, decimal.NewFromInt(1), "other"))
	assert.ErrorIs(t, err, repository.ErrDuplicateReference)
}

func TestIssue_RetryStorm(t *testing.T) {
	pool := openPool(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	enc, err := paynow.NewEncoder(paynow.NewMerchant("202012345K", "AQUATIC AVENUE"))
	require.NoError(t, err)
	uc := issue.NewUseCase(postgres.NewUnitOfWork(pool), enc, paynow.NewReferenceGenerator())

	key := uuid.NewString()
	var (
		mu  sync.Mutex
		ids = map[string]int{}
		wg  sync.WaitGroup
	)
	for n := 0; n < 10; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := uc.Execute(ctx, issue.Request{IdempotencyKey: key, Amount: decimal.NewFromInt(10)})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[resp.Reference]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, ids, 1)
	for reference := range ids {
		t.Cleanup(func() {
			_, _ = pool.Exec(context.Background(), `DELETE FROM payment_requests WHERE reference = $1`, reference)
			_, _ = pool.Exec(context.Background(), `DELETE FROM idempotency_keys WHERE key = $1`, key)
		})
	}
}

func TestIssue_SameReferenceDifferentKeys(t *testing.T) {
	pool := openPool(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	enc, err := paynow.NewEncoder(paynow.NewMerchant("202012345K", "AQUATIC AVENUE"))
	require.NoError(t, err)
	uc := issue.NewUseCase(postgres.NewUnitOfWork(pool), enc, paynow.NewReferenceGenerator())

	reference := "IT" + uuid.NewString()[:8]
	keys := make([]string, 10)
	for i := range keys {
		keys[i] = uuid.NewString()
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM payment_requests WHERE reference = $1`, reference)
		for _, key := range keys {
			_, _ = pool.Exec(context.Background(), `DELETE FROM idempotency_keys WHERE key = $1`, key)
		}
	})

	var (
		mu        sync.Mutex
		created   int
		conflicts int
		wg        sync.WaitGroup
	)
	for _, key := range keys {
		key := key
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(ctx, issue.Request{IdempotencyKey: key, Amount: decimal.NewFromInt(3), Reference: reference})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, issue.ErrDuplicateReference):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, len(keys)-1, conflicts)
}
