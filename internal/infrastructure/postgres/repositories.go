package postgres

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/aquaticavenue/paynow-hub/internal/domain/entity"
	"github.com/aquaticavenue/paynow-hub/internal/domain/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

func (u *UnitOfWork) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &UnitOfWork{pool: u.pool, tx: tx}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) PaymentRequests() repository.PaymentRequestRepository {
	return &PaymentRequestRepo{tx: u.tx, pool: u.pool}
}

func (u *UnitOfWork) Idempotency() repository.IdempotencyRepository {
	return &IdempotencyRepo{tx: u.tx, pool: u.pool}
}

func (u *UnitOfWork) querier() querier {
	if u.tx != nil {
		return u.tx
	}
	return u.pool
}

const uniqueViolation = "23505"

type PaymentRequestRepo struct {
	tx   pgx.Tx
	pool *pgxpool.Pool
}

func (r *PaymentRequestRepo) Create(ctx context.Context, req *entity.PaymentRequest) error {
	if r.tx == nil {
		return errors.New("payment request create requires a transaction")
	}
	_, err := r.tx.Exec(ctx,
		`INSERT INTO payment_requests (id, reference, amount, payload, created_at)
		 VALUES ($1, $2, $3::numeric, $4, $5)`,
		req.ID(), req.Reference(), req.Amount().StringFixed(2), req.Payload(), req.CreatedAt(),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrDuplicateReference, req.Reference())
	}
	return err
}

func (r *PaymentRequestRepo) FindByReference(ctx context.Context, reference string) (*entity.PaymentRequest, error) {
	q := (&UnitOfWork{pool: r.pool, tx: r.tx}).querier()

	var (
		id        uuid.UUID
		amountStr string
		payload   string
		createdAt time.Time
	)
	err := q.QueryRow(ctx,
		`SELECT id, amount::text, payload, created_at FROM payment_requests WHERE reference = $1`,
		reference,
	).Scan(&id, &amountStr, &payload, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parse stored amount %q: %w", amountStr, err)
	}
	return entity.ReconstructPaymentRequest(id, reference, amount, payload, createdAt), nil
}

type IdempotencyRepo struct {
	tx   pgx.Tx
	pool *pgxpool.Pool
}

func (r *IdempotencyRepo) Find(ctx context.Context, key string) (*entity.IdempotencyRecord, error) {
	q := (&UnitOfWork{pool: r.pool, tx: r.tx}).querier()

	var (
		code      int
		body      []byte
		createdAt time.Time
	)
	err := q.QueryRow(ctx,
		`SELECT response_code, response_body, created_at FROM idempotency_keys WHERE key = $1`,
		key,
	).Scan(&code, &body, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity.ReconstructIdempotencyRecord(key, code, body, createdAt), nil
}

func (r *IdempotencyRepo) Save(ctx context.Context, record *entity.IdempotencyRecord) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO idempotency_keys (key, response_code, response_body, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (key) DO NOTHING`,
		record.Key(), record.ResponseCode(), record.ResponseBody(), record.CreatedAt(),
	)
	return err
}

func (r *IdempotencyRepo) Lock(ctx context.Context, key string) error {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	_, err := r.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(h.Sum64()))
	return err
}
