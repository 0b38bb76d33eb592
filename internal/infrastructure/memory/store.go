// Package memory provides a process-local UnitOfWork used when no database
// is configured.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/aquaticavenue/paynow-hub/internal/domain/entity"
	"github.com/aquaticavenue/paynow-hub/internal/domain/repository"
)

var (
	ErrDuplicateReference = repository.ErrDuplicateReference
	ErrNoTransaction      = errors.New("operation requires a transaction")
)

// Store serialises transactions with a single lock, so Lock is a no-op.
type Store struct {
	txMu sync.Mutex

	mu       sync.RWMutex
	requests map[string]*entity.PaymentRequest
	keys     map[string]*entity.IdempotencyRecord
}

func NewStore() *Store {
	return &Store{
		requests: make(map[string]*entity.PaymentRequest),
		keys:     make(map[string]*entity.IdempotencyRecord),
	}
}

type txState struct {
	requests map[string]*entity.PaymentRequest
	keys     map[string]*entity.IdempotencyRecord
	done     bool
}

type UnitOfWork struct {
	store *Store
	tx    *txState
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	u.store.txMu.Lock()
	if err := ctx.Err(); err != nil {
		u.store.txMu.Unlock()
		return nil, err
	}
	return &UnitOfWork{
		store: u.store,
		tx: &txState{
			requests: make(map[string]*entity.PaymentRequest),
			keys:     make(map[string]*entity.IdempotencyRecord),
		},
	}, nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil || u.tx.done {
		return nil
	}
	u.store.mu.Lock()
	for ref := range u.tx.requests {
		if _, ok := u.store.requests[ref]; ok {
			u.store.mu.Unlock()
			u.finish()
			return ErrDuplicateReference
		}
	}
	for ref, req := range u.tx.requests {
		u.store.requests[ref] = req
	}
	for key, rec := range u.tx.keys {
		if _, ok := u.store.keys[key]; !ok {
			u.store.keys[key] = rec
		}
	}
	u.store.mu.Unlock()
	u.finish()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil || u.tx.done {
		return nil
	}
	u.finish()
	return nil
}

func (u *UnitOfWork) finish() {
	u.tx.done = true
	u.store.txMu.Unlock()
}

func (u *UnitOfWork) PaymentRequests() repository.PaymentRequestRepository {
	return &paymentRequestRepo{uow: u}
}

func (u *UnitOfWork) Idempotency() repository.IdempotencyRepository {
	return &idempotencyRepo{uow: u}
}

type paymentRequestRepo struct {
	uow *UnitOfWork
}

func (r *paymentRequestRepo) Create(_ context.Context, req *entity.PaymentRequest) error {
	tx := r.uow.tx
	if tx == nil {
		return ErrNoTransaction
	}
	if _, ok := tx.requests[req.Reference()]; ok {
		return ErrDuplicateReference
	}
	tx.requests[req.Reference()] = req
	return nil
}

func (r *paymentRequestRepo) FindByReference(_ context.Context, reference string) (*entity.PaymentRequest, error) {
	if tx := r.uow.tx; tx != nil {
		if req, ok := tx.requests[reference]; ok {
			return req, nil
		}
	}
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	if req, ok := r.uow.store.requests[reference]; ok {
		return req, nil
	}
	return nil, repository.ErrNotFound
}

type idempotencyRepo struct {
	uow *UnitOfWork
}

func (r *idempotencyRepo) Find(_ context.Context, key string) (*entity.IdempotencyRecord, error) {
	if tx := r.uow.tx; tx != nil {
		if rec, ok := tx.keys[key]; ok {
			return rec, nil
		}
	}
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	return r.uow.store.keys[key], nil
}

func (r *idempotencyRepo) Save(_ context.Context, record *entity.IdempotencyRecord) error {
	tx := r.uow.tx
	if tx == nil {
		return ErrNoTransaction
	}
	if _, ok := tx.keys[record.Key()]; !ok {
		tx.keys[record.Key()] = record
	}
	return nil
}

func (r *idempotencyRepo) Lock(_ context.Context, _ string) error {
	if r.uow.tx == nil {
		return ErrNoTransaction
	}
	return nil
}
