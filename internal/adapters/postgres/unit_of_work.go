package postgres

import (
	"context"
	"errors"
	"fmt"

	"real-estate-service/internal/core/domain"
	"real-estate-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB - минимальный контракт пула, который нужен адаптерам. Ему
// удовлетворяют и pgxpool.Pool, и pgxmock в тестах.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier - то, через что репозитории выполняют запросы: открытая
// транзакция, если она есть, иначе пул.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UnitOfWorkFactory выдает по одному UnitOfWork на операцию.
type UnitOfWorkFactory struct {
	db DB
}

func NewUnitOfWorkFactory(db DB) (*UnitOfWorkFactory, error) {
	if db == nil {
		return nil, fmt.Errorf("postgres unit of work factory: db is required")
	}
	return &UnitOfWorkFactory{db: db}, nil
}

func (f *UnitOfWorkFactory) New() port.UnitOfWorkPort {
	u := &UnitOfWork{db: f.db}
	u.owners = &OwnerRepository{uow: u}
	u.properties = &PropertyRepository{uow: u}
	return u
}

// UnitOfWork держит максимум одну открытую pgx-транзакцию. Репозитории,
// привязанные к экземпляру, автоматически пишут через нее.
type UnitOfWork struct {
	db DB
	tx pgx.Tx

	owners     *OwnerRepository
	properties *PropertyRepository
}

func (u *UnitOfWork) Owners() port.OwnerRepositoryPort        { return u.owners }
func (u *UnitOfWork) Properties() port.PropertyRepositoryPort { return u.properties }

func (u *UnitOfWork) q() querier {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWork) Begin(ctx context.Context) (port.TxHandle, error) {
	if u.tx != nil {
		return nil, domain.ErrTxAlreadyOpen
	}
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	u.tx = tx
	return tx, nil
}

func (u *UnitOfWork) Commit(ctx context.Context, handle port.TxHandle) error {
	if u.tx == nil || handle != port.TxHandle(u.tx) {
		return domain.ErrTxMismatch
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback идемпотентен: чужой дескриптор или отсутствие транзакции -
// no-op. Выполняется и при отмененном контексте, чтобы транзакция не
// осталась висеть.
func (u *UnitOfWork) Rollback(ctx context.Context, handle port.TxHandle) error {
	if u.tx == nil || handle != port.TxHandle(u.tx) {
		return nil
	}
	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}
