package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	"toolrent-core/internal/domain"
	"toolrent-core/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can run
// standalone or inside a transaction opened by ExecTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB // nil when the store is scoped to a transaction

	tools     *toolRepository
	parties   *partyRepository
	contracts *contractRepository
	returns   *returnRepository
	payments  *paymentRepository
	deposits  *depositRepository
}

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:        db,
		tools:     &toolRepository{q: q},
		parties:   &partyRepository{q: q},
		contracts: &contractRepository{q: q},
		returns:   &returnRepository{q: q},
		payments:  &paymentRepository{q: q},
		deposits:  &depositRepository{q: q},
	}
}

func (s *Store) Tools() repository.ToolRepository         { return s.tools }
func (s *Store) Parties() repository.PartyRepository      { return s.parties }
func (s *Store) Contracts() repository.ContractRepository { return s.contracts }
func (s *Store) Returns() repository.ReturnRepository     { return s.returns }
func (s *Store) Payments() repository.PaymentRepository   { return s.payments }
func (s *Store) Deposits() repository.DepositRepository   { return s.deposits }

// ExecTx runs fn inside one database transaction. A Store already scoped to a
// transaction joins it, so service helpers compose without nesting.
func (s *Store) ExecTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDBError(err, "begin transaction")
	}
	if err := fn(newStore(nil, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapDBError(err, "commit transaction")
	}
	return nil
}

// pq error classes that signal contention or a lost connection rather than a
// domain problem. The whole operation is eligible for retry, never a sub-step.
const (
	pqClassConnection = "08"
	pqClassTxRollback = "40"
	pqCodeLockTimeout = "55P03"
	pqCodeCanceled    = "57014"
	pqCodeShutdown    = "57P01"
)

func wrapDBError(err error, op string) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		class := pqErr.Code.Class()
		if class == pqClassConnection || class == pqClassTxRollback ||
			pqErr.Code == pqCodeLockTimeout || pqErr.Code == pqCodeCanceled || pqErr.Code == pqCodeShutdown {
			return domain.NewTransientError(err, "%s: %s", op, pqErr.Message)
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, driver.ErrBadConn) {
		return domain.NewTransientError(err, "%s: connection failure", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
