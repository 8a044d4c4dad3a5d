package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/database"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

func withConn(ctx context.Context, db database.ConnectionProvider, fn func(conn *pgxpool.Conn) error) error {
	conn, err := db.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn)
}

// runInTx commits only when fn returns nil. Any other exit, a panic included,
// rolls the transaction back. The rollback ignores cancellation of ctx so an
// aborted request never leaves a transaction open on a pooled connection.
func runInTx(ctx context.Context, db database.ConnectionProvider, fn func(tx pgx.Tx) error) error {
	return withConn(ctx, db, func(conn *pgxpool.Conn) error {
		var txOptions pgx.TxOptions

		tx, err := conn.BeginTx(ctx, txOptions)
		if err != nil {
			return err
		}

		returned := false
		defer func() {
			if !returned {
				_ = tx.Rollback(context.WithoutCancel(ctx))
			}
		}()

		err = fn(tx)
		returned = true

		if err == nil {
			return tx.Commit(ctx)
		}

		rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
		if rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}

		return err
	})
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case "movies_slug_idx":
		return domain.ErrDuplicateSlug
	case "movies_pkey":
		return domain.ErrDuplicateMovieID
	default:
		return err
	}
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation
}
