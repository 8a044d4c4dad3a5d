package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/database"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

type PostgresMovieRepository struct {
	db database.ConnectionProvider
}

func NewPostgresMovieRepository(db database.ConnectionProvider) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) (bool, error) {
	created := false

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (id, slug, title, year_of_release)
			VALUES ($1, $2, $3, $4)
		`

		tag, err := tx.Exec(ctx, query, movie.ID, movie.Slug, movie.Title, movie.YearOfRelease)
		if err != nil {
			return mapWriteError(err)
		}

		if tag.RowsAffected() == 0 {
			return nil
		}

		err = insertGenres(ctx, tx, movie.ID, movie.Genres)
		if err != nil {
			return err
		}

		created = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*domain.Movie, error) {
	return p.getOne(ctx, "m.id = ?", id, userID)
}

func (p *PostgresMovieRepository) GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*domain.Movie, error) {
	return p.getOne(ctx, "m.slug = ?", slug, userID)
}

func (p *PostgresMovieRepository) getOne(
	ctx context.Context,
	predicate string,
	key any,
	userID *uuid.UUID) (*domain.Movie, error) {

	query, args, err := movieSelect(userID).Where(predicate, key).ToSql()
	if err != nil {
		return nil, err
	}

	var movie domain.Movie

	err = withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		err := conn.QueryRow(ctx, query, args...).Scan(
			&movie.ID,
			&movie.Slug,
			&movie.Title,
			&movie.YearOfRelease,
			&movie.Rating,
			&movie.UserRating,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		movie.Genres, err = loadGenres(ctx, conn, movie.ID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, options domain.GetAllMoviesOptions) ([]*domain.Movie, error) {
	builder, err := movieListSelect(options)
	if err != nil {
		return nil, err
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	movies := []*domain.Movie{}

	err = withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var movie domain.Movie

			err := rows.Scan(
				&movie.ID,
				&movie.Slug,
				&movie.Title,
				&movie.YearOfRelease,
				&movie.Rating,
				&movie.UserRating,
				&movie.Genres,
			)
			if err != nil {
				return err
			}

			movies = append(movies, &movie)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) (bool, error) {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE movies
			SET slug = $1, title = $2, year_of_release = $3
			WHERE id = $4
		`

		tag, err := tx.Exec(ctx, query, movie.Slug, movie.Title, movie.YearOfRelease, movie.ID)
		if err != nil {
			return mapWriteError(err)
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `DELETE FROM movies_genres WHERE movie_id = $1`, movie.ID)
		if err != nil {
			return err
		}

		return insertGenres(ctx, tx, movie.ID, movie.Genres)
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// DeleteById removes the movie together with its genre and rating rows.
func (p *PostgresMovieRepository) DeleteById(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted := false

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM ratings WHERE movie_id = $1`, id)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM movies_genres WHERE movie_id = $1`, id)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
		if err != nil {
			return err
		}

		deleted = tag.RowsAffected() > 0

		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func (p *PostgresMovieRepository) ExistsById(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool

	err := withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		query := `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`

		return conn.QueryRow(ctx, query, id).Scan(&exists)
	})
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (p *PostgresMovieRepository) GetCount(ctx context.Context, title *string, yearOfRelease *int) (int, error) {
	query, args, err := movieCountSelect(title, yearOfRelease).ToSql()
	if err != nil {
		return 0, err
	}

	var count int

	err = withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func insertGenres(ctx context.Context, tx pgx.Tx, movieID uuid.UUID, genres []string) error {
	rows := make([][]any, 0, len(genres))
	for _, genre := range genres {
		rows = append(rows, []any{movieID, genre})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"movies_genres"},
		[]string{"movie_id", "name"},
		pgx.CopyFromRows(rows),
	)

	return err
}

func loadGenres(ctx context.Context, conn *pgxpool.Conn, movieID uuid.UUID) ([]string, error) {
	query := `SELECT name FROM movies_genres WHERE movie_id = $1 ORDER BY name`

	rows, err := conn.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}
