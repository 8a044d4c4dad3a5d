package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/movie-catalog/internal/database"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

type PostgresRatingRepository struct {
	db database.ConnectionProvider
}

func NewPostgresRatingRepository(db database.ConnectionProvider) *PostgresRatingRepository {
	return &PostgresRatingRepository{
		db: db,
	}
}

// RateMovie stores the rating, replacing any earlier one from the same user.
// It reports false when the movie does not exist.
func (p *PostgresRatingRepository) RateMovie(ctx context.Context, movieID, userID uuid.UUID, rating int) (bool, error) {
	query := `
		INSERT INTO ratings (user_id, movie_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, movie_id) DO UPDATE
			SET rating = EXCLUDED.rating
	`

	var rated bool

	err := withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, query, userID, movieID, rating)
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil
			}

			return err
		}

		rated = tag.RowsAffected() > 0

		return nil
	})
	if err != nil {
		return false, err
	}

	return rated, nil
}

func (p *PostgresRatingRepository) GetRating(ctx context.Context, movieID uuid.UUID) (*float64, error) {
	query := `
		SELECT ROUND(AVG(rating), 1)::float8
		FROM ratings
		WHERE movie_id = $1
	`

	var rating *float64

	err := withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, movieID).Scan(&rating)
	})
	if err != nil {
		return nil, err
	}

	return rating, nil
}

func (p *PostgresRatingRepository) GetUserRating(
	ctx context.Context,
	movieID,
	userID uuid.UUID) (*float64, *int, error) {

	query := `
		SELECT
			ROUND(AVG(rating), 1)::float8 AS rating,
			(
				SELECT ur.rating
				FROM ratings ur
				WHERE ur.movie_id = $1 AND ur.user_id = $2
			) AS user_rating
		FROM ratings
		WHERE movie_id = $1
	`

	var (
		rating     *float64
		userRating *int
	)

	err := withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx, query, movieID, userID).Scan(&rating, &userRating)
	})
	if err != nil {
		return nil, nil, err
	}

	return rating, userRating, nil
}

func (p *PostgresRatingRepository) DeleteRating(ctx context.Context, movieID, userID uuid.UUID) (bool, error) {
	query := `DELETE FROM ratings WHERE movie_id = $1 AND user_id = $2`

	var deleted bool

	err := withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, query, movieID, userID)
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

func (p *PostgresRatingRepository) GetAllRatingsByUser(ctx context.Context, userID uuid.UUID) ([]domain.MovieRating, error) {
	query := `
		SELECT r.rating, r.movie_id, m.slug
		FROM ratings r
		INNER JOIN movies m ON r.movie_id = m.id
		WHERE r.user_id = $1
		ORDER BY m.slug
	`

	ratings := make([]domain.MovieRating, 0)

	err := withConn(ctx, p.db, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, query, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var rating domain.MovieRating

			err := rows.Scan(&rating.Rating, &rating.MovieID, &rating.Slug)
			if err != nil {
				return err
			}

			ratings = append(ratings, rating)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return ratings, nil
}
