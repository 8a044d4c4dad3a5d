package repository

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// movieSelect is the aggregated movie read used by every lookup path. The
// columns are id, slug, title, year_of_release, rating and user_rating, in that
// order. The per-user overlay is joined only when userID is set.
func movieSelect(userID *uuid.UUID) sq.SelectBuilder {
	q := psql.
		Select(
			"m.id",
			"m.slug",
			"m.title",
			"m.year_of_release",
			"ROUND(AVG(r.rating), 1)::float8 AS rating",
		).
		From("movies m").
		LeftJoin("ratings r ON r.movie_id = m.id")

	if userID == nil {
		return q.
			Column("NULL::integer AS user_rating").
			GroupBy("m.id")
	}

	return q.
		Column("ur.rating AS user_rating").
		LeftJoin("ratings ur ON ur.movie_id = m.id AND ur.user_id = ?", *userID).
		GroupBy("m.id", "ur.rating")
}

// movieListSelect extends movieSelect with the aggregated genre list as a
// seventh column. The inner join drops movies that have no genre rows.
func movieListSelect(options domain.GetAllMoviesOptions) (sq.SelectBuilder, error) {
	q := movieSelect(options.UserID).
		Column("array_agg(DISTINCT g.name ORDER BY g.name) AS genres").
		InnerJoin("movies_genres g ON g.movie_id = m.id")

	q = applyFilters(q, options.Title, options.YearOfRelease)

	sortBy, err := orderBy(options.SortField, options.SortOrder)
	if err != nil {
		return q, err
	}

	if sortBy != "" {
		q = q.OrderBy(sortBy, "m.id")
	} else {
		q = q.OrderBy("m.id")
	}

	return q.
		Limit(uint64(options.Limit())).
		Offset(uint64(options.Offset())), nil
}

func movieCountSelect(title *string, yearOfRelease *int) sq.SelectBuilder {
	q := psql.
		Select("COUNT(*)").
		From("movies m").
		Where("EXISTS (SELECT 1 FROM movies_genres g WHERE g.movie_id = m.id)")

	return applyFilters(q, title, yearOfRelease)
}

func applyFilters(q sq.SelectBuilder, title *string, yearOfRelease *int) sq.SelectBuilder {
	if title != nil {
		q = q.Where("m.title ILIKE ('%' || ? || '%')", likeEscaper.Replace(*title))
	}

	if yearOfRelease != nil {
		q = q.Where(sq.Eq{"m.year_of_release": *yearOfRelease})
	}

	return q
}

// orderBy maps a sort field onto a fixed column reference. Field values never
// reach the query text.
func orderBy(field domain.SortField, order domain.SortOrder) (string, error) {
	var column string

	switch field {
	case domain.SortFieldNone:
		return "", nil
	case domain.SortFieldTitle:
		column = "m.title"
	case domain.SortFieldYearOfRelease:
		column = "m.year_of_release"
	default:
		return "", domain.ErrInvalidSortField
	}

	switch order {
	case domain.Descending:
		return column + " DESC", nil
	default:
		return column + " ASC", nil
	}
}
