package integration_test

import (
	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

var (
	TestAdminId  = uuid.MustParse("0a0a0a0a-0000-4000-8000-00000000000a")
	TestEditorId = uuid.MustParse("0e0e0e0e-0000-4000-8000-00000000000e")
	TestViewerId = uuid.MustParse("0f0f0f0f-0000-4000-8000-00000000000f")

	TestDuneId    = uuid.MustParse("d0d0d0d0-0000-4000-8000-000000000001")
	TestArrivalId = uuid.MustParse("a0a0a0a0-0000-4000-8000-000000000002")
	TestHeatId    = uuid.MustParse("b0b0b0b0-0000-4000-8000-000000000003")
)

func duneMovie() *domain.Movie {
	return &domain.Movie{
		ID:            TestDuneId,
		Slug:          "dune",
		Title:         "Dune",
		YearOfRelease: 2021,
		Genres:        []string{"Sci-Fi", "Drama"},
	}
}

func arrivalMovie() *domain.Movie {
	return &domain.Movie{
		ID:            TestArrivalId,
		Slug:          "arrival",
		Title:         "Arrival",
		YearOfRelease: 2016,
		Genres:        []string{"Sci-Fi"},
	}
}

func heatMovie() *domain.Movie {
	return &domain.Movie{
		ID:            TestHeatId,
		Slug:          "heat",
		Title:         "Heat",
		YearOfRelease: 1995,
		Genres:        []string{"Crime", "Thriller"},
	}
}
