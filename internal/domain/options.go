package domain

import (
	"strings"

	"github.com/google/uuid"
)

type SortField string

const (
	SortFieldNone          SortField = ""
	SortFieldTitle         SortField = "title"
	SortFieldYearOfRelease SortField = "year_of_release"
)

// SortFields lists every field a movie listing may be ordered by.
var SortFields = []SortField{SortFieldTitle, SortFieldYearOfRelease}

// Normalize folds a sort field to the lower-case form of the allow-list.
func (f SortField) Normalize() SortField {
	return SortField(strings.ToLower(strings.TrimSpace(string(f))))
}

func (f SortField) Valid() bool {
	if f == SortFieldNone {
		return true
	}

	for _, allowed := range SortFields {
		if f == allowed {
			return true
		}
	}

	return false
}

type SortOrder int

const (
	Unsorted SortOrder = iota
	Ascending
	Descending
)

// ParseSort splits a "+field" / "-field" expression into a sort field and order.
// A missing prefix means ascending and an empty expression means unsorted.
func ParseSort(sortBy string) (SortField, SortOrder) {
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		return SortFieldNone, Unsorted
	}

	order := Ascending
	if strings.HasPrefix(sortBy, "-") {
		order = Descending
	}

	return SortField(strings.TrimLeft(sortBy, "+-")).Normalize(), order
}

type GetAllMoviesOptions struct {
	Title         *string
	YearOfRelease *int      `validate:"omitempty,notfuture"`
	SortField     SortField `validate:"sortfield"`
	SortOrder     SortOrder
	Page          int `validate:"min=1"`
	PageSize      int `validate:"min=1,max=25"`
	UserID        *uuid.UUID
}

func (o GetAllMoviesOptions) Limit() int {
	return o.PageSize
}

func (o GetAllMoviesOptions) Offset() int {
	return (o.Page - 1) * o.PageSize
}

func (o GetAllMoviesOptions) WithUser(userID *uuid.UUID) GetAllMoviesOptions {
	o.UserID = userID
	return o
}

// PageMetadata places one listing page within the full filtered result.
type PageMetadata struct {
	CurrentPage  int
	FirstPage    int
	LastPage     int
	PageSize     int
	TotalRecords int
}

// PageMetadata describes the page selected by o for a result of totalRecords
// movies. LastPage is zero for an empty result.
func (o GetAllMoviesOptions) PageMetadata(totalRecords int) *PageMetadata {
	lastPage := 0
	if o.PageSize > 0 {
		lastPage = (totalRecords + o.PageSize - 1) / o.PageSize
	}

	return &PageMetadata{
		CurrentPage:  o.Page,
		FirstPage:    1,
		LastPage:     lastPage,
		PageSize:     o.PageSize,
		TotalRecords: totalRecords,
	}
}
