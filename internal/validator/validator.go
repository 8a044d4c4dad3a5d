package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"github.com/metinatakli/movie-catalog/internal/domain"
)

const (
	ErrRequired     = "is required"
	ErrMinLength    = "must be at least %s"
	ErrMaxLength    = "must be at most %s"
	ErrMinItems     = "must contain at least %s item(s)"
	ErrFutureYear   = "must not be in the future"
	ErrSortField    = "must be one of title, year_of_release"
	ErrMovieExists  = "This movie already exists."
	ErrNoSlug       = "must contain at least one letter or digit"
	ErrInvalidField = "is invalid"
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("notblank", validators.NotBlank)
	validator.RegisterValidation("notfuture", validateNotFuture)
	validator.RegisterValidation("sortfield", validateSortField)

	return validator
}

func validateNotFuture(fl validator.FieldLevel) bool {
	return fl.Field().Int() <= int64(time.Now().UTC().Year())
}

func validateSortField(fl validator.FieldLevel) bool {
	return domain.SortField(fl.Field().String()).Valid()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return ErrRequired
	case "min":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf(ErrMinItems, err.Param())
		}
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "notfuture":
		return ErrFutureYear
	case "sortfield":
		return ErrSortField
	default:
		return ErrInvalidField
	}
}

// SlugLookup is the read capability the slug rule needs from the movie store.
type SlugLookup interface {
	GetBySlug(ctx context.Context, slug string, userID *uuid.UUID) (*domain.Movie, error)
}

type MovieValidator struct {
	validate *validator.Validate
	movies   SlugLookup
}

func NewMovieValidator(validate *validator.Validate, movies SlugLookup) *MovieValidator {
	return &MovieValidator{
		validate: validate,
		movies:   movies,
	}
}

// Validate runs every movie rule and returns a *domain.ValidationError listing
// all failures, or nil. Lookup failures are returned as they are.
func (v *MovieValidator) Validate(ctx context.Context, movie *domain.Movie) error {
	failures := &domain.ValidationError{}

	err := collectFieldErrors(v.validate.Struct(movie), failures)
	if err != nil {
		return err
	}

	switch {
	case movie.Slug == "":
		// A title without letters or digits yields no slug.
		if !hasFailure(failures, "Title") {
			failures.Add("Title", ErrNoSlug)
		}
	default:
		ok, err := ValidateSlug(ctx, v.movies, movie.Slug, movie.ID)
		if err != nil {
			return err
		}

		if !ok {
			failures.Add("Slug", ErrMovieExists)
		}
	}

	if failures.HasFailures() {
		return failures
	}

	return nil
}

// ValidateSlug reports whether slug is free for the movie identified by id. A
// slug owned by the same movie is free.
func ValidateSlug(ctx context.Context, lookup SlugLookup, slug string, id uuid.UUID) (bool, error) {
	existing, err := lookup.GetBySlug(ctx, slug, nil)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return true, nil
		}

		return false, err
	}

	return existing.ID == id, nil
}

type OptionsValidator struct {
	validate *validator.Validate
}

func NewOptionsValidator(validate *validator.Validate) *OptionsValidator {
	return &OptionsValidator{
		validate: validate,
	}
}

func (v *OptionsValidator) Validate(options *domain.GetAllMoviesOptions) error {
	failures := &domain.ValidationError{}

	err := collectFieldErrors(v.validate.Struct(options), failures)
	if err != nil {
		return err
	}

	if failures.HasFailures() {
		return failures
	}

	return nil
}

func collectFieldErrors(err error, failures *domain.ValidationError) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, fieldErr := range validationErrs {
		failures.Add(fieldErr.Field(), ValidationMessage(fieldErr))
	}

	return nil
}

func hasFailure(failures *domain.ValidationError, field string) bool {
	for _, f := range failures.Failures {
		if f.Field == field {
			return true
		}
	}

	return false
}
