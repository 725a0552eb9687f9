// Package validation checks annotations with go-playground/validator before
// they are written to the store.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/redliner/internal/core/domain"
	"github.com/custodia-labs/redliner/internal/core/ports/driven"
)

// Ensure Validator implements the interface.
var _ driven.AnnotationValidator = (*Validator)(nil)

// Custom tags.
const (
	tagAnnotationType = "annotationtype"
	tagColor          = "argbcolor"
)

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

type strictKey struct{}

// annotationInput mirrors the writable fields of domain.Annotation.
type annotationInput struct {
	DocumentID      int64                 `json:"document_id" validate:"gt=0"`
	Type            domain.AnnotationType `json:"type" validate:"required,annotationtype"`
	Text            string                `json:"text" validate:"max=4096"`
	Color           string                `json:"color" validate:"omitempty,argbcolor"`
	StrokeThickness float64               `json:"stroke_thickness" validate:"gte=0,lte=100"`
	Layer           string                `json:"layer" validate:"max=128"`
}

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for annotations.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidationCtx(tagAnnotationType, validAnnotationType)
	_ = v.RegisterValidation(tagColor, func(fl validator.FieldLevel) bool {
		return colorPattern.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

// Validate checks a. With strictTypes the type must be one of the canonical
// annotation types.
func (v *Validator) Validate(a *domain.Annotation, strictTypes bool) error {
	if a == nil {
		return fmt.Errorf("annotation is required: %w", domain.ErrInvalidInput)
	}

	in := annotationInput{
		DocumentID:      a.DocumentID,
		Type:            a.Type,
		Text:            a.Text,
		Color:           a.Color,
		StrokeThickness: a.StrokeThickness,
		Layer:           a.Layer,
	}

	ctx := context.WithValue(context.Background(), strictKey{}, strictTypes)
	if err := v.v.StructCtx(ctx, in); err != nil {
		return v.formatError(err)
	}
	return nil
}

func validAnnotationType(ctx context.Context, fl validator.FieldLevel) bool {
	strict, _ := ctx.Value(strictKey{}).(bool)
	if !strict {
		return true
	}
	return domain.AnnotationType(fl.Field().String()).IsKnown()
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validation failed: %w: %w", domain.ErrInvalidInput, err)
	}

	sentinel := domain.ErrInvalidInput
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		if e.Tag() == tagAnnotationType {
			sentinel = domain.ErrUnsupportedType
		}
		messages = append(messages, e.Field()+" "+v.friendlyMessage(e))
	}
	sort.Strings(messages)

	return fmt.Errorf("validation failed: %s: %w", strings.Join(messages, "; "), sentinel)
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case tagAnnotationType:
		return fmt.Sprintf("%q is not a supported annotation type", e.Value())
	case tagColor:
		return "must be a hex colour like #RRGGBB or #AARRGGBB"
	default:
		return "is invalid"
	}
}
