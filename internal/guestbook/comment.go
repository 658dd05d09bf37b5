// Package guestbook stores visitor comments and fans new ones out to
// in-process listeners.
package guestbook

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLen    = 100
	MaxMessageLen = 500
	DefaultLimit  = 20
)

// ErrInvalidComment is returned, wrapped in a FieldErrors, when a comment
// fails validation.
var ErrInvalidComment = errors.New("invalid comment")

// Comment is a stored guestbook entry.
type Comment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment is the input for signing the guestbook. Fields are trimmed
// before validation.
type NewComment struct {
	Name    string `json:"name" validate:"required,max=100"`
	Message string `json:"message" validate:"required,max=500"`
}

// FieldErrors maps a lower-case field name to a readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fe[k]
	}
	return fmt.Sprintf("%v: %s", ErrInvalidComment, strings.Join(parts, "; "))
}

func (fe FieldErrors) Unwrap() error { return ErrInvalidComment }

var validate = validator.New()

// Normalize trims the input and validates it. Lengths count characters,
// not bytes.
func (n NewComment) Normalize() (NewComment, error) {
	n.Name = strings.TrimSpace(n.Name)
	n.Message = strings.TrimSpace(n.Message)
	if err := validate.Struct(n); err != nil {
		return n, formatValidationError(err)
	}
	return n, nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidComment, err)
	}

	fe := make(FieldErrors, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			fe[field] = "This field is required"
		case "max":
			fe[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		default:
			fe[field] = "Invalid value"
		}
	}
	return fe
}
