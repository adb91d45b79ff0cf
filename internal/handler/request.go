package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"github.com/samber/lo"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// Timestamp is a request timestamp. It accepts RFC 3339, a bare
// "2006-01-02T15:04:05" or "2006-01-02" (both read as UTC), or a JSON number
// of Unix milliseconds. Years outside 1 to 9999 are rejected; RFC 3339
// cannot represent them.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] != '"' {
		ms, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid timestamp %s", b)
		}
		return t.set(time.UnixMilli(ms).UTC(), string(b))
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return t.set(parsed, s)
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) set(v time.Time, raw string) error {
	if y := v.UTC().Year(); y < 1 || y > 9999 {
		return fmt.Errorf("timestamp %s is outside years 1 to 9999", raw)
	}
	t.Time = v
	return nil
}

// validation wraps a validator with English error messages.
type validation struct {
	v     *validator.Validate
	trans ut.Translator
}

func newValidation() *validation {
	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")

	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// A zero Timestamp counts as missing for `required`.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		ts, ok := field.Interface().(Timestamp)
		if !ok || ts.IsZero() {
			return nil
		}
		return ts.Time
	}, Timestamp{})
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	return &validation{v: v, trans: trans}
}

// check validates dst and folds every field error into one domain.ErrValidation.
func (vl *validation) check(dst any) error {
	err := vl.v.Struct(dst)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}
	msgs := lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
		return fe.Translate(vl.trans)
	})
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

// decode reads a JSON body into dst and validates it.
func (s *Server) decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is required", domain.ErrValidation)
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrValidation, maxErr.Limit)
		default:
			return fmt.Errorf("%w: malformed request body: %s", domain.ErrValidation, err)
		}
	}
	return s.validate.check(dst)
}

// pathUUID binds the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a valid UUID", domain.ErrValidation, name)
	}
	return id, nil
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrValidation, name)
	}
	return &b, nil
}
