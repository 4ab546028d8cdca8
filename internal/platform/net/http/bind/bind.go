// Package bind decodes and validates JSON request bodies. Bodies that do not
// decode fail with ErrorCodeJSON; rule violations fail with
// ErrorCodeValidation naming the offending json field
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "autolink/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps a request body. Linkify text alone may be 256KiB
const MaxBody = 1 << 20

type FieldLevel = validator.FieldLevel

type engine struct {
	v  *validator.Validate
	tr ut.Translator
}

var std = sync.OnceValue(func() *engine {
	locale := en.New()
	tr, _ := ut.New(locale, locale).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = entrans.RegisterDefaultTranslations(v, tr)

	e := &engine{v: v, tr: tr}
	_ = e.message("min", "{0} must be at least {1}")
	_ = e.message("max", "{0} must be at most {1}")
	return e
})

// jsonName makes errors speak in the request's field names
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func (e *engine) message(tag, text string) error {
	return e.v.RegisterTranslation(tag, e.tr,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// RegisterTag adds a validation tag. In message {0} is the field, {1} the tag param
func RegisterTag(tag string, fn validator.Func, message string) error {
	e := std()
	if err := e.v.RegisterValidation(tag, fn); err != nil {
		return err
	}
	return e.message(tag, message)
}

// JSON decodes one JSON object from r into a T and validates it.
// Unknown fields, trailing data and bodies over MaxBody are rejected
func JSON[T any](r *http.Request) (T, error) {
	var v T
	body := http.MaxBytesReader(nil, r.Body, MaxBody)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return v, perr.JSONErrf("empty body")
		case errors.As(err, &tooBig):
			return v, perr.JSONErrf("body exceeds %d bytes", tooBig.Limit)
		default:
			return v, perr.JSONErrf("invalid JSON: %v", err)
		}
	}
	if dec.More() {
		return v, perr.JSONErrf("unexpected data after the JSON object")
	}
	return v, Validate(v)
}

// Validate applies v's validate tags and reports the first violation
func Validate(v any) error {
	err := std().v.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return perr.Wrap(err, perr.ErrorCodeInvariant, "validate")
	}
	fe := fields[0]
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", fe.Translate(std().tr)), fe.Field())
}
