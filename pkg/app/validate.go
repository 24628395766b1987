package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var ErrInvalidInput = errors.New("invalid input")

// EventInput is a new or edited calendar event. Repeat is an optional
// RRULE ("FREQ=WEEKLY;COUNT=4") and Until bounds it.
type EventInput struct {
	Title  string `json:"title" validate:"required,max=500"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string `json:"time" validate:"omitempty,datetime=15:04"`
	Repeat string `json:"repeat" validate:"omitempty,max=200"`
	Until  string `json:"until" validate:"omitempty,datetime=2006-01-02"`
}

type FlashcardInput struct {
	Front string `json:"front" validate:"required,max=500"`
	Back  string `json:"back" validate:"required,max=500"`
}

type NoteInput struct {
	ID    string `json:"id" validate:"omitempty,excludesall=/\\"`
	Title string `json:"title" validate:"required_without=Body,excludesall=\r\n"`
	Body  string `json:"body"`
}

type inputValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newInputValidator() (*inputValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &inputValidator{validate: validate, translator: trans}, nil
}

// check trims every string field of in and validates it.
func (v *inputValidator) check(in any) error {
	trimStrings(in)
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, e.Translate(v.translator))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}

func trimStrings(in any) {
	rv := reflect.ValueOf(in)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return
	}
	rv = rv.Elem()
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.CanSet() {
			f.SetString(strings.TrimSpace(f.String()))
		}
	}
}
