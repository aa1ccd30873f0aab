package health

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// HealthReading is one stored snapshot of a user's metrics. Documents are
// append-only: nothing in this package updates or deletes them.
type HealthReading struct {
	ID               string    `json:"_id"`
	HeartRate        int       `json:"heartrate"`
	BloodPressure    string    `json:"bloodpressure"`
	OxygenSaturation int       `json:"oxygensaturation"`
	SleepQuality     string    `json:"sleepquality"`
	Steps            int       `json:"steps"`
	Metabolism       string    `json:"metabolism"`
	StressLevel      string    `json:"stresslevel"`
	Focus            string    `json:"focus"`
	Mindfulness      string    `json:"mindfulness"`
	Vatta            string    `json:"vatta"`
	Pitta            string    `json:"pitta"`
	Kapha            string    `json:"kapha"`
	CreatedAt        time.Time `json:"-"`
}

// Summary renders the reading as a single line for prompt context.
func (r *HealthReading) Summary() string {
	return fmt.Sprintf(
		"heart rate %d bpm; blood pressure %s mmHg; oxygen saturation %d%%; sleep quality %s; steps %d; "+
			"metabolism %s; stress level %s; focus %s; mindfulness %s; dosha levels vata %s, pitta %s, kapha %s",
		r.HeartRate, r.BloodPressure, r.OxygenSaturation, r.SleepQuality, r.Steps,
		r.Metabolism, r.StressLevel, r.Focus, r.Mindfulness, r.Vatta, r.Pitta, r.Kapha)
}

// ReadingInput is the create payload. Pointer fields distinguish an absent
// or null field from a zero value. Field order is the order in which
// failures are reported.
type ReadingInput struct {
	HeartRate        *int    `json:"heartrate" validate:"required,gte=0,lte=300"`
	BloodPressure    *string `json:"bloodpressure" validate:"required,bloodpressure"`
	OxygenSaturation *int    `json:"oxygensaturation" validate:"required,gte=0,lte=100"`
	SleepQuality     *string `json:"sleepquality" validate:"required,min=1"`
	Steps            *int    `json:"steps" validate:"required,gte=0"`
	Metabolism       *string `json:"metabolism" validate:"required,min=1"`
	StressLevel      *string `json:"stresslevel" validate:"required,min=1"`
	Focus            *string `json:"focus" validate:"required,min=1"`
	Mindfulness      *string `json:"mindfulness" validate:"required,min=1"`
	Vatta            *string `json:"vatta" validate:"required,min=1"`
	Pitta            *string `json:"pitta" validate:"required,min=1"`
	Kapha            *string `json:"kapha" validate:"required,min=1"`
}

// Validate checks every field and reports the first failure.
func (in *ReadingInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
	}
	return &ValidationError{Reason: err.Error()}
}

// Reading converts a validated input into a document ready to persist.
func (in *ReadingInput) Reading() *HealthReading {
	return &HealthReading{
		HeartRate:        *in.HeartRate,
		BloodPressure:    strings.TrimSpace(*in.BloodPressure),
		OxygenSaturation: *in.OxygenSaturation,
		SleepQuality:     *in.SleepQuality,
		Steps:            *in.Steps,
		Metabolism:       *in.Metabolism,
		StressLevel:      *in.StressLevel,
		Focus:            *in.Focus,
		Mindfulness:      *in.Mindfulness,
		Vatta:            *in.Vatta,
		Pitta:            *in.Pitta,
		Kapha:            *in.Kapha,
	}
}

// DecodeReadingInput reads a JSON object from r. Malformed JSON and values
// of the wrong primitive type come back as *ValidationError.
func DecodeReadingInput(r io.Reader) (*ReadingInput, error) {
	var in ReadingInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, &ValidationError{Field: typeErr.Field, Reason: "must be " + kindName(typeErr.Type)}
		}
		return nil, &ValidationError{Reason: "request body must be a JSON object"}
	}
	return &in, nil
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int32, reflect.Int64:
		return "an integer"
	case reflect.String:
		return "a string"
	default:
		return "a " + t.Kind().String()
	}
}

var (
	validate             = newValidator()
	bloodPressurePattern = regexp.MustCompile(`^\d{2,3}/\d{2,3}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("bloodpressure", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		if f.Kind() == reflect.Ptr {
			if f.IsNil() {
				return false
			}
			f = f.Elem()
		}
		return bloodPressurePattern.MatchString(strings.TrimSpace(f.String()))
	})
	return v
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must not be empty"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "bloodpressure":
		return "must be formatted as systolic/diastolic"
	default:
		return "is invalid"
	}
}
