package validators

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Register adiciona as tags próprias ao validador do gin:
// hhmm ("15:04"), date ("2006-01-02"), service_category, weekday (0..6).
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"hhmm":             layoutRule("15:04"),
		"isodate":          layoutRule("2006-01-02"),
		"service_category": serviceCategory,
		"weekday":          weekday,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func layoutRule(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		_, err := time.Parse(layout, s)
		return err == nil
	}
}

func serviceCategory(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || models.ValidServiceCategory(s)
}

func weekday(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 0 && d <= 6
}
