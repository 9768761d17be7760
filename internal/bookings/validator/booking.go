package validator

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"srimurugan/pkg/calendar"
	"srimurugan/pkg/logger"
	"srimurugan/pkg/model"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details flattens the errors into field -> message for error responses.
func (v ValidationErrors) Details() map[string]any {
	out := make(map[string]any, len(v))
	for _, err := range v {
		out[err.Field] = err.Message
	}
	return out
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
	fleet    model.Fleet
	maxDays  int
}

func NewBookingValidator(log *logger.Logger, fleet model.Fleet, maxDays int) *BookingValidator {
	bv := &BookingValidator{
		validate: validator.New(),
		logger:   log,
		fleet:    fleet,
		maxDays:  maxDays,
	}

	bv.validate.RegisterTagNameFunc(jsonFieldName)
	bv.validate.RegisterCustomTypeFunc(dateValue, calendar.Date{})
	bv.validate.RegisterStructValidation(validateBookingRules, model.Booking{})

	custom := map[string]validator.Func{
		"bus_name":         bv.validateBusName,
		"pickup_time":      validatePickupTime,
		"max_booking_days": bv.validateMaxDays,
	}
	for tag, fn := range custom {
		if err := bv.validate.RegisterValidation(tag, fn); err != nil {
			log.Fatal("Failed to register booking validation",
				"tag", tag,
				"error", err,
			)
		}
	}

	log.Info("Booking validator initialized successfully",
		"buses", len(fleet),
		"max_booking_days", maxDays,
	)

	return bv
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

// dateValue lets "required" treat the zero Date as empty.
func dateValue(field reflect.Value) any {
	d, ok := field.Interface().(calendar.Date)
	if !ok || d.IsZero() {
		return ""
	}
	return d.String()
}

func (v *BookingValidator) validateBusName(fl validator.FieldLevel) bool {
	_, ok := v.fleet.Find(fl.Field().String())
	return ok
}

func validatePickupTime(fl validator.FieldLevel) bool {
	return slices.Contains(model.PickupTimes, fl.Field().String())
}

func (v *BookingValidator) validateMaxDays(fl validator.FieldLevel) bool {
	return v.maxDays <= 0 || fl.Field().Int() <= int64(v.maxDays)
}

func validateBookingRules(sl validator.StructLevel) {
	b, ok := sl.Current().Interface().(model.Booking)
	if !ok {
		return
	}
	if b.BeforeNightPickup && b.PickupTime == "" {
		sl.ReportError(b.PickupTime, "pickup_time", "PickupTime", "required_with_night_pickup", "")
	}
	if b.Advance > b.TotalAmount {
		sl.ReportError(b.Advance, "advance", "Advance", "lte_total", "")
	}
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) ValidateUpdate(update *model.BookingUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s digits", err.Field(), err.Param())
		case "numeric":
			message = fmt.Sprintf("%s must contain digits only", err.Field())
		case "gte":
			message = fmt.Sprintf("%s cannot be negative", err.Field())
		case "bus_name":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), strings.Join(v.fleet.Names(), ", "))
		case "pickup_time":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), strings.Join(model.PickupTimes, ", "))
		case "max_booking_days":
			message = fmt.Sprintf("%s must be at most %d", err.Field(), v.maxDays)
		case "required_with_night_pickup":
			message = "pickup_time is required for a night pickup"
		case "lte_total":
			message = "advance cannot exceed total_amount"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
