package schedule

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/dev-mario/raspored/core"
	"github.com/dev-mario/raspored/core/calendar"
)

var (
	weekParityTag  = "weekparity"
	weekParityText = "must be one of: parni, neparni"

	weekdayTag  = "weekday"
	weekdayText = "must be a valid weekday name"
)

// InitValidators registers the schedule validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(weekParityTag, weekParityValidation)
	core.RegisterCustomTranslation(validate, translator, weekParityTag, weekParityText)

	_ = validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(validate, translator, weekdayTag, weekdayText)
}

func weekParityValidation(fl validator.FieldLevel) bool {
	return calendar.WeekParity(fl.Field().String()).Valid()
}

func weekdayValidation(fl validator.FieldLevel) bool {
	return calendar.Weekday(fl.Field().String()).Valid()
}
