package subscriber

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/dev-mario/raspored/core"
)

var (
	subscriptionsTag  = "subscriptions"
	subscriptionsText = "must only contain: weekly, changes, exams"
)

// InitValidators registers the subscriber validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(subscriptionsTag, subscriptionsValidation)
	core.RegisterCustomTranslation(validate, translator, subscriptionsTag, subscriptionsText)
}

func subscriptionsValidation(fl validator.FieldLevel) bool {
	subs, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, sub := range subs {
		if !isKnownSubscription(sub) {
			return false
		}
	}
	return true
}

func isKnownSubscription(sub string) bool {
	for _, known := range AllSubscriptions {
		if sub == known {
			return true
		}
	}
	return false
}
