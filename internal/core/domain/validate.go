package domain

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the domain's struct rules
// registered. It is safe for concurrent use.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(campaignDates, Campaign{})
	})
	return validate
}

// campaignDates enforces that an end date, when set, is strictly after the
// start date.
func campaignDates(sl validator.StructLevel) {
	c := sl.Current().Interface().(Campaign)
	if c.EndDate == nil || c.StartDate == nil {
		return
	}
	if !c.EndDate.After(*c.StartDate) {
		sl.ReportError(c.EndDate, "EndDate", "end_date", "gtfield", "StartDate")
	}
}

// ValidateCampaign checks the campaign invariants.
func ValidateCampaign(c Campaign) error {
	return Validator().Struct(c)
}
