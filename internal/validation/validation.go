// internal/validation/validation.go
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmarins/campaigns-backend/internal/model"
)

// CreateCampaignInput is the decoded JSON body of POST /campaigns.
type CreateCampaignInput struct {
	Name      string `json:"name" validate:"required,min=3"`
	Category  string `json:"category" validate:"required,oneof=marketing sales product events other"`
	StartDate string `json:"startDate" validate:"required,rfc3339"`
	EndDate   string `json:"endDate" validate:"required,rfc3339"`
	Status    string `json:"status" validate:"omitempty,oneof=active paused expired"`
}

// UpdateCampaignInput is the decoded JSON body of PUT /campaigns/{id}.
// Every field is optional; absent fields keep their stored value.
type UpdateCampaignInput struct {
	Name      *string `json:"name" validate:"omitempty,min=3"`
	Category  *string `json:"category" validate:"omitempty,oneof=marketing sales product events other"`
	StartDate *string `json:"startDate" validate:"omitempty,rfc3339"`
	EndDate   *string `json:"endDate" validate:"omitempty,rfc3339"`
	Status    *string `json:"status" validate:"omitempty,oneof=active paused expired"`
}

// CreateCampaign is a normalized, fully-typed create payload.
type CreateCampaign struct {
	Name      string
	Category  string
	StartDate time.Time
	EndDate   time.Time
	Status    string
}

// UpdateCampaign is a normalized partial update. Nil means "not provided".
type UpdateCampaign struct {
	Name      *string
	Category  *string
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the JSON field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("rfc3339", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.RFC3339, fl.Field().String())
		return err == nil
	})

	return v
}

// ValidateCreate checks a create payload against the campaign field rules
// plus the create-only temporal rules (endDate after startDate, startDate on
// or after the start of the current calendar day). It returns either a
// normalized payload with status defaulted to active, or a map of field
// names to human-readable messages. It never panics.
func ValidateCreate(in CreateCampaignInput) (*CreateCampaign, map[string][]string) {
	return validateCreateAt(in, time.Now())
}

func validateCreateAt(in CreateCampaignInput, now time.Time) (*CreateCampaign, map[string][]string) {
	fields := fieldErrors(validate.Struct(in))

	out := &CreateCampaign{
		Name:     in.Name,
		Category: in.Category,
		Status:   in.Status,
	}
	if out.Status == "" {
		out.Status = model.StatusActive
	}

	if len(fields["startDate"]) == 0 {
		out.StartDate, _ = time.Parse(time.RFC3339, in.StartDate)
	}
	if len(fields["endDate"]) == 0 {
		out.EndDate, _ = time.Parse(time.RFC3339, in.EndDate)
	}

	// Cross-field rules only make sense once both dates parsed cleanly.
	if len(fields["startDate"]) == 0 && len(fields["endDate"]) == 0 {
		if !out.EndDate.After(out.StartDate) {
			fields = appendFieldError(fields, "endDate", "endDate must be after startDate")
		}
		if out.StartDate.Before(startOfDay(now)) {
			fields = appendFieldError(fields, "startDate", "startDate must be on or after today")
		}
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return out, nil
}

// ValidateUpdate checks a partial update payload. When both dates are
// present their ordering is checked here; when only one is present the
// service checks ordering against the stored record after the merge.
func ValidateUpdate(in UpdateCampaignInput) (*UpdateCampaign, map[string][]string) {
	fields := fieldErrors(validate.Struct(in))

	out := &UpdateCampaign{
		Name:     in.Name,
		Category: in.Category,
		Status:   in.Status,
	}

	if in.StartDate != nil && len(fields["startDate"]) == 0 {
		t, _ := time.Parse(time.RFC3339, *in.StartDate)
		out.StartDate = &t
	}
	if in.EndDate != nil && len(fields["endDate"]) == 0 {
		t, _ := time.Parse(time.RFC3339, *in.EndDate)
		out.EndDate = &t
	}

	if out.StartDate != nil && out.EndDate != nil && !out.EndDate.After(*out.StartDate) {
		fields = appendFieldError(fields, "endDate", "endDate must be after startDate")
	}

	if len(fields) > 0 {
		return nil, fields
	}
	return out, nil
}

// fieldErrors flattens validator errors into field -> messages.
func fieldErrors(err error) map[string][]string {
	if err == nil {
		return nil
	}

	fields := map[string][]string{}
	validateErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// e.g. InvalidValidationError; surface it without a field name
		fields[""] = []string{err.Error()}
		return fields
	}
	for _, fe := range validateErrs {
		fields[fe.Field()] = append(fields[fe.Field()], message(fe))
	}
	return fields
}

func appendFieldError(fields map[string][]string, name, msg string) map[string][]string {
	if fields == nil {
		fields = map[string][]string{}
	}
	fields[name] = append(fields[name], msg)
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "rfc3339":
		return fmt.Sprintf("%s must be a valid RFC 3339 date-time", fe.Field())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// startOfDay truncates to local midnight, matching the create rule that
// startDate may not fall on a previous calendar day.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
