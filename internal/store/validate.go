package store

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/davdmx/statuswatch/internal/store/storeerrors"
)

// emailRe is the acceptance rule for user emails. The whole value must
// match.
var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// EmailValidator validates user emails against the required pattern.
var EmailValidator = func(fl validator.FieldLevel) bool {
	return emailRe.MatchString(fl.Field().String())
}

// RouteValidator validates the encoded UI-interaction route of a service.
var RouteValidator = func(fl validator.FieldLevel) bool {
	_, err := NormalizeRoute(fl.Field().String())
	return err == nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("useremail", EmailValidator); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("svcroute", RouteValidator); err != nil {
		panic(err)
	}
	return v
}

// validationReasons maps "<Struct>.<Field>.<tag>" to the message reported
// for that failure.
var validationReasons = map[string]string{
	"User.Email.required":        "you must provide a valid email",
	"User.Email.useremail":       "you must provide a valid email",
	"User.Password.required":     "a password is required",
	"User.Name.required":         "a name is required",
	"User.Type.oneof":            "the user type must be one of the list: admin, user",
	"User.Status.oneof":          "the status must be one of the list: active, inactive",
	"Service.Name.required":      "a name is required",
	"Service.URL.required":       "a url is required",
	"Service.Route.required":     "must follow the pattern " + RoutePattern,
	"Service.Route.svcroute":     "must follow the pattern " + RoutePattern,
	"Service.Status.oneof":       "the status must be one of the list: active, inactive",
	"Service.AppType.oneof":      "the service type must be one of the list: " + strings.Join(AppTypeValues(), ", "),
	"ServiceLog.Status.required": "a status is required",
	"ServiceLog.AppID.required":  "the log must reference a service",
}

// fieldNames maps struct field names to the names reported to callers.
var fieldNames = map[string]string{
	"AppType":    "app_type",
	"AppID":      "app_id",
	"StatusDate": "status_date",
	"URL":        "url",
}

// translateValidation converts a validator error into the store's
// validation kind, keeping only the first failing field.
func translateValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return storeerrors.NewValidation("entity", err.Error())
	}
	fe := verrs[0]
	key := fe.StructNamespace() + "." + fe.Tag()
	reason, ok := validationReasons[key]
	if !ok {
		reason = "failed validation rule " + fe.Tag()
	}
	field, ok := fieldNames[fe.Field()]
	if !ok {
		field = strings.ToLower(fe.Field())
	}
	return storeerrors.NewValidation(field, reason)
}
