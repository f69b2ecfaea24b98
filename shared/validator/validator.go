package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"hotel/shared/failure"
	"hotel/shared/timezone"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMegabyte = 1 << 20

var validate = newValidator()

// rules are the tags added on top of validator's built-ins.
var rules = map[string]val.Func{
	// stay_date accepts YYYY-MM-DD or RFC 3339.
	"stay_date": func(field val.FieldLevel) bool {
		value, ok := field.Field().Interface().(string)
		if !ok {
			return false
		}

		_, err := timezone.ParseDate(value)

		return err == nil
	},
	// mimetypes takes a space separated list of media types; parameters are ignored.
	"mimetypes": func(field val.FieldLevel) bool {
		mediaType, _, err := mime.ParseMediaType(field.Field().String())
		if err != nil {
			return false
		}

		return slices.Contains(strings.Fields(field.Param()), mediaType)
	},
	// maxfilesize caps an integer byte count at the parameter in megabytes.
	"maxfilesize": func(field val.FieldLevel) bool {
		if !field.Field().CanInt() {
			return false
		}

		limit, err := strconv.ParseFloat(field.Param(), 64)
		if err != nil {
			return false
		}

		return field.Field().Int() <= int64(limit*bytesPerMegabyte)
	},
}

func newValidator() *val.Validate {
	v := val.New(val.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// jsonFieldName makes error messages use the request's field names.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	default:
		return name
	}
}

// Validate decodes a JSON body into data and validates it. Both decode and rule failures are
// returned as bad request failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	return badRequest(validate.Struct(data))
}

func ValidateVar(field any, tag string) error {
	return badRequest(validate.Var(field, tag))
}

func badRequest(err error) error {
	if err == nil {
		return nil
	}

	return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
}
