package shared

import (
	"context"
	"fmt"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseFloatParam reads an optional numeric query parameter. Empty means absent; anything that is
// not a finite number is a bad request naming the parameter.
func ParseFloatParam(name, value string) (*float64, error) {
	if value == "" {
		return nil, nil
	}

	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return nil, failure.BadRequestFromString(name + " must be a number") //nolint:wrapcheck
	}

	return &number, nil
}

// TransformFields converts the non-zero db-tagged fields of a struct into a column map for UPDATE.
// Non-nil pointers are dereferenced so an explicit zero (price 0, smoking false) is still written.
func TransformFields(data interface{}) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	if len(updatedFields) > 0 {
		updatedFields[constant.FieldUpdatedAt] = timezone.Now()
	}

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins a key prefix such as "room:get" with an identifier.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// BuildCacheKeyWithQuery derives a stable key from list parameters; empty values are dropped
// and url.Values.Encode sorts the rest by name.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filters map[string]string) string {
	values := url.Values{}

	values.Set(constant.RequestParamPage, strconv.Itoa(params.Page))
	values.Set(constant.RequestParamLimit, strconv.Itoa(params.Limit))

	if params.SortBy != "" {
		values.Set(constant.RequestParamSortBy, params.SortBy)
	}

	if params.SortDir != "" {
		values.Set(constant.RequestParamSortDir, params.SortDir)
	}

	for key, value := range filters {
		if value != "" {
			values.Set(key, value)
		}
	}

	return fmt.Sprintf("%s:%s", prefix, values.Encode())
}

// InvalidateCaches clears every key under each prefix. Failures are logged; a stale entry
// expires with its TTL.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
			log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate cache")
		}
	}
}
