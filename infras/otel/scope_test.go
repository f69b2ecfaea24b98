package otel

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestToAttribute(t *testing.T) {
	checkIn := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		value any
		want  attribute.KeyValue
	}{
		{true, attribute.Bool("k", true)},
		{"room-1", attribute.String("k", "room-1")},
		{4, attribute.Int("k", 4)},
		{int64(7), attribute.Int64("k", 7)},
		{250.5, attribute.Float64("k", 250.5)},
		{[]string{"WiFi", "TV"}, attribute.StringSlice("k", []string{"WiFi", "TV"})},
		{checkIn, attribute.String("k", "2024-01-15T00:00:00Z")},
		{1500 * time.Millisecond, attribute.Int64("k", 1500)},
		{errors.New("boom"), attribute.String("k", "boom")},
		{struct{ N int }{3}, attribute.String("k", "{3}")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toAttribute("k", tt.value))
	}
}
