package timezone_test

import (
	"testing"
	"time"

	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	loc := timezone.GetLocation()
	require.NotNil(t, loc)

	assert.Same(t, loc, timezone.GetLocation())
	assert.Equal(t, loc, timezone.Now().Location())
}

func TestToAppTime_KeepsInstant(t *testing.T) {
	checkOut := time.Date(2024, 1, 20, 11, 0, 0, 0, time.UTC)

	got := timezone.ToAppTime(checkOut)

	assert.True(t, got.Equal(checkOut))
	assert.Equal(t, timezone.GetLocation(), got.Location())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "date only is midnight utc",
			input:    "2024-01-15",
			expected: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 utc",
			input:    "2024-01-20T11:00:00Z",
			expected: time.Date(2024, 1, 20, 11, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339 with offset is normalised",
			input:    "2024-01-20T12:00:00+02:00",
			expected: time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "surrounding whitespace",
			input:    " 2024-02-29 ",
			expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
		{name: "impossible day", input: "2023-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timezone.ParseDate(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, timezone.ErrInvalidDate)
				return
			}

			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestFormat(t *testing.T) {
	checkIn := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, checkIn.In(timezone.GetLocation()).Format(time.RFC3339), timezone.Format(checkIn, time.RFC3339))
}
