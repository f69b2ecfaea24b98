package s3_test

import (
	"hotel/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name         string
		publicDomain string
		url          string
		expected     string
	}{
		{
			name:         "url from public domain",
			publicDomain: "https://cdn.example.com",
			url:          "https://cdn.example.com/rooms/abc/photo.png",
			expected:     "rooms/abc/photo.png",
		},
		{
			name:         "public domain with trailing slash",
			publicDomain: "https://cdn.example.com/",
			url:          "https://cdn.example.com/rooms/abc/photo.png",
			expected:     "rooms/abc/photo.png",
		},
		{
			name:         "foreign url",
			publicDomain: "https://cdn.example.com",
			url:          "https://images.other.org/photo.png",
			expected:     "",
		},
		{
			name:     "no public domain",
			url:      "https://cdn.example.com/rooms/abc/photo.png",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s3.ObjectKeyFromURL(tt.publicDomain, tt.url))
		})
	}
}
