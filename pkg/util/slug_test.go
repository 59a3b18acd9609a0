package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fresh Fruits", "fresh-fruits"},
		{"  Apples & Pears ", "apples-pears"},
		{"Citrus--Lemons", "citrus-lemons"},
		{"ხილი", "ხილი"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
