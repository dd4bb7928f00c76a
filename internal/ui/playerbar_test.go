package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{9, "00:09"},
		{61, "01:01"},
		{754.9, "12:34"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatTime(tt.seconds))
	}
}
