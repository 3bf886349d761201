package greenops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{name: "small number no separators", n: 123, want: "123"},
		{name: "four digits with separator", n: 1234, want: "1,234"},
		{name: "millions", n: 1234567, want: "1,234,567"},
		{name: "zero", n: 0, want: "0"},
		{name: "negative number", n: -1234, want: "-1,234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.n))
		})
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		name      string
		f         float64
		precision int
		want      string
	}{
		{name: "two decimals with separator", f: 1234.567, precision: 2, want: "1,234.57"},
		{name: "one decimal", f: 278.16, precision: 1, want: "278.2"},
		{name: "zero precision rounds", f: 1234.5, precision: 0, want: "1,235"},
		{name: "small value", f: 0.125, precision: 3, want: "0.125"},
		{name: "negative below one keeps sign", f: -0.5, precision: 1, want: "-0.5"},
		{name: "negative thousands", f: -1234.5, precision: 1, want: "-1,234.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.f, tt.precision))
		})
	}
}

func TestFormatKg(t *testing.T) {
	tests := []struct {
		name string
		kg   float64
		want string
	}{
		{name: "thousands", kg: 1234.5678, want: "1,234.568 kg CO2e"},
		{name: "zero", kg: 0, want: "0.000 kg CO2e"},
		{name: "below display threshold", kg: 0.0004, want: "< 0.001 kg CO2e"},
		{name: "serving", kg: 1.2, want: "1.200 kg CO2e"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatKg(tt.kg))
		})
	}
}
