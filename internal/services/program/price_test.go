package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{name: "singles program fixed price", price: 78, want: "₦120,000"},
		{name: "premium program fixed price", price: 161.20, want: "₦250,000"},
		{name: "converted by rate", price: 100, want: "₦150,000"},
		{name: "small amount without separator", price: 0.5, want: "₦750"},
		{name: "rounding up", price: 1.0001, want: "₦1,500"},
		{name: "zero price", price: 0, want: "₦0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalPrice(tt.price))
		})
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{120000, "120,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, groupThousands(tt.in))
	}
}
