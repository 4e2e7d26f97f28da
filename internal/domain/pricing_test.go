package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTax(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{name: "zero subtotal", subtotal: 0, want: 0},
		{name: "typical cart", subtotal: 45.97, want: 4.022375},
		{name: "single item", subtotal: 12.99, want: 1.136625},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateTax(tt.subtotal), 1e-9)
		})
	}
}

func TestCalculateTaxScalesLinearly(t *testing.T) {
	base := CalculateTax(10)
	assert.InDelta(t, 2*base, CalculateTax(20), 1e-9)
	assert.InDelta(t, 10*base, CalculateTax(100), 1e-9)
}

func TestDeliveryFee(t *testing.T) {
	free := 0.0
	published := 3.99

	tests := []struct {
		name string
		fee  *float64
		want float64
	}{
		{name: "no published fee falls back to minimum", fee: nil, want: DeliveryFeeMinimum},
		{name: "explicit zero is free delivery", fee: &free, want: 0},
		{name: "published fee wins", fee: &published, want: 3.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeliveryFee(tt.fee))
		})
	}
}

func TestCalculateTotal(t *testing.T) {
	discount := 5.0
	huge := 1000.0

	tests := []struct {
		name     string
		subtotal float64
		fee      float64
		tax      float64
		discount *float64
		want     float64
	}{
		{name: "no discount", subtotal: 45.97, fee: 3.99, tax: 4.022375, want: 53.982375},
		{name: "with discount", subtotal: 45.97, fee: 3.99, tax: 4.022375, discount: &discount, want: 48.982375},
		{name: "discount exceeding charges goes negative", subtotal: 10, fee: 2.99, tax: 0.875, discount: &huge, want: -986.135},
		{name: "empty cart", subtotal: 0, fee: 2.99, tax: 0, want: 2.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateTotal(tt.subtotal, tt.fee, tt.tax, tt.discount), 1e-9)
		})
	}
}

func TestQuoteComposition(t *testing.T) {
	// The full pipeline for a known cart: unrounded components, display
	// rounding only at the end.
	subtotal := 45.97
	fee := DeliveryFee(ptr(3.99))
	tax := CalculateTax(subtotal)
	total := CalculateTotal(subtotal, fee, tax, nil)

	require.InDelta(t, 4.022375, tax, 1e-9)
	require.InDelta(t, 53.982375, total, 1e-9)
	assert.Equal(t, "$53.98", FormatPrice(total))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{amount: 0, want: "$0.00"},
		{amount: 12.5, want: "$12.50"},
		{amount: 53.982375, want: "$53.98"},
		{amount: 9.999, want: "$10.00"},
		{amount: -3.5, want: "$-3.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.amount))
	}
}

func ptr(v float64) *float64 {
	return &v
}
