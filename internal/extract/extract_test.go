package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "dotted date",
			text: "Rechnung Nr. 4711\nDatum: 2024.3.7\nBetrag: 45,00 €",
			want: "2024-03-07",
		},
		{
			name: "dashed date already padded",
			text: "Invoice date 2024-03-10, due in 14 days",
			want: "2024-03-10",
		},
		{
			name: "slashed date",
			text: "Issued 2023/12/1 by Deutsche Bahn",
			want: "2023-12-01",
		},
		{
			name: "first match wins",
			text: "2024-01-02 and later 2024-05-06",
			want: "2024-01-02",
		},
		{
			name: "no date",
			text: "Vielen Dank für Ihren Einkauf",
			want: "",
		},
		{
			name: "two digit year does not match",
			text: "Datum 24.03.07",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Date(tc.text))
		})
	}
}

func TestFilenameDate(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"underscore separators", "2024_3_7_hotel.pdf", "2024-03-07"},
		{"dashed name", "2024-03-10.pdf", "2024-03-10"},
		{"no date", "hotel_invoice.pdf", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilenameDate(tc.file))
		})
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"comma decimal with space", "Gesamtbetrag: 45,00 €", "45.00"},
		{"point decimal no space", "Total 12.50€ incl. VAT", "12.50"},
		{"comma normalized", "Summe 1234,56 €", "1234.56"},
		{"first match wins", "Netto 10,00 € Brutto 11,90 €", "10.00"},
		{"no currency symbol", "Total 45.00 EUR", ""},
		{"no amount", "Kein Betrag auf diesem Beleg", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Amount(tc.text))
		})
	}
}
