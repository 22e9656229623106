package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCountryCode(t *testing.T) {
	assert.Equal(t, "US", extractCountryCode("Ships from dealer US"))
	assert.Equal(t, "CH", extractCountryCode("Professional dealer CH"))
	assert.Equal(t, "", extractCountryCode("no code here"))
	assert.Equal(t, "", extractCountryCode(""))
}

func TestExtractCurrency(t *testing.T) {
	assert.Equal(t, "USD", extractCurrency("$6,550"))
	assert.Equal(t, "EUR", extractCurrency("€5.900"))
	assert.Equal(t, "GBP", extractCurrency("£4,995"))
	assert.Equal(t, "", extractCurrency("6550"))
}

func TestExtractPrice(t *testing.T) {
	assert.Equal(t, int64(6550), extractPrice("$6,550"))
	assert.Equal(t, int64(5900), extractPrice("€5900"))
	assert.Equal(t, int64(0), extractPrice("Price on request"))
}

func TestFormatYear(t *testing.T) {
	assert.Equal(t, "2004-01-01", formatYear("2004"))
	assert.Equal(t, "2004-01-01", formatYear("2004 (approximation)"))
	assert.Equal(t, "", formatYear(""))
}

func TestConvertRow(t *testing.T) {
	header := map[string]int{
		"name": 0, "brand": 1, "ref": 2, "price": 3, "yop": 4, "shipping": 5,
	}
	row := []string{"Santos de Cartier", "Cartier", "WSSA0018", "$6,550", "2018", "Ships from dealer US"}

	rec, err := convertRow(header, row)
	require.NoError(t, err)
	assert.Equal(t, "Santos de Cartier", rec.Name)
	assert.Equal(t, "Cartier", rec.Brand)
	assert.Equal(t, "WSSA0018", rec.ReferenceNumber)
	assert.Equal(t, int64(6550), rec.RetailPrice)
	assert.Equal(t, "2018-01-01", rec.ReleaseDate)
	assert.Equal(t, "US", rec.CountryCode)
	assert.Equal(t, "USD", rec.CurrencyCode)
}

func TestConvertRow_MissingRef(t *testing.T) {
	header := map[string]int{"name": 0, "ref": 1}
	_, err := convertRow(header, []string{"Santos de Cartier", ""})
	assert.Error(t, err)
}
