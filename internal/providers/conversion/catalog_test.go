package conversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrderAndSize(t *testing.T) {
	want := []string{
		"celsius_to_fahrenheit", "fahrenheit_to_celsius",
		"dollar_to_vnd", "vnd_to_dollar",
		"inch_to_cm", "cm_to_inch",
		"kg_to_lb", "lb_to_kg",
		"kph_to_mps", "mps_to_kph",
		"joule_to_cal", "cal_to_joule",
		"watts_to_hp", "hp_to_watts",
	}

	got := make([]string, 0, len(want))
	for _, c := range Catalog() {
		got = append(got, c.ID)
	}
	assert.Equal(t, want, got)
}

func TestCatalogIsCopy(t *testing.T) {
	c := Catalog()
	c[0].ID = "mutated"

	assert.Equal(t, "celsius_to_fahrenheit", Catalog()[0].ID)
}

func TestInversesPointBack(t *testing.T) {
	for _, c := range Catalog() {
		inv, ok := InverseOf(c)
		require.True(t, ok, c.ID)
		assert.Equal(t, c.ID, inv.Inverse, "inverse of %s should point back", c.ID)
		assert.Equal(t, c.Quantity, inv.Quantity)
		assert.Equal(t, c.From, inv.To)
		assert.Equal(t, c.To, inv.From)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		wantOK bool
	}{
		{"bare id", "kg_to_lb", true},
		{"tool id", "conversion.kg_to_lb", true},
		{"padded", "  cm_to_inch ", true},
		{"misspelled original name", "kg_to_lib", false},
		{"empty", "", false},
		{"other service", "math.kg_to_lb", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Lookup(tt.id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestQuantities(t *testing.T) {
	qs := Quantities()
	assert.Equal(t, []Quantity{
		QuantityCurrency, QuantityEnergy, QuantityLength, QuantityMass,
		QuantityPower, QuantitySpeed, QuantityTemperature,
	}, qs)

	for _, q := range qs {
		assert.Len(t, ByQuantity(q), 2, "quantity %s", q)
	}
}

func TestToolID(t *testing.T) {
	c, ok := Lookup("inch_to_cm")
	require.True(t, ok)
	assert.Equal(t, "conversion.inch_to_cm", c.ToolID())
	assert.Equal(t, 2.54, c.Apply(1))
}
