package conversion

import (
	"sort"
	"strings"
)

// ServiceID prefixes every conversion tool ID.
const ServiceID = "conversion"

// Quantity is the physical or financial dimension a conversion operates on
type Quantity string

const (
	QuantityTemperature Quantity = "temperature"
	QuantityCurrency    Quantity = "currency"
	QuantityLength      Quantity = "length"
	QuantityMass        Quantity = "mass"
	QuantitySpeed       Quantity = "speed"
	QuantityEnergy      Quantity = "energy"
	QuantityPower       Quantity = "power"
)

// Conversion describes one named conversion function
type Conversion struct {
	ID          string                `json:"id" yaml:"id" toml:"id"`
	Name        string                `json:"name" yaml:"name" toml:"name"`
	Description string                `json:"description" yaml:"description" toml:"description"`
	Param       string                `json:"param" yaml:"param" toml:"param"`
	From        string                `json:"from" yaml:"from" toml:"from"`
	To          string                `json:"to" yaml:"to" toml:"to"`
	Quantity    Quantity              `json:"quantity" yaml:"quantity" toml:"quantity"`
	Inverse     string                `json:"inverse" yaml:"inverse" toml:"inverse"`
	Fn          func(float64) float64 `json:"-" yaml:"-" toml:"-"`
}

// ToolID returns the registry-qualified tool identifier
func (c Conversion) ToolID() string {
	return ServiceID + "." + c.ID
}

// Apply runs the conversion formula
func (c Conversion) Apply(value float64) float64 {
	return c.Fn(value)
}

var catalog = []Conversion{
	{
		ID:          "celsius_to_fahrenheit",
		Name:        "Celsius to Fahrenheit",
		Description: "Convert temperature from Celsius to Fahrenheit",
		Param:       "celsius",
		From:        "°C",
		To:          "°F",
		Quantity:    QuantityTemperature,
		Inverse:     "fahrenheit_to_celsius",
		Fn:          CelsiusToFahrenheit,
	},
	{
		ID:          "fahrenheit_to_celsius",
		Name:        "Fahrenheit to Celsius",
		Description: "Convert temperature from Fahrenheit to Celsius",
		Param:       "fahrenheit",
		From:        "°F",
		To:          "°C",
		Quantity:    QuantityTemperature,
		Inverse:     "celsius_to_fahrenheit",
		Fn:          FahrenheitToCelsius,
	},
	{
		ID:          "dollar_to_vnd",
		Name:        "Dollar to VND",
		Description: "Convert US dollars to Vietnamese dong at 23,000 VND per USD",
		Param:       "dollar",
		From:        "USD",
		To:          "VND",
		Quantity:    QuantityCurrency,
		Inverse:     "vnd_to_dollar",
		Fn:          DollarToVND,
	},
	{
		ID:          "vnd_to_dollar",
		Name:        "VND to Dollar",
		Description: "Convert Vietnamese dong to US dollars at 23,000 VND per USD",
		Param:       "vnd",
		From:        "VND",
		To:          "USD",
		Quantity:    QuantityCurrency,
		Inverse:     "dollar_to_vnd",
		Fn:          VNDToDollar,
	},
	{
		ID:          "inch_to_cm",
		Name:        "Inch to Centimeter",
		Description: "Convert length from inches to centimeters",
		Param:       "inch",
		From:        "in",
		To:          "cm",
		Quantity:    QuantityLength,
		Inverse:     "cm_to_inch",
		Fn:          InchToCm,
	},
	{
		ID:          "cm_to_inch",
		Name:        "Centimeter to Inch",
		Description: "Convert length from centimeters to inches",
		Param:       "cm",
		From:        "cm",
		To:          "in",
		Quantity:    QuantityLength,
		Inverse:     "inch_to_cm",
		Fn:          CmToInch,
	},
	{
		ID:          "kg_to_lb",
		Name:        "Kilogram to Pound",
		Description: "Convert mass from kilograms to pounds",
		Param:       "kg",
		From:        "kg",
		To:          "lb",
		Quantity:    QuantityMass,
		Inverse:     "lb_to_kg",
		Fn:          KgToLb,
	},
	{
		ID:          "lb_to_kg",
		Name:        "Pound to Kilogram",
		Description: "Convert mass from pounds to kilograms",
		Param:       "lb",
		From:        "lb",
		To:          "kg",
		Quantity:    QuantityMass,
		Inverse:     "kg_to_lb",
		Fn:          LbToKg,
	},
	{
		ID:          "kph_to_mps",
		Name:        "km/h to m/s",
		Description: "Convert speed from km/h to m/s (multiplies by 3.6; factor is inverted relative to the physical conversion)",
		Param:       "kph",
		From:        "km/h",
		To:          "m/s",
		Quantity:    QuantitySpeed,
		Inverse:     "mps_to_kph",
		Fn:          KphToMps,
	},
	{
		ID:          "mps_to_kph",
		Name:        "m/s to km/h",
		Description: "Convert speed from m/s to km/h (divides by 3.6; factor is inverted relative to the physical conversion)",
		Param:       "mps",
		From:        "m/s",
		To:          "km/h",
		Quantity:    QuantitySpeed,
		Inverse:     "kph_to_mps",
		Fn:          MpsToKph,
	},
	{
		ID:          "joule_to_cal",
		Name:        "Joule to Calorie",
		Description: "Convert energy from joules to calories",
		Param:       "joule",
		From:        "J",
		To:          "cal",
		Quantity:    QuantityEnergy,
		Inverse:     "cal_to_joule",
		Fn:          JouleToCal,
	},
	{
		ID:          "cal_to_joule",
		Name:        "Calorie to Joule",
		Description: "Convert energy from calories to joules",
		Param:       "cal",
		From:        "cal",
		To:          "J",
		Quantity:    QuantityEnergy,
		Inverse:     "joule_to_cal",
		Fn:          CalToJoule,
	},
	{
		ID:          "watts_to_hp",
		Name:        "Watts to Horsepower",
		Description: "Convert power from watts to metric horsepower",
		Param:       "watts",
		From:        "W",
		To:          "hp",
		Quantity:    QuantityPower,
		Inverse:     "hp_to_watts",
		Fn:          WattsToHP,
	},
	{
		ID:          "hp_to_watts",
		Name:        "Horsepower to Watts",
		Description: "Convert power from metric horsepower to watts",
		Param:       "hp",
		From:        "hp",
		To:          "W",
		Quantity:    QuantityPower,
		Inverse:     "watts_to_hp",
		Fn:          HPToWatts,
	},
}

var byID = func() map[string]Conversion {
	m := make(map[string]Conversion, len(catalog))
	for _, c := range catalog {
		m[c.ID] = c
	}
	return m
}()

// Catalog returns every conversion in declaration order.
// The returned slice is a copy and may be modified by the caller.
func Catalog() []Conversion {
	out := make([]Conversion, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a conversion by bare ID ("kg_to_lb") or tool ID ("conversion.kg_to_lb")
func Lookup(id string) (Conversion, bool) {
	id = strings.TrimPrefix(strings.TrimSpace(id), ServiceID+".")
	c, ok := byID[id]
	return c, ok
}

// InverseOf returns the conversion that undoes c
func InverseOf(c Conversion) (Conversion, bool) {
	return Lookup(c.Inverse)
}

// ByQuantity returns the conversions operating on q, in catalog order
func ByQuantity(q Quantity) []Conversion {
	var out []Conversion
	for _, c := range catalog {
		if c.Quantity == q {
			out = append(out, c)
		}
	}
	return out
}

// Quantities lists the distinct quantities, sorted by name
func Quantities() []Quantity {
	seen := make(map[Quantity]struct{})
	var out []Quantity
	for _, c := range catalog {
		if _, ok := seen[c.Quantity]; ok {
			continue
		}
		seen[c.Quantity] = struct{}{}
		out = append(out, c.Quantity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
