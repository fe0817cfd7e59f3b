// Package conversion provides the fixed set of unit conversions exposed by the backend.
//
// Each conversion is a pure function over float64 with a hard-coded constant:
//   - temperature: celsius_to_fahrenheit, fahrenheit_to_celsius
//   - currency: dollar_to_vnd, vnd_to_dollar
//   - length: inch_to_cm, cm_to_inch
//   - mass: kg_to_lb, lb_to_kg
//   - speed: kph_to_mps, mps_to_kph
//   - energy: joule_to_cal, cal_to_joule
//   - power: watts_to_hp, hp_to_watts
//
// NaN and ±Inf inputs are passed through the arithmetic unaltered.
//
// The Provider wraps the catalog as registry tools ("conversion.<id>") plus
// batch, roundtrip and quantities helpers. Round-trip comparison uses
// gonum.org/v1/gonum/floats/scalar.
//
// Example Usage:
//
//	f := conversion.CelsiusToFahrenheit(100) // 212
//
//	p := conversion.NewProvider()
//	result, err := p.Execute(ctx, "conversion.kg_to_lb",
//	    map[string]interface{}{"kg": 2.0}, nil)
package conversion
