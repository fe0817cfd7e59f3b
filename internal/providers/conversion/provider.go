package conversion

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/GriffinCanCode/unitconv/backend/internal/types"
)

// Supplementary tools operating over the catalog
const (
	ToolBatch      = ServiceID + ".batch"
	ToolRoundTrip  = ServiceID + ".roundtrip"
	ToolQuantities = ServiceID + ".quantities"
)

// DefaultTolerance bounds the round-trip error accepted by ToolRoundTrip
const DefaultTolerance = 1e-9

// Provider exposes the conversion catalog as service tools
type Provider struct{}

// NewProvider creates a conversion provider
func NewProvider() *Provider {
	return &Provider{}
}

// Definition returns service metadata with one tool per conversion
func (p *Provider) Definition() types.Service {
	tools := make([]types.Tool, 0, len(catalog)+3)
	for _, c := range catalog {
		tools = append(tools, types.Tool{
			ID:          c.ToolID(),
			Name:        c.Name,
			Description: c.Description,
			Parameters: []types.Parameter{
				{Name: c.Param, Type: "number", Description: fmt.Sprintf("Value in %s", c.From), Required: true},
			},
			Returns: "number",
		})
	}

	tools = append(tools,
		types.Tool{
			ID:          ToolBatch,
			Name:        "Batch Conversion",
			Description: "Apply one conversion to an array of values",
			Parameters: []types.Parameter{
				{Name: "conversion", Type: "string", Description: "Conversion ID, e.g. inch_to_cm", Required: true},
				{Name: "values", Type: "array", Description: "Array of numbers", Required: true},
			},
			Returns: "array",
		},
		types.Tool{
			ID:          ToolRoundTrip,
			Name:        "Round Trip Check",
			Description: "Apply a conversion and its inverse and compare with the input",
			Parameters: []types.Parameter{
				{Name: "conversion", Type: "string", Description: "Conversion ID", Required: true},
				{Name: "value", Type: "number", Description: "Input value", Required: true},
				{Name: "tolerance", Type: "number", Description: "Accepted absolute or relative error", Required: false},
			},
			Returns: "object",
		},
		types.Tool{
			ID:          ToolQuantities,
			Name:        "Quantities",
			Description: "List conversions grouped by physical or financial quantity",
			Parameters:  []types.Parameter{},
			Returns:     "object",
		},
	)

	capabilities := make([]string, 0, len(catalog))
	for _, q := range Quantities() {
		capabilities = append(capabilities, string(q))
	}

	return types.Service{
		ID:           ServiceID,
		Name:         "Unit Conversion Service",
		Description:  "Unit conversions for temperature, currency, length, mass, speed, energy and power",
		Category:     types.CategoryConversion,
		Capabilities: capabilities,
		Tools:        tools,
	}
}

// Execute routes a tool call to the matching conversion
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	case ToolBatch:
		return p.batch(ctx, params)
	case ToolRoundTrip:
		return p.roundTrip(params)
	case ToolQuantities:
		return p.quantities()
	}

	c, ok := Lookup(toolID)
	if !ok || c.ToolID() != toolID {
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}

	value, err := inputValue(c, params)
	if err != nil {
		return Failure(err.Error())
	}

	return Success(map[string]interface{}{
		"result":     c.Apply(value),
		"input":      value,
		"from":       c.From,
		"to":         c.To,
		"conversion": c.ID,
		"quantity":   string(c.Quantity),
	})
}

func (p *Provider) batch(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	c, res, err := conversionParam(params)
	if res != nil || err != nil {
		return res, err
	}

	values, ok := GetNumbers(params, "values")
	if !ok {
		return Failure("values must be an array of numbers")
	}

	results := make([]interface{}, len(values))
	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = c.Apply(v)
	}

	return Success(map[string]interface{}{
		"results":    results,
		"count":      len(results),
		"from":       c.From,
		"to":         c.To,
		"conversion": c.ID,
		"quantity":   string(c.Quantity),
	})
}

func (p *Provider) roundTrip(params map[string]interface{}) (*types.Result, error) {
	c, res, err := conversionParam(params)
	if res != nil || err != nil {
		return res, err
	}

	value, ok := GetNumber(params, "value")
	if !ok {
		return Failure("value parameter required")
	}

	tolerance := DefaultTolerance
	if _, present := params["tolerance"]; present {
		t, ok := GetNumber(params, "tolerance")
		if !ok || t < 0 {
			return Failure("tolerance must be a non-negative number")
		}
		tolerance = t
	}

	inverse, ok := InverseOf(c)
	if !ok {
		return Failure(fmt.Sprintf("no inverse registered for %s", c.ID))
	}

	converted := c.Apply(value)
	restored := inverse.Apply(converted)

	return Success(map[string]interface{}{
		"conversion": c.ID,
		"inverse":    inverse.ID,
		"value":      value,
		"converted":  converted,
		"restored":   restored,
		"tolerance":  tolerance,
		"ok":         scalar.EqualWithinAbsOrRel(value, restored, tolerance, tolerance),
	})
}

func (p *Provider) quantities() (*types.Result, error) {
	groups := make(map[string]interface{})
	for _, q := range Quantities() {
		ids := []interface{}{}
		for _, c := range ByQuantity(q) {
			ids = append(ids, c.ID)
		}
		groups[string(q)] = ids
	}
	return Success(map[string]interface{}{"quantities": groups})
}

// conversionParam resolves the "conversion" parameter shared by batch and roundtrip
func conversionParam(params map[string]interface{}) (Conversion, *types.Result, error) {
	id, ok := GetString(params, "conversion")
	if !ok || id == "" {
		res, err := Failure("conversion parameter required")
		return Conversion{}, res, err
	}
	c, ok := Lookup(id)
	if !ok {
		res, err := Failure(fmt.Sprintf("unknown conversion: %s", id))
		return Conversion{}, res, err
	}
	return c, nil, nil
}
