package conversion

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/unitconv/backend/internal/types"
)

// Success creates a successful result
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure creates a failed result
func Failure(message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg}, nil
}

// GetNumber extracts float64 from params.
// Numeric strings are parsed so that query-string and CLI input work unchanged.
func GetNumber(params map[string]interface{}, key string) (float64, bool) {
	val, ok := params[key]
	if !ok {
		return 0, false
	}
	return toNumber(val)
}

// GetNumbers extracts array of numbers with type coercion
func GetNumbers(params map[string]interface{}, key string) ([]float64, bool) {
	switch arr := params[key].(type) {
	case []float64:
		out := make([]float64, len(arr))
		copy(out, arr)
		return out, true
	case []interface{}:
		numbers := make([]float64, 0, len(arr))
		for _, v := range arr {
			num, ok := toNumber(v)
			if !ok {
				return nil, false
			}
			numbers = append(numbers, num)
		}
		return numbers, true
	default:
		return nil, false
	}
}

// GetString extracts string from params
func GetString(params map[string]interface{}, key string) (string, bool) {
	val, ok := params[key].(string)
	return val, ok
}

func toNumber(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// inputValue resolves the input of a single conversion: the conversion's own
// parameter name first, then the generic "value".
func inputValue(c Conversion, params map[string]interface{}) (float64, error) {
	for _, key := range []string{c.Param, "value"} {
		if _, present := params[key]; !present {
			continue
		}
		v, ok := GetNumber(params, key)
		if !ok {
			return 0, fmt.Errorf("%s must be a number", key)
		}
		return v, nil
	}
	return 0, fmt.Errorf("%s parameter required", c.Param)
}
