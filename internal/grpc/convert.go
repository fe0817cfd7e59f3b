package grpc

import (
	"fmt"

	"github.com/GriffinCanCode/unitconv/backend/internal/types"
	"google.golang.org/protobuf/types/known/structpb"
)

// resultToStruct encodes a tool result. Non-finite numbers survive, since
// protobuf doubles carry them natively.
func resultToStruct(result *types.Result) (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"success": result.Success,
	}
	if result.Data != nil {
		fields["data"] = normalize(result.Data)
	}
	if result.Error != nil {
		fields["error"] = *result.Error
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return s, nil
}

// structToResult decodes a result produced by resultToStruct
func structToResult(s *structpb.Struct) *types.Result {
	m := decodeStruct(s)

	result := &types.Result{}
	result.Success, _ = m["success"].(bool)
	if data, ok := m["data"].(map[string]interface{}); ok {
		result.Data = data
	}
	if msg, ok := m["error"].(string); ok {
		result.Error = &msg
	}
	return result
}

func serviceToStruct(svc types.Service) (*structpb.Struct, error) {
	tools := make([]interface{}, 0, len(svc.Tools))
	for _, tool := range svc.Tools {
		params := make([]interface{}, 0, len(tool.Parameters))
		for _, p := range tool.Parameters {
			params = append(params, map[string]interface{}{
				"name":        p.Name,
				"type":        p.Type,
				"description": p.Description,
				"required":    p.Required,
			})
		}
		tools = append(tools, map[string]interface{}{
			"id":          tool.ID,
			"name":        tool.Name,
			"description": tool.Description,
			"parameters":  params,
			"returns":     tool.Returns,
		})
	}

	s, err := structpb.NewStruct(map[string]interface{}{
		"service": svc.ID,
		"name":    svc.Name,
		"tools":   tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tools: %w", err)
	}
	return s, nil
}

func structToTools(s *structpb.Struct) []types.Tool {
	raw, _ := s.AsMap()["tools"].([]interface{})

	tools := make([]types.Tool, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		tool := types.Tool{
			ID:          str(m["id"]),
			Name:        str(m["name"]),
			Description: str(m["description"]),
			Returns:     str(m["returns"]),
		}
		params, _ := m["parameters"].([]interface{})
		for _, p := range params {
			pm, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			required, _ := pm["required"].(bool)
			tool.Parameters = append(tool.Parameters, types.Parameter{
				Name:        str(pm["name"]),
				Type:        str(pm["type"]),
				Description: str(pm["description"]),
				Required:    required,
			})
		}
		tools = append(tools, tool)
	}
	return tools
}

// normalize rewrites value shapes structpb cannot take (typed slices)
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalize(item)
		}
		return out
	case []float64:
		out := make([]interface{}, len(val))
		for i, f := range val {
			out[i] = f
		}
		return out
	case []string:
		out := make([]interface{}, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	default:
		return v
	}
}

// decodeStruct is Struct.AsMap without its rewrite of NaN and ±Inf into
// "NaN"/"Infinity"/"-Infinity" strings.
func decodeStruct(s *structpb.Struct) map[string]interface{} {
	fields := s.GetFields()
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[k] = decodeValue(v)
	}
	return out
}

func decodeValue(v *structpb.Value) interface{} {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return kind.NumberValue
	case *structpb.Value_StructValue:
		return decodeStruct(kind.StructValue)
	case *structpb.Value_ListValue:
		values := kind.ListValue.GetValues()
		out := make([]interface{}, len(values))
		for i, item := range values {
			out[i] = decodeValue(item)
		}
		return out
	default:
		return v.AsInterface()
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
