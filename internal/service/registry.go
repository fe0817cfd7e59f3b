package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/GriffinCanCode/unitconv/backend/internal/types"
)

// Registry manages service discovery and execution
type Registry struct {
	services sync.Map
	tools    sync.Map // tool ID -> struct{}
	recorder Recorder
}

// unknownMethod labels calls to tool IDs no provider declares
const unknownMethod = "unknown"

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Recorder receives per-call telemetry. *monitoring.Metrics satisfies it.
type Recorder interface {
	RecordServiceCall(service, method, status string, duration time.Duration)
	RecordServiceError(service, method, errorType string)
}

// ConversionRecorder is an optional extension of Recorder that counts
// successful conversions by id and quantity.
type ConversionRecorder interface {
	RecordConversion(conversion, quantity string)
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{}
}

// WithRecorder attaches a telemetry recorder
func (r *Registry) WithRecorder(rec Recorder) *Registry {
	r.recorder = rec
	return r
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}

	r.Unregister(def.ID)
	r.services.Store(def.ID, provider)
	for _, tool := range def.Tools {
		r.tools.Store(tool.ID, struct{}{})
	}
	return nil
}

// Unregister removes a service provider
func (r *Registry) Unregister(serviceID string) {
	r.services.Delete(serviceID)
	prefix := serviceID + "."
	r.tools.Range(func(key, _ interface{}) bool {
		if strings.HasPrefix(key.(string), prefix) {
			r.tools.Delete(key)
		}
		return true
	})
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered services sorted by ID
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		provider := value.(Provider)
		def := provider.Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Discover finds relevant services for a given intent
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scoredService struct {
		service types.Service
		score   float64
	}

	intentLower := strings.ToLower(intent)
	var results []scoredService

	r.services.Range(func(_, value interface{}) bool {
		provider := value.(Provider)
		def := provider.Definition()
		score := r.calculateRelevance(intentLower, def)
		if score > 0 {
			results = append(results, scoredService{
				service: def,
				score:   score,
			})
		}
		return true
	})

	// Sort by score descending
	sort.Slice(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].service.ID < results[j].service.ID
		}
		return results[i].score > results[j].score
	})

	if limit <= 0 {
		return []types.Service{}
	}
	output := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].service)
	}

	return output
}

// DiscoverTools ranks individual tools against an intent such as
// "convert celsius to fahrenheit".
func (r *Registry) DiscoverTools(intent string, limit int) []types.Tool {
	type scoredTool struct {
		tool  types.Tool
		score float64
	}

	words := tokenize(intent)
	if len(words) == 0 {
		return []types.Tool{}
	}

	var results []scoredTool
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		for _, tool := range def.Tools {
			if score := toolRelevance(words, tool); score > 0 {
				results = append(results, scoredTool{tool: tool, score: score})
			}
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].tool.ID < results[j].tool.ID
		}
		return results[i].score > results[j].score
	})

	if limit <= 0 {
		return []types.Tool{}
	}
	output := make([]types.Tool, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		output = append(output, results[i].tool)
	}
	return output
}

// Execute runs a service tool
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	parts := strings.SplitN(toolID, ".", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return &types.Result{
			Success: false,
			Error:   stringPtr("invalid tool ID format"),
		}, fmt.Errorf("invalid tool ID format: %s", toolID)
	}

	serviceID := parts[0]
	provider, ok := r.Get(serviceID)
	if !ok {
		return &types.Result{
			Success: false,
			Error:   stringPtr(fmt.Sprintf("service not found: %s", serviceID)),
		}, fmt.Errorf("service not found: %s", serviceID)
	}

	start := time.Now()
	result, err := provider.Execute(ctx, toolID, params, appCtx)
	r.record(serviceID, r.methodLabel(toolID, parts[1]), result, err, time.Since(start))
	return result, err
}

// methodLabel keeps metric label values bounded to declared tools
func (r *Registry) methodLabel(toolID, method string) string {
	if _, ok := r.tools.Load(toolID); ok {
		return method
	}
	return unknownMethod
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		provider := value.(Provider)
		def := provider.Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func (r *Registry) record(serviceID, method string, result *types.Result, err error, d time.Duration) {
	if r.recorder == nil {
		return
	}
	status := "success"
	switch {
	case err != nil:
		status = "error"
		r.recorder.RecordServiceError(serviceID, method, "execution")
	case result == nil || !result.Success:
		status = "failure"
		r.recorder.RecordServiceError(serviceID, method, "tool_failure")
	}
	r.recorder.RecordServiceCall(serviceID, method, status, d)

	if status != "success" {
		return
	}
	if cr, ok := r.recorder.(ConversionRecorder); ok {
		conv, _ := result.Data["conversion"].(string)
		quantity, _ := result.Data["quantity"].(string)
		if conv != "" && quantity != "" {
			cr.RecordConversion(conv, quantity)
		}
	}
}

func (r *Registry) calculateRelevance(intent string, service types.Service) float64 {
	score := 0.0

	// Check service name and ID
	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10.0
	}

	// Check description words
	descWords := strings.Fields(strings.ToLower(service.Description))
	for _, word := range descWords {
		word = strings.Trim(word, ",.")
		if len(word) > 3 && strings.Contains(intent, word) {
			score += 5.0
		}
	}

	// Check capabilities
	for _, cap := range service.Capabilities {
		capClean := strings.ReplaceAll(strings.ToLower(cap), "_", " ")
		if strings.Contains(intent, capClean) {
			score += 3.0
		}
	}

	// Check category
	if strings.Contains(intent, string(service.Category)) {
		score += 2.0
	}

	return score
}

func toolRelevance(words []string, tool types.Tool) float64 {
	idWords := toSet(tokenize(tool.ID))
	nameWords := toSet(tokenize(tool.Name))
	descWords := toSet(tokenize(tool.Description))

	score := 0.0
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		if idWords[w] {
			score += 3.0
		}
		if nameWords[w] {
			score += 2.0
		}
		if descWords[w] {
			score += 1.0
		}
	}
	return score
}

var stopWords = map[string]bool{
	"to": true, "from": true, "in": true, "the": true, "a": true, "of": true,
	"convert": true, "conversion": true, "how": true, "many": true, "is": true,
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func stringPtr(s string) *string {
	return &s
}
