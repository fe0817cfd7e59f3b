package cli

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/unitconv/backend/internal/providers/conversion"
	"github.com/GriffinCanCode/unitconv/backend/internal/service"
	"github.com/GriffinCanCode/unitconv/backend/internal/types"
)

// newLocalRegistry returns an in-process registry holding the conversion provider
func newLocalRegistry() (*service.Registry, error) {
	registry := service.NewRegistry()
	if err := registry.Register(conversion.NewProvider()); err != nil {
		return nil, fmt.Errorf("failed to register conversion provider: %w", err)
	}
	return registry, nil
}

// executeLocal runs a tool in-process and turns a failed result into an error
func executeLocal(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	registry, err := newLocalRegistry()
	if err != nil {
		return nil, err
	}

	result, err := registry.Execute(ctx, toolID, params, &types.Context{Transport: "cli"})
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("%s: %s", toolID, result.ErrorMessage())
	}
	return result, nil
}
