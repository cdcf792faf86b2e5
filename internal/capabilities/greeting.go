package capabilities

import (
	"context"

	"mailgate/internal/metadata"
	"mailgate/internal/registry"
)

// GreetingResourceURI addresses the static greeting resource.
const GreetingResourceURI = "https://example.com/greetings/default"

func greetingPrompt() *registry.Capability {
	return &registry.Capability{
		Kind:        registry.KindPrompt,
		Name:        "greeting-template",
		Description: "A simple greeting prompt template",
		InputSchema: registry.InputSchema{
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the person to greet",
				},
			},
			Required: []string{"name"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
			name, _ := args["name"].(string)
			return registry.NewTextResult("Please greet %s in a friendly manner.", name), nil
		},
	}
}

func greetTool() *registry.Capability {
	return &registry.Capability{
		Kind:        registry.KindTool,
		Name:        "greet",
		Description: "Greet a person by name",
		InputSchema: registry.InputSchema{
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the person to greet",
				},
			},
			Required: []string{"name"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
			name, _ := args["name"].(string)
			return registry.NewTextResult("Hello, %s!", name), nil
		},
	}
}

func greetingResource() *registry.Capability {
	return &registry.Capability{
		Kind:        registry.KindResource,
		Name:        "greeting-resource",
		Description: "A static greeting",
		URI:         GreetingResourceURI,
		MIMEType:    "text/plain",
		Handler: func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
			return registry.NewTextResult("Hello, world!"), nil
		},
	}
}
