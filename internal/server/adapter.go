package server

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"mailgate/internal/metadata"
	"mailgate/internal/registry"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerCapabilities bridges every registry capability onto the MCP
// server. The MCP layer handles discovery (list requests) from the
// registered definitions; invocation is routed back through the registry so
// its validation and envelope contract apply uniformly.
func registerCapabilities(m *server.MCPServer, reg *registry.Registry) {
	for _, c := range reg.Capabilities(registry.KindTool) {
		m.AddTool(toolDefinition(c), toolHandler(reg, c))
	}
	for _, c := range reg.Capabilities(registry.KindPrompt) {
		m.AddPrompt(promptDefinition(c), promptHandler(reg, c))
	}
	for _, c := range reg.Capabilities(registry.KindResource) {
		m.AddResource(resourceDefinition(c), resourceHandler(reg, c))
	}
}

func toolDefinition(c *registry.Capability) mcp.Tool {
	return mcp.Tool{
		Name:        c.Name,
		Description: c.Description,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: c.InputSchema.Properties,
			Required:   c.InputSchema.Required,
		},
	}
}

func toolHandler(reg *registry.Registry, c *registry.Capability) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := req.Params.Arguments.(map[string]interface{})

		result, err := reg.Invoke(ctx, registry.KindTool, c.Name, args, metadata.FromContext(ctx))
		if err != nil {
			// Contract mismatches are reported to the caller with their
			// field-level detail; anything else is an internal fault.
			var ve *registry.ValidationError
			if errors.As(err, &ve) {
				return mcp.NewToolResultError(ve.Error()), nil
			}
			return nil, err
		}

		return toCallToolResult(result), nil
	}
}

func promptDefinition(c *registry.Capability) mcp.Prompt {
	return mcp.Prompt{
		Name:        c.Name,
		Description: c.Description,
		Arguments:   promptArguments(c.InputSchema),
	}
}

// promptArguments derives the prompt's argument list from its input schema.
// MCP prompts declare flat named arguments rather than a schema document.
func promptArguments(schema registry.InputSchema) []mcp.PromptArgument {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]mcp.PromptArgument, 0, len(names))
	for _, name := range names {
		var description string
		if prop, ok := schema.Properties[name].(map[string]interface{}); ok {
			description, _ = prop["description"].(string)
		}
		args = append(args, mcp.PromptArgument{
			Name:        name,
			Description: description,
			Required:    required[name],
		})
	}
	return args
}

func promptHandler(reg *registry.Registry, c *registry.Capability) server.PromptHandlerFunc {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := make(map[string]interface{}, len(req.Params.Arguments))
		for k, v := range req.Params.Arguments {
			args[k] = v
		}

		result, err := reg.Invoke(ctx, registry.KindPrompt, c.Name, args, metadata.FromContext(ctx))
		if err != nil {
			return nil, err
		}
		if result.IsError {
			return nil, fmt.Errorf("prompt %q failed: %s", c.Name, result.Text())
		}

		messages := make([]mcp.PromptMessage, 0, len(result.Content))
		for _, block := range result.Content {
			messages = append(messages, mcp.PromptMessage{
				Role:    mcp.RoleUser,
				Content: mcp.TextContent{Type: "text", Text: block.Text},
			})
		}
		return &mcp.GetPromptResult{
			Description: c.Description,
			Messages:    messages,
		}, nil
	}
}

func resourceDefinition(c *registry.Capability) mcp.Resource {
	return mcp.Resource{
		URI:         c.URI,
		Name:        c.Name,
		Description: c.Description,
		MIMEType:    c.MIMEType,
	}
}

func resourceHandler(reg *registry.Registry, c *registry.Capability) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		result, err := reg.Invoke(ctx, registry.KindResource, c.Name, nil, metadata.FromContext(ctx))
		if err != nil {
			return nil, err
		}
		// Resource reads have no error envelope in MCP; a failed handler
		// surfaces as a protocol error.
		if result.IsError {
			return nil, fmt.Errorf("resource %q failed: %s", c.Name, result.Text())
		}

		contents := make([]mcp.ResourceContents, 0, len(result.Content))
		for _, block := range result.Content {
			contents = append(contents, mcp.TextResourceContents{
				URI:      c.URI,
				MIMEType: c.MIMEType,
				Text:     block.Text,
			})
		}
		return contents, nil
	}
}

// toCallToolResult maps the registry's uniform envelope onto the MCP result
// shape, preserving block order and the IsError flag.
func toCallToolResult(result *registry.Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(result.Content))
	for _, block := range result.Content {
		content = append(content, mcp.TextContent{Type: "text", Text: block.Text})
	}
	return &mcp.CallToolResult{
		Content: content,
		IsError: result.IsError,
	}
}
