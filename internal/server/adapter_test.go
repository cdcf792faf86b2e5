package server

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"mailgate/internal/metadata"
	"mailgate/internal/registry"
	"mailgate/pkg/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.Init(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}

func echoCapability() *registry.Capability {
	return &registry.Capability{
		Kind:        registry.KindTool,
		Name:        "echo",
		Description: "Echo the name argument",
		InputSchema: registry.InputSchema{
			Properties: map[string]interface{}{
				"name": map[string]interface{}{"type": "string", "description": "value to echo"},
			},
			Required: []string{"name"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
			name, _ := args["name"].(string)
			return registry.NewTextResult("echo: %s", name), nil
		},
	}
}

func TestToolHandler_Success(t *testing.T) {
	reg := registry.New()
	c := echoCapability()
	require.NoError(t, reg.Register(c))

	handler := toolHandler(reg, c)

	req := mcp.CallToolRequest{}
	req.Params.Name = "echo"
	req.Params.Arguments = map[string]interface{}{"name": "Ada"}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "echo: Ada", text.Text)
}

func TestToolHandler_ValidationErrorBecomesErrorResult(t *testing.T) {
	reg := registry.New()
	c := echoCapability()
	require.NoError(t, reg.Register(c))

	handler := toolHandler(reg, c)

	req := mcp.CallToolRequest{}
	req.Params.Name = "echo"
	req.Params.Arguments = map[string]interface{}{}

	result, err := handler(context.Background(), req)
	require.NoError(t, err, "validation failures are reported to the caller, not raised")
	assert.True(t, result.IsError)
}

func TestPromptHandler_ProducesUserMessage(t *testing.T) {
	reg := registry.New()
	c := &registry.Capability{
		Kind:        registry.KindPrompt,
		Name:        "greeting-template",
		Description: "A simple greeting prompt template",
		InputSchema: registry.InputSchema{
			Properties: map[string]interface{}{
				"name": map[string]interface{}{"type": "string"},
			},
			Required: []string{"name"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
			name, _ := args["name"].(string)
			return registry.NewTextResult("Please greet %s in a friendly manner.", name), nil
		},
	}
	require.NoError(t, reg.Register(c))

	handler := promptHandler(reg, c)

	req := mcp.GetPromptRequest{}
	req.Params.Name = "greeting-template"
	req.Params.Arguments = map[string]string{"name": "Ada"}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, result.Messages, 1)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)
	text, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "Please greet Ada in a friendly manner.", text.Text)
}

func TestResourceHandler_ReturnsTypedContents(t *testing.T) {
	reg := registry.New()
	c := &registry.Capability{
		Kind:     registry.KindResource,
		Name:     "greeting-resource",
		URI:      "https://example.com/greetings/default",
		MIMEType: "text/plain",
		Handler: func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
			return registry.NewTextResult("Hello, world!"), nil
		},
	}
	require.NoError(t, reg.Register(c))

	handler := resourceHandler(reg, c)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = c.URI

	contents, err := handler(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, contents, 1)
	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, c.URI, text.URI)
	assert.Equal(t, "text/plain", text.MIMEType)
	assert.Equal(t, "Hello, world!", text.Text)
}

func TestToolHandler_MetadataReachesHandler(t *testing.T) {
	reg := registry.New()

	var gotKey string
	c := &registry.Capability{
		Kind: registry.KindTool,
		Name: "headers",
		Handler: func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
			gotKey, _ = md.First("x-api-key")
			return registry.NewTextResult("ok"), nil
		},
	}
	require.NoError(t, reg.Register(c))

	// Simulate the transport context func attaching request headers
	httpReq := httptest.NewRequest("POST", "/message", nil)
	httpReq.Header.Set("X-API-Key", "k1")
	ctx := withHeaderMetadata(context.Background(), httpReq)

	handler := toolHandler(reg, c)
	req := mcp.CallToolRequest{}
	req.Params.Name = "headers"

	_, err := handler(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "k1", gotKey)
}

func TestPromptArguments_SortedWithRequiredFlags(t *testing.T) {
	schema := registry.InputSchema{
		Properties: map[string]interface{}{
			"zeta":  map[string]interface{}{"type": "string", "description": "last"},
			"alpha": map[string]interface{}{"type": "string", "description": "first"},
		},
		Required: []string{"alpha"},
	}

	args := promptArguments(schema)

	require.Len(t, args, 2)
	assert.Equal(t, "alpha", args[0].Name)
	assert.Equal(t, "first", args[0].Description)
	assert.True(t, args[0].Required)
	assert.Equal(t, "zeta", args[1].Name)
	assert.False(t, args[1].Required)
}

func TestToCallToolResult_PreservesOrderAndFlag(t *testing.T) {
	result := &registry.Result{
		Content: []registry.ContentBlock{
			{Type: "text", Text: "one"},
			{Type: "text", Text: "two"},
		},
		IsError: true,
	}

	converted := toCallToolResult(result)

	assert.True(t, converted.IsError)
	require.Len(t, converted.Content, 2)
	first := converted.Content[0].(mcp.TextContent)
	second := converted.Content[1].(mcp.TextContent)
	assert.Equal(t, "one", first.Text)
	assert.Equal(t, "two", second.Text)
}
