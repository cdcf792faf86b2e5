package capabilities

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"testing"

	"mailgate/internal/email"
	"mailgate/internal/registry"
	"mailgate/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.Init(logging.LevelError, io.Discard)
	os.Exit(m.Run())
}

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, Register(reg, email.NewClient()))
	return reg
}

func TestRegister_AllCapabilitiesPresent(t *testing.T) {
	reg := newTestRegistry(t)

	promptNames := names(reg.List(registry.KindPrompt))
	toolNames := names(reg.List(registry.KindTool))
	resourceNames := names(reg.List(registry.KindResource))

	assert.Equal(t, []string{"greeting-template"}, promptNames)
	assert.Equal(t, []string{"greet", "send_email"}, toolNames)
	assert.Equal(t, []string{"greeting-resource", "property-inquiry-email-template"}, resourceNames)
}

func TestRegister_Twice_Fails(t *testing.T) {
	reg := registry.New()
	client := email.NewClient()
	require.NoError(t, Register(reg, client))
	assert.Error(t, Register(reg, client))
}

func TestGreetTool(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.Invoke(context.Background(), registry.KindTool, "greet",
		map[string]interface{}{"name": "Ada"}, nil)
	require.NoError(t, err)

	assert.False(t, result.IsError)
	assert.Equal(t, "Hello, Ada!", result.Text())
}

func TestGreetTool_MissingNameFailsValidation(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.Invoke(context.Background(), registry.KindTool, "greet",
		map[string]interface{}{}, nil)

	var ve *registry.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestGreetingPrompt(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.Invoke(context.Background(), registry.KindPrompt, "greeting-template",
		map[string]interface{}{"name": "Ada"}, nil)
	require.NoError(t, err)

	require.Len(t, result.Content, 1)
	assert.Equal(t, "Please greet Ada in a friendly manner.", result.Content[0].Text)
}

func TestGreetingResource(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.Invoke(context.Background(), registry.KindResource, "greeting-resource", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Hello, world!", result.Text())

	caps := reg.Capabilities(registry.KindResource)
	require.NotEmpty(t, caps)
	assert.Equal(t, GreetingResourceURI, caps[0].URI)
	assert.Equal(t, "text/plain", caps[0].MIMEType)
}

func TestPropertyInquiryResource(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.Invoke(context.Background(), registry.KindResource, "property-inquiry-email-template", nil, nil)
	require.NoError(t, err)

	var template map[string]string
	require.NoError(t, json.Unmarshal([]byte(result.Text()), &template))

	assert.NotEmpty(t, template["subject"])
	assert.Contains(t, template["text"], "{{property_link}}")
}

func names(infos []registry.Info) []string {
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Name)
	}
	return out
}
