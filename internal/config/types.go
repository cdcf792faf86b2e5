package config

const (
	// TransportStreamableHTTP is the streamable HTTP transport.
	TransportStreamableHTTP = "streamable-http"
	// TransportSSE is the Server-Sent Events transport.
	TransportSSE = "sse"
	// TransportStdio is the standard I/O transport.
	TransportStdio = "stdio"
)

// Config is the top-level configuration structure for mailgate.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Email   EmailConfig   `yaml:"email"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig defines how the MCP server is exposed.
type ServerConfig struct {
	Host      string `yaml:"host,omitempty"`      // Host to bind to for HTTP transports (default: localhost)
	Port      int    `yaml:"port,omitempty"`      // Port to listen on for HTTP transports (default: 8080)
	Transport string `yaml:"transport,omitempty"` // Transport to use (default: stdio)
}

// EmailConfig holds settings for the email provider.
// Note: the API key is deliberately absent. It is supplied per-request by
// the caller via transport headers and never configured on the server.
type EmailConfig struct {
	BaseURL string `yaml:"baseURL,omitempty"` // Provider API base URL (default: https://api.resend.com)
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // debug, info, warn, or error (default: info)
}
