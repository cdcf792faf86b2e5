package config

// DefaultResendBaseURL is the production Resend API endpoint.
const DefaultResendBaseURL = "https://api.resend.com"

// GetDefaultConfig returns the built-in configuration that user and project
// files are layered on top of.
func GetDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:      "localhost",
			Port:      8080,
			Transport: TransportStdio,
		},
		Email: EmailConfig{
			BaseURL: DefaultResendBaseURL,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
