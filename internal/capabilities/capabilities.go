// Package capabilities defines the concrete prompts, tools, and resources
// the server exposes and registers them with the capability registry.
package capabilities

import (
	"mailgate/internal/email"
	"mailgate/internal/registry"
)

// Register adds every built-in capability to the registry. Called once at
// server construction; any error is fatal.
func Register(reg *registry.Registry, client *email.Client) error {
	caps := []*registry.Capability{
		greetingPrompt(),
		greetTool(),
		greetingResource(),
		propertyInquiryResource(),
		sendEmailTool(client),
	}

	for _, c := range caps {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
