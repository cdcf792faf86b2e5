package capabilities

import (
	"context"

	"mailgate/internal/email"
	"mailgate/internal/metadata"
	"mailgate/internal/registry"
	"mailgate/pkg/logging"
)

func sendEmailTool(client *email.Client) *registry.Capability {
	return &registry.Capability{
		Kind:        registry.KindTool,
		Name:        "send_email",
		Description: "Send an email through Resend. The API key is read per-request from the X-Resend-API-Key, X-API-Key, or Authorization: Bearer headers.",
		InputSchema: sendEmailSchema(),
		Handler:     sendEmailHandler(client),
	}
}

// sendEmailHandler runs the send_email step contract: credential
// extraction, body presence check, payload assembly, dispatch, and outcome
// normalization. Every failure short-circuits to an error envelope; nothing
// is thrown past the boundary and nothing is retried.
func sendEmailHandler(client *email.Client) registry.Handler {
	return func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
		apiKey, ok := email.ExtractAPIKey(md)
		if !ok {
			logging.Debug("SendEmail", "No credential header found; refusing to dispatch")
			return registry.NewErrorResult("%s", email.MissingAPIKeyMessage), nil
		}

		if !email.HasBody(args) {
			return registry.NewErrorResult("%s", email.MissingBodyMessage), nil
		}

		payload := email.BuildPayload(args)

		id, err := client.Send(ctx, apiKey, payload)
		if err != nil {
			return registry.NewErrorResult("Email send failed: %s", err.Error()), nil
		}

		return registry.NewTextResult("Email sent successfully. id: %s", id), nil
	}
}

func sendEmailSchema() registry.InputSchema {
	emailList := func(description string) map[string]interface{} {
		return map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "string"},
			"description": description,
		}
	}

	return registry.InputSchema{
		Properties: map[string]interface{}{
			"to_emails": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"minItems":    1,
				"maxItems":    50,
				"description": "Recipient email addresses (1-50)",
			},
			"subject": map[string]interface{}{
				"type":        "string",
				"description": "Email subject line",
			},
			"sender_email": map[string]interface{}{
				"type":        "string",
				"description": "Sender email address (must belong to a verified domain)",
			},
			"html_content": map[string]interface{}{
				"type":        "string",
				"description": "HTML body. At least one of html_content or text_content is required.",
			},
			"text_content": map[string]interface{}{
				"type":        "string",
				"description": "Plain-text body. At least one of html_content or text_content is required.",
			},
			"cc_emails":       emailList("CC recipients"),
			"bcc_emails":      emailList("BCC recipients"),
			"reply_to_emails": emailList("Reply-to addresses"),
			"scheduled_at": map[string]interface{}{
				"type":        "string",
				"description": "Delivery schedule, natural language or ISO 8601 (e.g. 'in 1 hour'). Interpreted by the provider.",
			},
			"attachments": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"content":      map[string]interface{}{"type": "string", "description": "Base64-encoded file content"},
						"filename":     map[string]interface{}{"type": "string", "description": "Attachment file name"},
						"path":         map[string]interface{}{"type": "string", "description": "Hosted file path instead of inline content"},
						"content_type": map[string]interface{}{"type": "string", "description": "MIME type of the attachment"},
						"content_id":   map[string]interface{}{"type": "string", "description": "Content ID for inline attachments"},
					},
					"required": []interface{}{"content", "filename"},
				},
				"description": "Attachments, up to 40MB total (enforced by the provider)",
			},
			"tags": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name":  map[string]interface{}{"type": "string"},
						"value": map[string]interface{}{"type": "string"},
					},
					"required": []interface{}{"name", "value"},
				},
				"description": "Name/value pairs attached to the email",
			},
		},
		Required: []string{"to_emails", "subject", "sender_email"},
	}
}
