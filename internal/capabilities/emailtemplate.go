package capabilities

import (
	"context"
	"encoding/json"
	"fmt"

	"mailgate/internal/metadata"
	"mailgate/internal/registry"
)

// PropertyInquiryResourceURI addresses the property inquiry email template.
const PropertyInquiryResourceURI = "email-template://property-inquiry"

const propertyInquirySubject = "Inquiry about your property listing"

const propertyInquiryText = `Hello,

I came across your property listing and I am very interested in learning more.

Could you please share additional details about the property, including
availability and pricing?

You can find the listing I am referring to here: {{property_link}}

Thank you for your time. I look forward to hearing from you.

Best regards`

func propertyInquiryResource() *registry.Capability {
	return &registry.Capability{
		Kind:        registry.KindResource,
		Name:        "property-inquiry-email-template",
		Description: "Reusable email template for property inquiries, with a {{property_link}} placeholder",
		URI:         PropertyInquiryResourceURI,
		MIMEType:    "application/json",
		Handler: func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*registry.Result, error) {
			template := map[string]string{
				"subject": propertyInquirySubject,
				"text":    propertyInquiryText,
			}
			data, err := json.Marshal(template)
			if err != nil {
				return nil, fmt.Errorf("failed to encode email template: %w", err)
			}
			return registry.NewTextResult("%s", data), nil
		},
	}
}
