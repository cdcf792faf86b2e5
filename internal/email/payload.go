package email

// MissingBodyMessage is returned to the caller when neither body variant is
// supplied. No payload is built in that case.
const MissingBodyMessage = "At least one of html_content or text_content must be provided."

// HasBody reports whether the arguments carry at least one body variant.
// An empty string counts as absent.
func HasBody(args map[string]interface{}) bool {
	_, html := stringArg(args, "html_content")
	_, text := stringArg(args, "text_content")
	return html || text
}

// BuildPayload assembles the provider-facing request object from validated
// tool arguments. The required from/to/subject fields are always present;
// every optional field is included only when its source value is present
// and, for lists, non-empty. Absent fields never appear as nulls.
func BuildPayload(args map[string]interface{}) map[string]interface{} {
	payload := map[string]interface{}{
		"from":    args["sender_email"],
		"to":      args["to_emails"],
		"subject": args["subject"],
	}

	if v, ok := stringArg(args, "html_content"); ok {
		payload["html"] = v
	}
	if v, ok := stringArg(args, "text_content"); ok {
		payload["text"] = v
	}
	if v, ok := listArg(args, "cc_emails"); ok {
		payload["cc"] = v
	}
	if v, ok := listArg(args, "bcc_emails"); ok {
		payload["bcc"] = v
	}
	if v, ok := listArg(args, "reply_to_emails"); ok {
		payload["reply_to"] = v
	}
	// Passed through verbatim; the provider interprets natural language as
	// well as ISO 8601, so no local parsing is attempted.
	if v, ok := stringArg(args, "scheduled_at"); ok {
		payload["scheduled_at"] = v
	}
	if v, ok := listArg(args, "attachments"); ok {
		payload["attachments"] = v
	}
	if v, ok := listArg(args, "tags"); ok {
		payload["tags"] = v
	}

	return payload
}

// stringArg returns a non-empty string argument.
func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// listArg returns a non-empty list argument.
func listArg(args map[string]interface{}, key string) ([]interface{}, bool) {
	v, ok := args[key].([]interface{})
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}
