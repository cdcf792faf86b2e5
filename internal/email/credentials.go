package email

import (
	"regexp"

	"mailgate/internal/metadata"
)

// MissingAPIKeyMessage is returned to the caller when no credential header
// is present. No provider call is attempted in that case.
const MissingAPIKeyMessage = "Missing API key. Provide 'X-Resend-API-Key' or 'X-API-Key' header (or Authorization: Bearer <key>)."

// credentialHeaders is the fixed scan order. The first header that yields a
// credential wins.
var credentialHeaders = []string{
	"x-resend-api-key",
	"x-api-key",
	"authorization",
}

var bearerPattern = regexp.MustCompile(`(?i)^Bearer\s+(.+)$`)

// ExtractAPIKey scans the request metadata for a caller-supplied Resend API
// key. The x-resend-api-key and x-api-key headers carry the key verbatim;
// the authorization header must match "Bearer <key>" (case-insensitive) and
// yields the token. Repeated headers contribute their first value only.
func ExtractAPIKey(md metadata.Metadata) (string, bool) {
	for _, header := range credentialHeaders {
		value, ok := md.First(header)
		if !ok || value == "" {
			continue
		}
		if header == "authorization" {
			m := bearerPattern.FindStringSubmatch(value)
			if m == nil {
				continue
			}
			return m[1], true
		}
		return value, true
	}
	return "", false
}
