package app

import (
	"net/url"
	"strings"

	"gastropath/internal/domain"
)

const (
	MaxURLLength = 2000
	TrustedHost  = "maps.app.goo.gl"
)

// AllowedParams lists the query keys kept by SanitizeURL, in output order.
var AllowedParams = []string{"g_st"}

// SanitizeURL validates a shared map link and rebuilds it from the trusted
// host, the original path and the allow-listed query parameters only.
func SanitizeURL(raw string) (string, error) {
	if len(raw) > MaxURLLength {
		return "", domain.NewError(domain.TooLong, "URL exceeds maximum length")
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Opaque != "" {
		return "", domain.WrapError(domain.InvalidFormat, "Invalid URL format", err)
	}

	if strings.ToLower(u.Hostname()) != TrustedHost {
		return "", domain.NewError(domain.UntrustedDomain, "URL is not from a trusted domain")
	}

	path := u.EscapedPath()
	if !strings.HasPrefix(path, "/") || len(path) < 2 {
		return "", domain.NewError(domain.InvalidPath, "Invalid URL path")
	}

	var b strings.Builder
	b.WriteString("https://")
	b.WriteString(TrustedHost)
	b.WriteString(path)

	q := u.Query()
	sep := byte('?')
	for _, key := range AllowedParams {
		for _, v := range q[key] {
			b.WriteByte(sep)
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
			sep = '&'
		}
	}
	return b.String(), nil
}
