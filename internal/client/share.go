package client

import (
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
)

// ShareURL builds the link that joins the active list when opened:
// base + ?share=<token>.
func ShareURL(base *url.URL, token string) string {
	u := *base
	q := u.Query()
	q.Set("share", token)
	u.RawQuery = q.Encode()
	return u.String()
}

// ExtractShareToken accepts either a bare share token or a full share URL
// and returns the token, or "" when there is none. The URL form mirrors
// the ?share= parameter a shared link carries.
func ExtractShareToken(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		if token := u.Query().Get("share"); token != "" {
			return token
		}
		return ""
	}
	return raw
}

// CopyToClipboard is best effort: a clipboard that is missing or refuses
// the write only means the "copied" confirmation never shows.
func CopyToClipboard(text string) bool {
	return clipboard.WriteAll(text) == nil
}
