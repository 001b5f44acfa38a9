package company

import (
	"net/url"
	"strings"
)

// DefaultNarrationBaseURL hosts the precomputed per-ticker narration files
const DefaultNarrationBaseURL = "https://api.example.com/podcasts"

// NarrationURL builds the narration asset reference for a ticker.
// The asset is never fetched or checked for existence.
func NarrationURL(baseURL, ticker string) string {
	if baseURL == "" {
		baseURL = DefaultNarrationBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(strings.ToLower(ticker)) + ".mp3"
}
