package ghost

import "strings"

// Friendly maps a raw endpoint error to a short human-readable message. The
// patterns follow what the hosted endpoint actually emits; there is no retry
// logic behind any of these, they are purely informational.
func Friendly(err error) string {
	if err == nil {
		return ""
	}
	s := strings.ToLower(err.Error())
	switch {
	case strings.Contains(s, "429"):
		return "Rate limit reached. Please try again in a moment."
	case strings.Contains(s, "401"), strings.Contains(s, "unauthorized"), strings.Contains(s, "invalid api key"):
		return "Server auth failed (API key)."
	case strings.Contains(s, "openai_api_key not set"):
		return "Server missing API key."
	case strings.Contains(s, "no such host"), strings.Contains(s, "connection refused"), strings.Contains(s, "network"):
		return "Network error. Check your connection."
	case strings.Contains(s, "504"), strings.Contains(s, "timeout"), strings.Contains(s, "deadline exceeded"):
		return "Upstream timeout. Please retry."
	case strings.Contains(s, "502"):
		return "Upstream failure (bad gateway)."
	case strings.Contains(s, "404"):
		return "The ghost endpoint was not found."
	}
	return "An unexpected error occurred."
}
