package billbook

import "strings"

// Session holds the three credential artifacts captured manually from
// an authenticated browser tab: the Authorization bearer token, the
// raw cookie header and the company (tenant) id. It does no network
// activity of its own.
type Session struct {
	authToken string
	cookies   string
	companyId string
}

func NewSession(authToken, cookies, companyId string) (Session, error) {
	if authToken == "" {
		return Session{}, &ConfigurationError{Field: "auth_token", Reason: "must not be empty"}
	}
	if !strings.HasPrefix(authToken, "Bearer ") {
		return Session{}, &ConfigurationError{Field: "auth_token", Reason: `must start with "Bearer "`}
	}
	if cookies == "" {
		return Session{}, &ConfigurationError{Field: "cookies", Reason: "must not be empty"}
	}
	if companyId == "" {
		return Session{}, &ConfigurationError{Field: "company_id", Reason: "must not be empty"}
	}
	return Session{
		authToken: authToken,
		cookies:   cookies,
		companyId: companyId,
	}, nil
}

// Headers reproduces the header set the vendor's own browser client
// sends, credentials included. The sec-* and user-agent values have to
// stay plausible for the session cookie to keep working.
func (s Session) Headers() map[string]string {
	return map[string]string{
		"accept":             "application/json",
		"accept-language":    "en-US,en;q=0.9",
		"authorization":      s.authToken,
		"client":             "web",
		"company-id":         s.companyId,
		"content-type":       "application/json",
		"cookie":             s.cookies,
		"dnt":                "1",
		"referer":            "https://mybillbook.in/app/home/items",
		"sec-ch-ua":          `"Not_A Brand";v="99", "Chromium";v="142"`,
		"sec-ch-ua-mobile":   "?0",
		"sec-ch-ua-platform": `"Windows"`,
		"sec-fetch-dest":     "empty",
		"sec-fetch-mode":     "cors",
		"sec-fetch-site":     "same-origin",
		"user-agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36",
	}
}
