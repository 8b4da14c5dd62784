package validation

import "net/url"

// IsSafeURL reports whether target, resolved against hostURL, stays on the
// site's own host. It blocks open redirects where an attacker supplies an
// absolute URL to an external site as a post-login destination.
func IsSafeURL(target, hostURL string) bool {
	host, err := url.Parse(hostURL)
	if err != nil {
		return false
	}

	test, err := url.Parse(target)
	if err != nil {
		return false
	}
	resolved := host.ResolveReference(test)

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return false
	}
	return resolved.Host == host.Host
}

// SafeRedirectTarget returns the first candidate that is non-empty and safe
// relative to hostURL, or "" when none qualifies. Candidates are checked in
// order; callers pass the "next" parameter first and the referrer second.
func SafeRedirectTarget(hostURL string, candidates ...string) string {
	for _, target := range candidates {
		if target == "" {
			continue
		}
		if IsSafeURL(target, hostURL) {
			return target
		}
	}
	return ""
}
