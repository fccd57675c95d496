package util

import (
	"errors"
	"net/url"
	"strings"
)

// RedactURL returns the URL as a string with the given query parameters masked.
// Used so provider keys never end up in log output.
func RedactURL(u *url.URL, secretParameters ...string) string {
	redacted := *u
	query := redacted.Query()

	for _, parameter := range secretParameters {
		if query.Has(parameter) {
			query.Set(parameter, "REDACTED")
		}
	}

	redacted.RawQuery = query.Encode()

	return redacted.String()
}

// RedactError strips secrets from the request URL embedded in transport errors.
// The underlying cause is kept so callers can still match timeouts and cancellation.
func RedactError(err error, secrets ...string) error {
	var urlError *url.Error
	if !errors.As(err, &urlError) {
		return err
	}

	redactedURL := urlError.URL
	for _, secret := range secrets {
		if secret != "" {
			redactedURL = strings.ReplaceAll(redactedURL, secret, "REDACTED")
		}
	}

	return &url.Error{
		Op:  urlError.Op,
		URL: redactedURL,
		Err: urlError.Err,
	}
}
