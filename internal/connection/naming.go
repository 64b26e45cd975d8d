package connection

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// SingleName is the name given to the only connection when one URL is
	// configured.
	SingleName = "redis"

	defaultPort    = "6379"
	redactedSecret = "***"
)

// Name derives the display name for the URL at index among total URLs. A
// single instance is always called "redis"; otherwise host:port is used, with
// the database appended when it is not 0.
func Name(rawURL string, index, total int) string {
	if total == 1 {
		return SingleName
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return fmt.Sprintf("redis-%d", index)
	}

	host := u.Hostname()
	if host == "" {
		host = "unknown"
	}
	port := u.Port()
	if port == "" {
		port = defaultPort
	}

	db := strings.TrimPrefix(u.Path, "/")
	if db == "" || db == "0" {
		return fmt.Sprintf("%s:%s", host, port)
	}
	return fmt.Sprintf("%s:%s/%s", host, port, db)
}

// Redact masks the password embedded in rawURL. Strings that do not parse as
// URLs are returned unchanged.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.User == nil {
		return rawURL
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		return rawURL
	}

	// url.UserPassword would percent-encode the mask, so it is spliced in
	// after the rest of the URL is encoded.
	username := u.User.Username()
	u.User = nil
	rest := strings.TrimPrefix(u.String(), u.Scheme+"://")
	return fmt.Sprintf("%s://%s:%s@%s", u.Scheme, url.User(username).String(), redactedSecret, rest)
}
