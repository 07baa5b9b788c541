package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/joyent/promstat/model"
)

// Target validation failures. Each rejected URL component gets its own error
// so callers and tests can tell them apart.
var (
	ErrSchemeNotHTTP        = errors.New("must be http")
	ErrMalformedURL         = errors.New("malformed URL")
	ErrAuthNotSupported     = errors.New("auth not supported")
	ErrFragmentNotSupported = errors.New("fragment not supported")
	ErrQueryNotSupported    = errors.New("query string not supported")
	ErrInvalidPort          = errors.New("port must be an integer between 1 and 65535")
)

// ParseTarget validates a user-supplied endpoint URL and normalizes it into
// a Target. Checks run in a fixed order and the first failure wins. Pure
// function, no network access.
func ParseTarget(raw string) (model.Target, error) {
	scheme, _, found := strings.Cut(raw, "://")
	if !found {
		// Either no scheme at all, or an opaque form like "http:foo".
		if s, _, ok := strings.Cut(raw, ":"); ok && strings.EqualFold(s, "http") {
			return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrMalformedURL)
		}
		return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrSchemeNotHTTP)
	}
	if !strings.EqualFold(scheme, "http") {
		return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrSchemeNotHTTP)
	}

	u, err := url.Parse(raw)
	if err != nil {
		// url.Parse rejects non-numeric ports itself; keep that failure
		// distinct from general parse errors.
		if strings.Contains(err.Error(), "invalid port") {
			return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrInvalidPort)
		}
		return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrMalformedURL)
	}
	if u.Hostname() == "" {
		return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrMalformedURL)
	}
	if u.User != nil {
		return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrAuthNotSupported)
	}
	if u.Fragment != "" {
		return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrFragmentNotSupported)
	}
	if u.RawQuery != "" || u.ForceQuery {
		return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrQueryNotSupported)
	}

	port := 80
	if p := u.Port(); p != "" {
		pv, err := strconv.ParseUint(p, 10, 16)
		if err != nil || pv == 0 {
			return model.Target{}, fmt.Errorf("target %q: %w", raw, ErrInvalidPort)
		}
		port = int(pv)
	}

	host := u.Hostname()
	return model.Target{
		Label:    fmt.Sprintf("%s:%d", host, port),
		Hostname: host,
		Port:     port,
		Path:     u.Path,
	}, nil
}
