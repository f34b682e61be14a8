package cmd

import (
	"fmt"
	"strings"
)

// parseHeaders turns the "-H name$value,name2$value2" flag form into a
// name->value map, lower-casing header names the way the Rust original's
// client_creator does before inserting them into the request's header map.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	headers := make(map[string]string, len(raw))
	for _, entry := range raw {
		parts := strings.SplitN(entry, "$", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header %q: expected name$value", entry)
		}
		name := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if name == "" {
			return nil, fmt.Errorf("invalid header %q: empty name", entry)
		}
		headers[name] = value
	}
	return headers, nil
}

// parseProxyAuth splits the "--proxy-auth user:pass" flag into its username
// and password halves.
func parseProxyAuth(raw string) (user, pass string, err error) {
	if raw == "" {
		return "", "", nil
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", fmt.Errorf("invalid --proxy-auth %q: expected user:pass", raw)
	}
	return parts[0], parts[1], nil
}
