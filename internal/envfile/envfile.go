// Package envfile parses KEY=value environment files. Lines may be blank or
// comments, keys may carry an "export " prefix, and values may be single or
// double quoted; unquoted values have trailing comments stripped and $VAR
// references expanded against the supervisor's environment.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load parses the env file at path.
func Load(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load env file %q: %w", path, err)
	}
	defer f.Close()

	values, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load env file %q: %w", path, err)
	}
	return values, nil
}

// Parse reads env assignments from r.
func Parse(r io.Reader) (map[string]string, error) {
	scanner := bufio.NewScanner(r)
	values := make(map[string]string)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		if strings.HasPrefix(raw, "export ") {
			raw = strings.TrimSpace(raw[len("export "):])
		}
		sep := strings.IndexRune(raw, '=')
		if sep <= 0 {
			return nil, fmt.Errorf("invalid line %d", lineNo)
		}
		key := strings.TrimSpace(raw[:sep])
		if key == "" {
			return nil, fmt.Errorf("invalid key on line %d", lineNo)
		}
		value, err := parseValue(strings.TrimSpace(raw[sep+1:]))
		if err != nil {
			return nil, fmt.Errorf("parse value for %s on line %d: %w", key, lineNo, err)
		}
		values[key] = os.ExpandEnv(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func parseValue(value string) (string, error) {
	switch {
	case strings.HasPrefix(value, "\""):
		if len(value) < 2 || value[len(value)-1] != '"' {
			return "", fmt.Errorf("unmatched quote")
		}
		return strconv.Unquote(value)
	case strings.HasPrefix(value, "'"):
		if len(value) < 2 || value[len(value)-1] != '\'' {
			return "", fmt.Errorf("unmatched quote")
		}
		return value[1 : len(value)-1], nil
	default:
		if comment := strings.IndexRune(value, '#'); comment >= 0 {
			value = strings.TrimSpace(value[:comment])
		}
		return value, nil
	}
}
