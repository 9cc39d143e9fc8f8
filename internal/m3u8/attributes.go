package m3u8

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAttributeSyntax reports an attribute list that violates the
// KEY=VALUE,KEY="VALUE" grammar shared by every master playlist tag.
var ErrAttributeSyntax = errors.New("malformed attribute list")

// Attribute is a single KEY=VALUE pair from a tag's attribute list.
type Attribute struct {
	Key   string
	Value string
}

// Attributes preserves the order the attributes appeared on the line.
type Attributes []Attribute

// Get returns the value for key and whether the key was present.
func (a Attributes) Get(key string) (string, bool) {
	for _, attr := range a {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return "", false
}

// parseAttributes splits one tag's attribute list on top-level commas only:
// a comma inside a quoted value is part of the value, so
// CODECS="avc1.64001f,mp4a.40.2" stays a single attribute. Quotes are
// stripped from quoted values. An entry without '=' or with an unbalanced
// quote is a hard error, never a silent drop.
func parseAttributes(line string) (Attributes, error) {
	var attrs Attributes
	rest := line
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq <= 0 {
			return nil, fmt.Errorf("%w: missing '=' in %q", ErrAttributeSyntax, rest)
		}
		key := strings.TrimSpace(rest[:eq])
		rest = rest[eq+1:]

		var value string
		if strings.HasPrefix(rest, `"`) {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("%w: unbalanced quote in value of %s", ErrAttributeSyntax, key)
			}
			value = rest[1 : end+1]
			rest = rest[end+2:]
			switch {
			case rest == "":
			case rest[0] == ',':
				rest = rest[1:]
			default:
				return nil, fmt.Errorf("%w: unexpected %q after quoted value of %s", ErrAttributeSyntax, rest[0], key)
			}
		} else {
			if end := strings.IndexByte(rest, ','); end >= 0 {
				value = rest[:end]
				rest = rest[end+1:]
			} else {
				value = rest
				rest = ""
			}
			if strings.Contains(value, `"`) {
				return nil, fmt.Errorf("%w: unbalanced quote in value of %s", ErrAttributeSyntax, key)
			}
		}
		attrs = append(attrs, Attribute{Key: key, Value: value})
	}
	return attrs, nil
}
