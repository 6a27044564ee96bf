// Package normalize turns raw Canvas records from the REST or GraphQL API into
// typed records whose fields are all optional.
//
// Canvas instances disagree about which keys they send, and GraphQL uses
// camelCase where REST uses snake_case. Every decoder in this package accepts
// either shape, leaves absent or unparseable values nil, and never returns an
// error. Defaulting to NotAvailable happens only in the View methods.
package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"
)

// NotAvailable is substituted for every absent field in a display view.
const NotAvailable = "not available"

// Keys returns a copy of raw with every key rewritten to the REST snake_case
// form, recursively. GraphQL "_id" becomes "id" and takes precedence over a
// sibling "id", which in GraphQL is the opaque relay node id.
func Keys(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}

	out := make(map[string]any, len(raw))
	legacyID, hasLegacyID := raw["_id"]
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		out[canonicalKey(k)] = keysValue(v)
	}
	if hasLegacyID {
		out["id"] = keysValue(legacyID)
	}
	return out
}

func canonicalKey(k string) string {
	// Already canonical, and strcase would mangle keys such as "content-type".
	if strings.ToLower(k) == k {
		return k
	}
	return strcase.ToSnake(k)
}

func keysValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Keys(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = keysValue(item)
		}
		return out
	default:
		return v
	}
}

// decode fills the wire struct out from raw. Fields that fail to decode stay
// at their zero value and the remaining fields are still decoded. Nested
// records must be declared as map[string]any and decoded separately: a
// pointer to a struct is dropped entirely when one of its fields fails.
func decode(raw map[string]any, out any) {
	if raw == nil {
		return
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return
	}
	_ = decoder.Decode(Keys(raw))
}

// parseTime parses a date in any of the formats Canvas instances emit.
// Strings without a zone are read as UTC.
func parseTime(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(*s), time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// nonEmpty returns nil for a nil or blank string.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// firstOf returns the first non-empty string.
func firstOf(values ...*string) *string {
	for _, v := range values {
		if v := nonEmpty(v); v != nil {
			return v
		}
	}
	return nil
}

// Or returns *s, or NotAvailable when s is nil or blank.
func Or(s *string) string {
	if s := nonEmpty(s); s != nil {
		return *s
	}
	return NotAvailable
}
