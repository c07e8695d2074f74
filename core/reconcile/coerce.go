package reconcile

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"vessel-manager/core/utils"
)

var leadingNumber = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// Coerce converts raw provider values into canonical typed fields. Values
// that cannot be converted, and names outside the catalog, are dropped and
// reported by name in sorted order.
func (c *Catalog) Coerce(raw map[string]any) (Fields, []string) {
	out := Fields{}
	var dropped []string

	for key, value := range raw {
		spec, ok := c.Lookup(FieldName(key))
		if !ok {
			dropped = append(dropped, key)
			continue
		}
		if value == nil {
			continue
		}
		v, err := coerceValue(spec.Type, value)
		if err != nil {
			dropped = append(dropped, key)
			continue
		}
		if isBlank(v) {
			continue
		}
		out[spec.Name] = v
	}

	sort.Strings(dropped)
	return out, dropped
}

// CoerceValue converts a single raw value for the named field.
func (c *Catalog) CoerceValue(name FieldName, value any) (any, error) {
	spec, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return coerceValue(spec.Type, value)
}

func coerceValue(ft FieldType, value any) (any, error) {
	switch ft {
	case FieldNumeric:
		return coerceNumber(value)
	case FieldString, FieldText:
		return coerceString(value)
	case FieldEnum:
		s, err := coerceString(value)
		if err != nil {
			return nil, err
		}
		return NormalizeTag(s.(string)), nil
	case FieldBoolean:
		return coerceBool(value)
	case FieldDate:
		return coerceDate(value)
	case FieldList:
		return coerceList(value)
	default:
		return nil, fmt.Errorf("%w: unsupported field type %s", ErrInvalidValue, ft)
	}
}

func coerceNumber(value any) (any, error) {
	if s, ok := value.(string); ok {
		cleaned := strings.ReplaceAll(s, ",", "")
		match := leadingNumber.FindString(cleaned)
		if match == "" {
			return nil, fmt.Errorf("%w: no number in %q", ErrInvalidValue, s)
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return f, nil
	}
	if _, isBool := value.(bool); isBool {
		return nil, fmt.Errorf("%w: boolean is not a number", ErrInvalidValue)
	}
	f, ok := utils.ToFloat(value)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a number", ErrInvalidValue, value)
	}
	return f, nil
}

func coerceString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case int, int64, int32, uint, uint64, uint32:
		return utils.ToString(v), nil
	case fmt.Stringer:
		return strings.TrimSpace(v.String()), nil
	default:
		return nil, fmt.Errorf("%w: %T is not text", ErrInvalidValue, value)
	}
}

func coerceBool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "1":
			return true, nil
		case "false", "no", "n", "0":
			return false, nil
		}
		return nil, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
	}
	if f, ok := utils.ToFloat(value); ok && (f == 0 || f == 1) {
		return f == 1, nil
	}
	return nil, fmt.Errorf("%w: %v is not a boolean", ErrInvalidValue, value)
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "02/01/2006"}

func coerceDate(value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return nil, fmt.Errorf("%w: nil date", ErrInvalidValue)
		}
		return *v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("%w: %q is not a date", ErrInvalidValue, v)
	default:
		return nil, fmt.Errorf("%w: %T is not a date", ErrInvalidValue, value)
	}
}

func coerceList(value any) (any, error) {
	switch v := value.(type) {
	case []string:
		return trimList(v), nil
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: list item %T is not text", ErrInvalidValue, item)
			}
			items = append(items, s)
		}
		return trimList(items), nil
	case string:
		return trimList(strings.Split(v, ",")), nil
	default:
		return nil, fmt.Errorf("%w: %T is not a list", ErrInvalidValue, value)
	}
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NormalizeTag turns a display label such as "Motor Yacht" into its enum
// tag "motor_yacht".
func NormalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
