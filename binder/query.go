package binder

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// Query binds URL query parameters into the fields of a struct tagged with
// `query:"name"`. Untagged fields use their lowercased name and `query:"-"`
// skips a field. Supported kinds are strings, integers, booleans and
// pointers to them. Absent parameters leave fields untouched.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindQuery(v, r.URL.Query())
	}
}

func bindQuery(v any, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a non-nil pointer to struct", ErrInvalidQuery)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rv.NumField() {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}

		name, _, _ := strings.Cut(sf.Tag.Get("query"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = strings.ToLower(sf.Name)
		}

		vals := values[name]
		if len(vals) == 0 {
			continue
		}
		if err := setValue(field, vals[0]); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidQuery, name, err)
		}
	}
	return nil
}

func setValue(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Pointer {
		ptr := reflect.New(field.Type().Elem())
		if err := setValue(ptr.Elem(), raw); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}

	raw = strings.TrimSpace(raw)
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", raw)
		}
		field.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported type %s", field.Type())
	}
	return nil
}
