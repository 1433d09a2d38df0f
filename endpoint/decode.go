package endpoint

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// defaultFieldLimit bounds path, query and header values.
var defaultFieldLimit = 16 * 1024 // 16KB

// Unmarshal populates dst, a non-nil pointer to a struct, from the request.
//
// Supported struct tags:
//   - `path:"name"`: r.PathValue(name)
//   - `query:"name"`: first value of the query parameter
//   - `header:"name"`: first value of the header
//   - `body:""`: the raw request body
//   - `maxLength:"n"`: maximum byte length of the value; 0 disables the
//     limit. Path, query and header values default to 16KB, the body to no
//     limit (bound it with http.MaxBytesReader in a processor instead).
//
// Field types: string, []byte, signed integers and bool. If several source
// tags are present, precedence is path, query, header, body. Absent values
// leave the field unchanged.
func Unmarshal(r *http.Request, dst any) error {
	if r == nil {
		return Error(http.StatusInternalServerError, "", errors.New("endpoint: decode: nil request"))
	}
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return Error(http.StatusInternalServerError, "", errors.New("endpoint: decode: dst must be a non-nil pointer to a struct"))
	}
	root := v.Elem()
	t := root.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue
		}
		raw, source, ok, err := lookupSource(r, sf)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		limit, err := fieldLimit(sf, source)
		if err != nil {
			return Error(http.StatusInternalServerError, "", fmt.Errorf("endpoint: decode: field %s: %w", sf.Name, err))
		}
		if limit > 0 && len(raw) > limit {
			return Error(http.StatusBadRequest, "", fmt.Errorf("endpoint: decode: %s -> %s: value exceeds max length %d", source, sf.Name, limit))
		}
		if err := setField(root.Field(i), raw); err != nil {
			return Error(http.StatusBadRequest, "", fmt.Errorf("endpoint: decode: %s -> %s: %w", source, sf.Name, err))
		}
	}
	return nil
}

// lookupSource returns the raw value for a field from the first tagged
// source that has one.
func lookupSource(r *http.Request, sf reflect.StructField) ([]byte, string, bool, error) {
	if name, ok := sf.Tag.Lookup("path"); ok {
		if v := r.PathValue(tagName(name, sf)); v != "" {
			return []byte(v), "path", true, nil
		}
	}
	if name, ok := sf.Tag.Lookup("query"); ok && r.URL != nil {
		if vs, present := r.URL.Query()[tagName(name, sf)]; present && len(vs) > 0 {
			return []byte(vs[0]), "query", true, nil
		}
	}
	if name, ok := sf.Tag.Lookup("header"); ok {
		if vs := r.Header[http.CanonicalHeaderKey(tagName(name, sf))]; len(vs) > 0 {
			return []byte(vs[0]), "header", true, nil
		}
	}
	if _, ok := sf.Tag.Lookup("body"); ok {
		if r.Body == nil || r.Body == http.NoBody {
			return nil, "body", false, nil
		}
		b, err := io.ReadAll(r.Body)
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return nil, "body", false, Error(http.StatusRequestEntityTooLarge, "", fmt.Errorf("endpoint: decode: body: %w", err))
			}
			return nil, "body", false, Error(http.StatusBadRequest, "", fmt.Errorf("endpoint: decode: body: %w", err))
		}
		return b, "body", true, nil
	}
	return nil, "", false, nil
}

func tagName(tag string, sf reflect.StructField) string {
	name, _, _ := strings.Cut(tag, ",")
	if name = strings.TrimSpace(name); name == "" {
		return strings.ToLower(sf.Name)
	}
	return name
}

func fieldLimit(sf reflect.StructField, source string) (int, error) {
	tag, ok := sf.Tag.Lookup("maxLength")
	if !ok {
		if source == "body" {
			return 0, nil
		}
		return defaultFieldLimit, nil
	}
	if tag = strings.TrimSpace(tag); tag == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(tag)
	if err != nil {
		return 0, fmt.Errorf("maxLength tag: %w", err)
	}
	if n < 0 {
		return 0, errors.New("maxLength tag must be non-negative")
	}
	return n, nil
}

func setField(v reflect.Value, raw []byte) error {
	if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
		v.SetBytes(raw)
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(string(raw))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(string(raw)))
		if err != nil {
			return err
		}
		v.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", v.Type())
	}
	return nil
}
