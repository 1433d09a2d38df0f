// Package codec turns JSON and CBOR bytes into jsonrpc.Packet values and
// back.
//
// Decoded numbers are normalized so the validators see the same Go types
// regardless of the wire format: integral numbers become int64 and all other
// numbers float64. CBOR byte strings stay []byte and are therefore rejected by
// the jsonrpc package wherever a structured value is required.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/mnehpets/jrpc/jsonrpc"
	"github.com/valyala/bytebufferpool"
)

// Media types understood by Decode and Encode.
const (
	MediaTypeJSON = "application/json"
	MediaTypeCBOR = "application/cbor"
)

var (
	// ErrNotObject is returned when the top-level value is not an object.
	// Batches (top-level arrays) are reported with this error too.
	ErrNotObject = errors.New("codec: top-level value is not an object")

	// ErrUnsupportedMediaType is returned for media types other than JSON
	// and CBOR.
	ErrUnsupportedMediaType = errors.New("codec: unsupported media type")
)

var (
	cborDec cbor.DecMode
	cborEnc cbor.EncMode
)

func init() {
	var err error
	cborDec, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		DupMapKey:      cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("codec: cbor decode options: %v", err))
	}
	// Core deterministic encoding: sorted map keys, smallest encodings.
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: cbor encode options: %v", err))
	}
}

// Decode decodes b according to mediaType. Parameters such as charset are
// ignored and an empty media type is treated as JSON.
func Decode(mediaType string, b []byte) (jsonrpc.Packet, error) {
	switch mt := MediaType(mediaType); mt {
	case "", MediaTypeJSON:
		return DecodeJSON(b)
	case MediaTypeCBOR:
		return DecodeCBOR(b)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mt)
	}
}

// DecodeJSON decodes a single JSON object. Trailing data after the object is
// an error.
func DecodeJSON(b []byte) (jsonrpc.Packet, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("codec: json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("codec: json: trailing data after object")
	}
	return asPacket(normalize(v))
}

// DecodeCBOR decodes a single CBOR map with text string keys. Duplicate keys
// are rejected.
func DecodeCBOR(b []byte) (jsonrpc.Packet, error) {
	var v any
	if err := cborDec.Unmarshal(b, &v); err != nil {
		return nil, fmt.Errorf("codec: cbor: %w", err)
	}
	return asPacket(normalize(v))
}

// Encode serializes v as JSON or CBOR. JSON output has no trailing newline
// and does not escape HTML characters. CBOR output is deterministic.
func Encode(mediaType string, v any) ([]byte, error) {
	switch mt := MediaType(mediaType); mt {
	case "", MediaTypeJSON:
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("codec: json: %w", err)
		}
		return bytes.Clone(bytes.TrimSuffix(buf.B, []byte("\n"))), nil
	case MediaTypeCBOR:
		b, err := cborEnc.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("codec: cbor: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMediaType, mt)
	}
}

// MediaType returns the lower-cased media type of a Content-Type or Accept
// style header value, without parameters. Malformed values are returned
// lower-cased as-is.
func MediaType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(value)
	if err != nil {
		return strings.ToLower(value)
	}
	return mt
}

func asPacket(v any) (jsonrpc.Packet, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, describe(v))
	}
	return jsonrpc.Packet(m), nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int64, float64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// normalize rewrites decoded numbers in place: json.Number and uint64 become
// int64 when they fit, json.Number falls back to float64 otherwise.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		f, _ := x.Float64()
		return f
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x)
		}
		return float64(x)
	}
	return v
}
