package jsonrpc

import (
	"encoding/json"
	"math"
	"reflect"
)

// Version is the only accepted value of the "jsonrpc" member.
const Version = "2.0"

// ReservedMethodPrefix marks method names reserved for protocol-internal use.
const ReservedMethodPrefix = "rpc."

// Member names of a packet.
const (
	FieldVersion = "jsonrpc"
	FieldID      = "id"
	FieldMethod  = "method"
	FieldParams  = "params"
	FieldResult  = "result"
	FieldError   = "error"

	// Members of the error object.
	FieldCode    = "code"
	FieldMessage = "message"
	FieldData    = "data"
)

// Packet is a single decoded JSON-RPC 2.0 message.
//
// A Packet is the structured value a codec produces from the wire: a mapping
// of member names to strings, numbers, booleans, nil, sequences and nested
// mappings. Functions in this package never modify a Packet they are given.
type Packet map[string]any

// Has reports whether the member key is present, even if its value is nil.
func (p Packet) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// ID returns the id member and whether it is present.
func (p Packet) ID() (any, bool) {
	id, ok := p[FieldID]
	return id, ok
}

// Method returns the method name if present and a string.
func (p Packet) Method() (string, bool) {
	m, ok := p[FieldMethod].(string)
	return m, ok
}

// Clone returns a shallow copy of p.
func (p Packet) Clone() Packet {
	if p == nil {
		return nil
	}
	out := make(Packet, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Shape classifies the loosely typed members (params, data, result).
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeString
	ShapeSequence
	ShapeMapping
)

func (s Shape) String() string {
	switch s {
	case ShapeString:
		return "string"
	case ShapeSequence:
		return "sequence"
	case ShapeMapping:
		return "mapping"
	default:
		return "invalid"
	}
}

// ShapeOf classifies v. Slices and arrays are sequences, except []byte which
// is a raw binary blob and therefore invalid. Maps are mappings when their
// key type is string. Nil slices and maps are invalid, since they encode as
// null. Everything else, including nil and json.Number, is invalid unless it
// is a string.
func ShapeOf(v any) Shape {
	switch x := v.(type) {
	case nil, []byte, json.RawMessage, json.Number:
		return ShapeInvalid
	case string:
		return ShapeString
	case []any:
		if x == nil {
			return ShapeInvalid
		}
		return ShapeSequence
	case map[string]any:
		if x == nil {
			return ShapeInvalid
		}
		return ShapeMapping
	case Packet:
		if x == nil {
			return ShapeInvalid
		}
		return ShapeMapping
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ShapeInvalid
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return ShapeString
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return ShapeInvalid
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return ShapeInvalid
		}
		return ShapeSequence
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String && !rv.IsNil() {
			return ShapeMapping
		}
	}
	return ShapeInvalid
}

func isStructured(v any) bool {
	s := ShapeOf(v)
	return s == ShapeSequence || s == ShapeMapping
}

// asInteger reports whether v holds an integral number and returns it.
//
// Decoders hand numbers over in several forms: Go integer types, float64
// from encoding/json, json.Number with UseNumber, uint64 from CBOR. Whole
// floats are accepted; booleans are not numbers.
func asInteger(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint:
		return uintToInt64(uint64(n))
	case uint64:
		return uintToInt64(n)
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func uintToInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// asCode narrows an integer member to an int error code.
func asCode(v any) (int, bool) {
	n, ok := asInteger(v)
	if !ok || int64(int(n)) != n {
		return 0, false
	}
	return int(n), true
}

// asMapping returns v as a map[string]any when it is a mapping.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Packet:
		return m, true
	}
	if ShapeOf(v) != ShapeMapping {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
