package jsonrpc

import "strings"

// BuildRequest returns a Request calling method with params.
//
// A nil id produces a Notification: the packet has no "id" member at all.
// Otherwise id must be an integer and is stored as int64. params may be nil
// (omitted), a sequence or a mapping.
//
// The returned error is a *TypeError for arguments of the wrong shape and a
// *ConstructionError wrapping ErrReservedMethod for a method starting with
// "rpc.". No packet is returned on error.
func BuildRequest(id any, method string, params any) (Packet, error) {
	var n int64
	if id != nil {
		var err error
		if n, err = requireID(id); err != nil {
			return nil, err
		}
	}
	if strings.HasPrefix(method, ReservedMethodPrefix) {
		return nil, &ConstructionError{Field: FieldMethod, Err: ErrReservedMethod}
	}
	if params != nil && !isStructured(params) {
		return nil, &TypeError{Field: FieldParams, Want: "sequence or mapping", Got: params}
	}

	p := Packet{
		FieldVersion: Version,
		FieldMethod:  method,
	}
	if id != nil {
		p[FieldID] = n
	}
	if params != nil {
		p[FieldParams] = params
	}
	return p, nil
}

// BuildNotification returns a Notification calling method with params.
func BuildNotification(method string, params any) (Packet, error) {
	return BuildRequest(nil, method, params)
}

// BuildResult returns a successful Response for the request with the given
// id. result must be a string or a mapping; raw bytes are rejected.
func BuildResult(id any, result any) (Packet, error) {
	n, err := requireID(id)
	if err != nil {
		return nil, err
	}
	switch ShapeOf(result) {
	case ShapeString, ShapeMapping:
	default:
		return nil, &TypeError{Field: FieldResult, Want: "string or mapping", Got: result}
	}
	return Packet{
		FieldVersion: Version,
		FieldID:      n,
		FieldResult:  result,
	}, nil
}

// BuildError returns an error Response for the request with the given id.
//
// A code inside the reserved band must be one of the standard codes and
// message must be its canonical message, otherwise the error wraps
// ErrReservedCode. data may be nil (omitted), a sequence or a mapping.
func BuildError(id any, code int, message string, data any) (Packet, error) {
	n, err := requireID(id)
	if err != nil {
		return nil, err
	}
	if !reservedCodeOK(code, message) {
		return nil, &ConstructionError{Field: FieldCode, Err: ErrReservedCode}
	}
	if data != nil && !isStructured(data) {
		return nil, &TypeError{Field: FieldData, Want: "sequence or mapping", Got: data}
	}

	obj := map[string]any{
		FieldCode:    code,
		FieldMessage: message,
	}
	if data != nil {
		obj[FieldData] = data
	}
	return Packet{
		FieldVersion: Version,
		FieldID:      n,
		FieldError:   obj,
	}, nil
}

// WithID returns a copy of p with its id set. It is used to bind a template
// from GenerateErrorPacket to the request it answers.
func WithID(p Packet, id any) (Packet, error) {
	n, err := requireID(id)
	if err != nil {
		return nil, err
	}
	out := p.Clone()
	if out == nil {
		out = Packet{}
	}
	out[FieldID] = n
	return out, nil
}

func requireID(id any) (int64, error) {
	if id == nil {
		return 0, &ConstructionError{Field: FieldID, Err: ErrMissingID}
	}
	n, ok := asInteger(id)
	if !ok {
		return 0, &TypeError{Field: FieldID, Want: "integer", Got: id}
	}
	return n, nil
}
