package jsonrpc

// GenerateErrorPacket returns an error Response for one of the standard
// codes, looked up either by code (an integer key) or by its exact canonical
// message (a string key).
//
// The packet has no "id" member: it is a template that is not tied to a
// request. Use WithID to attach one.
func GenerateErrorPacket(key any) (Packet, error) {
	var (
		code    int
		message string
	)
	switch k := key.(type) {
	case string:
		c, ok := LookupMessage(k)
		if !ok {
			return nil, &ConstructionError{Field: FieldMessage, Err: ErrUnknownMessage}
		}
		code, message = c, k
	default:
		c, ok := asCode(key)
		if !ok {
			return nil, &TypeError{Field: "key", Want: "integer code or message", Got: key}
		}
		m, ok := LookupCode(c)
		if !ok {
			return nil, &ConstructionError{Field: FieldCode, Err: ErrUnknownCode}
		}
		code, message = c, m
	}

	return Packet{
		FieldVersion: Version,
		FieldError: map[string]any{
			FieldCode:    code,
			FieldMessage: message,
		},
	}, nil
}
