package jsonrpc

// Standard error codes defined by JSON-RPC 2.0.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ReservedMin and ReservedMax bound the error codes reserved for
// protocol-level errors. Only the five standard codes may be used inside
// this band; implementation-defined server errors are not accepted.
const (
	ReservedMin = -32768
	ReservedMax = -32000
)

// ErrorCode is an entry of the standard error code table.
type ErrorCode struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var standardCodes = [...]ErrorCode{
	{CodeParseError, "Parse error"},
	{CodeInvalidRequest, "Invalid Request"},
	{CodeMethodNotFound, "Method not found"},
	{CodeInvalidParams, "Invalid params"},
	{CodeInternalError, "Internal error"},
}

// StandardCodes returns a copy of the standard error code table.
func StandardCodes() []ErrorCode {
	out := make([]ErrorCode, len(standardCodes))
	copy(out, standardCodes[:])
	return out
}

// LookupCode returns the canonical message for a standard code.
func LookupCode(code int) (string, bool) {
	for _, ec := range standardCodes {
		if ec.Code == code {
			return ec.Message, true
		}
	}
	return "", false
}

// LookupMessage returns the standard code whose canonical message is exactly
// message. The comparison is case-sensitive.
func LookupMessage(message string) (int, bool) {
	for _, ec := range standardCodes {
		if ec.Message == message {
			return ec.Code, true
		}
	}
	return 0, false
}

// IsReserved reports whether code lies in [ReservedMin, ReservedMax].
func IsReserved(code int) bool {
	return code >= ReservedMin && code <= ReservedMax
}

// IsStandard reports whether code is one of the five standard codes.
func IsStandard(code int) bool {
	_, ok := LookupCode(code)
	return ok
}

// reservedCodeOK reports whether the code/message pair is acceptable with
// respect to the reserved band. Codes outside the band are always fine.
func reservedCodeOK(code int, message string) bool {
	if !IsReserved(code) {
		return true
	}
	canonical, ok := LookupCode(code)
	return ok && canonical == message
}
