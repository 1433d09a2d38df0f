package jsonrpc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTypeMismatch is matched by every *TypeError.
	ErrTypeMismatch = errors.New("jsonrpc: type mismatch")

	ErrReservedMethod = errors.New(`method name uses reserved prefix "rpc."`)
	ErrReservedCode   = errors.New("reserved code violation")
	ErrMissingID      = errors.New("id is required")
	ErrUnknownCode    = errors.New("unknown code")
	ErrUnknownMessage = errors.New("unknown message")
)

// TypeError reports a builder argument of the wrong shape.
type TypeError struct {
	Field string
	// Want describes the accepted shapes, e.g. "integer" or "sequence or mapping".
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("jsonrpc: %s: want %s, got %T", e.Field, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return ErrTypeMismatch
}

// ConstructionError reports a builder argument that has an acceptable type
// but breaks a protocol rule. Err is one of the package's sentinel errors.
type ConstructionError struct {
	Field string
	Err   error
}

func (e *ConstructionError) Error() string {
	if e.Err == nil {
		return "jsonrpc: " + e.Field + ": invalid"
	}
	return "jsonrpc: " + e.Field + ": " + e.Err.Error()
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// ValidationError carries the problems found by Verify.
type ValidationError struct {
	Kind     Kind
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("jsonrpc: invalid %s: %s", e.Kind, strings.Join(e.Problems, "; "))
}

// JSONRPCError is the error object of a Response.
//
// It implements error so that it can be returned from code that produces
// responses, and converted into a packet with Packet.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *JSONRPCError) Error() string {
	return e.Message
}

func NewError(code int, message string) *JSONRPCError {
	return &JSONRPCError{Code: code, Message: message}
}

// Packet builds the Response carrying e for the request with the given id.
func (e *JSONRPCError) Packet(id any) (Packet, error) {
	return BuildError(id, e.Code, e.Message, e.Data)
}

// ErrorFromPacket extracts the error object of a Response. ok is false when
// the packet has no well-formed error member.
func ErrorFromPacket(p Packet) (*JSONRPCError, bool) {
	obj, ok := asMapping(p[FieldError])
	if !ok {
		return nil, false
	}
	code, ok := asCode(obj[FieldCode])
	if !ok {
		return nil, false
	}
	msg, ok := obj[FieldMessage].(string)
	if !ok {
		return nil, false
	}
	return &JSONRPCError{Code: code, Message: msg, Data: obj[FieldData]}, true
}
