package jsonrpc

import (
	"fmt"
	"strings"
)

// Kind identifies the packet variant a packet is validated against.
type Kind int

const (
	KindRequest Kind = iota + 1
	KindNotification
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNotification:
		return "notification"
	case KindResponse:
		return "response"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses the lower-case name of a Kind, as returned by String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "request":
		return KindRequest, nil
	case "notification":
		return KindNotification, nil
	case "response":
		return KindResponse, nil
	}
	return 0, fmt.Errorf("jsonrpc: unknown packet kind %q", s)
}

// Classify infers the kind of p from its shape alone: a packet carrying a
// method is a Request when it has an id and a Notification otherwise; a
// packet carrying a result or an error is a Response. ok is false when the
// packet has none of these keys, or has both a method and a result/error.
//
// Classify does not validate p; use Verify with the returned kind for that.
func Classify(p Packet) (kind Kind, ok bool) {
	hasMethod := p.Has(FieldMethod)
	hasReply := p.Has(FieldResult) || p.Has(FieldError)
	switch {
	case hasMethod && hasReply:
		return 0, false
	case hasMethod && p.Has(FieldID):
		return KindRequest, true
	case hasMethod:
		return KindNotification, true
	case hasReply:
		return KindResponse, true
	}
	return 0, false
}
