// Package jsonrpc validates and constructs JSON-RPC 2.0 packets.
//
// This package implements the message rules of the JSON-RPC 2.0 specification
// (https://www.jsonrpc.org/specification). It performs no I/O: packets are
// values that a transport has already decoded into maps, slices and scalars.
// Encoding, framing, batching and method dispatch are left to the caller.
//
// # Validation
//
// Verify checks a packet against the rules of a Kind and reports every defect
// it finds:
//
//	ok, problems := jsonrpc.Verify(jsonrpc.Packet{
//	    "jsonrpc": "2.0",
//	    "id":      13,
//	    "error":   map[string]any{"code": -32601, "message": "Invalid Request"},
//	}, jsonrpc.KindResponse)
//	// ok == false
//	// problems == []string{"invalid or mismatched reserved error code"}
//
// A Notification is a Request without an "id" member. There is no separate
// marker; Classify infers the kind of a packet from its members.
//
// # Construction
//
// BuildRequest, BuildNotification, BuildResult and BuildError return a new
// packet or fail on the first rule the arguments break. Packets they return
// always pass Verify for their kind:
//
//	req, err := jsonrpc.BuildRequest(1, "math.add", []any{2, 3})
//	res, err := jsonrpc.BuildResult(1, map[string]any{"sum": 5})
//
// Errors of the wrong shape are *TypeError (matching ErrTypeMismatch);
// violations of protocol rules are *ConstructionError wrapping one of the
// sentinel errors.
//
// # Error Codes
//
// Standard error codes are defined as constants:
//   - CodeParseError (-32700) "Parse error"
//   - CodeInvalidRequest (-32600) "Invalid Request"
//   - CodeMethodNotFound (-32601) "Method not found"
//   - CodeInvalidParams (-32602) "Invalid params"
//   - CodeInternalError (-32603) "Internal error"
//
// Codes in the reserved band [-32768, -32000] are accepted only when they are
// one of these five and carry their exact canonical message. GenerateErrorPacket
// builds an error Response from either a code or a canonical message.
package jsonrpc
