package jsonrpc

import "strings"

// Problems reported by Verify.
const (
	ProblemVersion        = "bad or missing jsonrpc version"
	ProblemUnknownKind    = "unknown packet kind"
	ProblemMissingID      = "missing id"
	ProblemIDNotScalar    = "id must be a scalar"
	ProblemNotificationID = "notification must not carry id"
	ProblemMissingMethod  = "missing method"
	ProblemMethodType     = "method is not a string"
	ProblemReservedMethod = `method uses reserved prefix "rpc."`
	ProblemParamsShape    = "params must be a sequence or mapping"
	ProblemMissingReply   = "missing result/error"
	ProblemBothReplies    = "both result and error present"
	ProblemErrorNotObject = "error is not an object"
	ProblemCodeType       = "code not integer"
	ProblemMessageType    = "missing/invalid message"
	ProblemReservedCode   = "invalid or mismatched reserved error code"
	ProblemDataShape      = "data must be a sequence or mapping"
)

// Verify checks p against the rules for kind.
//
// Every rule that applies is evaluated, so problems lists all independent
// defects of the packet, in rule order. valid is true iff problems is empty.
// Verify never modifies p and never panics on malformed input.
func Verify(p Packet, kind Kind) (valid bool, problems []string) {
	var v verifier
	v.check(p[FieldVersion] == Version, ProblemVersion)

	switch kind {
	case KindRequest:
		v.id(p)
		v.call(p)
	case KindNotification:
		v.check(!p.Has(FieldID), ProblemNotificationID)
		v.call(p)
	case KindResponse:
		v.id(p)
		v.reply(p)
	default:
		v.add(ProblemUnknownKind)
	}

	return len(v.problems) == 0, v.problems
}

// Validate is Verify reporting problems as a *ValidationError.
func Validate(p Packet, kind Kind) error {
	if ok, problems := Verify(p, kind); !ok {
		return &ValidationError{Kind: kind, Problems: problems}
	}
	return nil
}

type verifier struct {
	problems []string
}

func (v *verifier) add(problem string) {
	v.problems = append(v.problems, problem)
}

func (v *verifier) check(ok bool, problem string) {
	if !ok {
		v.add(problem)
	}
}

func (v *verifier) id(p Packet) {
	id, ok := p.ID()
	if !ok {
		v.add(ProblemMissingID)
		return
	}
	v.check(!isStructured(id), ProblemIDNotScalar)
}

// call checks the members shared by requests and notifications.
func (v *verifier) call(p Packet) {
	raw, ok := p[FieldMethod]
	if !ok {
		v.add(ProblemMissingMethod)
	} else if method, ok := raw.(string); !ok {
		v.add(ProblemMethodType)
	} else {
		v.check(!strings.HasPrefix(method, ReservedMethodPrefix), ProblemReservedMethod)
	}

	if params, ok := p[FieldParams]; ok {
		v.check(isStructured(params), ProblemParamsShape)
	}
}

// reply checks the result/error members of a response.
func (v *verifier) reply(p Packet) {
	hasResult, hasError := p.Has(FieldResult), p.Has(FieldError)
	switch {
	case hasResult && hasError:
		v.add(ProblemBothReplies)
	case !hasResult && !hasError:
		v.add(ProblemMissingReply)
	}
	if hasError {
		v.errorObject(p[FieldError])
	}
}

func (v *verifier) errorObject(raw any) {
	obj, ok := asMapping(raw)
	if !ok {
		v.add(ProblemErrorNotObject)
		return
	}

	code, codeOK := asCode(obj[FieldCode])
	v.check(codeOK, ProblemCodeType)

	message, msgOK := obj[FieldMessage].(string)
	v.check(msgOK, ProblemMessageType)

	if codeOK {
		v.check(reservedCodeOK(code, message), ProblemReservedCode)
	}

	if data, ok := obj[FieldData]; ok {
		v.check(isStructured(data), ProblemDataShape)
	}
}
