// Package lint checks JSON-RPC 2.0 packets and serves the checks over HTTP.
package lint

import (
	"github.com/mnehpets/jrpc/jsonrpc"
	"github.com/mnehpets/jrpc/schema"
)

// KindAuto asks Check to classify the packet before verifying it.
const KindAuto = "auto"

// KindUnknown is reported when an auto-classified packet has no
// recognizable shape.
const KindUnknown = "unknown"

// Report is the outcome of checking one packet.
type Report struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Valid    bool     `json:"valid" yaml:"valid"`
	Problems []string `json:"problems" yaml:"problems"`
}

// Check verifies p as the named kind: request, notification, response or
// auto. Requests and notifications are also checked against schemas, which
// may be nil. The error is non-nil only for an unknown kind name.
func Check(p jsonrpc.Packet, kind string, schemas *schema.Registry) (Report, error) {
	var k jsonrpc.Kind
	if kind == KindAuto {
		var ok bool
		if k, ok = jsonrpc.Classify(p); !ok {
			return Report{Kind: KindUnknown, Problems: []string{jsonrpc.ProblemUnknownKind}}, nil
		}
	} else {
		var err error
		if k, err = jsonrpc.ParseKind(kind); err != nil {
			return Report{}, err
		}
	}

	_, problems := jsonrpc.Verify(p, k)
	if k == jsonrpc.KindRequest || k == jsonrpc.KindNotification {
		problems = append(problems, schemas.Check(p)...)
	}
	if problems == nil {
		problems = []string{}
	}
	return Report{Kind: k.String(), Valid: len(problems) == 0, Problems: problems}, nil
}
