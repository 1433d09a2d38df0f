package lint

import (
	"testing"

	"github.com/mnehpets/jrpc/jsonrpc"
	"github.com/mnehpets/jrpc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register("sum", []byte(`{"type":"array","minItems":2}`)))

	tests := []struct {
		name     string
		packet   jsonrpc.Packet
		kind     string
		want     Report
		contains string
	}{
		{
			name:   "valid request",
			packet: jsonrpc.Packet{"jsonrpc": "2.0", "id": int64(1), "method": "sum", "params": []any{1, 2}},
			kind:   "request",
			want:   Report{Kind: "request", Valid: true, Problems: []string{}},
		},
		{
			name:   "auto classifies notification",
			packet: jsonrpc.Packet{"jsonrpc": "2.0", "method": "ping"},
			kind:   KindAuto,
			want:   Report{Kind: "notification", Valid: true, Problems: []string{}},
		},
		{
			name:   "response missing reply",
			packet: jsonrpc.Packet{"jsonrpc": "2.0", "id": int64(1)},
			kind:   "response",
			want:   Report{Kind: "response", Problems: []string{jsonrpc.ProblemMissingReply}},
		},
		{
			name:   "auto with no shape",
			packet: jsonrpc.Packet{"jsonrpc": "2.0"},
			kind:   KindAuto,
			want:   Report{Kind: KindUnknown, Problems: []string{jsonrpc.ProblemUnknownKind}},
		},
		{
			name:   "structural and schema problems together",
			packet: jsonrpc.Packet{"jsonrpc": "1.0", "method": "sum", "params": []any{1}},
			kind:   "notification",
			want: Report{Kind: "notification", Problems: []string{
				jsonrpc.ProblemVersion,
			}},
			contains: schema.ProblemPrefix,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Check(tt.packet, tt.kind, reg)
			require.NoError(t, err)
			if tt.contains == "" {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.False(t, got.Valid)
			require.Len(t, got.Problems, len(tt.want.Problems)+1)
			assert.Equal(t, tt.want.Problems, got.Problems[:len(tt.want.Problems)])
			assert.Contains(t, got.Problems[len(tt.want.Problems)], tt.contains)
		})
	}
}

func TestCheck_ResponsesSkipSchemas(t *testing.T) {
	reg := schema.NewRegistry()
	require.NoError(t, reg.Register("sum", []byte(`{"type":"array"}`)))

	// A response carrying a method is invalid, but never schema-checked.
	got, err := Check(jsonrpc.Packet{"jsonrpc": "2.0", "id": 1, "result": "ok", "method": "sum", "params": 1}, "response", reg)
	require.NoError(t, err)
	assert.True(t, got.Valid, got.Problems)
}

func TestCheck_UnknownKind(t *testing.T) {
	_, err := Check(jsonrpc.Packet{}, "batch", nil)
	assert.Error(t, err)
}
