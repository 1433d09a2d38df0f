package jsonrpc

import (
	"errors"
	"reflect"
	"testing"
)

func TestGenerateErrorPacket(t *testing.T) {
	tests := []struct {
		name    string
		key     any
		want    Packet
		wantErr error
	}{
		{
			name: "by code",
			key:  -32700,
			want: Packet{"jsonrpc": "2.0", "error": map[string]any{"code": -32700, "message": "Parse error"}},
		},
		{
			name: "by message",
			key:  "Invalid Request",
			want: Packet{"jsonrpc": "2.0", "error": map[string]any{"code": -32600, "message": "Invalid Request"}},
		},
		{
			name: "by decoded code",
			key:  float64(-32603),
			want: Packet{"jsonrpc": "2.0", "error": map[string]any{"code": -32603, "message": "Internal error"}},
		},
		{
			name:    "unknown code",
			key:     -32000,
			wantErr: ErrUnknownCode,
		},
		{
			name:    "application code",
			key:     200,
			wantErr: ErrUnknownCode,
		},
		{
			name:    "unknown message",
			key:     "Server error",
			wantErr: ErrUnknownMessage,
		},
		{
			name:    "message with different case",
			key:     "parse error",
			wantErr: ErrUnknownMessage,
		},
		{
			name:    "unsupported key",
			key:     true,
			wantErr: ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateErrorPacket(tt.key)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got error %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got.Has(FieldID) {
				t.Error("template carries an id")
			}
		})
	}
}

func TestGenerateErrorPacketAllCodes(t *testing.T) {
	for _, ec := range StandardCodes() {
		byCode, err := GenerateErrorPacket(ec.Code)
		if err != nil {
			t.Fatalf("GenerateErrorPacket(%d): %v", ec.Code, err)
		}
		byMessage, err := GenerateErrorPacket(ec.Message)
		if err != nil {
			t.Fatalf("GenerateErrorPacket(%q): %v", ec.Message, err)
		}
		if !reflect.DeepEqual(byCode, byMessage) {
			t.Errorf("code %d: got %v by code and %v by message", ec.Code, byCode, byMessage)
		}

		// The template only lacks an id to be a valid response.
		ok, problems := Verify(byCode, KindResponse)
		if ok || !reflect.DeepEqual(problems, []string{ProblemMissingID}) {
			t.Errorf("code %d: got %v %q", ec.Code, ok, problems)
		}
	}
}
