// Package schema checks the params of Requests and Notifications against
// per-method JSON Schemas.
package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mnehpets/jrpc/jsonrpc"
	"github.com/xeipuuv/gojsonschema"
)

// ProblemPrefix starts every problem reported by Check.
const ProblemPrefix = "params: "

// Registry maps method names to compiled schemas. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*gojsonschema.Schema
}

func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*gojsonschema.Schema)}
}

// Register compiles schema and associates it with method, replacing any
// schema registered before.
func (r *Registry) Register(method string, schema []byte) error {
	if method == "" {
		return errors.New("schema: empty method name")
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schema))
	if err != nil {
		return fmt.Errorf("schema: %s: %w", method, err)
	}
	r.mu.Lock()
	r.schemas[method] = compiled
	r.mu.Unlock()
	return nil
}

// LoadDir builds a Registry from the "<method>.json" files in dir. Other
// files and subdirectories are ignored.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	r := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
		if err := r.Register(strings.TrimSuffix(e.Name(), ".json"), b); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Methods returns the registered method names in sorted order.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.schemas))
	for m := range r.schemas {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Check validates the params of p against the schema registered for its
// method. Packets without a string method, and methods without a schema,
// yield no problems. Absent params are checked as an empty object. A nil
// Registry checks nothing.
func (r *Registry) Check(p jsonrpc.Packet) []string {
	if r == nil {
		return nil
	}
	method, ok := p.Method()
	if !ok {
		return nil
	}
	r.mu.RLock()
	s := r.schemas[method]
	r.mu.RUnlock()
	if s == nil {
		return nil
	}

	params, ok := p[jsonrpc.FieldParams]
	if !ok {
		params = map[string]any{}
	}
	res, err := s.Validate(gojsonschema.NewGoLoader(params))
	if err != nil {
		return []string{ProblemPrefix + err.Error()}
	}
	if res.Valid() {
		return nil
	}
	var problems []string
	for _, re := range res.Errors() {
		problems = append(problems, ProblemPrefix+re.String())
	}
	return problems
}
