package loading

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"go/token"
	"reflect"
	"sync"

	"github.com/cottand/rebind/codec"
	"github.com/hashicorp/go-set/v3"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// InterpreterScope defines records as Go types inside a yaegi interpreter.
// Each record is rendered to Go source in a package of its own.
type InterpreterScope struct {
	mu      sync.Mutex
	i       *interp.Interpreter
	defined *set.Set[string]
}

func NewInterpreterScope() (*InterpreterScope, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("error loading Go interpreter: %w", err)
	}
	return &InterpreterScope{i: i, defined: set.New[string](0)}, nil
}

func (s *InterpreterScope) Inject(ctx context.Context, records map[string][]byte) (map[string]reflect.Type, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return injectEach(ctx, records, s.defined, func(r *codec.Record) (reflect.Type, error) {
		return s.define(ctx, r)
	})
}

// Source renders the Go source a record is defined with
func Source(r *codec.Record) (string, error) {
	file, err := render(packageName(r.Type), r)
	if err != nil {
		return "", err
	}
	sourceBuf := bytes.NewBuffer(nil)
	if err := format.Node(sourceBuf, token.NewFileSet(), file); err != nil {
		return "", err
	}
	return sourceBuf.String(), nil
}

func (s *InterpreterScope) define(ctx context.Context, r *codec.Record) (reflect.Type, error) {
	src, err := Source(r)
	if err != nil {
		return nil, err
	}
	if _, err := s.i.EvalWithContext(ctx, src); err != nil {
		logger.Debug("interpreter rejected source", "type", r.Type, "source", src)
		return nil, fmt.Errorf("could not compile generated source: %w", err)
	}
	zero, err := s.i.EvalWithContext(ctx, fmt.Sprintf("%s.%s{}", packageName(r.Type), exportedName(r.Type)))
	if err != nil {
		return nil, err
	}
	return zero.Type(), nil
}

// Eval evaluates src in the scope, where defined types are visible under their package
func (s *InterpreterScope) Eval(ctx context.Context, src string) (reflect.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.i.EvalWithContext(ctx, src)
}
