// Package loading defines runtime types from encoded records.
package loading

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/cottand/rebind/binderr"
	"github.com/cottand/rebind/codec"
	"github.com/cottand/rebind/internal/log"
	"github.com/hashicorp/go-set/v3"
)

var logger = log.DefaultLogger.With("section", "loading")

// Injector defines the types whose records are given, keyed by type name.
//
// Entries are defined independently: the types that could be defined are
// returned together with the joined errors of those that could not.
type Injector interface {
	Inject(ctx context.Context, records map[string][]byte) (map[string]reflect.Type, error)
}

var (
	_ Injector = (*InMemory)(nil)
	_ Injector = (*InterpreterScope)(nil)
)

// InMemory defines records as reflect struct types with one field per record field
type InMemory struct {
	mu      sync.Mutex
	defined map[string]reflect.Type
}

func NewInMemory() *InMemory {
	return &InMemory{defined: make(map[string]reflect.Type)}
}

func (m *InMemory) Inject(ctx context.Context, records map[string][]byte) (map[string]reflect.Type, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return injectEach(ctx, records, set.From(slices.Collect(maps.Keys(m.defined))), func(r *codec.Record) (reflect.Type, error) {
		t, err := structOf(r)
		if err != nil {
			return nil, err
		}
		m.defined[r.Type] = t
		return t, nil
	})
}

// Lookup returns a type defined by a previous injection
func (m *InMemory) Lookup(name string) (reflect.Type, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.defined[name]
	return t, ok
}

func structOf(r *codec.Record) (t reflect.Type, err error) {
	defer func() {
		// StructOf panics on clashing field names
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%v", r)
		}
	}()
	fields := make([]reflect.StructField, 0, len(r.Fields))
	for _, f := range r.Fields {
		t, err := parseRecordType(f.Type, r.Variables)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		fields = append(fields, reflect.StructField{
			Name: exportedName(f.Name),
			Type: t,
			Tag:  fieldTag(f),
		})
	}
	return reflect.StructOf(fields), nil
}

func fieldTag(f codec.FieldRecord) reflect.StructTag {
	return reflect.StructTag(fmt.Sprintf(`rebind:"%s,%d"`, f.Name, f.Modifiers))
}

// injectEach decodes and defines every record in name order. Names in
// defined, or defined earlier in the same call, fail as duplicates.
func injectEach(
	ctx context.Context,
	records map[string][]byte,
	defined *set.Set[string],
	define func(*codec.Record) (reflect.Type, error),
) (map[string]reflect.Type, error) {
	types := make(map[string]reflect.Type, len(records))
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(records)) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, binderr.New(binderr.NewInjectionFailed{Type: name, From: err}))
			continue
		}
		t, err := injectOne(name, records[name], defined, define)
		if err != nil {
			logger.Warn("could not define type", "type", name, "error", err)
			errs = append(errs, binderr.New(binderr.NewInjectionFailed{Type: name, From: err}))
			continue
		}
		logger.Debug("defined type", "type", name, "as", t.String())
		defined.Insert(name)
		types[name] = t
	}
	return types, errors.Join(errs...)
}

func injectOne(name string, data []byte, defined *set.Set[string], define func(*codec.Record) (reflect.Type, error)) (reflect.Type, error) {
	if defined.Contains(name) {
		return nil, fmt.Errorf("already defined")
	}
	r, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	if r.Type != name {
		return nil, fmt.Errorf("record describes '%s'", r.Type)
	}
	return define(r)
}
