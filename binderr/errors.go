// Package binderr holds the error kinds reported while describing,
// transforming and injecting type members.
//
// Every kind has its own ErrCode. Errors created through New carry the stack
// at which they were raised, which FormatWithCode prints when debug printing
// is enabled.
package binderr

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include the frame they were raised at when printed
var enableDebugErrorPrinting = false

const enableDebugFullStacktrace bool = false

type ErrCode int

const (
	None ErrCode = iota
	UnresolvedTypeVariable
	IndexOutOfRange
	MalformedType
	InvalidDescription
	InjectionFailed
)

func (c ErrCode) String() string {
	switch c {
	case UnresolvedTypeVariable:
		return "unresolved type variable"
	case IndexOutOfRange:
		return "index out of range"
	case MalformedType:
		return "malformed type"
	case InvalidDescription:
		return "invalid description"
	case InjectionFailed:
		return "injection failed"
	default:
		return "unclassified"
	}
}

type BindError interface {
	Error() string
	Code() ErrCode

	withStack([]byte) BindError
	getStack() []byte
}

// SetDebugPrinting toggles printing the raising frame in FormatWithCode
func SetDebugPrinting(enabled bool) {
	enableDebugErrorPrinting = enabled
}

func FormatWithCode(e BindError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			lines := strings.Split(stack, "\n")
			if len(lines) > 6 {
				stack = strings.TrimSpace(lines[6])
			}
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E BindError](err E) BindError {
	return err.withStack(debug.Stack())
}

// CodeOf returns the code of the first BindError in err's chain, or None
func CodeOf(err error) ErrCode {
	var bindErr BindError
	if errors.As(err, &bindErr) {
		return bindErr.Code()
	}
	return None
}

type NewUnresolvedTypeVariable struct {
	Symbol string
	// Scopes lists the declaring elements that were searched, innermost first
	Scopes []string
	stack  []byte
}

func (e NewUnresolvedTypeVariable) Error() string {
	return fmt.Sprintf("type variable '%s' is not declared by any of [%s]", e.Symbol, strings.Join(e.Scopes, ", "))
}
func (e NewUnresolvedTypeVariable) Code() ErrCode    { return UnresolvedTypeVariable }
func (e NewUnresolvedTypeVariable) getStack() []byte { return e.stack }
func (e NewUnresolvedTypeVariable) withStack(stack []byte) BindError {
	e.stack = stack
	return e
}

type NewIndexOutOfRange struct {
	Index int
	Size  int
	stack []byte
}

func (e NewIndexOutOfRange) Error() string {
	return fmt.Sprintf("index %d out of range for %d parameters", e.Index, e.Size)
}
func (e NewIndexOutOfRange) Code() ErrCode    { return IndexOutOfRange }
func (e NewIndexOutOfRange) getStack() []byte { return e.stack }
func (e NewIndexOutOfRange) withStack(stack []byte) BindError {
	e.stack = stack
	return e
}

type NewMalformedType struct {
	Source string
	Offset int
	Reason string
	stack  []byte
}

func (e NewMalformedType) Error() string {
	return fmt.Sprintf("malformed type '%s' at offset %d: %s", e.Source, e.Offset, e.Reason)
}
func (e NewMalformedType) Code() ErrCode    { return MalformedType }
func (e NewMalformedType) getStack() []byte { return e.stack }
func (e NewMalformedType) withStack(stack []byte) BindError {
	e.stack = stack
	return e
}

type NewInvalidDescription struct {
	// Path locates the offending element, e.g. "Box.methods[1].parameters[0]"
	Path   string
	Reason string
	stack  []byte
}

func (e NewInvalidDescription) Error() string {
	return fmt.Sprintf("invalid description at %s: %s", e.Path, e.Reason)
}
func (e NewInvalidDescription) Code() ErrCode    { return InvalidDescription }
func (e NewInvalidDescription) getStack() []byte { return e.stack }
func (e NewInvalidDescription) withStack(stack []byte) BindError {
	e.stack = stack
	return e
}

type NewInjectionFailed struct {
	Type  string
	From  error
	stack []byte
}

func (e NewInjectionFailed) Error() string {
	return fmt.Sprintf("could not define type '%s': %v", e.Type, e.From)
}
func (e NewInjectionFailed) Unwrap() error    { return e.From }
func (e NewInjectionFailed) Code() ErrCode    { return InjectionFailed }
func (e NewInjectionFailed) getStack() []byte { return e.stack }
func (e NewInjectionFailed) withStack(stack []byte) BindError {
	e.stack = stack
	return e
}
