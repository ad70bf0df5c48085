package graph

import "fmt"

// MethodFailure is the set of ways a method's apply function can fail.
// It mirrors the taxonomy the planner and scheduler both need to report
// back to a host: a variable that went missing, a type that didn't convert,
// an arity mismatch, or an opaque caller-supplied failure.
type MethodFailure struct {
	Kind           MethodFailureKind
	VariableName   string
	TargetType     string
	ExpectedCount  int
	ActualCount    int
	Message        string
}

// MethodFailureKind enumerates the way a MethodFailure occurred.
type MethodFailureKind int

const (
	NoSuchVariable MethodFailureKind = iota
	TypeConversionFailure
	WrongInputCount
	WrongOutputCount
	CustomFailure
)

func (f *MethodFailure) Error() string {
	switch f.Kind {
	case NoSuchVariable:
		return fmt.Sprintf("unknown variable %s", f.VariableName)
	case TypeConversionFailure:
		return fmt.Sprintf("variable %s could not be converted to %s", f.VariableName, f.TargetType)
	case WrongInputCount:
		return fmt.Sprintf("method takes %d input(s), but got %d", f.ExpectedCount, f.ActualCount)
	case WrongOutputCount:
		return fmt.Sprintf("method takes %d output(s), but got %d", f.ExpectedCount, f.ActualCount)
	default:
		return f.Message
	}
}

// NewWrongInputCount builds a WrongInputCount failure.
func NewWrongInputCount(expected, actual int) *MethodFailure {
	return &MethodFailure{Kind: WrongInputCount, ExpectedCount: expected, ActualCount: actual}
}

// NewWrongOutputCount builds a WrongOutputCount failure.
func NewWrongOutputCount(expected, actual int) *MethodFailure {
	return &MethodFailure{Kind: WrongOutputCount, ExpectedCount: expected, ActualCount: actual}
}

// NewCustomFailure wraps an arbitrary message from a method body.
func NewCustomFailure(msg string) *MethodFailure {
	return &MethodFailure{Kind: CustomFailure, Message: msg}
}

// Func is the opaque body of a method: it consumes the current values of
// its inputs, in order, and produces the new values of its outputs, in
// order. The core never inspects or type-checks values beyond arity; it is
// entirely up to the host what Value actually holds.
type Func func(args []Value) ([]Value, *MethodFailure)

// Value is whatever a method reads and writes. It is intentionally `any`:
// the planner and scheduler never interpret it.
type Value = any

// Method is an opaque, pure, callable transformation from a fixed ordered
// set of input variable indices to a fixed ordered set of output variable
// indices. Two methods in the same Constraint must never share an output.
type Method struct {
	name    string
	inputs  []int
	outputs []int
	apply   Func
	isStay  bool
}

// NewMethod constructs a normal (non-stay) method.
func NewMethod(name string, inputs, outputs []int, apply Func) Method {
	return Method{name: name, inputs: inputs, outputs: outputs, apply: apply}
}

// NewStayMethod constructs the identity method of a stay constraint: a
// method whose inputs equal its outputs and which is never selected as a
// real source of computation by the planner.
func NewStayMethod(name string, variable int) Method {
	return Method{
		name:    name,
		inputs:  []int{variable},
		outputs: []int{variable},
		apply:   func(args []Value) ([]Value, *MethodFailure) { return args, nil },
		isStay:  true,
	}
}

func (m Method) Name() string    { return m.name }
func (m Method) Inputs() []int   { return m.inputs }
func (m Method) Outputs() []int  { return m.outputs }
func (m Method) IsStay() bool    { return m.isStay }

// Apply runs the method body, checking input/output arity first.
func (m Method) Apply(args []Value) ([]Value, *MethodFailure) {
	if len(args) != len(m.inputs) {
		return nil, NewWrongInputCount(len(m.inputs), len(args))
	}
	out, failure := m.apply(args)
	if failure != nil {
		return nil, failure
	}
	if len(out) != len(m.outputs) {
		return nil, NewWrongOutputCount(len(m.outputs), len(out))
	}
	return out, nil
}
