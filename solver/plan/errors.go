package plan

import "errors"

// ErrOverconstrained is returned by Hierarchical when no combination of
// stay constraints yields a plan that enforces every constraint: the
// component's constraints, taken together, admit no solution.
var ErrOverconstrained = errors.New("plan: component is overconstrained")
