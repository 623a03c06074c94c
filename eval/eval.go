// Package eval evaluates expressions against live store state. Expressions
// see the store's keyed values as top-level variables plus a values map and
// a row helper; results and failures are explicit return values, never
// panics, so a bad expression cannot take down the reactive host.
package eval

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"

	"github.com/ripplekit/ripple/store"
)

// Evaluator compiles expressions once and runs them against a store's
// current content on demand.
type Evaluator struct {
	store    *store.Store
	programs map[string]*exprvm.Program
}

func New(s *store.Store) *Evaluator {
	return &Evaluator{
		store:    s,
		programs: map[string]*exprvm.Program{},
	}
}

// Evaluate runs expression against the store's current values and tables.
// Compiled programs are cached per expression string.
func (e *Evaluator) Evaluate(expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("eval: expression must not be empty")
	}
	program, err := e.compile(expression)
	if err != nil {
		return nil, err
	}
	result, err := exprlang.Run(program, e.environment())
	if err != nil {
		return nil, fmt.Errorf("eval %q: %w", expression, err)
	}
	return result, nil
}

func (e *Evaluator) compile(expression string) (*exprvm.Program, error) {
	if program, ok := e.programs[expression]; ok {
		return program, nil
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}
	e.programs[expression] = program
	return program, nil
}

// environment exposes keyed values as top-level variables, the full values
// map under "values", and helpers for tabular reads.
func (e *Evaluator) environment() map[string]any {
	env := map[string]any{}
	for id, v := range e.store.GetValues() {
		env[id] = v
	}
	env["values"] = e.store.GetValues()
	env["row"] = func(tableId, rowId string) map[string]any {
		return e.store.GetRow(tableId, rowId)
	}
	env["cell"] = func(tableId, rowId, cellId string) any {
		return e.store.GetCell(tableId, rowId, cellId)
	}
	env["rowIds"] = func(tableId string) []string {
		return e.store.GetRowIds(tableId)
	}
	return env
}

// Watch re-evaluates expression after every firing pass that touched keyed
// values or tabular data, delivering the fresh result (or error) to fn. The
// expression is evaluated once up front. The returned stop func deregisters
// the listeners.
func (e *Evaluator) Watch(expression string, fn func(result any, err error)) (stop func(), err error) {
	if _, err := e.compile(expression); err != nil {
		return nil, err
	}
	rerun := func(*store.Store) {
		fn(e.Evaluate(expression))
	}
	valuesId := e.store.AddValuesListener(rerun)
	tablesId := e.store.AddTablesListener(rerun)
	fn(e.Evaluate(expression))
	return func() {
		e.store.DelListener(valuesId)
		e.store.DelListener(tablesId)
	}, nil
}
