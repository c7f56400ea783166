package revpath

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Strategy is an interpretation of a revpath
type Strategy string

// Strategies, in the order they are attempted
const (
	// StrategyWorkspacePath reads the revpath as "workspace-path[@[revision][:target]]"
	StrategyWorkspacePath Strategy = "workspace-path"

	// StrategyAmbientRevision reads the revpath as "[revision:]target" in the ambient workspace
	StrategyAmbientRevision Strategy = "ambient-revision"

	// StrategyBareDataset reads the revpath as "dataset-path[:format]"
	StrategyBareDataset Strategy = "bare-dataset"
)

// Problem is the failure of a strategy
type Problem struct {
	Strategy Strategy
	Err      error
}

func (p *Problem) Error() string {
	return fmt.Sprintf("as %s: %v", p.Strategy, p.Err)
}

func (p *Problem) Unwrap() error {
	return p.Err
}

// WrongRevpathError is returned when no interpretation of a revpath succeeds.
//
// Problems holds one *Problem per strategy attempted, in attempt order. errors.Is and
// errors.As inspect all of them.
type WrongRevpathError struct {
	Revpath  string
	Problems []error
}

func (e *WrongRevpathError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "wrong revpath %q", e.Revpath)
	for _, problem := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(problem.Error())
	}
	return b.String()
}

func (e *WrongRevpathError) Unwrap() []error {
	return e.Problems
}

// aggregator folds the failures of the strategies
type aggregator struct {
	revpath  string
	err      error
	attempts int
	failures int
}

func (a *aggregator) attempted() {
	a.attempts++
}

func (a *aggregator) fail(strategy Strategy, err error) {
	a.failures++
	a.err = multierr.Append(a.err, &Problem{Strategy: strategy, Err: err})
}

// dismiss counts a failure which is not worth reporting
func (a *aggregator) dismiss() {
	a.failures++
}

// result yields the aggregated error, once all attempts failed
func (a *aggregator) result() error {
	if a.attempts == 0 || a.failures < a.attempts {
		return nil
	}
	return &WrongRevpathError{Revpath: a.revpath, Problems: multierr.Errors(a.err)}
}
