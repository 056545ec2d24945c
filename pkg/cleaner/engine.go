package cleaner

import (
	"github.com/thunderstroke325/mage-ai/pkg/column"
	"github.com/thunderstroke325/mage-ai/pkg/frame"
)

// Rule is one cleaning rule evaluated against a RuleContext snapshot.
// Evaluate returns its suggestions in a deterministic order; finding
// nothing applicable yields an empty list, never an error.
type Rule interface {
	Name() string
	Evaluate() ([]Suggestion, error)
}

// RuleFactory builds a rule bound to a context.
type RuleFactory func(*RuleContext) Rule

// DefaultRules is the registry evaluated by Evaluate, in registration
// order.
func DefaultRules() []RuleFactory {
	return []RuleFactory{
		func(c *RuleContext) Rule { return &CleanColumnNames{ctx: c} },
		func(c *RuleContext) Rule { return &RemoveColumnsWithHighEmptyRate{ctx: c} },
		func(c *RuleContext) Rule { return &RemoveColumnsWithSingleValue{ctx: c} },
		func(c *RuleContext) Rule { return &RemoveDuplicateRows{ctx: c} },
		func(c *RuleContext) Rule { return &RemoveCollinearColumns{ctx: c} },
		func(c *RuleContext) Rule { return &RemoveOutliers{ctx: c} },
		func(c *RuleContext) Rule { return &ImputeValues{ctx: c} },
	}
}

// Engine runs an ordered rule registry against one snapshot.
type Engine struct {
	rules []Rule
}

// NewEngine snapshots the inputs and binds the registry to them. With no
// explicit factories the default registry is used. Each call builds fresh
// rule instances; engines share no state across calls.
func NewEngine(f *frame.Frame, columnTypes map[string]column.Type, statistics map[string]any, factories ...RuleFactory) (*Engine, error) {
	ctx, err := NewRuleContext(f, columnTypes, statistics)
	if err != nil {
		return nil, err
	}
	if len(factories) == 0 {
		factories = DefaultRules()
	}
	rules := make([]Rule, len(factories))
	for i, factory := range factories {
		rules[i] = factory(ctx)
	}
	return &Engine{rules: rules}, nil
}

// Evaluate runs every registered rule and concatenates their suggestions
// in registration order. Suggestions are never reordered, merged, or
// deduplicated across rules.
func (e *Engine) Evaluate() ([]Suggestion, error) {
	suggestions := []Suggestion{}
	for _, rule := range e.rules {
		found, err := rule.Evaluate()
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, found...)
	}
	return suggestions, nil
}

// Evaluate runs the default rule registry against one dataset snapshot.
func Evaluate(f *frame.Frame, columnTypes map[string]column.Type, statistics map[string]any) ([]Suggestion, error) {
	engine, err := NewEngine(f, columnTypes, statistics)
	if err != nil {
		return nil, err
	}
	return engine.Evaluate()
}
