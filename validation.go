package gqlserve

import "github.com/graphql-go/graphql"

// ValidationPolicy determines which validation rules run against an operation's
// document before it is executed. The possible policies form a closed set:
//
//   - nil: the engine's default rule set (graphql.SpecifiedRules).
//   - StaticRules: a fixed rule set. The empty set disables validation
//     entirely, causing any parseable document to be accepted.
//   - DynamicRules: a per-operation choice of StaticRules.
type ValidationPolicy interface {
	rulesFor(params *OperationParams) []graphql.ValidationRuleFn
}

// StaticRules is a fixed, ordered set of validation rules. All rules run and
// all of their errors accumulate; rules never short-circuit one another.
type StaticRules []graphql.ValidationRuleFn

func (r StaticRules) rulesFor(*OperationParams) []graphql.ValidationRuleFn {
	return r
}

// SkipValidation is the policy that accepts any parseable document.
var SkipValidation = StaticRules{}

// DynamicRules selects a rule set per operation. It is invoked exactly once per
// operation, with the operation's fully formed params, so e.g. pre-registered
// queries can be exempted from rules that ad-hoc queries are subject to.
type DynamicRules func(params *OperationParams) StaticRules

func (f DynamicRules) rulesFor(params *OperationParams) []graphql.ValidationRuleFn {
	return f(params)
}

// resolveRules reduces a policy to the concrete rule set for one operation.
// The second return value is false when no policy is configured at all, which
// is distinct from a configured empty set: absence means "default rules" while
// an empty set means "skip validation".
func resolveRules(policy ValidationPolicy, params *OperationParams) ([]graphql.ValidationRuleFn, bool) {
	if policy == nil {
		return nil, false
	}
	return policy.rulesFor(params), true
}
