package flow

import "regexp"

// PolicyKind 定义答案校验策略的种类
type PolicyKind string

const (
	PolicyEnumerated   PolicyKind = "enumerated"   // 封闭选项集，可选语义兜底
	PolicySemantic     PolicyKind = "semantic"     // 始终交给语义校验器
	PolicyNumeric      PolicyKind = "numeric"      // 必须是整数
	PolicyPatternSet   PolicyKind = "pattern-set"  // 匹配任一正则即通过
	PolicyUnrestricted PolicyKind = "unrestricted" // 非空即通过
)

// Policy 是字段校验策略的带标签变体。
// Kind 决定哪些附加字段有效：Options/SemanticFallback 仅用于 enumerated，
// Patterns 仅用于 pattern-set。
type Policy struct {
	Kind             PolicyKind
	Options          []string
	SemanticFallback bool
	Patterns         []*regexp.Regexp
}

func Enumerated(options ...string) Policy {
	return Policy{Kind: PolicyEnumerated, Options: options}
}

// EnumeratedWithFallback 在选项不命中时交给语义校验器兜底
func EnumeratedWithFallback(options ...string) Policy {
	return Policy{Kind: PolicyEnumerated, Options: options, SemanticFallback: true}
}

func Semantic() Policy {
	return Policy{Kind: PolicySemantic}
}

func Numeric() Policy {
	return Policy{Kind: PolicyNumeric}
}

func PatternSet(patterns ...*regexp.Regexp) Policy {
	return Policy{Kind: PolicyPatternSet, Patterns: patterns}
}

func Unrestricted() Policy {
	return Policy{Kind: PolicyUnrestricted}
}
