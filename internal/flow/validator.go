package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"k8s.io/klog/v2"
)

// Verdict 一次校验的结论
type Verdict struct {
	Valid       bool   `json:"valid"`
	Explanation string `json:"explanation"`
}

// SemanticValidator 外部语义校验器。
// 由 LLM 实现，判断自由文本答案在问题语境下是否成立。
type SemanticValidator interface {
	ValidateAnswer(ctx context.Context, question, answer string) (Verdict, error)
}

// Validator 按字段策略分发校验。
// 每次调用至多触发一次语义校验请求。
type Validator struct {
	semantic SemanticValidator
}

func NewValidator(semantic SemanticValidator) *Validator {
	return &Validator{semantic: semantic}
}

// Validate 校验 answer 是否满足 policy。
// 本地策略（numeric/pattern-set/unrestricted）不产生外部调用；
// semantic 策略与 enumerated 兜底会调用语义校验器，其错误原样上抛。
func (v *Validator) Validate(ctx context.Context, question, answer string, policy Policy) (Verdict, error) {
	trimmed := strings.TrimSpace(answer)

	switch policy.Kind {
	case PolicyNumeric:
		if _, err := strconv.Atoi(trimmed); err != nil {
			return Verdict{
				Valid:       false,
				Explanation: fmt.Sprintf("'%s' não é um número inteiro válido.", answer),
			}, nil
		}
		return accepted(trimmed), nil

	case PolicyPatternSet:
		for _, p := range policy.Patterns {
			if p.MatchString(trimmed) {
				return accepted(trimmed), nil
			}
		}
		return Verdict{
			Valid:       false,
			Explanation: fmt.Sprintf("'%s' não é um email ou telefone válido.", answer),
		}, nil

	case PolicyEnumerated:
		for _, opt := range policy.Options {
			if strings.EqualFold(trimmed, opt) {
				return accepted(trimmed), nil
			}
		}
		if policy.SemanticFallback {
			klog.V(6).Infof("opção '%s' fora da lista, delegando à validação semântica", trimmed)
			return v.delegate(ctx, question, answer)
		}
		return Verdict{
			Valid: false,
			Explanation: fmt.Sprintf("'%s' não é uma opção reconhecida. Opções: %s.",
				answer, strings.Join(policy.Options, ", ")),
		}, nil

	case PolicySemantic:
		return v.delegate(ctx, question, answer)

	case PolicyUnrestricted:
		if trimmed == "" {
			return Verdict{Valid: false, Explanation: "A resposta não pode ser vazia."}, nil
		}
		return accepted(trimmed), nil

	default:
		return Verdict{}, fmt.Errorf("unknown validation policy: %s", policy.Kind)
	}
}

func (v *Validator) delegate(ctx context.Context, question, answer string) (Verdict, error) {
	verdict, err := v.semantic.ValidateAnswer(ctx, question, answer)
	if err != nil {
		return Verdict{}, fmt.Errorf("semantic validation failed: %w", err)
	}
	return verdict, nil
}

func accepted(answer string) Verdict {
	return Verdict{Valid: true, Explanation: fmt.Sprintf("A resposta '%s' é válida.", answer)}
}
