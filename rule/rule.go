package rule

import "github.com/CodMac/go-treesitter-arch-checker/model"

// ArchRule 由选择器和条件组合树构成：创建一次，可对不同代码模型快照
// 求值多次，求值之间不保留任何状态，可并发使用。
type ArchRule[T any] struct {
	given     *Given[T]
	condition ArchCondition[T]
}

// AndShould 以 AND 方式并入下一个叶子条件（左结合）。
// 接受的条件种类与当前构造器相同，返回的规则保持同一种类。
func (r *ArchRule[T]) AndShould(c ArchCondition[T]) *ArchRule[T] {
	return &ArchRule[T]{given: r.given, condition: andConditions(r.condition, c)}
}

// OrShould 以 OR 方式并入下一个叶子条件（左结合）
func (r *ArchRule[T]) OrShould(c ArchCondition[T]) *ArchRule[T] {
	return &ArchRule[T]{given: r.given, condition: orConditions(r.condition, c)}
}

// Description 返回规则描述：选择器种类名（含 that 谓词）、"should"、
// 组合树描述（叶子描述按树结构以 "and"/"or" 连接）
func (r *ArchRule[T]) Description() string {
	return r.given.describe() + " should " + r.condition.Description()
}

// Evaluate 对一份代码模型快照求值。按选择器遍历顺序逐元素执行组合树，
// 把产生的全部事件聚合为一个 EvaluationResult。
func (r *ArchRule[T]) Evaluate(classes *model.JavaClasses) *EvaluationResult {
	result := &EvaluationResult{ruleDescription: r.Description()}
	for _, item := range r.given.candidates(classes) {
		events := &ConditionEvents{}
		r.condition.Check(item, events)
		result.events = append(result.events, events.All()...)
	}
	return result
}

// Check 求值并在存在违规时返回 *RuleViolationError，否则返回 nil
func (r *ArchRule[T]) Check(classes *model.JavaClasses) error {
	result := r.Evaluate(classes)
	if result.HasViolation() {
		return &RuleViolationError{
			RuleDescription: result.RuleDescription(),
			Details:         result.FailureReport().Details(),
		}
	}
	return nil
}

// CheckedRule 是 ArchRule 的无类型参数视图，用于把不同元素种类的规则
// 放进同一个列表（CLI 规则包）。所有 ArchRule 都实现它。
type CheckedRule interface {
	Description() string
	Evaluate(classes *model.JavaClasses) *EvaluationResult
	Check(classes *model.JavaClasses) error
}
