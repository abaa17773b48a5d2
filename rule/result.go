package rule

import (
	"fmt"
	"strings"
)

// EvaluationResult 是一次规则求值对一份快照产生的全部事件。
// 求值返回后它就是纯数据，不再引用快照。
type EvaluationResult struct {
	ruleDescription string
	events          []ConditionEvent
}

// RuleDescription 返回被求值规则的描述
func (r *EvaluationResult) RuleDescription() string { return r.ruleDescription }

// HasViolation 判断是否存在至少一条违规事件
func (r *EvaluationResult) HasViolation() bool {
	for _, ev := range r.events {
		if ev.IsViolation() {
			return true
		}
	}
	return false
}

// Events 按元素遍历顺序返回全部事件（含满足事件）
func (r *EvaluationResult) Events() []ConditionEvent { return r.events }

// FailureReport 返回只含违规消息的报告视图，顺序与元素遍历顺序一致。
// 同一次运行内对同一份未变快照重复求值产生相同内容与顺序。
func (r *EvaluationResult) FailureReport() *FailureReport {
	report := &FailureReport{ruleDescription: r.ruleDescription}
	for _, ev := range r.events {
		if ev.IsViolation() {
			report.details = append(report.details, ev.Message())
		}
	}
	return report
}

// FailureReport 是一次求值的有序违规消息列表
type FailureReport struct {
	ruleDescription string
	details         []string
}

// Details 按序返回渲染好的违规消息
func (f *FailureReport) Details() []string { return f.details }

// IsEmpty 判断报告是否为空
func (f *FailureReport) IsEmpty() bool { return len(f.details) == 0 }

func (f *FailureReport) String() string {
	return violationMessage(f.ruleDescription, f.details)
}

// RuleViolationError 是 Check 在存在违规时返回的错误。错误文本逐字
// 包含失败报告的每一行，外部消费者可以解析任一种表示。
type RuleViolationError struct {
	RuleDescription string
	Details         []string
}

func (e *RuleViolationError) Error() string {
	return violationMessage(e.RuleDescription, e.Details)
}

func violationMessage(description string, details []string) string {
	return fmt.Sprintf("Rule '%s' was violated (%d times):\n%s",
		description, len(details), strings.Join(details, "\n"))
}
