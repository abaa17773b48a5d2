package rule

import "strings"

// --- AND/OR 组合树 (Combinator Tree) ---
//
// 组合树的求值不短路：每个叶子条件对每个元素都会被执行，这样所有
// 可用的诊断信息都会被收集。节点裁决在全部叶子执行完之后按真值表
// 计算；节点裁决为违规时针对该元素只发出一条合并事件，消息按书写
// 顺序用字面量 "and" 连接所有报告了违规的叶子的消息。

type andCondition[T any] struct {
	parts []ArchCondition[T]
}

func (a *andCondition[T]) Description() string {
	return joinConditionDescriptions(a.parts, " and ")
}

func (a *andCondition[T]) Check(item T, events *ConditionEvents) {
	var messages []string
	violated := false
	for _, part := range a.parts {
		sub := &ConditionEvents{}
		part.Check(item, sub)
		if sub.ContainViolation() {
			violated = true
			for _, ev := range sub.Violating() {
				messages = append(messages, ev.Message())
			}
		}
	}
	if violated {
		events.Add(ViolatedEvent(strings.Join(messages, " and ")))
	}
}

type orCondition[T any] struct {
	parts []ArchCondition[T]
}

func (o *orCondition[T]) Description() string {
	return joinConditionDescriptions(o.parts, " or ")
}

func (o *orCondition[T]) Check(item T, events *ConditionEvents) {
	var messages []string
	violatedParts := 0
	for _, part := range o.parts {
		sub := &ConditionEvents{}
		part.Check(item, sub)
		if sub.ContainViolation() {
			violatedParts++
			for _, ev := range sub.Violating() {
				messages = append(messages, ev.Message())
			}
		}
	}
	// 任一分支满足即满足；全部违规才发出合并事件
	if violatedParts == len(o.parts) {
		events.Add(ViolatedEvent(strings.Join(messages, " and ")))
	}
}

// andConditions 左结合地把新叶子并入既有 AND 节点
func andConditions[T any](left, right ArchCondition[T]) ArchCondition[T] {
	if a, ok := left.(*andCondition[T]); ok {
		parts := make([]ArchCondition[T], 0, len(a.parts)+1)
		parts = append(parts, a.parts...)
		parts = append(parts, right)
		return &andCondition[T]{parts: parts}
	}
	return &andCondition[T]{parts: []ArchCondition[T]{left, right}}
}

// orConditions 左结合地把新叶子并入既有 OR 节点
func orConditions[T any](left, right ArchCondition[T]) ArchCondition[T] {
	if o, ok := left.(*orCondition[T]); ok {
		parts := make([]ArchCondition[T], 0, len(o.parts)+1)
		parts = append(parts, o.parts...)
		parts = append(parts, right)
		return &orCondition[T]{parts: parts}
	}
	return &orCondition[T]{parts: []ArchCondition[T]{left, right}}
}

func joinConditionDescriptions[T any](parts []ArchCondition[T], sep string) string {
	descs := make([]string, len(parts))
	for i, p := range parts {
		descs[i] = p.Description()
	}
	return strings.Join(descs, sep)
}
