package rule

import "github.com/CodMac/go-treesitter-arch-checker/model"

// ConditionEvent 记录一次检查针对某个元素产生的结果：违规标记加上
// 渲染好的消息文本。
type ConditionEvent struct {
	violated bool
	message  string
}

// SatisfiedEvent 构造一条满足事件。满足事件不会进入失败报告。
func SatisfiedEvent(message string) ConditionEvent {
	return ConditionEvent{violated: false, message: message}
}

// ViolatedEvent 构造一条违规事件
func ViolatedEvent(message string) ConditionEvent {
	return ConditionEvent{violated: true, message: message}
}

func (e ConditionEvent) IsViolation() bool { return e.violated }
func (e ConditionEvent) Message() string   { return e.message }

// ConditionEvents 是一次检查期间按序追加的事件序列
type ConditionEvents struct {
	events []ConditionEvent
}

// Add 追加一条事件
func (e *ConditionEvents) Add(ev ConditionEvent) {
	e.events = append(e.events, ev)
}

// All 按追加顺序返回全部事件
func (e *ConditionEvents) All() []ConditionEvent { return e.events }

// Violating 按追加顺序返回违规事件
func (e *ConditionEvents) Violating() []ConditionEvent {
	var out []ConditionEvent
	for _, ev := range e.events {
		if ev.violated {
			out = append(out, ev)
		}
	}
	return out
}

// ContainViolation 判断是否存在至少一条违规事件
func (e *ConditionEvents) ContainViolation() bool {
	for _, ev := range e.events {
		if ev.violated {
			return true
		}
	}
	return false
}

// ArchCondition 是逐元素的有状态检查：给定一个元素和事件槽，追加零条
// 或多条事件。描述与任何单个元素无关。与 DescribedPredicate 一样，
// 这是一个开放扩展点，调用方可以在任何接受内置条件的地方提供自定义实现。
type ArchCondition[T any] interface {
	Description() string
	Check(item T, events *ConditionEvents)
}

type archCondition[T any] struct {
	description string
	check       func(T, *ConditionEvents)
}

func (c *archCondition[T]) Description() string { return c.description }
func (c *archCondition[T]) Check(item T, events *ConditionEvents) {
	c.check(item, events)
}

// NewCondition 用描述和检查函数构造一个 ArchCondition
func NewCondition[T any](description string, check func(T, *ConditionEvents)) ArchCondition[T] {
	return &archCondition[T]{description: description, check: check}
}

// ForMembers 把针对 JavaMember 的条件提升为针对任意更具体成员种类的
// 条件（逆变接受）。提升不会改变构造器当前特化的元素种类。
func ForMembers[T model.JavaMember](c ArchCondition[model.JavaMember]) ArchCondition[T] {
	return NewCondition[T](c.Description(), func(item T, events *ConditionEvents) {
		c.Check(item, events)
	})
}

// ForCodeUnits 把针对 JavaCodeUnit 的条件提升为针对方法或构造函数的条件
func ForCodeUnits[T model.JavaCodeUnit](c ArchCondition[model.JavaCodeUnit]) ArchCondition[T] {
	return NewCondition[T](c.Description(), func(item T, events *ConditionEvents) {
		c.Check(item, events)
	})
}

// ForMemberPredicate 把针对 JavaMember 的谓词收窄到更具体的成员种类
func ForMemberPredicate[T model.JavaMember](p DescribedPredicate[model.JavaMember]) DescribedPredicate[T] {
	return NewPredicate[T](p.Description(), func(item T) bool {
		return p.Test(item)
	})
}

// ForCodeUnitPredicate 把针对 JavaCodeUnit 的谓词收窄到方法或构造函数
func ForCodeUnitPredicate[T model.JavaCodeUnit](p DescribedPredicate[model.JavaCodeUnit]) DescribedPredicate[T] {
	return NewPredicate[T](p.Description(), func(item T) bool {
		return p.Test(item)
	})
}
