// Package rule 实现架构一致性规则引擎：类型化的谓词/条件代数、
// 保留元素种类信息的链式规则构造器、调用图限制条件族，以及把逐元素
// 布尔裁决合并为确定性违规报告的求值管线。
package rule

import "strings"

// DescribedPredicate 是带人类可读描述的纯布尔判断。它是规则系统的
// 开放扩展点之一：任何接受内置谓词的地方都接受自定义实现。
type DescribedPredicate[T any] interface {
	// Description 返回谓词的描述 (e.g., "are declared in com.example.Foo")
	Description() string
	// Test 判断单个元素是否满足谓词，必须是纯函数
	Test(item T) bool
}

type describedPredicate[T any] struct {
	description string
	test        func(T) bool
}

func (p *describedPredicate[T]) Description() string { return p.description }
func (p *describedPredicate[T]) Test(item T) bool    { return p.test(item) }

// NewPredicate 用描述和判断函数构造一个 DescribedPredicate
func NewPredicate[T any](description string, test func(T) bool) DescribedPredicate[T] {
	return &describedPredicate[T]{description: description, test: test}
}

// And 合取组合，描述用 "and" 连接
func And[T any](first DescribedPredicate[T], rest ...DescribedPredicate[T]) DescribedPredicate[T] {
	all := append([]DescribedPredicate[T]{first}, rest...)
	return NewPredicate(joinDescriptions(all, " and "), func(item T) bool {
		for _, p := range all {
			if !p.Test(item) {
				return false
			}
		}
		return true
	})
}

// Or 析取组合，描述用 "or" 连接
func Or[T any](first DescribedPredicate[T], rest ...DescribedPredicate[T]) DescribedPredicate[T] {
	all := append([]DescribedPredicate[T]{first}, rest...)
	return NewPredicate(joinDescriptions(all, " or "), func(item T) bool {
		for _, p := range all {
			if p.Test(item) {
				return true
			}
		}
		return false
	})
}

// Not 取反，描述加 "not" 前缀
func Not[T any](p DescribedPredicate[T]) DescribedPredicate[T] {
	return NewPredicate("not "+p.Description(), func(item T) bool {
		return !p.Test(item)
	})
}

func joinDescriptions[T any](predicates []DescribedPredicate[T], sep string) string {
	descs := make([]string, len(predicates))
	for i, p := range predicates {
		descs[i] = p.Description()
	}
	return strings.Join(descs, sep)
}
