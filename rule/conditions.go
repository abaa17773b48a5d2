package rule

import (
	"fmt"
	"strings"

	"github.com/CodMac/go-treesitter-arch-checker/model"
)

// --- 内置条件 (Built-in Conditions) ---
//
// 违规消息引用元素全限定名和声明位置，位置未知时行号为 0。

func memberLocation(m model.JavaMember) string {
	return fmt.Sprintf("(%s:%d)", m.Owner().SourceFileName(), m.LineNumber())
}

// BeAnnotatedWith 检查成员是否带有给定全限定名的注解
func BeAnnotatedWith[T model.JavaMember](annotationName string) ArchCondition[T] {
	short := "@" + simpleName(annotationName)
	return NewCondition[T]("be annotated with "+short, func(m T, events *ConditionEvents) {
		if m.Annotations().Has(annotationName) {
			events.Add(SatisfiedEvent(fmt.Sprintf("%s <%s> is annotated with %s in %s",
				m.KindLabel(), m.FullName(), short, memberLocation(m))))
			return
		}
		events.Add(ViolatedEvent(fmt.Sprintf("%s <%s> is not annotated with %s in %s",
			m.KindLabel(), m.FullName(), short, memberLocation(m))))
	})
}

// HaveModifierCondition 检查成员是否带有给定修饰符
func HaveModifierCondition[T model.JavaMember](mod model.Modifier) ArchCondition[T] {
	label := strings.ToUpper(string(mod))
	return NewCondition[T]("have modifier "+label, func(m T, events *ConditionEvents) {
		if m.Modifiers().Has(mod) {
			events.Add(SatisfiedEvent(fmt.Sprintf("%s <%s> has modifier %s in %s",
				m.KindLabel(), m.FullName(), label, memberLocation(m))))
			return
		}
		events.Add(ViolatedEvent(fmt.Sprintf("%s <%s> does not have modifier %s in %s",
			m.KindLabel(), m.FullName(), label, memberLocation(m))))
	})
}

// BePublic 检查成员是否为 public
func BePublic[T model.JavaMember]() ArchCondition[T] {
	return HaveModifierCondition[T](model.Public)
}

// BeProtected 检查成员是否为 protected
func BeProtected[T model.JavaMember]() ArchCondition[T] {
	return HaveModifierCondition[T](model.Protected)
}

// BePrivate 检查成员是否为 private
func BePrivate[T model.JavaMember]() ArchCondition[T] {
	return HaveModifierCondition[T](model.Private)
}

// BeStatic 检查成员是否为 static
func BeStatic[T model.JavaMember]() ArchCondition[T] {
	return HaveModifierCondition[T](model.Static)
}

// BeFinal 检查成员是否为 final
func BeFinal[T model.JavaMember]() ArchCondition[T] {
	return HaveModifierCondition[T](model.Final)
}

// Satisfy 把动词短语谓词适配为条件：描述沿用谓词描述，违规消息为
// "<Kind> <full> does not <desc> in (<file>:<line>)"。
func Satisfy[T model.JavaMember](pred DescribedPredicate[T]) ArchCondition[T] {
	return NewCondition[T](pred.Description(), func(m T, events *ConditionEvents) {
		if pred.Test(m) {
			events.Add(SatisfiedEvent(fmt.Sprintf("%s <%s> does %s in %s",
				m.KindLabel(), m.FullName(), pred.Description(), memberLocation(m))))
			return
		}
		events.Add(ViolatedEvent(fmt.Sprintf("%s <%s> does not %s in %s",
			m.KindLabel(), m.FullName(), pred.Description(), memberLocation(m))))
	})
}
