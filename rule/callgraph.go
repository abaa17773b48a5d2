package rule

import "github.com/CodMac/go-treesitter-arch-checker/model"

// --- 调用图限制条件 (Call Graph Conditions) ---
//
// 这些条件检查以被检元素为目标的 CALL 入边。裁决逐边进行：起点结构
// 种类与条件要求不符的边无条件违规，种类相符的边再交给调用方谓词。
// 每条违规边发出一条事件，消息即该依赖边的规范描述。没有入边时
// 条件平凡满足。

func onlyBeCalledBy[T model.JavaCodeUnit](description string, allows func(origin model.JavaCodeUnit) bool) ArchCondition[T] {
	return NewCondition[T](description, func(u T, events *ConditionEvents) {
		for _, access := range u.CallsOfSelf() {
			if allows(access.Origin()) {
				events.Add(SatisfiedEvent(access.Description()))
			} else {
				events.Add(ViolatedEvent(access.Description()))
			}
		}
	})
}

// OnlyBeCalledByClassesThat 要求每条调用入边的起点所属类满足给定谓词
func OnlyBeCalledByClassesThat[T model.JavaCodeUnit](pred DescribedPredicate[*model.JavaClass]) ArchCondition[T] {
	return onlyBeCalledBy[T]("only be called by classes that "+pred.Description(),
		func(origin model.JavaCodeUnit) bool {
			return pred.Test(origin.Owner())
		})
}

// OnlyBeCalledByMethodsThat 要求每条调用入边的起点是满足给定谓词的方法。
// 起点为构造函数的边无论谓词结果如何都违规。
func OnlyBeCalledByMethodsThat[T model.JavaCodeUnit](pred DescribedPredicate[model.JavaCodeUnit]) ArchCondition[T] {
	return onlyBeCalledBy[T]("only be called by methods that "+pred.Description(),
		func(origin model.JavaCodeUnit) bool {
			return !origin.IsConstructor() && pred.Test(origin)
		})
}

// OnlyBeCalledByConstructorsThat 要求每条调用入边的起点是满足给定谓词的
// 构造函数。起点为方法的边无论谓词结果如何都违规。
func OnlyBeCalledByConstructorsThat[T model.JavaCodeUnit](pred DescribedPredicate[model.JavaCodeUnit]) ArchCondition[T] {
	return onlyBeCalledBy[T]("only be called by constructors that "+pred.Description(),
		func(origin model.JavaCodeUnit) bool {
			return origin.IsConstructor() && pred.Test(origin)
		})
}

// OnlyBeCalledByCodeUnitsThat 要求每条调用入边的起点满足给定谓词，
// 不限制起点的结构种类
func OnlyBeCalledByCodeUnitsThat[T model.JavaCodeUnit](pred DescribedPredicate[model.JavaCodeUnit]) ArchCondition[T] {
	return onlyBeCalledBy[T]("only be called by code units that "+pred.Description(),
		func(origin model.JavaCodeUnit) bool {
			return pred.Test(origin)
		})
}
