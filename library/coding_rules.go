// Package library 提供一组开箱即用的通用编码规约规则，
// 全部基于 rule 包的构造器与依赖边检查实现。
package library

import (
	"strings"

	"github.com/CodMac/go-treesitter-arch-checker/model"
	"github.com/CodMac/go-treesitter-arch-checker/rule"
)

// notAccessMatching 构造一个对代码单元出边逐边检查的条件：
// 命中给定匹配器的边即违规，消息为该边的规范描述。
func notAccessMatching(description string, match func(*model.JavaAccess) bool) rule.ArchCondition[model.JavaCodeUnit] {
	return rule.NewCondition[model.JavaCodeUnit](description, func(u model.JavaCodeUnit, events *rule.ConditionEvents) {
		for _, access := range u.AccessesFromSelf() {
			if match(access) {
				events.Add(rule.ViolatedEvent(access.Description()))
			}
		}
	})
}

// NotAccessStandardStreams 禁止使用 System.out / System.err 以及
// printStackTrace 输出
func NotAccessStandardStreams() rule.CheckedRule {
	return rule.CodeUnits().Should(notAccessMatching("not access standard streams",
		func(a *model.JavaAccess) bool {
			target := a.Target().FullName()
			if a.Kind() == model.AccessFieldRead &&
				(target == "java.lang.System.out" || target == "java.lang.System.err") {
				return true
			}
			return a.Kind() == model.AccessCall && a.Target().Name() == "printStackTrace"
		}))
}

// NotThrowGenericExceptions 禁止构造过于宽泛的异常类型
func NotThrowGenericExceptions() rule.CheckedRule {
	generic := map[string]struct{}{
		"java.lang.Throwable":        {},
		"java.lang.Exception":        {},
		"java.lang.RuntimeException": {},
		"java.lang.Error":            {},
	}
	return rule.CodeUnits().Should(notAccessMatching("not throw generic exceptions",
		func(a *model.JavaAccess) bool {
			if a.Kind() != model.AccessCall || a.Target().Name() != model.ConstructorName {
				return false
			}
			_, ok := generic[a.Target().Owner().Name()]
			return ok
		}))
}

// NotUseJavaUtilLogging 禁止依赖 java.util.logging
func NotUseJavaUtilLogging() rule.CheckedRule {
	return rule.CodeUnits().Should(notAccessMatching("not use java.util.logging",
		func(a *model.JavaAccess) bool {
			pkg := a.Target().Owner().PackageName()
			return pkg == "java.util.logging" || strings.HasPrefix(pkg, "java.util.logging.")
		}))
}
