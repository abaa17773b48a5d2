// Package rulesconfig 从 YAML 规则包加载架构规约规则。
// 规则包把内置规则目录和调用图限制声明为数据，CLI 据此组装可求值的规则列表。
package rulesconfig

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/CodMac/go-treesitter-arch-checker/library"
	"github.com/CodMac/go-treesitter-arch-checker/model"
	"github.com/CodMac/go-treesitter-arch-checker/rule"
)

type rulesPack struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	ID string `yaml:"id"`

	// only-be-called-by 专用字段
	Targets        []string `yaml:"targets"`         // 被保护方法所在类的全限定名
	AllowedCallers []string `yaml:"allowed_callers"` // 允许的调用方类全限定名
	Annotation     string   `yaml:"annotation"`      // 非空时改按注解选择被保护方法
}

// Load 读取 YAML 规则包并组装规则列表
func Load(path string) ([]rule.CheckedRule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules pack: %w", err)
	}
	var pack rulesPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	var checked []rule.CheckedRule
	for _, spec := range pack.Rules {
		r, err := build(spec)
		if err != nil {
			return nil, fmt.Errorf("build rule %q: %w", spec.ID, err)
		}
		checked = append(checked, r)
	}
	return checked, nil
}

// Default 返回未提供规则包时使用的内置规则目录
func Default() []rule.CheckedRule {
	return []rule.CheckedRule{
		library.NotAccessStandardStreams(),
		library.NotThrowGenericExceptions(),
		library.NotUseJavaUtilLogging(),
	}
}

func build(spec ruleSpec) (rule.CheckedRule, error) {
	switch strings.ToLower(spec.ID) {
	case "no-standard-streams":
		return library.NotAccessStandardStreams(), nil
	case "no-generic-exceptions":
		return library.NotThrowGenericExceptions(), nil
	case "no-java-util-logging":
		return library.NotUseJavaUtilLogging(), nil
	case "only-be-called-by":
		return buildOnlyBeCalledBy(spec)
	case "":
		return nil, fmt.Errorf("missing required field id")
	default:
		return nil, fmt.Errorf("unknown rule id %q", spec.ID)
	}
}

func buildOnlyBeCalledBy(spec ruleSpec) (rule.CheckedRule, error) {
	if len(spec.AllowedCallers) == 0 {
		return nil, fmt.Errorf("only-be-called-by requires allowed_callers")
	}

	callers := rule.BelongToAnyOf(spec.AllowedCallers...)
	if spec.Annotation != "" {
		return rule.Methods().
			That(rule.AreAnnotatedWith[*model.JavaMethod](spec.Annotation)).
			Should(rule.OnlyBeCalledByClassesThat[*model.JavaMethod](callers)), nil
	}
	if len(spec.Targets) == 0 {
		return nil, fmt.Errorf("only-be-called-by requires targets or annotation")
	}

	declared := make([]rule.DescribedPredicate[*model.JavaMethod], 0, len(spec.Targets))
	for _, t := range spec.Targets {
		declared = append(declared, rule.AreDeclaredIn[*model.JavaMethod](t))
	}
	pred := declared[0]
	if len(declared) > 1 {
		pred = rule.Or(declared[0], declared[1:]...)
	}
	return rule.Methods().
		That(pred).
		Should(rule.OnlyBeCalledByClassesThat[*model.JavaMethod](callers)), nil
}
