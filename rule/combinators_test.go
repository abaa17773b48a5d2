package rule_test

import (
	"testing"

	"github.com/CodMac/go-treesitter-arch-checker/model"
	"github.com/CodMac/go-treesitter-arch-checker/rule"
)

// fixedCondition 返回一个对每个元素固定发出一条事件的条件，并记录执行次数
func fixedCondition(desc, message string, violated bool, runs *int) rule.ArchCondition[*model.JavaMethod] {
	return rule.NewCondition[*model.JavaMethod](desc, func(m *model.JavaMethod, events *rule.ConditionEvents) {
		*runs++
		if violated {
			events.Add(rule.ViolatedEvent(message))
		} else {
			events.Add(rule.SatisfiedEvent(message))
		}
	})
}

// onlyRender 把候选收窄到单个元素，方便事件断言
func onlyRender() *rule.Given[*model.JavaMethod] {
	return rule.Methods().That(rule.HaveName[*model.JavaMethod]("render"))
}

func violatingMessages(result *rule.EvaluationResult) []string {
	return result.FailureReport().Details()
}

func TestAndViolatedWhenOnePartFails(t *testing.T) {
	f := buildFixture()
	var runsA, runsB int

	r := onlyRender().
		Should(fixedCondition("condA", "A failed", true, &runsA)).
		AndShould(fixedCondition("condB", "B ok", false, &runsB))

	result := r.Evaluate(f.classes)
	got := violatingMessages(result)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged event, got %d", len(got))
	}
	// 只有报告违规的叶子进入合并消息
	if got[0] != "A failed" {
		t.Errorf("merged message = %q", got[0])
	}
	if runsA != 1 || runsB != 1 {
		t.Errorf("every leaf runs exactly once: A=%d B=%d", runsA, runsB)
	}
}

func TestAndMergesMessagesInSyntaxOrder(t *testing.T) {
	f := buildFixture()
	var runs int

	r := onlyRender().
		Should(fixedCondition("condA", "A failed", true, &runs)).
		AndShould(fixedCondition("condB", "B failed", true, &runs)).
		AndShould(fixedCondition("condC", "C failed", true, &runs))

	result := r.Evaluate(f.classes)
	got := violatingMessages(result)
	if len(got) != 1 {
		t.Fatalf("expected single merged event per element, got %d", len(got))
	}
	if got[0] != "A failed and B failed and C failed" {
		t.Errorf("merged message = %q", got[0])
	}
	// 链式 AndShould 左结合展平，描述不嵌套
	wantDesc := "methods that have name 'render' should condA and condB and condC"
	if r.Description() != wantDesc {
		t.Errorf("description = %q", r.Description())
	}
}

func TestOrSatisfiedWhenAnyPartPasses(t *testing.T) {
	f := buildFixture()
	var runsA, runsB int

	r := onlyRender().
		Should(fixedCondition("condA", "A failed", true, &runsA)).
		OrShould(fixedCondition("condB", "B ok", false, &runsB))

	result := r.Evaluate(f.classes)
	if result.HasViolation() {
		t.Errorf("OR with one satisfied part must pass: %v", violatingMessages(result))
	}
	// 不短路：满足的分支不会阻止其它分支执行
	if runsA != 1 || runsB != 1 {
		t.Errorf("every leaf runs exactly once: A=%d B=%d", runsA, runsB)
	}
}

func TestOrViolatedOnlyWhenAllPartsFail(t *testing.T) {
	f := buildFixture()
	var runs int

	r := onlyRender().
		Should(fixedCondition("condA", "A failed", true, &runs)).
		OrShould(fixedCondition("condB", "B failed", true, &runs))

	result := r.Evaluate(f.classes)
	got := violatingMessages(result)
	if len(got) != 1 {
		t.Fatalf("expected 1 merged event, got %d", len(got))
	}
	if got[0] != "A failed and B failed" {
		t.Errorf("merged message = %q", got[0])
	}
}

func TestCombinatorEmitsOneEventPerElement(t *testing.T) {
	f := buildFixture()
	var runs int

	// 两个方法候选，每个元素一条合并事件
	r := rule.Methods().
		That(rule.AreDeclaredIn[*model.JavaMethod]("com.example.Widget")).
		Should(fixedCondition("condA", "A failed", true, &runs)).
		AndShould(fixedCondition("condB", "B failed", true, &runs))

	result := r.Evaluate(f.classes)
	if got := len(violatingMessages(result)); got != 2 {
		t.Errorf("expected one merged event per element, got %d", got)
	}
	if runs != 4 {
		t.Errorf("expected 2 leaves x 2 elements = 4 runs, got %d", runs)
	}
}
