package rule_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/CodMac/go-treesitter-arch-checker/model"
	"github.com/CodMac/go-treesitter-arch-checker/rule"
)

func TestRuleDescription(t *testing.T) {
	r := rule.Methods().
		That(rule.HaveName[*model.JavaMethod]("render")).
		Should(rule.BePublic[*model.JavaMethod]())

	want := "methods that have name 'render' should have modifier PUBLIC"
	if got := r.Description(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestDescriptionWithMultiplePredicatesAndConditions(t *testing.T) {
	r := rule.Methods().
		That(rule.ArePublic[*model.JavaMethod]()).
		That(rule.HaveName[*model.JavaMethod]("render")).
		Should(rule.BePublic[*model.JavaMethod]()).
		OrShould(rule.BeStatic[*model.JavaMethod]())

	want := "methods that are public and have name 'render' should have modifier PUBLIC or have modifier STATIC"
	if got := r.Description(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestCheckReturnsVerbatimReport(t *testing.T) {
	f := buildFixture()

	r := rule.Methods().
		That(rule.HaveName[*model.JavaMethod]("helper")).
		Should(rule.BePublic[*model.JavaMethod]())

	err := r.Check(f.classes)
	if err == nil {
		t.Fatal("expected violation")
	}

	want := "Rule 'methods that have name 'helper' should have modifier PUBLIC' was violated (1 times):\n" +
		"Method <com.example.Widget.helper()> does not have modifier PUBLIC in (Widget.java:15)"
	if err.Error() != want {
		t.Errorf("got %q\nwant %q", err.Error(), want)
	}

	var violation *rule.RuleViolationError
	if !errors.As(err, &violation) {
		t.Fatal("expected *RuleViolationError")
	}
	if len(violation.Details) != 1 {
		t.Errorf("expected 1 detail, got %d", len(violation.Details))
	}
	// 错误文本逐字包含报告的每一行
	for _, d := range violation.Details {
		if !strings.Contains(err.Error(), d) {
			t.Errorf("error text missing detail %q", d)
		}
	}
}

func TestCheckPassesWithoutViolations(t *testing.T) {
	f := buildFixture()

	r := rule.Methods().
		That(rule.HaveName[*model.JavaMethod]("render")).
		Should(rule.BePublic[*model.JavaMethod]())
	if err := r.Check(f.classes); err != nil {
		t.Errorf("unexpected violation: %v", err)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	f := buildFixture()

	r := rule.Methods().Should(rule.BePublic[*model.JavaMethod]())

	first := r.Evaluate(f.classes)
	second := r.Evaluate(f.classes)

	a := first.FailureReport().Details()
	b := second.FailureReport().Details()
	if len(a) != len(b) {
		t.Fatalf("detail counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("detail %d differs:\n%q\n%q", i, a[i], b[i])
		}
	}
}

func TestRulesAreReusableAcrossSnapshots(t *testing.T) {
	r := rule.Methods().
		That(rule.HaveName[*model.JavaMethod]("helper")).
		Should(rule.BePublic[*model.JavaMethod]())

	withViolation := buildFixture()
	if err := r.Check(withViolation.classes); err == nil {
		t.Error("expected violation on first snapshot")
	}

	empty := model.NewBuilder().Build()
	if err := r.Check(empty); err != nil {
		t.Errorf("empty snapshot should pass trivially: %v", err)
	}
}

func TestCheckedRuleViewKeepsDescription(t *testing.T) {
	f := buildFixture()

	var rules []rule.CheckedRule
	rules = append(rules,
		rule.Methods().Should(rule.BePublic[*model.JavaMethod]()),
		rule.Fields().Should(rule.BeFinal[*model.JavaField]()),
	)

	for _, r := range rules {
		result := r.Evaluate(f.classes)
		if result.RuleDescription() != r.Description() {
			t.Errorf("result description %q != rule description %q",
				result.RuleDescription(), r.Description())
		}
	}
}
