package rulesconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CodMac/go-treesitter-arch-checker/model"
	"github.com/CodMac/go-treesitter-arch-checker/rulesconfig"
)

func writePack(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogueRules(t *testing.T) {
	path := writePack(t, `
rules:
  - id: no-standard-streams
  - id: no-generic-exceptions
  - id: no-java-util-logging
`)
	rules, err := rulesconfig.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(rules))
	}
}

func TestLoadOnlyBeCalledByTargets(t *testing.T) {
	path := writePack(t, `
rules:
  - id: only-be-called-by
    targets:
      - com.example.Widget
    allowed_callers:
      - com.example.GoodCaller
`)
	rules, err := rulesconfig.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}

	want := "methods that are declared in com.example.Widget should only be called by classes that belong to any of [com.example.GoodCaller]"
	if got := rules[0].Description(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}

	// 组装出的规则确实可求值
	b := model.NewBuilder()
	widget := model.NewJavaClass("com.example.Widget", "Widget.java", nil, nil)
	render := widget.AddMethod("render", model.NewJavaType("void"), nil, nil, 3, nil, nil)
	b.AddClass(widget)
	bad := model.NewJavaClass("com.example.Bad", "Bad.java", nil, nil)
	caller := bad.AddMethod("call", model.NewJavaType("void"), nil, nil, 3, nil, nil)
	b.AddClass(bad)
	b.AddAccess(caller, render, model.AccessCall, "Bad.java", 4)

	if err := rules[0].Check(b.Build()); err == nil {
		t.Error("expected violation from disallowed caller")
	}
}

func TestLoadOnlyBeCalledByAnnotation(t *testing.T) {
	path := writePack(t, `
rules:
  - id: only-be-called-by
    annotation: com.example.Secured
    allowed_callers:
      - com.example.Auth
`)
	rules, err := rulesconfig.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "methods that are annotated with @Secured should only be called by classes that belong to any of [com.example.Auth]"
	if got := rules[0].Description(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestLoadRejectsUnknownRule(t *testing.T) {
	path := writePack(t, `
rules:
  - id: frobnicate-everything
`)
	if _, err := rulesconfig.Load(path); err == nil {
		t.Error("expected error for unknown rule id")
	}
}

func TestLoadRejectsIncompleteCallRule(t *testing.T) {
	path := writePack(t, `
rules:
  - id: only-be-called-by
    targets: [com.example.Widget]
`)
	if _, err := rulesconfig.Load(path); err == nil {
		t.Error("expected error when allowed_callers missing")
	}
}

func TestDefaultCatalogue(t *testing.T) {
	rules := rulesconfig.Default()
	if len(rules) != 3 {
		t.Fatalf("expected 3 default rules, got %d", len(rules))
	}
	for _, r := range rules {
		if r.Description() == "" {
			t.Error("default rule without description")
		}
	}
}
