package model_test

import (
	"testing"

	"github.com/CodMac/go-treesitter-arch-checker/model"
)

func buildRun(t *testing.T) *model.JavaClasses {
	t.Helper()
	b := model.NewBuilder()

	widget := model.NewJavaClass("com.example.Widget", "Widget.java",
		model.NewModifierSet(model.Public), nil)
	ctor := widget.AddConstructor(
		[]model.JavaType{model.NewJavaType("java.lang.String")}, nil, 5,
		model.NewModifierSet(model.Public), nil)
	render := widget.AddMethod("render", model.NewJavaType("void"),
		[]model.JavaType{model.NewJavaType("java.lang.String")}, nil, 9,
		model.NewModifierSet(model.Public), nil)
	label := widget.AddField("label", model.NewJavaType("java.lang.String"), 3,
		model.NewModifierSet(model.Private), nil)
	b.AddClass(widget)

	app := model.NewJavaClass("com.example.App", "App.java",
		model.NewModifierSet(model.Public), nil)
	run := app.AddMethod("run", model.NewJavaType("void"), nil, nil, 4,
		model.NewModifierSet(model.Public), nil)
	b.AddClass(app)

	b.AddAccess(run, ctor, model.AccessCall, "App.java", 5)
	b.AddAccess(run, render, model.AccessCall, "App.java", 6)
	b.AddAccess(render, label, model.AccessFieldWrite, "Widget.java", 10)

	return b.Build()
}

func TestFullNames(t *testing.T) {
	classes := buildRun(t)
	widget, ok := classes.Get("com.example.Widget")
	if !ok {
		t.Fatal("Widget not found")
	}

	if got := widget.Constructors()[0].FullName(); got != "com.example.Widget.<init>(java.lang.String)" {
		t.Errorf("constructor FullName = %q", got)
	}
	if got := widget.Methods()[0].FullName(); got != "com.example.Widget.render(java.lang.String)" {
		t.Errorf("method FullName = %q", got)
	}
	if got := widget.Fields()[0].FullName(); got != "com.example.Widget.label" {
		t.Errorf("field FullName = %q", got)
	}
	if got := widget.SimpleName(); got != "Widget" {
		t.Errorf("SimpleName = %q", got)
	}
	if got := widget.PackageName(); got != "com.example" {
		t.Errorf("PackageName = %q", got)
	}
}

func TestAccessIndexes(t *testing.T) {
	classes := buildRun(t)
	widget, _ := classes.Get("com.example.Widget")
	app, _ := classes.Get("com.example.App")

	render := widget.Methods()[0]
	calls := render.CallsOfSelf()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call to render, got %d", len(calls))
	}
	if calls[0].Origin().FullName() != "com.example.App.run()" {
		t.Errorf("unexpected call origin %q", calls[0].Origin().FullName())
	}

	run := app.Methods()[0]
	out := run.AccessesFromSelf()
	if len(out) != 2 {
		t.Fatalf("expected 2 accesses from run, got %d", len(out))
	}
	// 登记顺序保持不变
	if out[0].Target().Name() != model.ConstructorName || out[1].Target().Name() != "render" {
		t.Errorf("unexpected access order: %q, %q", out[0].Target().Name(), out[1].Target().Name())
	}

	// 写边不进入 CALL 入边索引
	label := widget.Fields()[0]
	if got := classes.CallsTo(label); len(got) != 0 {
		t.Errorf("field write indexed as call: %v", got)
	}
}

func TestAccessDescriptions(t *testing.T) {
	classes := buildRun(t)
	accesses := classes.Accesses()

	want := []string{
		"Method <com.example.App.run()> calls constructor <com.example.Widget.<init>(java.lang.String)> in (App.java:5)",
		"Method <com.example.App.run()> calls method <com.example.Widget.render(java.lang.String)> in (App.java:6)",
		"Method <com.example.Widget.render(java.lang.String)> sets field <com.example.Widget.label> in (Widget.java:10)",
	}
	if len(accesses) != len(want) {
		t.Fatalf("expected %d accesses, got %d", len(want), len(accesses))
	}
	for i, w := range want {
		if got := accesses[i].Description(); got != w {
			t.Errorf("access %d:\n got %q\nwant %q", i, got, w)
		}
	}
}

func TestStubClasses(t *testing.T) {
	b := model.NewBuilder()

	app := model.NewJavaClass("com.example.App", "App.java", nil, nil)
	run := app.AddMethod("run", model.NewJavaType("void"), nil, nil, 4, nil, nil)
	b.AddClass(app)

	system := b.ExternalClass("java.lang.System")
	out := system.AddField("out", model.NewJavaType("java.io.PrintStream"), 0, nil, nil)
	b.AddAccess(run, out, model.AccessFieldRead, "App.java", 5)

	classes := b.Build()

	if !system.IsStub() {
		t.Error("external class should be a stub")
	}
	// stub 不参与类枚举，但可按名查到
	if len(classes.All()) != 1 {
		t.Errorf("expected 1 analyzed class, got %d", len(classes.All()))
	}
	if _, ok := classes.Get("java.lang.System"); !ok {
		t.Error("stub should be resolvable by name")
	}
	if classes.Contain("java.lang.System") {
		t.Error("stub must not count as analyzed")
	}
	// stub 的成员也不参与成员枚举
	if len(classes.Fields()) != 0 {
		t.Errorf("stub fields leaked into selection: %d", len(classes.Fields()))
	}

	want := "Method <com.example.App.run()> gets field <java.lang.System.out> in (App.java:5)"
	if got := classes.Accesses()[0].Description(); got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestBuilderDeduplicatesClasses(t *testing.T) {
	b := model.NewBuilder()
	first := model.NewJavaClass("com.example.Dup", "Dup.java", nil, nil)
	second := model.NewJavaClass("com.example.Dup", "Other.java", nil, nil)
	b.AddClass(first).AddClass(second)

	classes := b.Build()
	if len(classes.All()) != 1 {
		t.Fatalf("expected 1 class, got %d", len(classes.All()))
	}
	got, _ := classes.Get("com.example.Dup")
	if got.SourceFileName() != "Dup.java" {
		t.Errorf("first registration should win, got %q", got.SourceFileName())
	}
}

func TestStubReplacedByRealDefinition(t *testing.T) {
	b := model.NewBuilder()
	b.ExternalClass("com.example.Late")
	real := model.NewJavaClass("com.example.Late", "Late.java", nil, nil)
	b.AddClass(real)

	classes := b.Build()
	got, ok := classes.Get("com.example.Late")
	if !ok || got.IsStub() {
		t.Error("real definition should replace earlier stub")
	}
	if !classes.Contain("com.example.Late") {
		t.Error("real definition should count as analyzed")
	}
}
