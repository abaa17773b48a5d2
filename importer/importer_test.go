package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/go-treesitter-arch-checker/importer"
	"github.com/CodMac/go-treesitter-arch-checker/library"
	"github.com/CodMac/go-treesitter-arch-checker/model"
)

func importTestdata(t *testing.T) *model.JavaClasses {
	t.Helper()
	classes, err := importer.New(2).ImportPath(context.Background(), "testdata")
	require.NoError(t, err)
	return classes
}

func TestImportCollectsClassesAndMembers(t *testing.T) {
	classes := importTestdata(t)

	require.True(t, classes.Contain("com.example.Widget"))
	require.True(t, classes.Contain("com.example.App"))

	widget, _ := classes.Get("com.example.Widget")
	assert.Equal(t, "Widget.java", widget.SourceFileName())
	assert.True(t, widget.Modifiers().Has(model.Public))

	require.Len(t, widget.Constructors(), 1)
	assert.Equal(t, "com.example.Widget.<init>(java.lang.String)", widget.Constructors()[0].FullName())

	require.Len(t, widget.Methods(), 2)
	render := widget.Methods()[0]
	assert.Equal(t, "com.example.Widget.render(java.lang.String)", render.FullName())
	assert.Equal(t, "void", render.RawReturnType().Name())
	require.Len(t, render.Throws(), 1)
	assert.Equal(t, "java.lang.IllegalStateException", render.Throws()[0].Name())
	assert.True(t, render.Annotations().Has("java.lang.Deprecated"))

	require.Len(t, widget.Fields(), 1)
	assert.Equal(t, "java.lang.String", widget.Fields()[0].RawType().Name())
}

func TestImportExtractsCallEdges(t *testing.T) {
	classes := importTestdata(t)

	widget, _ := classes.Get("com.example.Widget")
	render := widget.Methods()[0]

	calls := render.CallsOfSelf()
	require.Len(t, calls, 1)
	assert.Equal(t, "com.example.App.run()", calls[0].Origin().FullName())
	assert.Equal(t, "App.java", calls[0].FileName())
	assert.Greater(t, calls[0].LineNumber(), 0)

	ctorCalls := widget.Constructors()[0].CallsOfSelf()
	require.Len(t, ctorCalls, 1)
	assert.Equal(t, "com.example.App.run()", ctorCalls[0].Origin().FullName())

	// 同类内的无接收者调用
	app, _ := classes.Get("com.example.App")
	run := app.Methods()[0]
	runCalls := run.CallsOfSelf()
	require.Len(t, runCalls, 1)
	assert.Equal(t, "com.example.App.fail()", runCalls[0].Origin().FullName())
}

func TestImportExtractsFieldEdges(t *testing.T) {
	classes := importTestdata(t)

	var descriptions []string
	for _, a := range classes.Accesses() {
		descriptions = append(descriptions, a.Description())
	}
	joined := strings.Join(descriptions, "\n")

	// this.label 写入来自构造函数与 render，读取来自 label()
	assert.Contains(t, joined,
		"Constructor <com.example.Widget.<init>(java.lang.String)> sets field <com.example.Widget.label>")
	assert.Contains(t, joined,
		"Method <com.example.Widget.render(java.lang.String)> sets field <com.example.Widget.label>")
	assert.Contains(t, joined,
		"Method <com.example.Widget.label()> gets field <com.example.Widget.label>")
	// System.out 读取指向运行之外的占位类
	assert.Contains(t, joined,
		"Method <com.example.App.run()> gets field <java.lang.System.out>")
}

func TestImportResolvesExternalTargets(t *testing.T) {
	classes := importTestdata(t)

	system, ok := classes.Get("java.lang.System")
	require.True(t, ok)
	assert.True(t, system.IsStub())

	// 外部类不进入类枚举
	for _, cls := range classes.All() {
		assert.False(t, cls.IsStub(), "stub leaked into All(): %s", cls.Name())
	}

	// 精确 import 解析静态调用接收者
	found := false
	for _, a := range classes.Accesses() {
		if a.Kind() == model.AccessCall && a.Target().Owner().Name() == "java.util.logging.Logger" {
			found = true
			assert.Equal(t, "getLogger", a.Target().Name())
		}
	}
	assert.True(t, found, "expected call edge into java.util.logging.Logger")
}

func TestImportedModelTriggersCatalogueRules(t *testing.T) {
	classes := importTestdata(t)

	err := library.NotAccessStandardStreams().Check(classes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gets field <java.lang.System.out>")
	assert.Contains(t, err.Error(), "printStackTrace")

	err = library.NotThrowGenericExceptions().Check(classes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calls constructor <java.lang.RuntimeException.<init>(")

	err = library.NotUseJavaUtilLogging().Check(classes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "java.util.logging.Logger.getLogger(")
}

func TestImportIsDeterministic(t *testing.T) {
	first := importTestdata(t)
	second := importTestdata(t)

	a := first.Accesses()
	b := second.Accesses()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Description(), b[i].Description())
	}
}
