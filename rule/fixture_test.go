package rule_test

import (
	"github.com/CodMac/go-treesitter-arch-checker/model"
)

// fixture 构造贯穿规则测试的小型代码模型：
// Widget.render 被 GoodCaller 的方法、BadCaller 的构造函数和方法各调用一次。
type fixture struct {
	classes *model.JavaClasses

	render    *model.JavaMethod
	helper    *model.JavaMethod
	callGood  *model.JavaMethod
	misbehave *model.JavaMethod
	badCtor   *model.JavaConstructor
}

func buildFixture() *fixture {
	f := &fixture{}
	b := model.NewBuilder()

	widget := model.NewJavaClass("com.example.Widget", "Widget.java",
		model.NewModifierSet(model.Public), nil)
	f.render = widget.AddMethod("render", model.NewJavaType("void"),
		[]model.JavaType{model.NewJavaType("java.lang.String")},
		[]model.JavaType{model.NewJavaType("java.io.IOException")}, 10,
		model.NewModifierSet(model.Public), nil)
	f.helper = widget.AddMethod("helper", model.NewJavaType("java.lang.String"),
		nil, nil, 15,
		model.NewModifierSet(model.Private, model.Static),
		model.NewAnnotationSet("com.example.Secured"))
	b.AddClass(widget)

	good := model.NewJavaClass("com.example.GoodCaller", "GoodCaller.java",
		model.NewModifierSet(model.Public), nil)
	f.callGood = good.AddMethod("callGood", model.NewJavaType("void"), nil, nil, 5,
		model.NewModifierSet(model.Public), nil)
	b.AddClass(good)

	bad := model.NewJavaClass("com.example.BadCaller", "BadCaller.java",
		model.NewModifierSet(model.Public), nil)
	f.badCtor = bad.AddConstructor(
		[]model.JavaType{model.NewJavaType("java.lang.String")}, nil, 4,
		model.NewModifierSet(model.Public), nil)
	f.misbehave = bad.AddMethod("misbehave", model.NewJavaType("void"), nil, nil, 8,
		model.NewModifierSet(model.Public), nil)
	b.AddClass(bad)

	b.AddAccess(f.callGood, f.render, model.AccessCall, "GoodCaller.java", 6)
	b.AddAccess(f.badCtor, f.render, model.AccessCall, "BadCaller.java", 5)
	b.AddAccess(f.misbehave, f.render, model.AccessCall, "BadCaller.java", 9)

	f.classes = b.Build()
	return f
}
