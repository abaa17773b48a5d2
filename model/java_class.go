package model

import "strings"

// ConstructorName 是构造函数在全限定名中的规范名称
const ConstructorName = "<init>"

// JavaClass 描述了一次分析运行中的一个类。类在同一次运行中按全限定名唯一。
type JavaClass struct {
	name           string
	pkg            string
	sourceFileName string
	modifiers      ModifierSet
	annotations    AnnotationSet

	fields       []*JavaField
	methods      []*JavaMethod
	constructors []*JavaConstructor
	members      []JavaMember // 按声明顺序

	run  *JavaClasses
	stub bool
}

// NewJavaClass 构造一个类。sourceFileName 是声明文件的简单名称 (e.g., "Widget.java")。
func NewJavaClass(name, sourceFileName string, modifiers ModifierSet, annotations AnnotationSet) *JavaClass {
	if modifiers == nil {
		modifiers = NewModifierSet()
	}
	if annotations == nil {
		annotations = NewAnnotationSet()
	}
	pkg := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		pkg = name[:i]
	}
	return &JavaClass{
		name:           name,
		pkg:            pkg,
		sourceFileName: sourceFileName,
		modifiers:      modifiers,
		annotations:    annotations,
	}
}

// Name 返回全限定名
func (c *JavaClass) Name() string { return c.name }

// SimpleName 返回简单名称
func (c *JavaClass) SimpleName() string {
	if i := strings.LastIndex(c.name, "."); i >= 0 {
		return c.name[i+1:]
	}
	return c.name
}

// PackageName 返回包名，默认包为空串
func (c *JavaClass) PackageName() string { return c.pkg }

// SourceFileName 返回声明文件的简单名称，未知时为空串
func (c *JavaClass) SourceFileName() string { return c.sourceFileName }

func (c *JavaClass) Modifiers() ModifierSet     { return c.modifiers }
func (c *JavaClass) Annotations() AnnotationSet { return c.annotations }

// IsStub 表示该类是运行之外的调用目标，除名称标识外不携带成员细节
func (c *JavaClass) IsStub() bool { return c.stub }

func (c *JavaClass) Fields() []*JavaField             { return c.fields }
func (c *JavaClass) Methods() []*JavaMethod           { return c.methods }
func (c *JavaClass) Constructors() []*JavaConstructor { return c.constructors }

// Members 按声明顺序返回全部成员
func (c *JavaClass) Members() []JavaMember { return c.members }

// CodeUnits 按声明顺序返回方法与构造函数
func (c *JavaClass) CodeUnits() []JavaCodeUnit {
	units := make([]JavaCodeUnit, 0, len(c.methods)+len(c.constructors))
	for _, m := range c.members {
		if u, ok := m.(JavaCodeUnit); ok {
			units = append(units, u)
		}
	}
	return units
}

// AddField 向类中追加一个字段声明
func (c *JavaClass) AddField(name string, rawType JavaType, line int, modifiers ModifierSet, annotations AnnotationSet) *JavaField {
	f := &JavaField{
		memberBase: newMemberBase(c, name, line, modifiers, annotations),
		rawType:    rawType,
	}
	c.fields = append(c.fields, f)
	c.members = append(c.members, f)
	return f
}

// AddMethod 向类中追加一个方法声明
func (c *JavaClass) AddMethod(name string, returnType JavaType, parameters, throws []JavaType, line int, modifiers ModifierSet, annotations AnnotationSet) *JavaMethod {
	m := &JavaMethod{codeUnitBase{
		memberBase: newMemberBase(c, name, line, modifiers, annotations),
		parameters: parameters,
		returnType: returnType,
		throws:     throws,
	}}
	c.methods = append(c.methods, m)
	c.members = append(c.members, m)
	return m
}

// AddConstructor 向类中追加一个构造函数声明，原始返回类型约定为所属类自身
func (c *JavaClass) AddConstructor(parameters, throws []JavaType, line int, modifiers ModifierSet, annotations AnnotationSet) *JavaConstructor {
	ctor := &JavaConstructor{codeUnitBase{
		memberBase: newMemberBase(c, ConstructorName, line, modifiers, annotations),
		parameters: parameters,
		returnType: NewJavaType(c.name),
		throws:     throws,
	}}
	c.constructors = append(c.constructors, ctor)
	c.members = append(c.members, ctor)
	return ctor
}

// --- 成员 (Members) ---

// JavaMember 是字段、方法、构造函数的公共只读视图
type JavaMember interface {
	// Name 返回成员的短名称，构造函数为 "<init>"
	Name() string
	// FullName 返回全限定名，代码单元附带参数类型列表
	FullName() string
	// Owner 返回声明该成员的类（反向引用，不表示所有权）
	Owner() *JavaClass
	Modifiers() ModifierSet
	Annotations() AnnotationSet
	// LineNumber 返回声明行号，未知时为 0
	LineNumber() int
	// KindLabel 返回结构种类标签: "Field" / "Method" / "Constructor"
	KindLabel() string
}

// JavaCodeUnit 是方法与构造函数的公共只读视图
type JavaCodeUnit interface {
	JavaMember
	// RawParameterTypes 返回按声明顺序排列的原始参数类型
	RawParameterTypes() []JavaType
	// RawReturnType 返回原始返回类型，构造函数为所属类
	RawReturnType() JavaType
	// Throws 返回声明抛出的异常类型
	Throws() []JavaType
	IsConstructor() bool
	// CallsOfSelf 返回以该代码单元为目标的 CALL 边（通过运行级索引解析）
	CallsOfSelf() []*JavaAccess
	// AccessesFromSelf 返回以该代码单元为起点的全部依赖边
	AccessesFromSelf() []*JavaAccess
}

type memberBase struct {
	owner       *JavaClass
	name        string
	line        int
	modifiers   ModifierSet
	annotations AnnotationSet
}

func newMemberBase(owner *JavaClass, name string, line int, modifiers ModifierSet, annotations AnnotationSet) memberBase {
	if modifiers == nil {
		modifiers = NewModifierSet()
	}
	if annotations == nil {
		annotations = NewAnnotationSet()
	}
	return memberBase{owner: owner, name: name, line: line, modifiers: modifiers, annotations: annotations}
}

func (m *memberBase) Name() string               { return m.name }
func (m *memberBase) Owner() *JavaClass          { return m.owner }
func (m *memberBase) Modifiers() ModifierSet     { return m.modifiers }
func (m *memberBase) Annotations() AnnotationSet { return m.annotations }
func (m *memberBase) LineNumber() int            { return m.line }

// JavaField 描述一个字段声明
type JavaField struct {
	memberBase
	rawType JavaType
}

// RawType 返回字段的原始声明类型
func (f *JavaField) RawType() JavaType { return f.rawType }

func (f *JavaField) FullName() string  { return f.owner.name + "." + f.name }
func (f *JavaField) KindLabel() string { return "Field" }

type codeUnitBase struct {
	memberBase
	parameters []JavaType
	returnType JavaType
	throws     []JavaType
}

func (u *codeUnitBase) RawParameterTypes() []JavaType { return u.parameters }
func (u *codeUnitBase) RawReturnType() JavaType       { return u.returnType }
func (u *codeUnitBase) Throws() []JavaType            { return u.throws }

func (u *codeUnitBase) FullName() string {
	return u.owner.name + "." + u.name + "(" + strings.Join(TypeNames(u.parameters), ", ") + ")"
}

func (u *codeUnitBase) CallsOfSelf() []*JavaAccess {
	if u.owner == nil || u.owner.run == nil {
		return nil
	}
	return u.owner.run.callsTo[u.FullName()]
}

func (u *codeUnitBase) AccessesFromSelf() []*JavaAccess {
	if u.owner == nil || u.owner.run == nil {
		return nil
	}
	return u.owner.run.accessesFrom[u.FullName()]
}

// JavaMethod 描述一个方法声明
type JavaMethod struct {
	codeUnitBase
}

func (m *JavaMethod) IsConstructor() bool { return false }
func (m *JavaMethod) KindLabel() string   { return "Method" }

// JavaConstructor 描述一个构造函数声明
type JavaConstructor struct {
	codeUnitBase
}

func (c *JavaConstructor) IsConstructor() bool { return true }
func (c *JavaConstructor) KindLabel() string   { return "Constructor" }
