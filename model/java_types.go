package model

import "strings"

// --- Java 类型与修饰符 (Java Types & Modifiers) ---

// JavaType 表示一个按全限定名标识的 Java 类型，相等性完全由名称决定
type JavaType struct {
	name string
}

// NewJavaType 用全限定名构造 JavaType
func NewJavaType(name string) JavaType {
	return JavaType{name: name}
}

// Name 返回全限定名 (e.g., "java.lang.String")
func (t JavaType) Name() string { return t.name }

// SimpleName 返回去掉包前缀的简单名称 (e.g., "String")
func (t JavaType) SimpleName() string {
	if i := strings.LastIndex(t.name, "."); i >= 0 {
		return t.name[i+1:]
	}
	return t.name
}

func (t JavaType) String() string { return t.name }

// TypeNames 返回类型列表对应的全限定名列表
func TypeNames(types []JavaType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name()
	}
	return names
}

// Modifier 表示一个 Java 修饰符
type Modifier string

const (
	Public       Modifier = "public"
	Protected    Modifier = "protected"
	Private      Modifier = "private"
	Static       Modifier = "static"
	Final        Modifier = "final"
	Abstract     Modifier = "abstract"
	Synchronized Modifier = "synchronized"
	Native       Modifier = "native"
)

// ModifierSet 是修饰符集合
type ModifierSet map[Modifier]struct{}

// NewModifierSet 构造修饰符集合
func NewModifierSet(mods ...Modifier) ModifierSet {
	s := make(ModifierSet, len(mods))
	for _, m := range mods {
		s[m] = struct{}{}
	}
	return s
}

// Has 判断集合中是否包含给定修饰符
func (s ModifierSet) Has(m Modifier) bool {
	_, ok := s[m]
	return ok
}

// AnnotationSet 按注解类型的全限定名存储注解集合
type AnnotationSet map[string]struct{}

// NewAnnotationSet 构造注解集合
func NewAnnotationSet(names ...string) AnnotationSet {
	s := make(AnnotationSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has 判断是否带有给定全限定名的注解
func (s AnnotationSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}
