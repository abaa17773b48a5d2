package importer

import (
	"strings"
	"sync"

	"github.com/CodMac/go-treesitter-arch-checker/model"
)

// primitiveTypes 不参与名称解析，原样保留
var primitiveTypes = map[string]struct{}{
	"void": {}, "boolean": {}, "byte": {}, "short": {}, "int": {},
	"long": {}, "char": {}, "float": {}, "double": {},
}

// javaLangTypes 是无需 import 即可引用的 java.lang 常用简单名
var javaLangTypes = map[string]struct{}{
	"Object": {}, "String": {}, "StringBuilder": {}, "StringBuffer": {},
	"CharSequence": {}, "Comparable": {}, "Iterable": {}, "Runnable": {},
	"Thread": {}, "System": {}, "Math": {}, "Class": {}, "Void": {},
	"Integer": {}, "Long": {}, "Short": {}, "Byte": {}, "Double": {},
	"Float": {}, "Boolean": {}, "Character": {}, "Number": {},
	"Throwable": {}, "Exception": {}, "RuntimeException": {}, "Error": {},
	"IllegalArgumentException": {}, "IllegalStateException": {},
	"UnsupportedOperationException": {}, "NullPointerException": {},
	"IndexOutOfBoundsException": {}, "ArithmeticException": {},
	"ClassCastException": {}, "NumberFormatException": {},
	"InterruptedException": {}, "ClassNotFoundException": {},
	"AssertionError": {}, "StackOverflowError": {}, "OutOfMemoryError": {},
	"Cloneable": {}, "AutoCloseable": {},
	"Deprecated": {}, "Override": {}, "SuppressWarnings": {},
	"FunctionalInterface": {}, "SafeVarargs": {},
}

// resolutionTable 聚合一次运行的全局符号信息：所有已收集类的全限定名，
// 以及固化后按全限定名查找类实例的能力。
type resolutionTable struct {
	declared map[string]struct{}
	builder  *model.Builder

	// mu 串行化提取阶段对外部占位类的惰性创建
	mu sync.Mutex
}

func newResolutionTable(builder *model.Builder) *resolutionTable {
	return &resolutionTable{
		declared: make(map[string]struct{}),
		builder:  builder,
	}
}

func (t *resolutionTable) declare(fqn string) {
	t.declared[fqn] = struct{}{}
}

func (t *resolutionTable) isDeclared(fqn string) bool {
	_, ok := t.declared[fqn]
	return ok
}

func (t *resolutionTable) class(fqn string) (*model.JavaClass, bool) {
	return t.builder.Class(fqn)
}

// normalizeRawType 抹去泛型实参并统一可变参数写法，保留数组后缀
func normalizeRawType(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "...", "[]")
	if i := strings.Index(s, "<"); i >= 0 {
		suffix := ""
		if strings.HasSuffix(s, "[]") {
			suffix = s[strings.LastIndex(s, "["):]
		}
		s = s[:i] + suffix
	}
	return s
}

// resolveTypeName 把源码中的类型名解析为全限定名。解析顺序：
//  1. 原始类型原样保留
//  2. 本文件内声明的类
//  3. 精确 import
//  4. 同包内已收集的类
//  5. 通配符 import 加已收集类
//  6. java.lang 常用类
//  7. 通配符 import 前缀兜底
//  8. 当前包名兜底
func (t *resolutionTable) resolveTypeName(fc *fileContext, raw string) string {
	name := normalizeRawType(raw)
	if name == "" {
		return ""
	}

	suffix := ""
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
		suffix += "[]"
	}

	if _, ok := primitiveTypes[name]; ok {
		return name + suffix
	}

	// 已经是限定名
	if strings.Contains(name, ".") {
		if fqn, ok := fc.localTypes[name]; ok {
			return fqn + suffix
		}
		return name + suffix
	}

	if fqn, ok := fc.localTypes[name]; ok {
		return fqn + suffix
	}

	if fqn, ok := fc.imports[name]; ok {
		return fqn + suffix
	}

	if fc.packageName != "" {
		if fqn := fc.packageName + "." + name; t.isDeclared(fqn) {
			return fqn + suffix
		}
	}

	for _, prefix := range fc.wildcards {
		if fqn := prefix + name; t.isDeclared(fqn) {
			return fqn + suffix
		}
	}

	if _, ok := javaLangTypes[name]; ok {
		return "java.lang." + name + suffix
	}

	if len(fc.wildcards) > 0 {
		return fc.wildcards[0] + name + suffix
	}

	if fc.packageName != "" {
		return fc.packageName + "." + name + suffix
	}
	return name + suffix
}

// resolveAnnotationName 把注解短名解析为全限定名
func (t *resolutionTable) resolveAnnotationName(fc *fileContext, raw string) string {
	return t.resolveTypeName(fc, strings.TrimPrefix(raw, "@"))
}
