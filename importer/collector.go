package importer

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// fileContext 保存一个源文件在第一阶段收集到的全部信息：
// 包声明、import 表、以及原始（尚未解析类型名的）类声明。
type fileContext struct {
	filePath    string
	packageName string
	imports     map[string]string // 简单名 -> 全限定名
	wildcards   []string          // 通配符 import 前缀，含结尾的 '.'
	localTypes  map[string]string // 本文件声明的类型，简单名与嵌套名 -> 全限定名
	classes     []*rawClass
}

type rawMemberKind int

const (
	rawField rawMemberKind = iota
	rawMethod
	rawConstructor
)

// rawClass 是类型解析之前的类声明快照，类型均为源码原文
type rawClass struct {
	name        string // 顶级为简单名，嵌套为 "Outer.Inner"
	kindStr     string // Tree-sitter 声明节点种类
	line        int
	modifiers   []string
	annotations []string
	members     []*rawMember
}

func (rc *rawClass) hasConstructor() bool {
	for _, m := range rc.members {
		if m.kind == rawConstructor {
			return true
		}
	}
	return false
}

type rawMember struct {
	kind        rawMemberKind
	name        string
	rawType     string // 字段类型或方法返回类型
	params      []string
	throws      []string
	line        int
	modifiers   []string
	annotations []string
}

type collector struct{}

// collectFile 对单个文件执行第一阶段：处理顶级声明并递归收集类型定义
func (c *collector) collectFile(rootNode *sitter.Node, filePath string, sourceBytes []byte) *fileContext {
	fc := &fileContext{
		filePath:   filePath,
		imports:    make(map[string]string),
		localTypes: make(map[string]string),
	}

	for i := 0; i < int(rootNode.ChildCount()); i++ {
		child := rootNode.Child(uint(i))
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "package_declaration":
			for j := 0; j < int(child.ChildCount()); j++ {
				sub := child.Child(uint(j))
				if sub.Kind() == "scoped_identifier" || sub.Kind() == "identifier" {
					fc.packageName = nodeContent(sub, sourceBytes)
					break
				}
			}
		case "import_declaration":
			c.handleImport(child, fc, sourceBytes)
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			c.collectType(child, fc, sourceBytes, "")
		}
	}

	// 登记本文件声明的类型名，供解析阶段优先命中
	for _, rc := range fc.classes {
		fqn := qualify(fc.packageName, rc.name)
		fc.localTypes[rc.name] = fqn
		if i := strings.LastIndex(rc.name, "."); i >= 0 {
			fc.localTypes[rc.name[i+1:]] = fqn
		}
	}

	return fc
}

func (c *collector) handleImport(node *sitter.Node, fc *fileContext, sourceBytes []byte) {
	var pathParts []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		kind := child.Kind()
		if kind == "scoped_identifier" || kind == "identifier" || kind == "asterisk" {
			pathParts = append(pathParts, nodeContent(child, sourceBytes))
		}
	}
	if len(pathParts) == 0 {
		return
	}

	fullPath := strings.Join(pathParts, ".")
	if strings.HasSuffix(fullPath, ".*") {
		fc.wildcards = append(fc.wildcards, strings.TrimSuffix(fullPath, "*"))
		return
	}

	parts := strings.Split(fullPath, ".")
	fc.imports[parts[len(parts)-1]] = fullPath
}

// collectType 收集一个类型声明及其成员，并递归处理嵌套类型
func (c *collector) collectType(node *sitter.Node, fc *fileContext, sourceBytes []byte, namePrefix string) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeContent(nameNode, sourceBytes)
	if namePrefix != "" {
		name = namePrefix + "." + name
	}

	mods, annos := modifiersAndAnnotations(node, sourceBytes)
	rc := &rawClass{
		name:        name,
		kindStr:     node.Kind(),
		line:        lineOf(node),
		modifiers:   mods,
		annotations: annos,
	}
	fc.classes = append(fc.classes, rc)

	// Record 组件展开为隐式字段与访问器方法
	var componentTypes []string
	if node.Kind() == "record_declaration" {
		if pNode := node.ChildByFieldName("parameters"); pNode != nil {
			componentTypes = c.collectRecordComponents(pNode, rc, sourceBytes)
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		c.collectBody(body, fc, rc, sourceBytes, name)
	}

	// 未声明构造函数的类补全隐式构造函数，record 用规范构造函数
	if !rc.hasConstructor() {
		switch rc.kindStr {
		case "class_declaration":
			rc.members = append(rc.members, &rawMember{kind: rawConstructor, line: rc.line, modifiers: []string{"public"}})
		case "enum_declaration":
			rc.members = append(rc.members, &rawMember{kind: rawConstructor, line: rc.line, modifiers: []string{"private"}})
		case "record_declaration":
			rc.members = append(rc.members, &rawMember{kind: rawConstructor, line: rc.line, modifiers: []string{"public"}, params: componentTypes})
		}
	}
}

func (c *collector) collectBody(body *sitter.Node, fc *fileContext, rc *rawClass, sourceBytes []byte, typeName string) {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child == nil {
			continue
		}

		switch child.Kind() {
		case "field_declaration":
			c.collectField(child, rc, sourceBytes)
		case "method_declaration", "annotation_type_element_declaration":
			c.collectMethod(child, rc, sourceBytes)
		case "constructor_declaration", "compact_constructor_declaration":
			c.collectConstructor(child, rc, sourceBytes)
		case "enum_constant":
			mods, annos := modifiersAndAnnotations(child, sourceBytes)
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				rc.members = append(rc.members, &rawMember{
					kind:        rawField,
					name:        nodeContent(nameNode, sourceBytes),
					rawType:     typeName,
					line:        lineOf(child),
					modifiers:   append(mods, "public", "static", "final"),
					annotations: annos,
				})
			}
		case "enum_body_declarations":
			c.collectBody(child, fc, rc, sourceBytes, typeName)
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			c.collectType(child, fc, sourceBytes, typeName)
		}
	}
}

func (c *collector) collectField(node *sitter.Node, rc *rawClass, sourceBytes []byte) {
	tNode := node.ChildByFieldName("type")
	if tNode == nil {
		return
	}
	rawType := nodeContent(tNode, sourceBytes)
	mods, annos := modifiersAndAnnotations(node, sourceBytes)

	// 一条声明可以带多个 declarator
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child.Kind() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		rc.members = append(rc.members, &rawMember{
			kind:        rawField,
			name:        nodeContent(nameNode, sourceBytes),
			rawType:     rawType,
			line:        lineOf(child),
			modifiers:   mods,
			annotations: annos,
		})
	}
}

func (c *collector) collectMethod(node *sitter.Node, rc *rawClass, sourceBytes []byte) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	mods, annos := modifiersAndAnnotations(node, sourceBytes)
	m := &rawMember{
		kind:        rawMethod,
		name:        nodeContent(nameNode, sourceBytes),
		rawType:     "void",
		line:        lineOf(node),
		modifiers:   mods,
		annotations: annos,
	}
	if tNode := node.ChildByFieldName("type"); tNode != nil {
		m.rawType = nodeContent(tNode, sourceBytes)
	}
	m.params = parameterTypes(node.ChildByFieldName("parameters"), sourceBytes)
	m.throws = throwsTypes(node, sourceBytes)
	rc.members = append(rc.members, m)
}

func (c *collector) collectConstructor(node *sitter.Node, rc *rawClass, sourceBytes []byte) {
	mods, annos := modifiersAndAnnotations(node, sourceBytes)
	ctor := &rawMember{
		kind:        rawConstructor,
		line:        lineOf(node),
		modifiers:   mods,
		annotations: annos,
	}
	ctor.params = parameterTypes(node.ChildByFieldName("parameters"), sourceBytes)
	ctor.throws = throwsTypes(node, sourceBytes)
	rc.members = append(rc.members, ctor)
}

func (c *collector) collectRecordComponents(pNode *sitter.Node, rc *rawClass, sourceBytes []byte) []string {
	var componentTypes []string
	for i := 0; i < int(pNode.NamedChildCount()); i++ {
		child := pNode.NamedChild(uint(i))
		if child.Kind() != "formal_parameter" {
			continue
		}
		tNode := child.ChildByFieldName("type")
		nameNode := child.ChildByFieldName("name")
		if tNode == nil || nameNode == nil {
			continue
		}
		name := nodeContent(nameNode, sourceBytes)
		rawType := nodeContent(tNode, sourceBytes)
		line := lineOf(child)
		componentTypes = append(componentTypes, rawType)
		rc.members = append(rc.members,
			&rawMember{kind: rawField, name: name, rawType: rawType, line: line, modifiers: []string{"private", "final"}},
			&rawMember{kind: rawMethod, name: name, rawType: rawType, line: line, modifiers: []string{"public"}},
		)
	}
	return componentTypes
}

// --- AST 辅助函数 ---

func parameterTypes(pNode *sitter.Node, sourceBytes []byte) []string {
	if pNode == nil {
		return nil
	}
	var types []string
	for i := 0; i < int(pNode.NamedChildCount()); i++ {
		child := pNode.NamedChild(uint(i))
		kind := child.Kind()
		if kind != "formal_parameter" && kind != "spread_parameter" {
			continue
		}
		if tNode := child.ChildByFieldName("type"); tNode != nil {
			raw := nodeContent(tNode, sourceBytes)
			if kind == "spread_parameter" {
				raw += "[]"
			}
			types = append(types, raw)
		}
	}
	return types
}

func throwsTypes(node *sitter.Node, sourceBytes []byte) []string {
	var types []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == "throws" {
			collectTypeNames(child, &types, sourceBytes)
			break
		}
	}
	return types
}

func collectTypeNames(n *sitter.Node, results *[]string, sourceBytes []byte) {
	kind := n.Kind()
	if kind == "type_identifier" || kind == "scoped_type_identifier" || kind == "generic_type" {
		*results = append(*results, nodeContent(n, sourceBytes))
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectTypeNames(n.Child(uint(i)), results, sourceBytes)
	}
}

func modifiersAndAnnotations(n *sitter.Node, sourceBytes []byte) ([]string, []string) {
	var mods, annos []string
	var mNode *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(uint(i)).Kind() == "modifiers" {
			mNode = n.Child(uint(i))
			break
		}
	}
	if mNode == nil {
		return nil, nil
	}
	for i := 0; i < int(mNode.ChildCount()); i++ {
		child := mNode.Child(uint(i))
		if child.Kind() == "marker_annotation" || child.Kind() == "annotation" {
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				annos = append(annos, nodeContent(nameNode, sourceBytes))
			}
		} else if txt := nodeContent(child, sourceBytes); txt != "" {
			mods = append(mods, txt)
		}
	}
	return mods, annos
}

func nodeContent(n *sitter.Node, sourceBytes []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(sourceBytes)
}

func lineOf(n *sitter.Node) int {
	return int(n.StartPosition().Row) + 1
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
