package importer

import (
	"strings"
	"unicode"

	"github.com/CodMac/go-treesitter-arch-checker/model"
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// accessRecord 是第二阶段产出的一条待登记依赖边。边先按文件聚合，
// 所有 worker 结束后再按文件顺序统一写入 Builder，保证结果确定。
type accessRecord struct {
	origin model.JavaCodeUnit
	target model.JavaMember
	kind   model.AccessKind
	line   int
}

// extractor 对单个文件执行第二阶段：沿 AST 下行，跟踪当前所在的类与
// 代码单元，把方法调用、对象创建、字段读写登记为依赖边。接收者类型
// 通过局部变量表、字段表与静态类型名做轻量推断，推断不出的表达式
// 直接跳过，不产生边。
type extractor struct {
	table *resolutionTable
	fc    *fileContext
	src   []byte
}

type extractScope struct {
	class  *model.JavaClass
	unit   model.JavaCodeUnit
	locals map[string]string // 变量名 -> 解析后的类型名
}

func (e *extractor) extractFile(rootNode *sitter.Node) []*accessRecord {
	var records []*accessRecord
	e.walkTypes(rootNode, "", &records)
	return records
}

// walkTypes 定位文件中的类型声明并进入其成员
func (e *extractor) walkTypes(node *sitter.Node, namePrefix string, records *[]*accessRecord) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		switch child.Kind() {
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			e.enterType(child, namePrefix, records)
		}
	}
}

func (e *extractor) enterType(node *sitter.Node, namePrefix string, records *[]*accessRecord) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nodeContent(nameNode, e.src)
	if namePrefix != "" {
		name = namePrefix + "." + name
	}
	cls, ok := e.table.class(qualify(e.fc.packageName, name))
	if !ok {
		return
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(uint(i))
		switch child.Kind() {
		case "method_declaration":
			e.enterCodeUnit(child, cls, e.findMethodDecl(child, cls), records)
		case "constructor_declaration", "compact_constructor_declaration":
			e.enterCodeUnit(child, cls, e.findConstructorDecl(child, cls), records)
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			e.enterType(child, name, records)
		case "enum_body_declarations":
			for j := 0; j < int(child.NamedChildCount()); j++ {
				sub := child.NamedChild(uint(j))
				switch sub.Kind() {
				case "method_declaration":
					e.enterCodeUnit(sub, cls, e.findMethodDecl(sub, cls), records)
				case "constructor_declaration":
					e.enterCodeUnit(sub, cls, e.findConstructorDecl(sub, cls), records)
				}
			}
		}
	}
}

func (e *extractor) findMethodDecl(node *sitter.Node, cls *model.JavaClass) model.JavaCodeUnit {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	arity := len(parameterTypes(node.ChildByFieldName("parameters"), e.src))
	if m := findMethodIn(cls, nodeContent(nameNode, e.src), arity); m != nil {
		return m
	}
	return nil
}

func (e *extractor) findConstructorDecl(node *sitter.Node, cls *model.JavaClass) model.JavaCodeUnit {
	arity := len(parameterTypes(node.ChildByFieldName("parameters"), e.src))
	if node.Kind() == "compact_constructor_declaration" {
		ctors := cls.Constructors()
		if len(ctors) > 0 {
			return ctors[0]
		}
		return nil
	}
	if ctor := findConstructorIn(cls, arity); ctor != nil {
		return ctor
	}
	return nil
}

func (e *extractor) enterCodeUnit(node *sitter.Node, cls *model.JavaClass, unit model.JavaCodeUnit, records *[]*accessRecord) {
	if unit == nil {
		return
	}
	scope := &extractScope{class: cls, unit: unit, locals: make(map[string]string)}

	if pNode := node.ChildByFieldName("parameters"); pNode != nil {
		for i := 0; i < int(pNode.NamedChildCount()); i++ {
			child := pNode.NamedChild(uint(i))
			kind := child.Kind()
			if kind != "formal_parameter" && kind != "spread_parameter" {
				continue
			}
			tNode := child.ChildByFieldName("type")
			nameNode := child.ChildByFieldName("name")
			if tNode != nil && nameNode != nil {
				e.declareLocal(scope, nodeContent(nameNode, e.src), nodeContent(tNode, e.src))
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		e.walkStatements(body, scope, records)
	}
}

// walkStatements 在代码单元体内下行，登记局部变量类型并提取依赖边
func (e *extractor) walkStatements(node *sitter.Node, scope *extractScope, records *[]*accessRecord) {
	switch node.Kind() {
	case "local_variable_declaration":
		if tNode := node.ChildByFieldName("type"); tNode != nil {
			rawType := nodeContent(tNode, e.src)
			for i := 0; i < int(node.NamedChildCount()); i++ {
				child := node.NamedChild(uint(i))
				if child.Kind() != "variable_declarator" {
					continue
				}
				if nameNode := child.ChildByFieldName("name"); nameNode != nil {
					e.declareLocal(scope, nodeContent(nameNode, e.src), rawType)
				}
			}
		}
	case "catch_formal_parameter":
		e.declareCatchParameter(node, scope)
	case "enhanced_for_statement":
		tNode := node.ChildByFieldName("type")
		nameNode := node.ChildByFieldName("name")
		if tNode != nil && nameNode != nil {
			e.declareLocal(scope, nodeContent(nameNode, e.src), nodeContent(tNode, e.src))
		}
	case "method_invocation":
		e.handleMethodInvocation(node, scope, records)
	case "object_creation_expression":
		e.handleObjectCreation(node, scope, records)
	case "field_access":
		e.handleFieldAccess(node, scope, records)
	case "assignment_expression":
		e.handleAssignment(node, scope, records)
	case "class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		// 局部类不下行，嵌套类型在类体层面处理
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		e.walkStatements(node.NamedChild(uint(i)), scope, records)
	}
}

func (e *extractor) declareLocal(scope *extractScope, name, rawType string) {
	scope.locals[name] = e.table.resolveTypeName(e.fc, rawType)
}

func (e *extractor) declareCatchParameter(node *sitter.Node, scope *extractScope) {
	var rawType string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child.Kind() == "catch_type" {
			var types []string
			collectTypeNames(child, &types, e.src)
			if len(types) > 0 {
				rawType = types[0]
			}
			break
		}
	}
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		// catch 参数名不是字段节点时退回最后一个 identifier
		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			if child := node.NamedChild(uint(i)); child.Kind() == "identifier" {
				nameNode = child
				break
			}
		}
	}
	if rawType != "" && nameNode != nil {
		e.declareLocal(scope, nodeContent(nameNode, e.src), rawType)
	}
}

func (e *extractor) handleMethodInvocation(node *sitter.Node, scope *extractScope, records *[]*accessRecord) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	methodName := nodeContent(nameNode, e.src)

	receiverType := scope.class.Name()
	if obj := node.ChildByFieldName("object"); obj != nil {
		receiverType = e.typeOf(obj, scope)
	}
	if receiverType == "" || isPrimitiveOrArray(receiverType) {
		return
	}

	argTypes := e.argumentTypes(node.ChildByFieldName("arguments"), scope)
	target := e.lookupMethod(receiverType, methodName, argTypes)
	if target == nil {
		return
	}
	*records = append(*records, &accessRecord{
		origin: scope.unit, target: target, kind: model.AccessCall, line: lineOf(node),
	})
}

func (e *extractor) handleObjectCreation(node *sitter.Node, scope *extractScope, records *[]*accessRecord) {
	tNode := node.ChildByFieldName("type")
	if tNode == nil {
		return
	}
	classFQN := e.table.resolveTypeName(e.fc, nodeContent(tNode, e.src))
	if classFQN == "" || isPrimitiveOrArray(classFQN) {
		return
	}

	argTypes := e.argumentTypes(node.ChildByFieldName("arguments"), scope)
	target := e.lookupConstructor(classFQN, argTypes)
	if target == nil {
		return
	}
	*records = append(*records, &accessRecord{
		origin: scope.unit, target: target, kind: model.AccessCall, line: lineOf(node),
	})
}

func (e *extractor) handleFieldAccess(node *sitter.Node, scope *extractScope, records *[]*accessRecord) {
	obj := node.ChildByFieldName("object")
	fieldNode := node.ChildByFieldName("field")
	if obj == nil || fieldNode == nil {
		return
	}
	fieldName := nodeContent(fieldNode, e.src)
	if fieldName == "length" {
		return
	}

	ownerFQN := e.typeOf(obj, scope)
	if ownerFQN == "" || isPrimitiveOrArray(ownerFQN) {
		return
	}

	kind := model.AccessFieldRead
	if parent := node.Parent(); parent != nil && parent.Kind() == "assignment_expression" {
		if left := parent.ChildByFieldName("left"); left != nil && left.StartByte() == node.StartByte() {
			kind = model.AccessFieldWrite
		}
	}

	target := e.lookupField(ownerFQN, fieldName)
	if target == nil {
		return
	}
	*records = append(*records, &accessRecord{
		origin: scope.unit, target: target, kind: kind, line: lineOf(node),
	})
}

// handleAssignment 把对本类字段裸名的赋值登记为写边，
// 带限定的写在 field_access 分支里判定
func (e *extractor) handleAssignment(node *sitter.Node, scope *extractScope, records *[]*accessRecord) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return
	}
	name := nodeContent(left, e.src)
	if _, isLocal := scope.locals[name]; isLocal {
		return
	}
	field := findFieldIn(scope.class, name)
	if field == nil {
		return
	}
	*records = append(*records, &accessRecord{
		origin: scope.unit, target: field, kind: model.AccessFieldWrite, line: lineOf(node),
	})
}

// typeOf 对表达式做轻量静态类型推断，返回解析后的类型全限定名，
// 推断不出时返回空串
func (e *extractor) typeOf(node *sitter.Node, scope *extractScope) string {
	switch node.Kind() {
	case "identifier":
		name := nodeContent(node, e.src)
		if t, ok := scope.locals[name]; ok {
			return t
		}
		if field := findFieldIn(scope.class, name); field != nil {
			return field.RawType().Name()
		}
		// 首字母大写的未知标识符按静态类型引用解析
		if name != "" && unicode.IsUpper(rune(name[0])) {
			return e.table.resolveTypeName(e.fc, name)
		}
		return ""
	case "this":
		return scope.class.Name()
	case "field_access":
		obj := node.ChildByFieldName("object")
		fieldNode := node.ChildByFieldName("field")
		if obj == nil || fieldNode == nil {
			return ""
		}
		ownerFQN := e.typeOf(obj, scope)
		fieldName := nodeContent(fieldNode, e.src)
		// System.out / System.err 是最常见的外部字段，类型已知
		if ownerFQN == "java.lang.System" && (fieldName == "out" || fieldName == "err") {
			return "java.io.PrintStream"
		}
		if cls, ok := e.table.class(ownerFQN); ok {
			if field := findFieldIn(cls, fieldName); field != nil {
				return field.RawType().Name()
			}
		}
		return ""
	case "method_invocation":
		nameNode := node.ChildByFieldName("name")
		if nameNode == nil {
			return ""
		}
		receiverType := scope.class.Name()
		if obj := node.ChildByFieldName("object"); obj != nil {
			receiverType = e.typeOf(obj, scope)
		}
		if cls, ok := e.table.class(receiverType); ok {
			arity := argumentCount(node.ChildByFieldName("arguments"))
			if m := findMethodIn(cls, nodeContent(nameNode, e.src), arity); m != nil {
				return m.RawReturnType().Name()
			}
		}
		return ""
	case "object_creation_expression":
		if tNode := node.ChildByFieldName("type"); tNode != nil {
			return e.table.resolveTypeName(e.fc, nodeContent(tNode, e.src))
		}
		return ""
	case "cast_expression":
		if tNode := node.ChildByFieldName("type"); tNode != nil {
			return e.table.resolveTypeName(e.fc, nodeContent(tNode, e.src))
		}
		return ""
	case "parenthesized_expression":
		if node.NamedChildCount() > 0 {
			return e.typeOf(node.NamedChild(0), scope)
		}
		return ""
	case "string_literal":
		return "java.lang.String"
	}
	return ""
}

func (e *extractor) argumentTypes(argsNode *sitter.Node, scope *extractScope) []string {
	if argsNode == nil {
		return nil
	}
	var types []string
	for i := 0; i < int(argsNode.NamedChildCount()); i++ {
		child := argsNode.NamedChild(uint(i))
		types = append(types, e.argumentType(child, scope))
	}
	return types
}

func (e *extractor) argumentType(node *sitter.Node, scope *extractScope) string {
	switch node.Kind() {
	case "string_literal":
		return "java.lang.String"
	case "character_literal":
		return "char"
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		return "int"
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		return "double"
	case "true", "false":
		return "boolean"
	}
	if t := e.typeOf(node, scope); t != "" {
		return t
	}
	return "java.lang.Object"
}

func argumentCount(argsNode *sitter.Node) int {
	if argsNode == nil {
		return 0
	}
	return int(argsNode.NamedChildCount())
}

// --- 目标成员定位 ---
//
// 运行内的类只做查找，查不到（多半是继承成员）就放弃该边；
// 运行外的类按需补出占位成员。

func (e *extractor) lookupMethod(classFQN, name string, argTypes []string) model.JavaMember {
	if cls, ok := e.table.class(classFQN); ok {
		if m := findMethodIn(cls, name, len(argTypes)); m != nil {
			return m
		}
		return nil
	}
	return e.ensureExternalMethod(classFQN, name, argTypes)
}

func (e *extractor) lookupConstructor(classFQN string, argTypes []string) model.JavaMember {
	if cls, ok := e.table.class(classFQN); ok {
		if ctor := findConstructorIn(cls, len(argTypes)); ctor != nil {
			return ctor
		}
		return nil
	}
	return e.ensureExternalConstructor(classFQN, argTypes)
}

func (e *extractor) lookupField(classFQN, name string) model.JavaMember {
	if cls, ok := e.table.class(classFQN); ok {
		if field := findFieldIn(cls, name); field != nil {
			return field
		}
		return nil
	}
	fieldType := "java.lang.Object"
	if classFQN == "java.lang.System" && (name == "out" || name == "err") {
		fieldType = "java.io.PrintStream"
	}
	return e.ensureExternalField(classFQN, name, fieldType)
}

func (e *extractor) ensureExternalMethod(classFQN, name string, argTypes []string) model.JavaMember {
	e.table.mu.Lock()
	defer e.table.mu.Unlock()
	cls := e.table.builder.ExternalClass(classFQN)
	if m := findMethodIn(cls, name, len(argTypes)); m != nil {
		return m
	}
	return cls.AddMethod(name, model.NewJavaType("void"), toJavaTypes(argTypes), nil, 0, nil, nil)
}

func (e *extractor) ensureExternalConstructor(classFQN string, argTypes []string) model.JavaMember {
	e.table.mu.Lock()
	defer e.table.mu.Unlock()
	cls := e.table.builder.ExternalClass(classFQN)
	if ctor := findConstructorIn(cls, len(argTypes)); ctor != nil {
		return ctor
	}
	return cls.AddConstructor(toJavaTypes(argTypes), nil, 0, nil, nil)
}

func (e *extractor) ensureExternalField(classFQN, name, fieldType string) model.JavaMember {
	e.table.mu.Lock()
	defer e.table.mu.Unlock()
	cls := e.table.builder.ExternalClass(classFQN)
	if field := findFieldIn(cls, name); field != nil {
		return field
	}
	return cls.AddField(name, model.NewJavaType(fieldType), 0, nil, nil)
}

func findMethodIn(cls *model.JavaClass, name string, arity int) *model.JavaMethod {
	var byName *model.JavaMethod
	for _, m := range cls.Methods() {
		if m.Name() != name {
			continue
		}
		if len(m.RawParameterTypes()) == arity {
			return m
		}
		if byName == nil {
			byName = m
		}
	}
	return byName
}

func findConstructorIn(cls *model.JavaClass, arity int) *model.JavaConstructor {
	ctors := cls.Constructors()
	for _, ctor := range ctors {
		if len(ctor.RawParameterTypes()) == arity {
			return ctor
		}
	}
	if len(ctors) > 0 {
		return ctors[0]
	}
	return nil
}

func findFieldIn(cls *model.JavaClass, name string) *model.JavaField {
	for _, f := range cls.Fields() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func toJavaTypes(names []string) []model.JavaType {
	types := make([]model.JavaType, len(names))
	for i, n := range names {
		types[i] = model.NewJavaType(n)
	}
	return types
}

func isPrimitiveOrArray(name string) bool {
	if strings.HasSuffix(name, "[]") {
		return true
	}
	_, ok := primitiveTypes[name]
	return ok
}
