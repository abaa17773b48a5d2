package model

import "fmt"

// --- 依赖边类型 (Access Kinds) ---

// AccessKind 表示依赖边的种类
type AccessKind string

const (
	// AccessCall: 起点代码单元调用目标方法或构造函数
	AccessCall AccessKind = "CALL"
	// AccessFieldRead: 起点代码单元读取目标字段
	AccessFieldRead AccessKind = "FIELD_READ"
	// AccessFieldWrite: 起点代码单元写入目标字段
	AccessFieldWrite AccessKind = "FIELD_WRITE"
)

// JavaAccess 是一条有向依赖边。端点是运行期共享引用，边本身归属分析运行，
// 互相调用可以构成环。
type JavaAccess struct {
	origin     JavaCodeUnit
	target     JavaMember
	kind       AccessKind
	fileName   string
	lineNumber int
}

// NewJavaAccess 构造一条依赖边。fileName 是起点声明文件的简单名称，
// lineNumber 未知时为 0。
func NewJavaAccess(origin JavaCodeUnit, target JavaMember, kind AccessKind, fileName string, lineNumber int) *JavaAccess {
	return &JavaAccess{origin: origin, target: target, kind: kind, fileName: fileName, lineNumber: lineNumber}
}

func (a *JavaAccess) Origin() JavaCodeUnit { return a.origin }
func (a *JavaAccess) Target() JavaMember   { return a.target }
func (a *JavaAccess) Kind() AccessKind     { return a.kind }
func (a *JavaAccess) FileName() string     { return a.fileName }

// LineNumber 返回边在源码中的行号，未知时为 0
func (a *JavaAccess) LineNumber() int { return a.lineNumber }

// Description 按稳定契约渲染这条边，违规消息直接使用该格式，例如
// "Method <a.B.m(java.lang.String)> calls constructor <a.C.<init>()> in (B.java:12)"
func (a *JavaAccess) Description() string {
	verb := ""
	switch a.kind {
	case AccessCall:
		switch a.target.KindLabel() {
		case "Constructor":
			verb = "calls constructor"
		default:
			verb = "calls method"
		}
	case AccessFieldRead:
		verb = "gets field"
	case AccessFieldWrite:
		verb = "sets field"
	}
	return fmt.Sprintf("%s <%s> %s <%s> in (%s:%d)",
		a.origin.KindLabel(), a.origin.FullName(), verb, a.target.FullName(), a.fileName, a.lineNumber)
}
