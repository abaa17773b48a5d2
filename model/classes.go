package model

// JavaClasses 表示一次分析运行的完整代码模型快照：扁平的类集合加上
// "目标成员 -> 入边" 索引，实体内部不嵌入边的反向指针。
// 快照在一次求值期间被视为不可变，引擎不会修改它。
type JavaClasses struct {
	classes      []*JavaClass
	byName       map[string]*JavaClass
	stubs        map[string]*JavaClass
	accesses     []*JavaAccess
	callsTo      map[string][]*JavaAccess
	accessesFrom map[string][]*JavaAccess
}

// All 按稳定顺序返回运行中的全部类（不含 stub）
func (cs *JavaClasses) All() []*JavaClass { return cs.classes }

// Get 按全限定名查找类，stub 也可被查到
func (cs *JavaClasses) Get(name string) (*JavaClass, bool) {
	if c, ok := cs.byName[name]; ok {
		return c, true
	}
	c, ok := cs.stubs[name]
	return c, ok
}

// Contain 判断全限定名是否属于本次运行分析过的类
func (cs *JavaClasses) Contain(name string) bool {
	_, ok := cs.byName[name]
	return ok
}

// Accesses 按登记顺序返回全部依赖边
func (cs *JavaClasses) Accesses() []*JavaAccess { return cs.accesses }

// CallsTo 返回以给定成员为目标的 CALL 边
func (cs *JavaClasses) CallsTo(target JavaMember) []*JavaAccess {
	return cs.callsTo[target.FullName()]
}

// Fields 按类顺序与声明顺序返回全部字段
func (cs *JavaClasses) Fields() []*JavaField {
	var fields []*JavaField
	for _, c := range cs.classes {
		fields = append(fields, c.Fields()...)
	}
	return fields
}

// Methods 按类顺序与声明顺序返回全部方法
func (cs *JavaClasses) Methods() []*JavaMethod {
	var methods []*JavaMethod
	for _, c := range cs.classes {
		methods = append(methods, c.Methods()...)
	}
	return methods
}

// Constructors 按类顺序与声明顺序返回全部构造函数
func (cs *JavaClasses) Constructors() []*JavaConstructor {
	var ctors []*JavaConstructor
	for _, c := range cs.classes {
		ctors = append(ctors, c.Constructors()...)
	}
	return ctors
}

// CodeUnits 按类顺序与声明顺序返回全部代码单元
func (cs *JavaClasses) CodeUnits() []JavaCodeUnit {
	var units []JavaCodeUnit
	for _, c := range cs.classes {
		units = append(units, c.CodeUnits()...)
	}
	return units
}

// Members 按类顺序与声明顺序返回全部成员
func (cs *JavaClasses) Members() []JavaMember {
	var members []JavaMember
	for _, c := range cs.classes {
		members = append(members, c.Members()...)
	}
	return members
}

// Builder 以编程方式组装一次分析运行，由 importer 与测试共用
type Builder struct {
	classes  []*JavaClass
	byName   map[string]*JavaClass
	stubs    map[string]*JavaClass
	accesses []*JavaAccess
}

// NewBuilder 构造空的 Builder
func NewBuilder() *Builder {
	return &Builder{
		byName: make(map[string]*JavaClass),
		stubs:  make(map[string]*JavaClass),
	}
}

// AddClass 登记一个分析过的类。同名类只保留第一次登记的实例。
func (b *Builder) AddClass(c *JavaClass) *Builder {
	if _, ok := b.byName[c.name]; ok {
		return b
	}
	// 之前作为 stub 引用过的类被真实定义取代
	delete(b.stubs, c.name)
	b.byName[c.name] = c
	b.classes = append(b.classes, c)
	return b
}

// Class 按全限定名返回已登记的类
func (b *Builder) Class(name string) (*JavaClass, bool) {
	c, ok := b.byName[name]
	return c, ok
}

// ExternalClass 返回运行之外调用目标的占位类：只有名称标识，没有成员细节。
// 已分析过的同名类优先返回。
func (b *Builder) ExternalClass(name string) *JavaClass {
	if c, ok := b.byName[name]; ok {
		return c
	}
	if c, ok := b.stubs[name]; ok {
		return c
	}
	c := NewJavaClass(name, "", nil, nil)
	c.stub = true
	b.stubs[name] = c
	return c
}

// AddAccess 登记一条依赖边
func (b *Builder) AddAccess(origin JavaCodeUnit, target JavaMember, kind AccessKind, fileName string, lineNumber int) *Builder {
	b.accesses = append(b.accesses, NewJavaAccess(origin, target, kind, fileName, lineNumber))
	return b
}

// Build 固化为 JavaClasses 快照并建立入边/出边索引
func (b *Builder) Build() *JavaClasses {
	cs := &JavaClasses{
		classes:      b.classes,
		byName:       b.byName,
		stubs:        b.stubs,
		accesses:     b.accesses,
		callsTo:      make(map[string][]*JavaAccess),
		accessesFrom: make(map[string][]*JavaAccess),
	}
	for _, access := range b.accesses {
		if access.kind == AccessCall {
			key := access.target.FullName()
			cs.callsTo[key] = append(cs.callsTo[key], access)
		}
		originKey := access.origin.FullName()
		cs.accessesFrom[originKey] = append(cs.accessesFrom[originKey], access)
	}
	for _, c := range b.classes {
		c.run = cs
	}
	for _, c := range b.stubs {
		c.run = cs
	}
	return cs
}
