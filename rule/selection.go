package rule

import "github.com/CodMac/go-treesitter-arch-checker/model"

// Given 表示按元素种类从代码模型选出的候选集合。类型参数 T 携带当前
// 特化的元素种类：选择 "methods" 得到 *model.JavaMethod 的 Given，
// 后续挂接的条件可以针对该种类（或通过 ForMembers / ForCodeUnits
// 提升的超类条件），挂接不会改变 T。
type Given[T any] struct {
	description string
	selector    func(*model.JavaClasses) []T
	predicate   DescribedPredicate[T]
}

// Classes 选择运行中的全部类
func Classes() *Given[*model.JavaClass] {
	return &Given[*model.JavaClass]{
		description: "classes",
		selector:    func(cs *model.JavaClasses) []*model.JavaClass { return cs.All() },
	}
}

// Members 选择全部成员（字段 ∪ 方法 ∪ 构造函数）
func Members() *Given[model.JavaMember] {
	return &Given[model.JavaMember]{
		description: "members",
		selector:    func(cs *model.JavaClasses) []model.JavaMember { return cs.Members() },
	}
}

// Fields 选择全部字段
func Fields() *Given[*model.JavaField] {
	return &Given[*model.JavaField]{
		description: "fields",
		selector:    func(cs *model.JavaClasses) []*model.JavaField { return cs.Fields() },
	}
}

// Methods 选择全部方法
func Methods() *Given[*model.JavaMethod] {
	return &Given[*model.JavaMethod]{
		description: "methods",
		selector:    func(cs *model.JavaClasses) []*model.JavaMethod { return cs.Methods() },
	}
}

// Constructors 选择全部构造函数
func Constructors() *Given[*model.JavaConstructor] {
	return &Given[*model.JavaConstructor]{
		description: "constructors",
		selector:    func(cs *model.JavaClasses) []*model.JavaConstructor { return cs.Constructors() },
	}
}

// CodeUnits 选择全部代码单元（方法 ∪ 构造函数）
func CodeUnits() *Given[model.JavaCodeUnit] {
	return &Given[model.JavaCodeUnit]{
		description: "code units",
		selector:    func(cs *model.JavaClasses) []model.JavaCodeUnit { return cs.CodeUnits() },
	}
}

// That 在挂接条件之前收窄候选集合。多次调用按合取叠加，
// 特化的元素种类保持不变。
func (g *Given[T]) That(pred DescribedPredicate[T]) *Given[T] {
	next := &Given[T]{description: g.description, selector: g.selector}
	if g.predicate != nil {
		next.predicate = And(g.predicate, pred)
	} else {
		next.predicate = pred
	}
	return next
}

// Should 挂接组合树的第一个叶子条件，得到可求值的规则
func (g *Given[T]) Should(c ArchCondition[T]) *ArchRule[T] {
	return &ArchRule[T]{given: g, condition: c}
}

func (g *Given[T]) describe() string {
	if g.predicate != nil {
		return g.description + " that " + g.predicate.Description()
	}
	return g.description
}

func (g *Given[T]) candidates(cs *model.JavaClasses) []T {
	items := g.selector(cs)
	if g.predicate == nil {
		return items
	}
	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if g.predicate.Test(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
