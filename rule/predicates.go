package rule

import (
	"regexp"
	"strings"

	"github.com/CodMac/go-treesitter-arch-checker/model"
)

// --- 内置谓词 (Built-in Predicates) ---
//
// 参数类型、返回类型、抛出类型各提供三种等价输入形式：具体类型、
// 全限定名字符串、对类型（列表）的任意谓词。前两种是第三种的语法糖，
// 对等价输入必须产生相同的候选集合。

// BelongToAnyOf 判断类是否在给定全限定名列表之内
func BelongToAnyOf(classNames ...string) DescribedPredicate[*model.JavaClass] {
	desc := "belong to any of [" + strings.Join(classNames, ", ") + "]"
	return NewPredicate(desc, func(c *model.JavaClass) bool {
		for _, name := range classNames {
			if c.Name() == name {
				return true
			}
		}
		return false
	})
}

// ResideInPackage 判断类是否位于给定包内。包名以 ".." 结尾时按前缀
// 匹配子包，否则精确匹配。
func ResideInPackage(pkg string) DescribedPredicate[*model.JavaClass] {
	desc := "reside in package '" + pkg + "'"
	if prefix, ok := strings.CutSuffix(pkg, ".."); ok {
		return NewPredicate(desc, func(c *model.JavaClass) bool {
			return c.PackageName() == prefix || strings.HasPrefix(c.PackageName(), prefix+".")
		})
	}
	return NewPredicate(desc, func(c *model.JavaClass) bool {
		return c.PackageName() == pkg
	})
}

// AreDeclaredIn 判断成员是否声明于给定全限定名的类
func AreDeclaredIn[T model.JavaMember](className string) DescribedPredicate[T] {
	return NewPredicate[T]("are declared in "+className, func(m T) bool {
		return m.Owner().Name() == className
	})
}

// AreAnnotatedWith 判断成员是否带有给定全限定名的注解
func AreAnnotatedWith[T model.JavaMember](annotationName string) DescribedPredicate[T] {
	return NewPredicate[T]("are annotated with @"+simpleName(annotationName), func(m T) bool {
		return m.Annotations().Has(annotationName)
	})
}

// HaveModifier 判断成员是否带有给定修饰符
func HaveModifier[T model.JavaMember](mod model.Modifier) DescribedPredicate[T] {
	return NewPredicate[T]("have modifier "+strings.ToUpper(string(mod)), func(m T) bool {
		return m.Modifiers().Has(mod)
	})
}

// ArePublic 判断成员是否为 public
func ArePublic[T model.JavaMember]() DescribedPredicate[T] {
	return NewPredicate[T]("are public", func(m T) bool { return m.Modifiers().Has(model.Public) })
}

// AreProtected 判断成员是否为 protected
func AreProtected[T model.JavaMember]() DescribedPredicate[T] {
	return NewPredicate[T]("are protected", func(m T) bool { return m.Modifiers().Has(model.Protected) })
}

// ArePrivate 判断成员是否为 private
func ArePrivate[T model.JavaMember]() DescribedPredicate[T] {
	return NewPredicate[T]("are private", func(m T) bool { return m.Modifiers().Has(model.Private) })
}

// ArePackagePrivate 判断成员是否无访问修饰符
func ArePackagePrivate[T model.JavaMember]() DescribedPredicate[T] {
	return NewPredicate[T]("are package private", func(m T) bool {
		mods := m.Modifiers()
		return !mods.Has(model.Public) && !mods.Has(model.Protected) && !mods.Has(model.Private)
	})
}

// HaveName 判断成员的短名称
func HaveName[T model.JavaMember](name string) DescribedPredicate[T] {
	return NewPredicate[T]("have name '"+name+"'", func(m T) bool { return m.Name() == name })
}

// HaveNameMatching 判断成员短名称是否匹配给定正则
func HaveNameMatching[T model.JavaMember](pattern string) DescribedPredicate[T] {
	re := regexp.MustCompile(pattern)
	return NewPredicate[T]("have name matching '"+pattern+"'", func(m T) bool {
		return re.MatchString(m.Name())
	})
}

// --- 参数类型匹配（三种等价形式） ---

// RawParameterTypesMatching 用对有序参数类型列表的任意谓词过滤代码单元
func RawParameterTypesMatching[T model.JavaCodeUnit](pred DescribedPredicate[[]model.JavaType]) DescribedPredicate[T] {
	return NewPredicate[T]("have raw parameter types "+pred.Description(), func(u T) bool {
		return pred.Test(u.RawParameterTypes())
	})
}

// HaveRawParameterTypeNames 按全限定名列表做位置相等匹配
func HaveRawParameterTypeNames[T model.JavaCodeUnit](names ...string) DescribedPredicate[T] {
	desc := "[" + strings.Join(names, ", ") + "]"
	return RawParameterTypesMatching[T](NewPredicate(desc, func(types []model.JavaType) bool {
		if len(types) != len(names) {
			return false
		}
		for i, t := range types {
			if t.Name() != names[i] {
				return false
			}
		}
		return true
	}))
}

// HaveRawParameterTypes 按具体类型标识做位置相等匹配
func HaveRawParameterTypes[T model.JavaCodeUnit](types ...model.JavaType) DescribedPredicate[T] {
	return HaveRawParameterTypeNames[T](model.TypeNames(types)...)
}

// --- 返回类型匹配（三种等价形式） ---

// RawReturnTypeMatching 用对返回类型的任意谓词过滤代码单元
func RawReturnTypeMatching[T model.JavaCodeUnit](pred DescribedPredicate[model.JavaType]) DescribedPredicate[T] {
	return NewPredicate[T]("have raw return type "+pred.Description(), func(u T) bool {
		return pred.Test(u.RawReturnType())
	})
}

// HaveRawReturnTypeName 按全限定名匹配返回类型
func HaveRawReturnTypeName[T model.JavaCodeUnit](name string) DescribedPredicate[T] {
	return RawReturnTypeMatching[T](NewPredicate(name, func(t model.JavaType) bool {
		return t.Name() == name
	}))
}

// HaveRawReturnType 按具体类型标识匹配返回类型
func HaveRawReturnType[T model.JavaCodeUnit](t model.JavaType) DescribedPredicate[T] {
	return HaveRawReturnTypeName[T](t.Name())
}

// --- 抛出类型匹配（三种等价形式，按集合成员关系而非位置相等） ---

// ThrowableMatching 判断声明抛出的类型中是否存在满足谓词的一个
func ThrowableMatching[T model.JavaCodeUnit](pred DescribedPredicate[model.JavaType]) DescribedPredicate[T] {
	return NewPredicate[T]("declare throwable of type "+pred.Description(), func(u T) bool {
		for _, t := range u.Throws() {
			if pred.Test(t) {
				return true
			}
		}
		return false
	})
}

// DeclareThrowableOfTypeName 按全限定名判断是否声明抛出给定类型
func DeclareThrowableOfTypeName[T model.JavaCodeUnit](name string) DescribedPredicate[T] {
	return ThrowableMatching[T](NewPredicate(name, func(t model.JavaType) bool {
		return t.Name() == name
	}))
}

// DeclareThrowableOfType 按具体类型标识判断是否声明抛出给定类型
func DeclareThrowableOfType[T model.JavaCodeUnit](t model.JavaType) DescribedPredicate[T] {
	return DeclareThrowableOfTypeName[T](t.Name())
}

func simpleName(fqn string) string {
	if i := strings.LastIndex(fqn, "."); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}
