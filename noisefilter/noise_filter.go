package noisefilter

import (
	"strings"

	"github.com/CodMac/go-treesitter-arch-checker/parser"
)

// NoiseFilter 定义了如何识别特定语言中的背景噪音。
// 噪音判定只影响可视化输出，依赖边本身始终完整登记。
type NoiseFilter interface {
	IsNoise(qualifiedName string) bool
}

var noiseFilterMap = make(map[parser.Language]NoiseFilter)

// RegisterNoiseFilter 注册一个语言与其对应的 NoiseFilter
func RegisterNoiseFilter(lang parser.Language, noiseFilter NoiseFilter) {
	noiseFilterMap[lang] = noiseFilter
}

// GetNoiseFilter 根据语言类型获取对应的 NoiseFilter 实例。
func GetNoiseFilter(lang parser.Language) NoiseFilter {
	noiseFilter, ok := noiseFilterMap[lang]
	if !ok {
		// 如果没注册，返回一个默认不进行过滤的过滤器，防止程序奔溃
		return &DefaultNoiseFilter{}
	}

	return noiseFilter
}

// DefaultNoiseFilter 默认过滤器：不对任何 QN 进行噪音判定
type DefaultNoiseFilter struct{}

func (d *DefaultNoiseFilter) IsNoise(qn string) bool { return false }

// JavaNoiseFilter 判定 JDK、常见基础库与原始类型为背景噪音
type JavaNoiseFilter struct{}

func NewJavaNoiseFilter() *JavaNoiseFilter {
	return &JavaNoiseFilter{}
}

func (f *JavaNoiseFilter) IsNoise(qn string) bool {
	noisePrefixes := []string{
		"java.", "javax.", "sun.", "com.sun.", "lombok.",
		"org.slf4j.", "org.apache.log4j.", "boolean", "int",
		"long", "float", "double", "char", "byte", "short", "void",
	}
	for _, p := range noisePrefixes {
		if strings.HasPrefix(qn, p) {
			return true
		}
	}
	return false
}
