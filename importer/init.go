package importer

import (
	"github.com/CodMac/go-treesitter-arch-checker/noisefilter"
	"github.com/CodMac/go-treesitter-arch-checker/parser"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

func init() {
	// 注册 Tree-sitter Java 语言对象
	parser.RegisterLanguage(parser.LangJava, sitter.NewLanguage(tree_sitter_java.Language()))
	// 注册 NoiseFilter(噪音过滤)
	noisefilter.RegisterNoiseFilter(parser.LangJava, noisefilter.NewJavaNoiseFilter())
}
