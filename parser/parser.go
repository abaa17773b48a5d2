package parser

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Parser 定义了所有语言解析器的通用能力
type Parser interface {
	// ParseFile 读取文件内容并解析为 AST，返回语法树与源码字节。
	// 调用方负责在用完后 Close 语法树。
	ParseFile(filePath string) (*sitter.Tree, []byte, error)
	Close()
}

// treeSitterParser 是 Parser 的 Tree-sitter 实现
type treeSitterParser struct {
	lang     Language
	tsParser *sitter.Parser
}

// NewParser 创建指定语言的解析器实例。每个 worker 应持有自己的实例，
// Tree-sitter 解析器不可并发共享。
func NewParser(lang Language) (Parser, error) {
	tsLang, err := GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	if err := tsParser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &treeSitterParser{lang: lang, tsParser: tsParser}, nil
}

func (p *treeSitterParser) ParseFile(filePath string) (*sitter.Tree, []byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	tree := p.tsParser.Parse(content, nil)
	if tree == nil {
		return nil, nil, fmt.Errorf("tree-sitter failed to parse file %s", filePath)
	}

	return tree, content, nil
}

func (p *treeSitterParser) Close() {
	if p.tsParser != nil {
		p.tsParser.Close()
	}
}
