// Package importer 把 Java 源码目录导入为可供规则求值的代码模型快照。
// 导入分两个阶段：先并发解析所有文件收集类型定义，建立全局符号表并
// 固化类与成员；再并发提取方法调用与字段读写依赖边。两个阶段都按
// 文件路径排序聚合结果，同一份输入多次导入产生相同的快照。
package importer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/CodMac/go-treesitter-arch-checker/model"
	"github.com/CodMac/go-treesitter-arch-checker/parser"
)

// Importer 负责并发导入文件列表并聚合为代码模型
type Importer struct {
	Workers int // 并发协程数量
}

// New 创建 Importer 实例
func New(workers int) *Importer {
	if workers <= 0 {
		workers = 4 // 默认并发数
	}
	return &Importer{Workers: workers}
}

// ImportPath 递归发现 root 下的全部 .java 文件并导入
func (imp *Importer) ImportPath(ctx context.Context, root string) (*model.JavaClasses, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".java") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to discover source files in %s: %w", root, err)
	}
	return imp.ImportFiles(ctx, files)
}

// ImportFiles 导入给定文件列表，返回固化的代码模型快照
func (imp *Importer) ImportFiles(ctx context.Context, filePaths []string) (*model.JavaClasses, error) {
	paths := append([]string(nil), filePaths...)
	sort.Strings(paths)

	builder := model.NewBuilder()
	table := newResolutionTable(builder)

	// --- 阶段 1: 收集定义 (Collect Definitions) ---
	slog.Info("collecting definitions", "files", len(paths))
	contexts := make([]*fileContext, len(paths))
	err := imp.runPhase(ctx, paths, func(i int, path string) error {
		p, err := parser.NewParser(parser.LangJava)
		if err != nil {
			return err
		}
		defer p.Close()

		tree, source, err := p.ParseFile(path)
		if err != nil {
			slog.Warn("skipping unparsable file", "file", path, "err", err)
			return nil
		}
		defer tree.Close()

		c := &collector{}
		contexts[i] = c.collectFile(tree.RootNode(), path, source)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("phase 1 (definition collection) failed: %w", err)
	}

	// 注册全部类名后再解析成员类型，保证跨文件引用可命中
	for _, fc := range contexts {
		if fc == nil {
			continue
		}
		for _, rc := range fc.classes {
			table.declare(qualify(fc.packageName, rc.name))
		}
	}
	for _, fc := range contexts {
		if fc == nil {
			continue
		}
		imp.materialize(fc, table, builder)
	}

	// --- 阶段 2: 提取依赖边 (Extract Accesses) ---
	slog.Info("extracting accesses", "files", len(paths))
	fileRecords := make([][]*accessRecord, len(paths))
	err = imp.runPhase(ctx, paths, func(i int, path string) error {
		fc := contexts[i]
		if fc == nil {
			return nil
		}
		p, err := parser.NewParser(parser.LangJava)
		if err != nil {
			return err
		}
		defer p.Close()

		tree, source, err := p.ParseFile(path)
		if err != nil {
			return nil
		}
		defer tree.Close()

		e := &extractor{table: table, fc: fc, src: source}
		fileRecords[i] = e.extractFile(tree.RootNode())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("phase 2 (access extraction) failed: %w", err)
	}

	// 按文件顺序统一登记，保持快照确定性
	for _, records := range fileRecords {
		for _, r := range records {
			builder.AddAccess(r.origin, r.target, r.kind, r.origin.Owner().SourceFileName(), r.line)
		}
	}

	return builder.Build(), nil
}

// materialize 把一个文件的原始声明解析为模型中的类与成员
func (imp *Importer) materialize(fc *fileContext, table *resolutionTable, builder *model.Builder) {
	sourceFileName := filepath.Base(fc.filePath)
	for _, rc := range fc.classes {
		cls := model.NewJavaClass(
			qualify(fc.packageName, rc.name),
			sourceFileName,
			toModifierSet(rc.modifiers),
			imp.resolveAnnotations(fc, table, rc.annotations),
		)
		for _, m := range rc.members {
			mods := toModifierSet(m.modifiers)
			annos := imp.resolveAnnotations(fc, table, m.annotations)
			switch m.kind {
			case rawField:
				cls.AddField(m.name, imp.resolveType(fc, table, m.rawType), m.line, mods, annos)
			case rawMethod:
				cls.AddMethod(m.name, imp.resolveType(fc, table, m.rawType),
					imp.resolveTypes(fc, table, m.params), imp.resolveTypes(fc, table, m.throws),
					m.line, mods, annos)
			case rawConstructor:
				cls.AddConstructor(imp.resolveTypes(fc, table, m.params), imp.resolveTypes(fc, table, m.throws),
					m.line, mods, annos)
			}
		}
		builder.AddClass(cls)
	}
}

func (imp *Importer) resolveType(fc *fileContext, table *resolutionTable, raw string) model.JavaType {
	return model.NewJavaType(table.resolveTypeName(fc, raw))
}

func (imp *Importer) resolveTypes(fc *fileContext, table *resolutionTable, raws []string) []model.JavaType {
	if len(raws) == 0 {
		return nil
	}
	types := make([]model.JavaType, len(raws))
	for i, raw := range raws {
		types[i] = imp.resolveType(fc, table, raw)
	}
	return types
}

func (imp *Importer) resolveAnnotations(fc *fileContext, table *resolutionTable, raws []string) model.AnnotationSet {
	names := make([]string, 0, len(raws))
	for _, raw := range raws {
		names = append(names, table.resolveAnnotationName(fc, raw))
	}
	return model.NewAnnotationSet(names...)
}

func toModifierSet(raws []string) model.ModifierSet {
	mods := make([]model.Modifier, 0, len(raws))
	for _, raw := range raws {
		switch raw {
		case "public", "protected", "private", "static", "final",
			"abstract", "synchronized", "native":
			mods = append(mods, model.Modifier(raw))
		}
	}
	return model.NewModifierSet(mods...)
}

// runPhase 以固定数量的 worker 并发处理文件列表
func (imp *Importer) runPhase(ctx context.Context, paths []string, work func(i int, path string) error) error {
	indexChan := make(chan int, len(paths))
	errChan := make(chan error, imp.Workers)
	var wg sync.WaitGroup

	for w := 0; w < imp.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexChan {
				select {
				case <-ctx.Done():
					errChan <- ctx.Err()
					return
				default:
				}
				if err := work(i, paths[i]); err != nil {
					errChan <- err
					return
				}
			}
		}()
	}

	for i := range paths {
		indexChan <- i
	}
	close(indexChan)
	wg.Wait()
	close(errChan)

	return <-errChan
}
