package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/CodMac/go-treesitter-arch-checker/importer"
	"github.com/CodMac/go-treesitter-arch-checker/logging"
	"github.com/CodMac/go-treesitter-arch-checker/noisefilter"
	"github.com/CodMac/go-treesitter-arch-checker/output"
	"github.com/CodMac/go-treesitter-arch-checker/parser"
	"github.com/CodMac/go-treesitter-arch-checker/rule"
	"github.com/CodMac/go-treesitter-arch-checker/rulesconfig"
)

var (
	inputPath   string
	rulesPath   string
	workers     int
	logLevel    string
	logFormat   string
	jsonlPath   string
	mermaidPath string
)

func init() {
	// 命令行参数定义
	flag.StringVar(&inputPath, "path", ".", "要检查的 Java 源码目录")
	flag.StringVar(&rulesPath, "rules", "", "YAML 规则包路径，缺省使用内置规则目录")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "并发处理文件的协程数量 (默认 CPU 核心数)")
	flag.StringVar(&logLevel, "log-level", "info", "日志级别 (debug/info/warn/error)")
	flag.StringVar(&logFormat, "log-format", "text", "日志格式 (text/json)")
	flag.StringVar(&jsonlPath, "jsonl", "", "违规报告 JSONL 输出路径 (可选)")
	flag.StringVar(&mermaidPath, "mermaid", "", "依赖关系 Mermaid HTML 输出路径 (可选)")
}

func main() {
	flag.Parse()
	logging.Init(logLevel, logFormat)

	// 1. 加载规则
	rules := rulesconfig.Default()
	if rulesPath != "" {
		loaded, err := rulesconfig.Load(rulesPath)
		if err != nil {
			slog.Error("failed to load rules pack", "path", rulesPath, "err", err)
			os.Exit(1)
		}
		rules = loaded
	}

	// 2. 导入代码模型
	imp := importer.New(workers)
	classes, err := imp.ImportPath(context.Background(), inputPath)
	if err != nil {
		slog.Error("import failed", "path", inputPath, "err", err)
		os.Exit(1)
	}
	slog.Info("import complete", "classes", len(classes.All()), "accesses", len(classes.Accesses()))

	// 3. 逐条求值，完整打印每条失败报告
	var results []*rule.EvaluationResult
	violated := 0
	for _, r := range rules {
		result := r.Evaluate(classes)
		results = append(results, result)
		if result.HasViolation() {
			violated++
			fmt.Fprintln(os.Stderr, result.FailureReport())
		}
	}

	// 4. 可选导出
	if jsonlPath != "" {
		count, err := output.ExportViolations(jsonlPath, results)
		if err != nil {
			slog.Error("failed to export violations", "path", jsonlPath, "err", err)
			os.Exit(1)
		}
		slog.Info("violations exported", "path", jsonlPath, "count", count)
	}
	if mermaidPath != "" {
		filter := noisefilter.GetNoiseFilter(parser.LangJava)
		if err := output.ExportMermaidHTML(mermaidPath, classes, filter); err != nil {
			slog.Error("failed to export mermaid page", "path", mermaidPath, "err", err)
			os.Exit(1)
		}
		slog.Info("access map exported", "path", mermaidPath)
	}

	if violated > 0 {
		slog.Error("architecture check failed", "rules", len(rules), "violated", violated)
		os.Exit(1)
	}
	slog.Info("architecture check passed", "rules", len(rules))
}
