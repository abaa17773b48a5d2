package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/CodMac/go-treesitter-arch-checker/model"
	"github.com/CodMac/go-treesitter-arch-checker/noisefilter"
)

// ExportMermaidHTML 生成包含 Mermaid.js 渲染逻辑的静态网页，
// 展示类与成员之间的调用/读写关系。噪音过滤器命中的目标不入图。
func ExportMermaidHTML(outputPath string, classes *model.JavaClasses, filter noisefilter.NoiseFilter) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	// 1. 写入 HTML 模板头部
	f.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Codebase Access Map</title>
    <script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script>
    <style>
        body { font-family: -apple-system, sans-serif; background: #f0f2f5; margin: 20px; }
        .mermaid { background: white; padding: 20px; border-radius: 12px; box-shadow: 0 4px 15px rgba(0,0,0,0.1); }
        h1 { color: #1a1a1a; text-align: center; }
    </style>
</head>
<body>
    <h1>Architecture Visualization</h1>
    <div class="mermaid">
    graph LR
`)

	// 2. 生成层级 Subgraphs：按 Package 分组，类内列出成员
	packageGroups := make(map[string][]*model.JavaClass)
	var packageOrder []string
	for _, cls := range classes.All() {
		pkg := cls.PackageName()
		if _, ok := packageGroups[pkg]; !ok {
			packageOrder = append(packageOrder, pkg)
		}
		packageGroups[pkg] = append(packageGroups[pkg], cls)
	}

	for _, pkgName := range packageOrder {
		hasPkg := pkgName != ""
		if hasPkg {
			fmt.Fprintf(f, "    subgraph \"📦 %s\"\n", pkgName)
		}

		for _, cls := range packageGroups[pkgName] {
			fmt.Fprintf(f, "        subgraph \"📄 %s\"\n", cls.SourceFileName())
			for _, m := range cls.Members() {
				id := safeID(m.FullName())
				fmt.Fprintf(f, "            %s[\"%s <small>(%s)</small>\"]\n", id, m.Name(), m.KindLabel())
			}
			f.WriteString("        end\n")
		}

		if hasPkg {
			f.WriteString("    end\n")
		}
	}

	// 3. 生成依赖边
	for _, access := range classes.Accesses() {
		if filter != nil && filter.IsNoise(access.Target().Owner().Name()) {
			continue
		}
		arrow := "-->"
		switch access.Kind() {
		case model.AccessFieldRead:
			arrow = "-.读.->"
		case model.AccessFieldWrite:
			arrow = "-.写.->"
		}

		fmt.Fprintf(f, "    %s %s %s\n",
			safeID(access.Origin().FullName()),
			arrow,
			safeID(access.Target().FullName()))
	}

	// 4. 写入脚本初始化和结尾
	f.WriteString(`    </div>
    <script>
        mermaid.initialize({
            startOnLoad: true,
            maxTextSize: 100000,
            theme: 'default',
            flowchart: { useMaxWidth: false, htmlLabels: true }
        });
    </script>
</body>
</html>`)

	return nil
}

// safeID 确保节点标识符合 Mermaid 的 ID 命名规范
func safeID(id string) string {
	r := strings.NewReplacer(
		".", "_", "/", "_", "-", "_", "\\", "_", ":", "_", "@", "_",
		"(", "_", ")", "_", "<", "_", ">", "_", ",", "_", " ", "_",
	)
	return "n_" + r.Replace(id)
}
