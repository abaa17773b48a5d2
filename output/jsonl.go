package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/CodMac/go-treesitter-arch-checker/model"
	"github.com/CodMac/go-treesitter-arch-checker/rule"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		encoder: json.NewEncoder(w),
	}
}

func (w *JSONLWriter) Write(v interface{}) error {
	return w.encoder.Encode(v)
}

// ViolationRecord 是一条违规在 JSONL 导出中的形态
type ViolationRecord struct {
	Rule   string `json:"rule"`
	Detail string `json:"detail"`
}

// AccessRecord 是一条依赖边在 JSONL 导出中的形态
type AccessRecord struct {
	Origin string `json:"origin"`
	Target string `json:"target"`
	Kind   string `json:"kind"`
	File   string `json:"file"`
	Line   int    `json:"line"`
}

// ExportViolations 把各规则的失败报告按求值顺序导出为 JSONL
func ExportViolations(path string, results []*rule.EvaluationResult) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	writer := NewJSONLWriter(f)
	count := 0
	for _, result := range results {
		for _, detail := range result.FailureReport().Details() {
			if err := writer.Write(&ViolationRecord{
				Rule:   result.RuleDescription(),
				Detail: detail,
			}); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// ExportAccesses 把快照中的全部依赖边按登记顺序导出为 JSONL
func ExportAccesses(path string, classes *model.JavaClasses) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	writer := NewJSONLWriter(f)
	count := 0
	for _, access := range classes.Accesses() {
		if err := writer.Write(&AccessRecord{
			Origin: access.Origin().FullName(),
			Target: access.Target().FullName(),
			Kind:   string(access.Kind()),
			File:   access.FileName(),
			Line:   access.LineNumber(),
		}); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
