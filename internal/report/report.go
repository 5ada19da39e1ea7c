// internal/report/report.go
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"selcycle/internal/experiment"
	"selcycle/pkg/apperror"
)

// Generator генератор отчёта в одном формате
type Generator interface {
	// Format возвращает идентификатор формата (text, csv, xlsx, pdf)
	Format() string
	// Extension возвращает расширение файла
	Extension() string
	// Generate генерирует отчёт
	Generate(res *experiment.Result) ([]byte, error)
}

// ForFormat возвращает генератор для формата
func ForFormat(format string) (Generator, error) {
	switch format {
	case "text":
		return NewTextGenerator(), nil
	case "csv":
		return NewCSVGenerator(), nil
	case "xlsx":
		return NewExcelGenerator(), nil
	case "pdf":
		return NewPDFGenerator(), nil
	default:
		return nil, apperror.Newf(apperror.CodeInvalidParameter, "unknown report format %q", format)
	}
}

// WriteAll пишет отчёты всех форматов в каталог dir.
// Имя файла: <instance>_<algorithm>.<ext>
func WriteAll(res *experiment.Result, dir string, formats []string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperror.Wrap(apperror.CodeWriteFailed, "cannot create output dir "+dir, err)
	}

	for _, format := range formats {
		g, err := ForFormat(format)
		if err != nil {
			return err
		}
		data, err := g.Generate(res)
		if err != nil {
			return apperror.Wrap(apperror.CodeWriteFailed,
				fmt.Sprintf("cannot generate %s report", format), err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", res.Instance, res.Algorithm, g.Extension()))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return apperror.Wrap(apperror.CodeWriteFailed, "cannot write "+path, err)
		}
	}
	return nil
}
