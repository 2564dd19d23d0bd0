// Package export moves records in and out of Excel workbooks.
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/record"
)

type formSource interface {
	Get(ctx context.Context, formType domain.FormType) (domain.FormDefinition, error)
}

type recordSource interface {
	ListDecoded(ctx context.Context, formType domain.FormType) ([]record.Decoded, error)
	Submit(ctx context.Context, in record.SubmitInput) (*domain.Record, error)
}

// Service exports and imports records as XLSX.
type Service struct {
	forms   formSource
	records recordSource
	log     *slog.Logger
}

func NewService(log *slog.Logger, forms formSource, records recordSource) *Service {
	return &Service{
		forms:   forms,
		records: records,
		log:     log.With("service", "export"),
	}
}

const (
	createdHeader = "Created At"
	updatedHeader = "Updated At"
	timeLayout    = "2006-01-02 15:04:05"
	defaultSheet  = "Sheet1"
	columnWidth   = 20
)

// Export writes one sheet with a header row of enabled field labels in
// position order, followed by created/updated columns and one row per record.
// Absent values are left blank.
func (s *Service) Export(ctx context.Context, formType domain.FormType) (*bytes.Buffer, string, error) {
	def, err := s.forms.Get(ctx, formType)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.records.ListDecoded(ctx, formType)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(def)
	fields := def.EnabledFields()
	header := make([]any, 0, len(fields)+2)
	for _, fc := range fields {
		header = append(header, fc.Label)
	}
	header = append(header, createdHeader, updatedHeader)

	if err := layoutSheet(f, sheet, header); err != nil {
		s.log.ErrorContext(ctx, "prepare sheet failed",
			slog.String("form_type", formType.String()),
			slog.String("error", err.Error()),
		)
		return nil, "", fmt.Errorf("export %s: %w", formType, err)
	}

	for i, rec := range rows {
		line := make([]any, 0, len(header))
		for _, fc := range fields {
			line = append(line, cellValue(rec.Fields.Get(fc.Name)))
		}
		line = append(line, rec.CreatedAt.Format(timeLayout), rec.UpdatedAt.Format(timeLayout))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", fmt.Errorf("export %s: row %d: %w", formType, i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return nil, "", fmt.Errorf("export %s: row %d: %w", formType, i+2, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.log.ErrorContext(ctx, "write workbook failed", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("export %s: %w", formType, err)
	}

	filename := fmt.Sprintf("%s_%s.xlsx", formType, time.Now().UTC().Format("20060102"))
	s.log.InfoContext(ctx, "records exported",
		slog.String("form_type", formType.String()),
		slog.Int("rows", len(rows)),
	)
	return buf, filename, nil
}

// layoutSheet makes sheet the only sheet of f and writes a styled header row.
func layoutSheet(f *excelize.File, sheet string, header []any) error {
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if sheet != defaultSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("delete default sheet: %w", err)
		}
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("header row: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, columnWidth); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	return nil
}

func cellValue(v domain.Value) any {
	switch v.Kind() {
	case domain.KindNumber:
		n, _ := v.AsNumber()
		return n
	case domain.KindBool:
		b, _ := v.AsBool()
		return b
	case domain.KindAbsent, domain.KindNull, domain.KindList, domain.KindUpload:
		return ""
	}
	return v.Canonical()
}

// sheetName returns a valid sheet name: at most 31 characters, none of : \ / ? * [ ].
func sheetName(def domain.FormDefinition) string {
	name := def.Name
	if name == "" {
		name = def.FormType.String()
	}
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		out = append(out, r)
		if len(out) == 31 {
			break
		}
	}
	if len(out) == 0 {
		return defaultSheet
	}
	return string(out)
}
