package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
	"github.com/sujay090/Dynamic-form-sub001/internal/service/record"
)

// ErrNoRows is returned for workbooks without data rows.
var ErrNoRows = fmt.Errorf("%w: workbook has no data rows", domain.ErrValidation)

const rowFailedMessage = "record could not be saved"

// RowError describes a row that could not be imported.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult summarizes an import.
type ImportResult struct {
	Created int        `json:"created"`
	Failed  []RowError `json:"failed"`
}

// Import reads the first sheet of a workbook and submits each data row as a
// record of formType. Header cells are matched against field labels or
// names, case-insensitively; unmatched columns are ignored. Rows fail
// independently.
func (s *Service) Import(ctx context.Context, formType domain.FormType, r io.Reader) (*ImportResult, error) {
	def, err := s.forms.Get(ctx, formType)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.NewValidationError("file", "not a readable xlsx workbook")
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("import %s: read sheet: %w", formType, err)
	}
	if len(rows) < 2 {
		return nil, ErrNoRows
	}

	columns := matchHeader(def, rows[0])
	result := &ImportResult{Failed: []RowError{}}
	for i, row := range rows[1:] {
		rowNum := i + 2
		raw := make(map[string]any, len(columns))
		blank := true
		for col, name := range columns {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell != "" {
				blank = false
				raw[name] = cell
			}
		}
		if blank {
			continue
		}

		if _, err := s.records.Submit(ctx, record.SubmitInput{FormType: formType, Fields: raw}); err != nil {
			msg, ok := rowMessage(err)
			if !ok {
				s.log.ErrorContext(ctx, "import row failed",
					slog.String("form_type", formType.String()),
					slog.Int("row", rowNum),
					slog.String("error", err.Error()),
				)
			}
			result.Failed = append(result.Failed, RowError{Row: rowNum, Error: msg})
			continue
		}
		result.Created++
	}

	s.log.InfoContext(ctx, "records imported",
		slog.String("form_type", formType.String()),
		slog.Int("created", result.Created),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// rowMessage returns the text reported for a failed row. Only validation and
// duplicate errors are shown as is; ok is false for anything else.
func rowMessage(err error) (msg string, ok bool) {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrDuplicateEntity) {
		return err.Error(), true
	}
	return rowFailedMessage, false
}

// matchHeader maps column index to field name.
func matchHeader(def domain.FormDefinition, header []string) map[int]string {
	byKey := make(map[string]string)
	for _, fc := range def.EnabledFields() {
		if fc.InputType == domain.InputFile {
			continue
		}
		byKey[strings.ToLower(fc.Name)] = fc.Name
		byKey[strings.ToLower(fc.Label)] = fc.Name
	}
	out := make(map[int]string)
	for i, h := range header {
		if name, ok := byKey[strings.ToLower(strings.TrimSpace(h))]; ok {
			out[i] = name
		}
	}
	return out
}
