package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/alimgiray/reviewboard/internal/reviewstatus"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Pull Requests"

var exportHeader = []interface{}{
	"PR", "Title", "Author", "Lifecycle", "Status", "Severity",
	"Approvals", "Required", "Progress", "Pending Reviewers", "Changes Requested By",
	"Labels", "Created", "Updated", "URL",
}

// ExportService renders evaluated pull requests as an XLSX workbook
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// WriteWorkbook writes one row per evaluation, in the given order
func (s *ExportService) WriteWorkbook(w io.Writer, evals []reviewstatus.Evaluation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastColumn, err := excelize.ColumnNumberToName(len(exportHeader))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastColumn+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, eval := range evals {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		pr := eval.PR
		c := eval.Classification
		row := []interface{}{
			pr.GithubPRNumber, pr.Title, pr.Author, string(pr.Status), c.Label, string(c.Severity),
			c.Approvals, c.TotalRequired, c.ProgressRatio,
			strings.Join(eval.Sets.Pending, ", "), strings.Join(eval.Sets.ChangesRequested, ", "),
			strings.Join(pr.Labels, ", "), pr.CreatedAt, pr.UpdatedAt, pr.URL,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write pull request #%d: %w", pr.GithubPRNumber, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
