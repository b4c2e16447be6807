package service

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/tutortrack-api/internal/models"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/export"
)

// ExportService renders student ledger statements as CSV or PDF.
type ExportService struct {
	state  *StateService
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(state *StateService, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{state: state, csv: csv, pdf: pdf, logger: logger}
}

var statementHeaders = []string{"Date", "Kind", "Note", "Amount", "Balance"}

// StatementCSV renders a student's full ledger as CSV bytes.
func (s *ExportService) StatementCSV(ownerID, studentID string) ([]byte, string, error) {
	student, data, err := s.statementDataset(ownerID, studentID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render statement")
	}
	return payload, fmt.Sprintf("statement-%s.csv", student.ID), nil
}

// StatementPDF renders a student's full ledger as a tabular PDF.
func (s *ExportService) StatementPDF(ownerID, studentID string) ([]byte, string, error) {
	student, data, err := s.statementDataset(ownerID, studentID)
	if err != nil {
		return nil, "", err
	}
	payload, err := s.pdf.Render(data, fmt.Sprintf("%s - Hesap Dökümü", student.Name))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render statement")
	}
	return payload, fmt.Sprintf("statement-%s.pdf", student.ID), nil
}

// statementDataset flattens the ledger oldest-first with a running balance:
// credits add, debits subtract the implicit fee so the balance tracks what a
// payment still covers.
func (s *ExportService) statementDataset(ownerID, studentID string) (*models.Student, export.Dataset, error) {
	state, err := s.state.Get(ownerID)
	if err != nil {
		return nil, export.Dataset{}, err
	}
	student, ok := state.Students[studentID]
	if !ok {
		return nil, export.Dataset{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	history := append([]models.Transaction(nil), student.History...)
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Date.Before(history[j].Date)
	})

	rows := make([]map[string]string, 0, len(history))
	var balance float64
	for _, tx := range history {
		if tx.IsDebt {
			balance -= tx.Amount
		} else {
			balance += tx.Amount
		}
		rows = append(rows, map[string]string{
			"Date":    tx.Date.Format("2006-01-02 15:04"),
			"Kind":    string(tx.EffectiveKind()),
			"Note":    tx.Note,
			"Amount":  fmt.Sprintf("%.2f", tx.Amount),
			"Balance": fmt.Sprintf("%.2f", balance),
		})
	}
	return student, export.Dataset{Headers: statementHeaders, Rows: rows}, nil
}
