package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kishansingy/ielts-backend-sub000/internal/evaluation"
	"github.com/xuri/excelize/v2"
)

// Workbook sheets holding the reference tables. Synonym and variation sheets
// carry one group per row; the plural sheet carries singular, plural pairs.
const (
	SynonymSheet   = "synonyms"
	VariationSheet = "variations"
	PluralSheet    = "irregular_plurals"
)

type ReferenceImportSummary struct {
	SynonymGroups   int      `json:"synonym_groups"`
	VariationGroups int      `json:"variation_groups"`
	IrregularPairs  int      `json:"irregular_pairs"`
	DefaultedSheets []string `json:"defaulted_sheets,omitempty"`
}

type ReferenceService interface {
	Import(ctx context.Context, r io.Reader) (*evaluation.ReferenceTables, *ReferenceImportSummary, error)
	Export(ctx context.Context, tables *evaluation.ReferenceTables) ([]byte, error)
}

type referenceService struct {
	logger *slog.Logger
}

func NewReferenceService(logger *slog.Logger) ReferenceService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &referenceService{logger: logger.With("service", "reference")}
}

// Import reads reference tables from an XLSX workbook. A missing sheet falls
// back to the built-in table of the same kind.
func (s *referenceService) Import(ctx context.Context, r io.Reader) (*evaluation.ReferenceTables, *ReferenceImportSummary, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open workbook: %v", ErrReferenceImport, err)
	}
	defer f.Close()

	defaults := evaluation.DefaultReferenceTables()
	summary := &ReferenceImportSummary{}

	synonyms, found, err := readGroups(f, SynonymSheet)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		synonyms = defaults.SynonymGroups()
		summary.DefaultedSheets = append(summary.DefaultedSheets, SynonymSheet)
	}

	variations, found, err := readGroups(f, VariationSheet)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		variations = defaults.VariationGroups()
		summary.DefaultedSheets = append(summary.DefaultedSheets, VariationSheet)
	}

	plurals, found, err := readPlurals(f)
	if err != nil {
		return nil, nil, err
	}
	if !found {
		plurals = defaults.IrregularPlurals()
		summary.DefaultedSheets = append(summary.DefaultedSheets, PluralSheet)
	}

	tables := evaluation.NewReferenceTables(synonyms, variations, plurals)
	summary.SynonymGroups = len(tables.SynonymGroups())
	summary.VariationGroups = len(tables.VariationGroups())
	summary.IrregularPairs = len(tables.IrregularPlurals())

	s.logger.InfoContext(ctx, "Reference tables imported",
		"synonym_groups", summary.SynonymGroups,
		"variation_groups", summary.VariationGroups,
		"irregular_pairs", summary.IrregularPairs,
		"defaulted_sheets", summary.DefaultedSheets)

	return tables, summary, nil
}

func readGroups(f *excelize.File, sheet string) ([][]string, bool, error) {
	rows, found, err := sheetRows(f, sheet)
	if err != nil || !found {
		return nil, found, err
	}

	groups := make([][]string, 0, len(rows))
	for _, row := range rows {
		group := make([]string, 0, len(row))
		for _, cell := range row {
			if cell = strings.TrimSpace(cell); cell != "" {
				group = append(group, cell)
			}
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups, true, nil
}

func readPlurals(f *excelize.File) ([]evaluation.IrregularPair, bool, error) {
	rows, found, err := sheetRows(f, PluralSheet)
	if err != nil || !found {
		return nil, found, err
	}

	pairs := make([]evaluation.IrregularPair, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
			return nil, true, fmt.Errorf("%w: %s row %d needs a singular and a plural", ErrReferenceImport, PluralSheet, i+1)
		}
		pairs = append(pairs, evaluation.IrregularPair{
			Singular: strings.TrimSpace(row[0]),
			Plural:   strings.TrimSpace(row[1]),
		})
	}
	return pairs, true, nil
}

func sheetRows(f *excelize.File, sheet string) ([][]string, bool, error) {
	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrReferenceImport, err)
	}
	if index < 0 {
		return nil, false, nil
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, true, fmt.Errorf("%w: failed to read sheet %s: %v", ErrReferenceImport, sheet, err)
	}
	return rows, true, nil
}

// Export writes tables in the layout Import reads.
func (s *referenceService) Export(ctx context.Context, tables *evaluation.ReferenceTables) ([]byte, error) {
	if tables == nil {
		tables = evaluation.DefaultReferenceTables()
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SynonymSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeGroups(f, SynonymSheet, tables.SynonymGroups()); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(VariationSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	if err := writeGroups(f, VariationSheet, tables.VariationGroups()); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(PluralSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	for i, pair := range tables.IrregularPlurals() {
		row := []interface{}{pair.Singular, pair.Plural}
		if err := f.SetSheetRow(PluralSheet, rowCell(i), &row); err != nil {
			return nil, fmt.Errorf("failed to write Excel row: %w", err)
		}
	}

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.DebugContext(ctx, "Reference tables exported", "bytes", buf.Len())
	return buf.Bytes(), nil
}

func writeGroups(f *excelize.File, sheet string, groups [][]string) error {
	for i, group := range groups {
		row := make([]interface{}, len(group))
		for j, form := range group {
			row[j] = form
		}
		if err := f.SetSheetRow(sheet, rowCell(i), &row); err != nil {
			return fmt.Errorf("failed to write Excel row: %w", err)
		}
	}
	return nil
}

// rowCell is the first cell of the zero based row i
func rowCell(i int) string {
	cell, _ := excelize.CoordinatesToCellName(1, i+1)
	return cell
}
