package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"translation-practice/services/rest-api/internal/domain"
)

const (
	SheetName   = "Favorites"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	timeLayout  = "2006-01-02 15:04"
)

var header = []any{"ID", "Japanese", "English", "Saved at"}

// WriteFavorites writes the favorites as a single-sheet workbook, one row per
// favorite under a bold header row.
func WriteFavorites(w io.Writer, favs []domain.FavoriteQuestion) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "D1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, fav := range favs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{fav.ID, fav.JapaneseText, fav.EnglishAnswer, fav.CreatedAt.UTC().Format(timeLayout)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "C", 48); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "D", "D", 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Filename is the download name for a user's export.
func Filename(userID int64) string {
	return fmt.Sprintf("favorites-%d.xlsx", userID)
}
