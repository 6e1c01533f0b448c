package export

import (
	"fmt"
	"strings"

	"wishlist/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Wishlist"

var columnHeaders = []string{
	"Name", "Category", "Desire", "Status", "Score", "Price", "Reason", "Memo",
}

// BuildWorkbook renders the ranked wishlist into an xlsx workbook. The caller
// passes items already ordered by score descending and owns closing the file.
func BuildWorkbook(items []models.WishItem) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	writeHeaders(f)
	writeItems(f, items)

	_ = f.SetColWidth(sheetName, "A", "A", 25)
	_ = f.SetColWidth(sheetName, "B", "E", 14)
	_ = f.SetColWidth(sheetName, "F", "F", 12)
	_ = f.SetColWidth(sheetName, "G", "H", 30)

	_ = f.DeleteSheet("Sheet1")

	return f, nil
}

func writeHeaders(f *excelize.File) {
	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range columnHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func writeItems(f *excelize.File, items []models.WishItem) {
	resolvedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#EDEDED"}, Pattern: 1},
	})

	for i, item := range items {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), item.Name)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), string(item.Category))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), desireStars(item.DesireLevel))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), string(item.Status))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), item.Score)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), item.Price)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), item.Reason)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), item.Memo)

		// Grey out purchased and rejected items.
		if item.Status == models.StatusPurchased || item.Status == models.StatusNotNeeded {
			startCell, _ := excelize.CoordinatesToCellName(1, row)
			endCell, _ := excelize.CoordinatesToCellName(len(columnHeaders), row)
			_ = f.SetCellStyle(sheetName, startCell, endCell, resolvedStyle)
		}
	}
}

func desireStars(level int) string {
	if level < 0 {
		level = 0
	}
	if level > 3 {
		level = 3
	}
	return strings.Repeat("★", level) + strings.Repeat("☆", 3-level)
}
