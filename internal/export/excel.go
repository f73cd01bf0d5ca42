// Package export 批处理脚本用的 Excel 报表生成
package export

import (
	"bytes"
	"fmt"

	"backoffice-data/internal/domain"

	"github.com/xuri/excelize/v2"
)

// CatalogExportHeader 商品目录导出表头
var CatalogExportHeader = []string{
	"Product",
	"Category",
	"Price",
	"Stock Quantity",
}

// OpenSessionExportHeader 进行中考勤导出表头
var OpenSessionExportHeader = []string{
	"Employee ID",
	"Name",
	"Check In",
}

// GenerateCatalogExport 生成商品目录（含分类名）Excel 文件
func GenerateCatalogExport(products []*domain.ProductWithCategory) ([]byte, error) {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		category := any(nil)
		if p.HasCategory {
			category = p.CategoryName
		}
		rows = append(rows, []any{p.Name, category, p.Price, p.StockQuantity})
	}
	return generateExcel("Catalog", CatalogExportHeader, rows)
}

// GenerateOpenSessionExport 生成进行中考勤记录 Excel 文件
func GenerateOpenSessionExport(sessions []*domain.OpenSession) ([]byte, error) {
	rows := make([][]any, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []any{s.EmployeeID, s.Name, s.CheckIn.Format("2006-01-02 15:04:05")})
	}
	return generateExcel("Open Sessions", OpenSessionExportHeader, rows)
}

// generateExcel 生成单工作表 Excel 文件的通用函数
func generateExcel(sheetName string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// 删除默认的 Sheet1
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	// 表头加粗
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write excel: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel: %w", err)
	}

	return buf.Bytes(), nil
}
