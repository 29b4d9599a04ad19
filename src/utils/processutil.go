package utils

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// HasColumn 判断DataFrame是否有某列
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// HasColumns 判断DataFrame是否有全部列，返回缺失列表
func HasColumns(df dataframe.DataFrame, names ...string) (missing []string) {
	for _, name := range names {
		if !HasColumn(df, name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// WriteSheet 将DataFrame写入excelize工作簿的指定工作表
func WriteSheet(f *excelize.File, sheetName string, df dataframe.DataFrame) error {
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("创建工作表失败: %w", err)
	}

	// 写入列名
	colNames := df.Names()
	for i, name := range colNames {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}

	// 写入数据
	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		for colIdx, colName := range colNames {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			val := df.Col(colName).Val(rowIdx)
			cv, ok := val.(float64)
			if ok {
				f.SetCellValue(sheetName, cell, cv)
			} else {
				f.SetCellValue(sheetName, cell, fmt.Sprint(val))
			}
		}
	}

	return nil
}
