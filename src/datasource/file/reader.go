// reader.go
package file

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ReadCSVToDataFrame 从本地路径读取数据集
func ReadCSVToDataFrame(filePath string) (dataframe.DataFrame, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer f.Close()

	return FromReader(f)
}

// FromReader 将CSV内容转换为Gota DataFrame
// 关闭类型推断，所有列一律按字符串载入，数值化由processor显式完成，
// 避免不同数据集修订版触发不一致的自动类型
func FromReader(r io.Reader) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse csv: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return df, fmt.Errorf("csv文件没有数据行")
	}
	return df, nil
}
