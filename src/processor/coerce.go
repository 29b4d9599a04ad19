// coerce.go
package processor

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/dravya1311/Delay-Model-2/src/utils"
)

// measureFields 数值度量列，无法解析的值按0处理（求和/均值的安全单位元）
var measureFields = []string{FieldSales, FieldProfitPerOrder, FieldQuantity}

// BuildWorking 把已解析的原始列重命名为固定逻辑名，只保留解析成功的列
// 未解析的可选字段直接缺席，依赖它的视图自行降级
func BuildWorking(raw dataframe.DataFrame, resolved map[string]string) dataframe.DataFrame {
	var cols []series.Series
	for _, field := range logicalFields {
		orig, ok := resolved[field]
		if !ok {
			continue
		}
		cols = append(cols, series.New(raw.Col(orig).Records(), series.String, field))
	}
	return dataframe.New(cols...)
}

// Coerce 数值化：
// label列无法解析的值变为NaN（缺失，精确取值计数一律排除）
// 度量列无法解析的值变为0
func Coerce(df dataframe.DataFrame) dataframe.DataFrame {
	if utils.HasColumn(df, FieldLabel) {
		df = df.Mutate(toFloat(df.Col(FieldLabel), FieldLabel, math.NaN()))
	}
	for _, field := range measureFields {
		if utils.HasColumn(df, field) {
			df = df.Mutate(toFloat(df.Col(field), field, 0))
		}
	}
	return df
}

func toFloat(col series.Series, name string, fallback float64) series.Series {
	records := col.Records()
	vals := make([]float64, len(records))
	for i, rec := range records {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec), 64)
		if err != nil {
			vals[i] = fallback
			continue
		}
		vals[i] = v
	}
	return series.New(vals, series.Float, name)
}
