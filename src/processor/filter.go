// filter.go
package processor

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/dravya1311/Delay-Model-2/src/utils"
)

// Selection 用户选择的过滤子集
// 某字段的切片为空表示对该字段不加限制（允许全部），
// UI默认全选，但用户清空选择后同样落到这里
type Selection struct {
	Regions       []string `json:"regions"`
	ShippingModes []string `json:"shipping_modes"`
}

// ApplyFilter 区域与运输方式取交集过滤
func ApplyFilter(df dataframe.DataFrame, sel Selection) dataframe.DataFrame {
	if len(sel.Regions) > 0 && utils.HasColumn(df, FieldOrderRegion) {
		df = df.Filter(dataframe.F{
			Colname:    FieldOrderRegion,
			Comparator: series.In,
			Comparando: sel.Regions,
		})
	}
	if len(sel.ShippingModes) > 0 && utils.HasColumn(df, FieldShippingMode) {
		df = df.Filter(dataframe.F{
			Colname:    FieldShippingMode,
			Comparator: series.In,
			Comparando: sel.ShippingModes,
		})
	}
	return df
}

// FilterOptions 过滤控件的候选值集合
type FilterOptions struct {
	Regions       []string `json:"regions"`
	ShippingModes []string `json:"shipping_modes"`
}

// Options 从工作集提取去重排序后的候选值，用于预置多选控件
func Options(df dataframe.DataFrame) FilterOptions {
	return FilterOptions{
		Regions:       distinctValues(df, FieldOrderRegion),
		ShippingModes: distinctValues(df, FieldShippingMode),
	}
}

func distinctValues(df dataframe.DataFrame, col string) []string {
	if !utils.HasColumn(df, col) {
		return nil
	}

	seen := make(map[string]bool)
	var values []string
	for _, v := range df.Col(col).Records() {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
