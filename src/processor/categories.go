// categories.go
package processor

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// GroupSum 分组求和排行的一行
type GroupSum struct {
	Key string  `json:"key"`
	Sum float64 `json:"sum"`
}

// SumByGroup 按groupCol分组对valueCol求和，降序取前topN
// 并列保持分组首现顺序；topN<=0表示不截断
func SumByGroup(df dataframe.DataFrame, feature, groupCol, valueCol string, topN int) ([]GroupSum, error) {
	if err := requireColumns(df, feature, groupCol, valueCol); err != nil {
		return nil, err
	}

	keys := df.Col(groupCol).Records()
	values := df.Col(valueCol).Float()

	g := newGrouper()
	for i, key := range keys {
		g.at(key).sum += values[i]
	}

	out := make([]GroupSum, 0, len(g.groups))
	for _, st := range g.groups {
		out = append(out, GroupSum{Key: st.key, Sum: st.sum})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sum > out[j].Sum })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// TopCategoriesByProfit 利润最高的8个类目
func TopCategoriesByProfit(df dataframe.DataFrame) ([]GroupSum, error) {
	return SumByGroup(df, "类目利润排行", FieldCategoryName, FieldProfitPerOrder, 8)
}

// TopCategoriesByQuantity 销量最高的5个类目
func TopCategoriesByQuantity(df dataframe.DataFrame) ([]GroupSum, error) {
	return SumByGroup(df, "类目销量排行", FieldCategoryName, FieldQuantity, 5)
}

// TopCategoriesByRevenue 营收最高的5个类目
func TopCategoriesByRevenue(df dataframe.DataFrame) ([]GroupSum, error) {
	return SumByGroup(df, "类目营收排行", FieldCategoryName, FieldSales, 5)
}

// GroupCount 按出现次数的排行
type GroupCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TopValues 某列出现最频繁的topN个取值，缺失值不参与
// 并列保持首现顺序，不做次级重排
func TopValues(df dataframe.DataFrame, feature, col string, topN int) ([]GroupCount, error) {
	if err := requireColumns(df, feature, col); err != nil {
		return nil, err
	}

	g := newGrouper()
	for _, v := range df.Col(col).Records() {
		if v == "" {
			continue
		}
		g.at(v).count++
	}

	out := make([]GroupCount, 0, len(g.groups))
	for _, st := range g.groups {
		out = append(out, GroupCount{Value: st.key, Count: st.count})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}
