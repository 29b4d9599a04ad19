// regions.go
package processor

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// GroupAverage 分组均值（区域KPI表）
type GroupAverage struct {
	Key   string  `json:"key"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// AveragesByRegion 按区域求某度量列的均值
// 区域缺失的行归入空串分组，不丢弃；结果按均值降序，并列保持首现顺序
func AveragesByRegion(df dataframe.DataFrame, valueCol string) ([]GroupAverage, error) {
	if err := requireColumns(df, "区域均值", FieldOrderRegion, valueCol); err != nil {
		return nil, err
	}

	regions := df.Col(FieldOrderRegion).Records()
	values := df.Col(valueCol).Float()

	g := newGrouper()
	for i, region := range regions {
		st := g.at(region)
		st.sum += values[i]
		st.count++
	}

	out := make([]GroupAverage, 0, len(g.groups))
	for _, st := range g.groups {
		out = append(out, GroupAverage{
			Key:   st.key,
			Mean:  st.sum / float64(st.count),
			Count: st.count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	return out, nil
}

// RegionProduct 每个区域利润总和最高的单个产品
type RegionProduct struct {
	Region  string  `json:"region"`
	Product string  `json:"product"`
	Profit  float64 `json:"profit"`
}

// BestProductPerRegion 按(区域,产品)求利润和，再在每个区域内取最大
// 并列时保留分组中先出现的产品，对同一输入可重复
func BestProductPerRegion(df dataframe.DataFrame) ([]RegionProduct, error) {
	if err := requireColumns(df, "区域最优产品",
		FieldOrderRegion, FieldProductName, FieldProfitPerOrder); err != nil {
		return nil, err
	}

	regions := df.Col(FieldOrderRegion).Records()
	products := df.Col(FieldProductName).Records()
	profits := df.Col(FieldProfitPerOrder).Float()

	// 区域首现顺序
	var regionOrder []string
	// 区域 -> 该区域内产品的首现顺序分组
	perRegion := make(map[string]*grouper)

	for i, region := range regions {
		g, ok := perRegion[region]
		if !ok {
			g = newGrouper()
			perRegion[region] = g
			regionOrder = append(regionOrder, region)
		}
		st := g.at(products[i])
		st.sum += profits[i]
	}

	out := make([]RegionProduct, 0, len(regionOrder))
	for _, region := range regionOrder {
		var best *groupStat
		for _, st := range perRegion[region].groups {
			// 严格大于：并列保留首现产品
			if best == nil || st.sum > best.sum {
				best = st
			}
		}
		if best == nil {
			continue
		}
		out = append(out, RegionProduct{Region: region, Product: best.key, Profit: best.sum})
	}
	return out, nil
}
