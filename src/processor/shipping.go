// shipping.go
package processor

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// StandardClassMode 标准类运输方式的字面值，精确区分大小写
const StandardClassMode = "Standard Class"

// RegionModeCount (区域,运输方式)计数交叉表的一格
type RegionModeCount struct {
	Region string `json:"region"`
	Mode   string `json:"mode"`
	Count  int    `json:"count"`
}

// ShippingPreference 各区域运输方式偏好，完整交叉表，不截断
func ShippingPreference(df dataframe.DataFrame) ([]RegionModeCount, error) {
	if err := requireColumns(df, "运输方式偏好", FieldOrderRegion, FieldShippingMode); err != nil {
		return nil, err
	}

	regions := df.Col(FieldOrderRegion).Records()
	modes := df.Col(FieldShippingMode).Records()

	g := newGrouper()
	pairs := make(map[string][2]string, 16)
	for i := range regions {
		key := regions[i] + "\x00" + modes[i]
		g.at(key).count++
		pairs[key] = [2]string{regions[i], modes[i]}
	}

	out := make([]RegionModeCount, 0, len(g.groups))
	for _, st := range g.groups {
		p := pairs[st.key]
		out = append(out, RegionModeCount{Region: p[0], Mode: p[1], Count: st.count})
	}
	return out, nil
}

// DelayStat 单个分组的延误统计
type DelayStat struct {
	Key     string  `json:"key"`
	Delayed int     `json:"delayed"`
	Total   int     `json:"total"`
	Pct     float64 `json:"pct"`
}

// DelaySummary 延误分解结果，Worst为延误数最高的分组
type DelaySummary struct {
	Groups []DelayStat `json:"groups"`
	Worst  *DelayStat  `json:"worst,omitempty"`
}

// DelayByShippingMode 按运输方式的延误分解，延误数降序
func DelayByShippingMode(df dataframe.DataFrame) (DelaySummary, error) {
	return delaySummaryBy(df, "运输方式延误分解", FieldShippingMode)
}

// DelayByRegion 按区域的延误分解，形状与运输方式版一致
func DelayByRegion(df dataframe.DataFrame) (DelaySummary, error) {
	return delaySummaryBy(df, "区域延误分解", FieldOrderRegion)
}

func delaySummaryBy(df dataframe.DataFrame, feature, col string) (DelaySummary, error) {
	if err := requireColumns(df, feature, col, FieldLabel); err != nil {
		return DelaySummary{}, err
	}

	keys := df.Col(col).Records()
	labels := labelValues(df)

	g := newGrouper()
	for i, key := range keys {
		st := g.at(key)
		st.count++
		if isDelayed(labels[i]) {
			st.delayed++
		}
	}

	groups := make([]DelayStat, 0, len(g.groups))
	for _, st := range g.groups {
		groups = append(groups, DelayStat{
			Key:     st.key,
			Delayed: st.delayed,
			Total:   st.count,
			Pct:     delayPct(st.delayed, st.count),
		})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Delayed > groups[j].Delayed })

	summary := DelaySummary{Groups: groups}
	if len(groups) > 0 {
		// 降序排序后首个即最大延误数分组
		summary.Worst = &groups[0]
	}
	return summary, nil
}

// RegionRate 区域延误率，取值区间[0,1]
type RegionRate struct {
	Region string  `json:"region"`
	Rate   float64 `json:"rate"`
}

// StandardClassDelayRate 仅统计Standard Class子集的区域延误率
// 子集为空时返回空切片，由渲染层给出占位说明
func StandardClassDelayRate(df dataframe.DataFrame) ([]RegionRate, error) {
	if err := requireColumns(df, "标准类延误率",
		FieldShippingMode, FieldOrderRegion, FieldLabel); err != nil {
		return nil, err
	}

	std := df.Filter(dataframe.F{
		Colname:    FieldShippingMode,
		Comparator: series.Eq,
		Comparando: StandardClassMode,
	})
	if std.Nrow() == 0 {
		return nil, nil
	}

	regions := std.Col(FieldOrderRegion).Records()
	labels := labelValues(std)

	g := newGrouper()
	for i, region := range regions {
		st := g.at(region)
		st.count++
		if isDelayed(labels[i]) {
			st.delayed++
		}
	}

	out := make([]RegionRate, 0, len(g.groups))
	for _, st := range g.groups {
		out = append(out, RegionRate{
			Region: st.key,
			Rate:   float64(st.delayed) / float64(st.count),
		})
	}
	return out, nil
}
