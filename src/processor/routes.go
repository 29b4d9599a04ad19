// routes.go
package processor

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
)

// routeColumns 路线功能整组必备的可选列
// 与其他可选功能不同，缺任何一列整个功能都中止：没有四个端点路线无意义
var routeColumns = []string{
	FieldOrderCity,
	FieldOrderCountry,
	FieldCustomerCity,
	FieldCustomerCountry,
}

// RouteStat 一条(起点,终点)路线的延误统计
type RouteStat struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Total       int     `json:"total"`
	Delayed     int     `json:"delayed"`
	Pct         float64 `json:"pct"`
}

// TopDelayedRoutes 延误率最高的10条路线
// 路线标识为 "<城市>, <国家>"，缺失分量保留为空串而不是跳过
// 不足10条时全部返回，并列保持分组首现顺序
func TopDelayedRoutes(df dataframe.DataFrame) ([]RouteStat, error) {
	cols := append(append([]string{}, routeColumns...), FieldLabel)
	if err := requireColumns(df, "延误路线排行", cols...); err != nil {
		return nil, err
	}

	orderCity := df.Col(FieldOrderCity).Records()
	orderCountry := df.Col(FieldOrderCountry).Records()
	custCity := df.Col(FieldCustomerCity).Records()
	custCountry := df.Col(FieldCustomerCountry).Records()
	labels := labelValues(df)

	g := newGrouper()
	ends := make(map[string][2]string)
	for i := range orderCity {
		origin := orderCity[i] + ", " + orderCountry[i]
		destination := custCity[i] + ", " + custCountry[i]
		key := origin + "\x00" + destination

		st := g.at(key)
		st.count++
		if isDelayed(labels[i]) {
			st.delayed++
		}
		ends[key] = [2]string{origin, destination}
	}

	out := make([]RouteStat, 0, len(g.groups))
	for _, st := range g.groups {
		e := ends[st.key]
		out = append(out, RouteStat{
			Origin:      e[0],
			Destination: e[1],
			Total:       st.count,
			Delayed:     st.delayed,
			Pct:         delayPct(st.delayed, st.count),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pct > out[j].Pct })
	if len(out) > 10 {
		out = out[:10]
	}
	return out, nil
}
