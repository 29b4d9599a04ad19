// page.go
package render

import (
	"html/template"
	"strconv"

	"github.com/go-gota/gota/dataframe"

	"github.com/dravya1311/Delay-Model-2/src/processor"
)

// Table 渲染用的小结果表
type Table struct {
	Headers []string
	Rows    [][]string
}

// Section 仪表盘的一个区块
// Note为降级说明，Err为路线功能的中止诊断，Chart为图表端点名
type Section struct {
	Title string
	Sheet string // /export 的工作表名
	Note  string
	Warn  string
	Err   string
	Table *Table
	Chart string
}

// OptionItem 多选控件的一个候选项
type OptionItem struct {
	Value    string
	Selected bool
}

// PageData 仪表盘页面数据
type PageData struct {
	Counts     processor.LabelCounts
	RegionOpts []OptionItem
	ShipOpts   []OptionItem
	Sections   []Section
	Origin     string
	LoadedAt   string
	Query      template.URL
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func fmtInt(v int) string       { return strconv.Itoa(v) }

// displayKey 缺失分组键的展示形式
func displayKey(k string) string {
	if k == "" {
		return "(missing)"
	}
	return k
}

// buildSections 依次执行全部聚合视图并组装区块
// 每个视图独立守卫前置条件，互不影响
func buildSections(filtered dataframe.DataFrame) []Section {
	var sections []Section

	// 区域均值KPI
	sections = append(sections,
		averageSection("Average Sales per Customer by Region", "RegionAvgSales", filtered, processor.FieldSales),
		averageSection("Average Profit per Order by Region", "RegionAvgProfit", filtered, processor.FieldProfitPerOrder),
	)

	// 头部市场
	sections = append(sections,
		topValuesSection("Top 5 Countries by Order Count", "TopCountries", filtered, processor.FieldOrderCountry),
		topValuesSection("Top 5 Regions by Order Count", "TopRegions", filtered, processor.FieldOrderRegion),
	)

	// 类目利润排行
	if top8, err := processor.TopCategoriesByProfit(filtered); err != nil {
		sections = append(sections, Section{Title: "Top 8 Most Profitable Categories", Note: err.Error()})
	} else {
		sections = append(sections, Section{
			Title: "Top 8 Most Profitable Categories",
			Sheet: "TopCategoriesProfit",
			Table: groupSumTable(top8, "category", "profit"),
			Chart: "categories-profit",
		})
	}

	// 区域最优产品
	if best, err := processor.BestProductPerRegion(filtered); err != nil {
		sections = append(sections, Section{Title: "Most Profitable Product per Region", Note: err.Error()})
	} else {
		rows := make([][]string, 0, len(best))
		for _, b := range best {
			rows = append(rows, []string{displayKey(b.Region), b.Product, fmtFloat(b.Profit)})
		}
		sections = append(sections, Section{
			Title: "Most Profitable Product per Region",
			Sheet: "BestProductPerRegion",
			Table: &Table{Headers: []string{"region", "product", "profit"}, Rows: rows},
		})
	}

	// 类目销量与营收
	if qty, err := processor.TopCategoriesByQuantity(filtered); err != nil {
		sections = append(sections, Section{Title: "Top 5 Categories by Quantity", Note: err.Error()})
	} else {
		sections = append(sections, Section{
			Title: "Top 5 Categories by Quantity",
			Sheet: "TopCategoriesQty",
			Table: groupSumTable(qty, "category", "quantity"),
			Chart: "categories-quantity",
		})
	}
	if rev, err := processor.TopCategoriesByRevenue(filtered); err != nil {
		sections = append(sections, Section{Title: "Top 5 Categories by Revenue", Note: err.Error()})
	} else {
		sections = append(sections, Section{
			Title: "Top 5 Categories by Revenue",
			Sheet: "TopCategoriesRevenue",
			Table: groupSumTable(rev, "category", "sales"),
			Chart: "categories-revenue",
		})
	}

	// 运输方式偏好交叉表
	if pref, err := processor.ShippingPreference(filtered); err != nil {
		sections = append(sections, Section{Title: "Preferred Shipping Mode by Region", Note: err.Error()})
	} else {
		rows := make([][]string, 0, len(pref))
		for _, p := range pref {
			rows = append(rows, []string{displayKey(p.Region), displayKey(p.Mode), fmtInt(p.Count)})
		}
		sections = append(sections, Section{
			Title: "Preferred Shipping Mode by Region",
			Sheet: "ShippingPreference",
			Table: &Table{Headers: []string{"region", "shipping mode", "orders"}, Rows: rows},
			Chart: "shipping-preference",
		})
	}

	// 延误分解
	sections = append(sections,
		delaySection("Delayed Orders by Shipping Mode", "DelayByShippingMode", "delay-by-mode", "shipping mode",
			func() (processor.DelaySummary, error) { return processor.DelayByShippingMode(filtered) }),
		delaySection("Delayed Orders by Region", "DelayByRegion", "delay-pct-region", "region",
			func() (processor.DelaySummary, error) { return processor.DelayByRegion(filtered) }),
	)

	// 标准类子集延误率
	if rates, err := processor.StandardClassDelayRate(filtered); err != nil {
		sections = append(sections, Section{Title: "Delay Rate by Region (Standard Class)", Note: err.Error()})
	} else if len(rates) == 0 {
		sections = append(sections, Section{
			Title: "Delay Rate by Region (Standard Class)",
			Note:  "当前过滤条件下没有Standard Class订单",
		})
	} else {
		rows := make([][]string, 0, len(rates))
		for _, rt := range rates {
			rows = append(rows, []string{displayKey(rt.Region), fmtFloat(rt.Rate)})
		}
		sections = append(sections, Section{
			Title: "Delay Rate by Region (Standard Class)",
			Sheet: "StdClassDelayRate",
			Table: &Table{Headers: []string{"region", "delay rate"}, Rows: rows},
			Chart: "stdclass-rate",
		})
	}

	// 延误路线排行：四个端点列整组必备，缺列时该功能整体中止
	if routes, err := processor.TopDelayedRoutes(filtered); err != nil {
		sections = append(sections, Section{Title: "Top 10 Most Delayed Routes", Err: err.Error()})
	} else {
		rows := make([][]string, 0, len(routes))
		for _, rt := range routes {
			rows = append(rows, []string{
				rt.Origin, rt.Destination, fmtInt(rt.Total), fmtInt(rt.Delayed), fmtFloat(rt.Pct),
			})
		}
		sections = append(sections, Section{
			Title: "Top 10 Most Delayed Routes (by Delay %)",
			Sheet: "TopDelayedRoutes",
			Table: &Table{Headers: []string{"origin", "destination", "orders", "delayed", "delay %"}, Rows: rows},
			Chart: "routes",
		})
	}

	return sections
}

func averageSection(title, sheet string, df dataframe.DataFrame, valueCol string) Section {
	avgs, err := processor.AveragesByRegion(df, valueCol)
	if err != nil {
		return Section{Title: title, Note: err.Error()}
	}
	rows := make([][]string, 0, len(avgs))
	for _, a := range avgs {
		rows = append(rows, []string{displayKey(a.Key), fmtFloat(a.Mean), fmtInt(a.Count)})
	}
	return Section{
		Title: title,
		Sheet: sheet,
		Table: &Table{Headers: []string{"region", "average", "orders"}, Rows: rows},
	}
}

func topValuesSection(title, sheet string, df dataframe.DataFrame, col string) Section {
	top, err := processor.TopValues(df, title, col, 5)
	if err != nil {
		return Section{Title: title, Note: err.Error()}
	}
	rows := make([][]string, 0, len(top))
	for _, t := range top {
		rows = append(rows, []string{t.Value, fmtInt(t.Count)})
	}
	return Section{
		Title: title,
		Sheet: sheet,
		Table: &Table{Headers: []string{"value", "orders"}, Rows: rows},
	}
}

func delaySection(title, sheet, chart, keyHeader string, view func() (processor.DelaySummary, error)) Section {
	summary, err := view()
	if err != nil {
		return Section{Title: title, Note: err.Error()}
	}
	rows := make([][]string, 0, len(summary.Groups))
	for _, g := range summary.Groups {
		rows = append(rows, []string{displayKey(g.Key), fmtInt(g.Delayed), fmtInt(g.Total), fmtFloat(g.Pct)})
	}
	sec := Section{
		Title: title,
		Sheet: sheet,
		Table: &Table{Headers: []string{keyHeader, "delayed", "total", "delay %"}, Rows: rows},
		Chart: chart,
	}
	if summary.Worst != nil {
		sec.Warn = "Most delayed " + keyHeader + ": " + displayKey(summary.Worst.Key) +
			" — " + fmtInt(summary.Worst.Delayed) + " delays (" + fmtFloat(summary.Worst.Pct) + "% of its orders)"
	}
	return sec
}

func groupSumTable(rows []processor.GroupSum, keyHeader, valueHeader string) *Table {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{displayKey(r.Key), fmtFloat(r.Sum)})
	}
	return &Table{Headers: []string{keyHeader, valueHeader}, Rows: out}
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Order Delay Analysis Dashboard</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 240px; padding: 16px; background: #f3f4f6; min-height: 100vh; }
main { flex: 1; padding: 24px; }
.tiles { display: flex; gap: 16px; margin-bottom: 24px; }
.tile { flex: 1; background: #eef2ff; border-radius: 8px; padding: 16px; }
.tile .num { font-size: 28px; font-weight: bold; }
table { border-collapse: collapse; margin-bottom: 16px; }
th, td { border: 1px solid #d1d5db; padding: 4px 10px; text-align: left; }
.note { background: #e0f2fe; padding: 8px 12px; border-radius: 6px; }
.warn { background: #fef3c7; padding: 8px 12px; border-radius: 6px; }
.err { background: #fee2e2; padding: 8px 12px; border-radius: 6px; }
iframe { border: none; width: 100%; height: 480px; }
select { width: 100%; }
</style>
</head>
<body>
<aside>
<h3>Filters</h3>
<form method="GET" action="/">
<input type="hidden" name="cleared" value="1">
<label>Order Region</label>
<select name="region" multiple size="8">
{{range .RegionOpts}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>
<label>Shipping Mode</label>
<select name="ship" multiple size="5">
{{range .ShipOpts}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>
{{end}}</select>
<p><button type="submit">Apply</button></p>
</form>
<p><a href="/export{{if .Query}}?{{.Query}}{{end}}">Download XLSX report</a></p>
<p><a href="/api/summary{{if .Query}}?{{.Query}}{{end}}">JSON summary</a></p>
<p>Dataset: {{.Origin}} ({{.LoadedAt}})</p>
</aside>
<main>
<h1>Order Delay Analysis Dashboard</h1>
<p><b>Delay labeling:</b> -1 = delayed, 0 = on-time, 1 = early</p>
<div class="tiles">
<div class="tile">Total orders<div class="num">{{.Counts.Total}}</div></div>
<div class="tile">Delayed (label=-1)<div class="num">{{.Counts.Delayed}}</div></div>
<div class="tile">On-time (label=0)<div class="num">{{.Counts.OnTime}}</div></div>
<div class="tile">Early (label=1)<div class="num">{{.Counts.Early}}</div></div>
</div>
{{range .Sections}}
<h2>{{.Title}}</h2>
{{if .Err}}<p class="err">{{.Err}}</p>{{end}}
{{if .Note}}<p class="note">{{.Note}}</p>{{end}}
{{if .Warn}}<p class="warn">{{.Warn}}</p>{{end}}
{{if .Table}}<table>
<tr>{{range .Table.Headers}}<th>{{.}}</th>{{end}}</tr>
{{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>{{end}}
{{if .Chart}}<iframe src="/charts/{{.Chart}}{{if $.Query}}?{{$.Query}}{{end}}"></iframe>{{end}}
{{end}}
</main>
</body>
</html>
`))
