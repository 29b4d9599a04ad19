// charts.go
package render

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func newBar(title string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1080px", Height: "460px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	return bar
}

// simpleBar 单系列柱状图，柱顶显示数值标签
func simpleBar(title, seriesName string, names []string, values []float64) *charts.Bar {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}

	bar := newBar(title)
	bar.SetXAxis(names).AddSeries(seriesName, data)
	bar.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}

// horizontalBar 横向柱状图（路线排行用）
func horizontalBar(title, seriesName string, names []string, values []float64) *charts.Bar {
	bar := simpleBar(title, seriesName, names, values)
	bar.XYReversal()
	bar.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
	)
	return bar
}

// groupedBar 按次级维度分色的并排柱状图（区域×运输方式）
func groupedBar(title string, categories []string, seriesNames []string, data map[string][]float64) *charts.Bar {
	bar := newBar(title)
	bar.SetXAxis(categories)
	for _, name := range seriesNames {
		values := data[name]
		barData := make([]opts.BarData, len(values))
		for i, v := range values {
			barData[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(name, barData)
	}
	bar.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}
