// handler.go
package render

import (
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-gota/gota/dataframe"

	"github.com/dravya1311/Delay-Model-2/src/datasource"
	"github.com/dravya1311/Delay-Model-2/src/processor"
	"github.com/dravya1311/Delay-Model-2/src/storage"
)

// Handler 仪表盘HTTP处理器
type Handler struct {
	cache   *datasource.DatasetCache
	aliases map[string][]string // 配置追加的表头别名
	logger  *storage.Logger
}

func NewHandler(cache *datasource.DatasetCache, aliases map[string][]string, logger *storage.Logger) *Handler {
	return &Handler{cache: cache, aliases: aliases, logger: logger}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", h.Dashboard)
	r.Get("/charts/{name}", h.Chart)
	r.Get("/export", h.Export)
	r.Get("/logs", h.Logs)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/summary", h.Summary)
		r.Get("/options", h.OptionsAPI)
	})

	return r
}

// session 每次请求重建渲染上下文：加载 -> 解析 -> 数值化 -> 过滤选择
func (h *Handler) session(r *http.Request) (*processor.Session, error) {
	raw, ok := h.cache.Get()
	if !ok {
		return nil, fmt.Errorf("数据集尚未加载")
	}

	sess, err := processor.NewSession(raw, h.aliases)
	if err != nil {
		return nil, err
	}
	sess.Selection = parseSelection(r)
	return sess, nil
}

// parseSelection 从查询参数读取过滤选择
// 没有任何参数（首次访问或清空选择）等价于不加限制
func parseSelection(r *http.Request) processor.Selection {
	q := r.URL.Query()
	return processor.Selection{
		Regions:       q["region"],
		ShippingModes: q["ship"],
	}
}

// Dashboard GET / 渲染整页
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.logger.Error("渲染中止: " + err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filtered := sess.Filtered()
	opts := processor.Options(sess.Work)

	// 首次访问（未提交过表单）时控件预置为全选
	firstVisit := r.URL.Query().Get("cleared") == "" &&
		len(sess.Selection.Regions) == 0 && len(sess.Selection.ShippingModes) == 0

	origin, loadedAt := h.cache.Origin()
	data := PageData{
		Counts:     processor.Counts(filtered),
		RegionOpts: optionItems(opts.Regions, sess.Selection.Regions, firstVisit),
		ShipOpts:   optionItems(opts.ShippingModes, sess.Selection.ShippingModes, firstVisit),
		Sections:   buildSections(filtered),
		Origin:     origin,
		LoadedAt:   loadedAt.Format("2006-01-02 15:04:05"),
		Query:      queryOf(r),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		h.logger.Error("模板渲染失败: " + err.Error())
	}
}

func optionItems(values, selected []string, selectAll bool) []OptionItem {
	set := make(map[string]bool, len(selected))
	for _, s := range selected {
		set[s] = true
	}
	items := make([]OptionItem, 0, len(values))
	for _, v := range values {
		items = append(items, OptionItem{Value: v, Selected: selectAll || set[v]})
	}
	return items
}

// Chart GET /charts/{name} 渲染单个echarts图表页，供仪表盘iframe嵌入
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	filtered := sess.Filtered()

	name := chi.URLParam(r, "name")
	bar, err := h.buildChart(name, filtered)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := bar.Render(w); err != nil {
		h.logger.Error("图表渲染失败: " + err.Error())
	}
}

func (h *Handler) buildChart(name string, filtered dataframe.DataFrame) (renderable, error) {
	switch name {
	case "categories-profit":
		top8, err := processor.TopCategoriesByProfit(filtered)
		if err != nil {
			return nil, err
		}
		names, values := splitGroupSums(top8)
		return simpleBar("Top 8 Profitable Categories", "profit", names, values), nil

	case "categories-quantity":
		qty, err := processor.TopCategoriesByQuantity(filtered)
		if err != nil {
			return nil, err
		}
		names, values := splitGroupSums(qty)
		return simpleBar("Top 5 Categories by Quantity", "quantity", names, values), nil

	case "categories-revenue":
		rev, err := processor.TopCategoriesByRevenue(filtered)
		if err != nil {
			return nil, err
		}
		names, values := splitGroupSums(rev)
		return simpleBar("Top 5 Categories by Revenue", "sales", names, values), nil

	case "shipping-preference":
		pref, err := processor.ShippingPreference(filtered)
		if err != nil {
			return nil, err
		}
		categories, modes, data := pivotPreference(pref)
		return groupedBar("Preferred Shipping Mode by Region", categories, modes, data), nil

	case "delay-by-mode":
		summary, err := processor.DelayByShippingMode(filtered)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(summary.Groups))
		values := make([]float64, len(summary.Groups))
		for i, g := range summary.Groups {
			names[i] = displayKey(g.Key)
			values[i] = float64(g.Delayed)
		}
		return simpleBar("Delay Count by Shipping Mode", "delayed", names, values), nil

	case "delay-pct-region":
		summary, err := processor.DelayByRegion(filtered)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(summary.Groups))
		values := make([]float64, len(summary.Groups))
		for i, g := range summary.Groups {
			names[i] = displayKey(g.Key)
			values[i] = g.Pct
		}
		return simpleBar("Delay % by Region", "delay %", names, values), nil

	case "stdclass-rate":
		rates, err := processor.StandardClassDelayRate(filtered)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(rates))
		values := make([]float64, len(rates))
		for i, rt := range rates {
			names[i] = displayKey(rt.Region)
			values[i] = rt.Rate
		}
		return simpleBar("Delay Rate by Region (Standard Class)", "delay rate", names, values), nil

	case "routes":
		routes, err := processor.TopDelayedRoutes(filtered)
		if err != nil {
			return nil, err
		}
		names := make([]string, len(routes))
		values := make([]float64, len(routes))
		for i, rt := range routes {
			names[i] = rt.Origin + " → " + rt.Destination
			values[i] = rt.Pct
		}
		return horizontalBar("Top 10 Most Delayed Routes (by Delay %)", "delay %", names, values), nil
	}

	return nil, fmt.Errorf("未知图表: %s", name)
}

func splitGroupSums(rows []processor.GroupSum) ([]string, []float64) {
	names := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, r := range rows {
		names[i] = displayKey(r.Key)
		values[i] = r.Sum
	}
	return names, values
}

// pivotPreference 把交叉表长表转为 区域类目 × 运输方式系列
func pivotPreference(pref []processor.RegionModeCount) ([]string, []string, map[string][]float64) {
	var categories, modes []string
	catIdx := make(map[string]int)
	modeSeen := make(map[string]bool)

	for _, p := range pref {
		key := displayKey(p.Region)
		if _, ok := catIdx[key]; !ok {
			catIdx[key] = len(categories)
			categories = append(categories, key)
		}
		mode := displayKey(p.Mode)
		if !modeSeen[mode] {
			modeSeen[mode] = true
			modes = append(modes, mode)
		}
	}

	data := make(map[string][]float64, len(modes))
	for _, m := range modes {
		data[m] = make([]float64, len(categories))
	}
	for _, p := range pref {
		data[displayKey(p.Mode)][catIdx[displayKey(p.Region)]] = float64(p.Count)
	}
	return categories, modes, data
}

// Logs GET /logs 实时日志流
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	logChan := h.logger.Subscribe()

	for {
		select {
		case msg := <-logChan:
			if _, err := fmt.Fprint(w, msg); err != nil {
				return
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			return
		}
	}
}

// renderable echarts图表的最小渲染接口
type renderable interface {
	Render(w io.Writer) error
}

func queryOf(r *http.Request) template.URL {
	return template.URL(r.URL.RawQuery)
}
