// api.go
package render

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/dravya1311/Delay-Model-2/src/processor"
)

// summaryResponse /api/summary 的完整载荷
// 降级的视图字段缺席，原因记录在errors里
type summaryResponse struct {
	Counts    processor.LabelCounts   `json:"counts"`
	Options   processor.FilterOptions `json:"options"`
	Selection processor.Selection     `json:"selection"`

	AvgSalesByRegion    []processor.GroupAverage   `json:"avg_sales_by_region,omitempty"`
	AvgProfitByRegion   []processor.GroupAverage   `json:"avg_profit_by_region,omitempty"`
	TopCountries        []processor.GroupCount     `json:"top_countries,omitempty"`
	TopRegions          []processor.GroupCount     `json:"top_regions,omitempty"`
	TopCategoriesProfit []processor.GroupSum       `json:"top_categories_by_profit,omitempty"`
	BestProductRegion   []processor.RegionProduct  `json:"best_product_per_region,omitempty"`
	TopCategoriesQty    []processor.GroupSum       `json:"top_categories_by_quantity,omitempty"`
	TopCategoriesRev    []processor.GroupSum       `json:"top_categories_by_revenue,omitempty"`
	ShippingPreference  []processor.RegionModeCount `json:"shipping_preference,omitempty"`
	DelayByMode         *processor.DelaySummary    `json:"delay_by_shipping_mode,omitempty"`
	DelayByRegion       *processor.DelaySummary    `json:"delay_by_region,omitempty"`
	StdClassDelayRate   []processor.RegionRate     `json:"standard_class_delay_rate,omitempty"`
	TopDelayedRoutes    []processor.RouteStat      `json:"top_delayed_routes,omitempty"`

	Errors map[string]string `json:"errors,omitempty"`
}

// Summary GET /api/summary 全部视图输出
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.logger.Error("summary中止: " + err.Error())
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}
	filtered := sess.Filtered()

	resp := summaryResponse{
		Counts:    processor.Counts(filtered),
		Options:   processor.Options(sess.Work),
		Selection: sess.Selection,
		Errors:    make(map[string]string),
	}

	record := func(field string, err error) {
		if err != nil {
			resp.Errors[field] = err.Error()
		}
	}

	var viewErr error
	resp.AvgSalesByRegion, viewErr = processor.AveragesByRegion(filtered, processor.FieldSales)
	record("avg_sales_by_region", viewErr)
	resp.AvgProfitByRegion, viewErr = processor.AveragesByRegion(filtered, processor.FieldProfitPerOrder)
	record("avg_profit_by_region", viewErr)
	resp.TopCountries, viewErr = processor.TopValues(filtered, "top_countries", processor.FieldOrderCountry, 5)
	record("top_countries", viewErr)
	resp.TopRegions, viewErr = processor.TopValues(filtered, "top_regions", processor.FieldOrderRegion, 5)
	record("top_regions", viewErr)
	resp.TopCategoriesProfit, viewErr = processor.TopCategoriesByProfit(filtered)
	record("top_categories_by_profit", viewErr)
	resp.BestProductRegion, viewErr = processor.BestProductPerRegion(filtered)
	record("best_product_per_region", viewErr)
	resp.TopCategoriesQty, viewErr = processor.TopCategoriesByQuantity(filtered)
	record("top_categories_by_quantity", viewErr)
	resp.TopCategoriesRev, viewErr = processor.TopCategoriesByRevenue(filtered)
	record("top_categories_by_revenue", viewErr)
	resp.ShippingPreference, viewErr = processor.ShippingPreference(filtered)
	record("shipping_preference", viewErr)

	if summary, err := processor.DelayByShippingMode(filtered); err != nil {
		record("delay_by_shipping_mode", err)
	} else {
		resp.DelayByMode = &summary
	}
	if summary, err := processor.DelayByRegion(filtered); err != nil {
		record("delay_by_region", err)
	} else {
		resp.DelayByRegion = &summary
	}

	resp.StdClassDelayRate, viewErr = processor.StandardClassDelayRate(filtered)
	record("standard_class_delay_rate", viewErr)
	resp.TopDelayedRoutes, viewErr = processor.TopDelayedRoutes(filtered)
	record("top_delayed_routes", viewErr)

	if len(resp.Errors) == 0 {
		resp.Errors = nil
	}
	render.JSON(w, r, resp)
}

// OptionsAPI GET /api/options 过滤控件候选值
func (h *Handler) OptionsAPI(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}
	render.JSON(w, r, processor.Options(sess.Work))
}
