// normalize.go
package processor

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// 逻辑字段名常量，工作集中的列一律使用这些名字
const (
	FieldOrderID         = "order_id"
	FieldOrderRegion     = "order_region"
	FieldOrderCountry    = "order_country"
	FieldShippingMode    = "shipping_mode"
	FieldCategoryName    = "category_name"
	FieldProductName     = "product_name"
	FieldSales           = "sales"
	FieldProfitPerOrder  = "profit_per_order"
	FieldQuantity        = "quantity"
	FieldLabel           = "label"
	FieldOrderCity       = "order_city"
	FieldCustomerCity    = "customer_city"
	FieldCustomerCountry = "customer_country"
)

// logicalFields 固定解析顺序
var logicalFields = []string{
	FieldOrderID,
	FieldOrderRegion,
	FieldOrderCountry,
	FieldShippingMode,
	FieldCategoryName,
	FieldProductName,
	FieldSales,
	FieldProfitPerOrder,
	FieldQuantity,
	FieldLabel,
	FieldOrderCity,
	FieldCustomerCity,
	FieldCustomerCountry,
}

// MandatoryFields 缺任何一个则整条流水线中止
var MandatoryFields = []string{FieldLabel, FieldOrderRegion, FieldShippingMode}

// defaultAliases 静态别名表：逻辑字段 -> 可接受的字面表头拼写
// 候选顺序有意义，先命中先生效
var defaultAliases = map[string][]string{
	FieldOrderID:         {"order_id", "order id", "orderid"},
	FieldOrderRegion:     {"order_region", "order region", "region"},
	FieldOrderCountry:    {"order_country", "order country", "country"},
	FieldShippingMode:    {"shipping_mode", "shipping mode", "shippingmode"},
	FieldCategoryName:    {"category_name", "category name", "category"},
	FieldProductName:     {"product_name", "product name", "product"},
	FieldSales:           {"sales", "sales_per_customer", "sales_per_order", "sales_total"},
	FieldProfitPerOrder:  {"profit_per_order", "order_profit_per_order", "profit"},
	FieldQuantity:        {"order_item_quantity", "quantity", "order_item_qty", "qty"},
	FieldLabel:           {"label", "order_status", "delay_flag", "delay_status"},
	FieldOrderCity:       {"order_city", "order city", "origin_city"},
	FieldCustomerCity:    {"customer_city", "customer city", "destination_city"},
	FieldCustomerCountry: {"customer_country", "customer country", "destination_country"},
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeHeader 把任意拼写的表头折叠为规范形式：
// NFKC归一化、去首尾空白、转小写、非[a-z0-9]连续段折叠为单个下划线
func NormalizeHeader(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return nonAlnum.ReplaceAllString(s, "_")
}

// HeaderLookup 建立 规范形式 -> 原始表头 的查找表
// 两个表头折叠到同一键时后者覆盖前者（last-write-wins，不报错）
func HeaderLookup(headers []string) map[string]string {
	lookup := make(map[string]string, len(headers))
	for _, h := range headers {
		lookup[NormalizeHeader(h)] = h
	}
	return lookup
}

// Resolve 按别名表解析逻辑字段，返回 逻辑字段 -> 原始表头 的部分映射
// extra 为配置追加的候选拼写，排在内置候选之后
// 解析纯粹基于表头，绝不检查行数据
func Resolve(headers []string, extra map[string][]string) map[string]string {
	lookup := HeaderLookup(headers)

	resolved := make(map[string]string)
	for _, field := range logicalFields {
		candidates := defaultAliases[field]
		if extra != nil {
			candidates = append(append([]string{}, candidates...), extra[field]...)
		}
		for _, cand := range candidates {
			if orig, ok := lookup[NormalizeHeader(cand)]; ok {
				resolved[field] = orig
				break
			}
		}
	}
	return resolved
}

// MissingColumnsError 必备逻辑字段未解析时的致命错误
// 携带完整的字面表头集合，便于诊断数据集修订差异
type MissingColumnsError struct {
	Missing []string
	Headers []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("数据集缺少必备列 %v，实际表头: %v", e.Missing, e.Headers)
}

// CheckMandatory 校验必备字段，全部解析成功返回nil
func CheckMandatory(resolved map[string]string, headers []string) error {
	var missing []string
	for _, field := range MandatoryFields {
		if _, ok := resolved[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing, Headers: headers}
	}
	return nil
}
