package processor

import (
	"errors"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeSession 用规范表头构造工作集，模拟CSV读取（全部字符串列）
func makeSession(t *testing.T, records [][]string) *Session {
	t.Helper()
	raw := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	require.NoError(t, raw.Err)

	sess, err := NewSession(raw, nil)
	require.NoError(t, err)
	return sess
}

func TestCountsExcludeInvalidLabels(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode"},
		{"-1", "West", "Standard Class"},
		{"-1", "West", "First Class"},
		{"0", "East", "Standard Class"},
		{"1", "East", "Second Class"},
		{"bad", "South", "Standard Class"},
		{"", "South", "Standard Class"},
	})

	counts := Counts(sess.Work)
	assert.Equal(t, 6, counts.Total)
	assert.Equal(t, 2, counts.Delayed)
	assert.Equal(t, 1, counts.OnTime)
	assert.Equal(t, 1, counts.Early)
	// 有效标签共4条，无效与缺失不计入任何一类
	assert.Equal(t, 4, counts.Delayed+counts.OnTime+counts.Early)
}

func TestEmptyRegionSelectionIsNoOp(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode"},
		{"-1", "West", "Standard Class"},
		{"0", "East", "First Class"},
		{"1", "West", "First Class"},
	})

	sess.Selection = Selection{ShippingModes: []string{"First Class"}}
	got := sess.Filtered()

	shipOnly := ApplyFilter(sess.Work, Selection{ShippingModes: []string{"First Class"}})
	assert.Equal(t, shipOnly.Nrow(), got.Nrow())
	assert.Equal(t, 2, got.Nrow())
}

func TestDelayPctZeroTotal(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, 0.0, delayPct(0, 0))
	})
}

func TestDelayByShippingModeCountsMinusOne(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode"},
		{"-1", "West", "Standard Class"},
		{"-1", "West", "Standard Class"},
		{"1", "West", "First Class"}, // 提前，不算延误
		{"0", "East", "First Class"},
	})

	summary, err := DelayByShippingMode(sess.Work)
	require.NoError(t, err)
	require.Len(t, summary.Groups, 2)

	// 延误数降序，最差分组单独给出
	assert.Equal(t, "Standard Class", summary.Groups[0].Key)
	assert.Equal(t, 2, summary.Groups[0].Delayed)
	assert.Equal(t, 2, summary.Groups[0].Total)
	assert.Equal(t, 100.0, summary.Groups[0].Pct)
	assert.Equal(t, 0, summary.Groups[1].Delayed)
	require.NotNil(t, summary.Worst)
	assert.Equal(t, "Standard Class", summary.Worst.Key)
}

func TestBestProductPerRegionTieStable(t *testing.T) {
	records := [][]string{
		{"label", "order_region", "shipping_mode", "product_name", "profit_per_order"},
		{"0", "West", "Standard Class", "A", "60"},
		{"0", "West", "Standard Class", "B", "100"},
		{"0", "West", "Standard Class", "A", "40"},
		{"0", "East", "Standard Class", "C", "10"},
	}

	// A与B在West并列100，A先出现，重复运行结果一致
	for i := 0; i < 5; i++ {
		sess := makeSession(t, records)
		best, err := BestProductPerRegion(sess.Work)
		require.NoError(t, err)
		require.Len(t, best, 2)
		assert.Equal(t, "West", best[0].Region)
		assert.Equal(t, "A", best[0].Product)
		assert.Equal(t, 100.0, best[0].Profit)
		assert.Equal(t, "C", best[1].Product)
	}
}

func TestRegionAveragesKeepMissingGroup(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode", "sales"},
		{"0", "West", "Standard Class", "10"},
		{"0", "", "Standard Class", "30"},
		{"0", "West", "Standard Class", "20"},
	})

	avgs, err := AveragesByRegion(sess.Work, FieldSales)
	require.NoError(t, err)
	require.Len(t, avgs, 2)

	// 缺失区域自成一组，不丢弃；均值降序
	assert.Equal(t, "", avgs[0].Key)
	assert.Equal(t, 30.0, avgs[0].Mean)
	assert.Equal(t, "West", avgs[1].Key)
	assert.Equal(t, 15.0, avgs[1].Mean)
}

func TestSumByGroupTieKeepsFirstSeen(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode", "category_name", "profit_per_order"},
		{"0", "West", "Standard Class", "Fishing", "50"},
		{"0", "West", "Standard Class", "Golf", "50"},
		{"0", "West", "Standard Class", "Cleats", "80"},
	})

	top, err := TopCategoriesByProfit(sess.Work)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "Cleats", top[0].Key)
	assert.Equal(t, "Fishing", top[1].Key) // 与Golf并列，先出现者在前
	assert.Equal(t, "Golf", top[2].Key)
}

func TestTopValuesSkipsMissing(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode", "order_country"},
		{"0", "West", "Standard Class", "India"},
		{"0", "West", "Standard Class", ""},
		{"0", "West", "Standard Class", "India"},
		{"0", "West", "Standard Class", "Japan"},
	})

	top, err := TopValues(sess.Work, "top_countries", FieldOrderCountry, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, GroupCount{Value: "India", Count: 2}, top[0])
	assert.Equal(t, GroupCount{Value: "Japan", Count: 1}, top[1])
}

func TestStandardClassDelayRate(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode"},
		{"-1", "West", "Standard Class"},
		{"0", "West", "Standard Class"},
		{"-1", "East", "First Class"}, // 非Standard Class，不参与
	})

	rates, err := StandardClassDelayRate(sess.Work)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "West", rates[0].Region)
	assert.Equal(t, 0.5, rates[0].Rate)
}

func TestStandardClassDelayRateEmptySubset(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode"},
		{"-1", "West", "First Class"},
		{"0", "East", "standard class"}, // 大小写不同，不精确匹配
	})

	rates, err := StandardClassDelayRate(sess.Work)
	require.NoError(t, err)
	assert.Empty(t, rates)
}

func TestTopDelayedRoutesFewerThanTen(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode", "order_city", "order_country", "customer_city", "customer_country"},
		{"-1", "West", "Standard Class", "Pune", "India", "Tokyo", "Japan"},
		{"0", "West", "Standard Class", "Pune", "India", "Tokyo", "Japan"},
		{"-1", "West", "Standard Class", "Delhi", "India", "Osaka", "Japan"},
		{"0", "West", "Standard Class", "", "India", "Tokyo", "Japan"}, // 缺失分量保留为空串
	})

	routes, err := TopDelayedRoutes(sess.Work)
	require.NoError(t, err)
	// 不足10条路线时全部返回，不凭空补齐
	require.Len(t, routes, 3)

	assert.Equal(t, "Delhi, India", routes[0].Origin)
	assert.Equal(t, 100.0, routes[0].Pct)
	assert.Equal(t, "Pune, India", routes[1].Origin)
	assert.Equal(t, 50.0, routes[1].Pct)
	assert.Equal(t, ", India", routes[2].Origin)
	assert.Equal(t, 0.0, routes[2].Pct)
}

func TestTopDelayedRoutesMissingColumnAborts(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode", "order_city", "order_country", "customer_city"},
		{"-1", "West", "Standard Class", "Pune", "India", "Tokyo"},
	})

	_, err := TopDelayedRoutes(sess.Work)
	require.Error(t, err)

	var colErr *ColumnError
	require.True(t, errors.As(err, &colErr))
	assert.Equal(t, []string{FieldCustomerCountry}, colErr.Missing)
}

func TestShippingPreferenceFullCrossTab(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode"},
		{"0", "West", "Standard Class"},
		{"0", "West", "First Class"},
		{"0", "West", "Standard Class"},
		{"0", "East", "First Class"},
	})

	pref, err := ShippingPreference(sess.Work)
	require.NoError(t, err)
	require.Len(t, pref, 3)
	assert.Equal(t, RegionModeCount{Region: "West", Mode: "Standard Class", Count: 2}, pref[0])
	assert.Equal(t, RegionModeCount{Region: "West", Mode: "First Class", Count: 1}, pref[1])
	assert.Equal(t, RegionModeCount{Region: "East", Mode: "First Class", Count: 1}, pref[2])
}

func TestMissingMandatoryStopsPipeline(t *testing.T) {
	raw := dataframe.LoadRecords([][]string{
		{"order_region", "shipping_mode", "sales"},
		{"West", "Standard Class", "10"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	require.NoError(t, raw.Err)

	sess, err := NewSession(raw, nil)
	assert.Nil(t, sess)

	var missingErr *MissingColumnsError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, []string{FieldLabel}, missingErr.Missing)
}

func TestCoerceMeasuresInvalidBecomeZero(t *testing.T) {
	sess := makeSession(t, [][]string{
		{"label", "order_region", "shipping_mode", "sales"},
		{"0", "West", "Standard Class", "12.5"},
		{"0", "West", "Standard Class", "oops"},
	})

	avgs, err := AveragesByRegion(sess.Work, FieldSales)
	require.NoError(t, err)
	require.Len(t, avgs, 1)
	// 无法解析的度量按0计入均值
	assert.Equal(t, 6.25, avgs[0].Mean)
}
