// views.go
//
// 聚合视图公共部分：每个视图都是 过滤后记录集 -> 小结果表 的纯函数，
// 互相独立，各自守卫列前置条件，缺列时返回ColumnError由渲染层降级。
// 所有top-N与组内argmax的并列一律按首次出现顺序打破，
// 不依赖map遍历顺序，同一输入多次运行结果稳定。
package processor

import (
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/dravya1311/Delay-Model-2/src/utils"
)

// ColumnError 视图依赖的列未解析，对应功能降级而非中止
type ColumnError struct {
	Feature string
	Missing []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("%s: 缺少列 %s", e.Feature, strings.Join(e.Missing, ", "))
}

func requireColumns(df dataframe.DataFrame, feature string, cols ...string) error {
	if missing := utils.HasColumns(df, cols...); len(missing) > 0 {
		return &ColumnError{Feature: feature, Missing: missing}
	}
	return nil
}

// groupStat 单个分组的累积量
type groupStat struct {
	key     string
	sum     float64
	count   int
	delayed int
}

// grouper 保持首次出现顺序的分组累加器
type grouper struct {
	idx    map[string]int
	groups []*groupStat
}

func newGrouper() *grouper {
	return &grouper{idx: make(map[string]int)}
}

func (g *grouper) at(key string) *groupStat {
	if i, ok := g.idx[key]; ok {
		return g.groups[i]
	}
	g.idx[key] = len(g.groups)
	st := &groupStat{key: key}
	g.groups = append(g.groups, st)
	return st
}

// labelValues 取数值化后的label列，无法解析的值为NaN
func labelValues(df dataframe.DataFrame) []float64 {
	return df.Col(FieldLabel).Float()
}

// 延误判定统一为 label == -1
// 旧版按运输方式的分解曾统计 label == 1（提前），属于笔误，这里不保留
func isDelayed(v float64) bool {
	return v == -1
}

// delayPct 百分比计算，total为0时返回0而不是除零
func delayPct(delayed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(delayed) / float64(total) * 100
}
