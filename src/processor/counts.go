// counts.go
package processor

import (
	"github.com/go-gota/gota/dataframe"

	"github.com/dravya1311/Delay-Model-2/src/utils"
)

// LabelCounts 顶部指标卡：总行数与按精确label取值的计数
// 无法解析的label不计入任何一类
type LabelCounts struct {
	Total   int `json:"total"`
	Delayed int `json:"delayed"` // label == -1
	OnTime  int `json:"on_time"` // label == 0
	Early   int `json:"early"`   // label == 1
}

func Counts(df dataframe.DataFrame) LabelCounts {
	counts := LabelCounts{Total: df.Nrow()}
	if !utils.HasColumn(df, FieldLabel) {
		return counts
	}

	for _, v := range labelValues(df) {
		switch {
		case v == -1:
			counts.Delayed++
		case v == 0:
			counts.OnTime++
		case v == 1:
			counts.Early++
		}
	}
	return counts
}
