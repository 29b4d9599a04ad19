// session.go
package processor

import (
	"github.com/go-gota/gota/dataframe"
)

// Session 一次渲染周期的显式上下文：
// 工作集、解析出的列映射、当前过滤选择
// 不持有任何包级可变状态，并发会话互不干扰
type Session struct {
	Work      dataframe.DataFrame
	Resolved  map[string]string
	Selection Selection
}

// NewSession 执行 解析 -> 重命名 -> 数值化
// 必备字段缺失时返回MissingColumnsError，调用方不得继续计算
func NewSession(raw dataframe.DataFrame, extraAliases map[string][]string) (*Session, error) {
	headers := raw.Names()
	resolved := Resolve(headers, extraAliases)
	if err := CheckMandatory(resolved, headers); err != nil {
		return nil, err
	}

	work := Coerce(BuildWorking(raw, resolved))
	return &Session{Work: work, Resolved: resolved}, nil
}

// Filtered 返回应用当前选择后的记录子集
func (s *Session) Filtered() dataframe.DataFrame {
	return ApplyFilter(s.Work, s.Selection)
}

// Has 工作集中是否存在某逻辑字段
func (s *Session) Has(field string) bool {
	_, ok := s.Resolved[field]
	return ok
}
