// export.go
package render

import (
	"net/http"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/dravya1311/Delay-Model-2/src/utils"
)

// Export GET /export 把当前过滤下的全部汇总表打包为一个XLSX工作簿
// 每个区块一个工作表，降级的区块自然缺席
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(r)
	if err != nil {
		h.logger.Error("导出中止: " + err.Error())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	written := 0
	for _, sec := range buildSections(sess.Filtered()) {
		if sec.Table == nil || sec.Sheet == "" || len(sec.Table.Rows) == 0 {
			continue
		}
		records := append([][]string{sec.Table.Headers}, sec.Table.Rows...)
		df := dataframe.LoadRecords(records)
		if df.Err != nil {
			h.logger.Warning("导出跳过工作表 " + sec.Sheet + ": " + df.Err.Error())
			continue
		}
		if err := utils.WriteSheet(f, sec.Sheet, df); err != nil {
			h.logger.Warning("导出写入失败 " + sec.Sheet + ": " + err.Error())
			continue
		}
		written++
	}

	if written > 0 {
		f.DeleteSheet("Sheet1")
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="order_delay_report.xlsx"`)
	if err := f.Write(w); err != nil {
		h.logger.Error("导出响应写入失败: " + err.Error())
	}
}
