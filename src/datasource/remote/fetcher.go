// fetcher.go
package remote

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/dravya1311/Delay-Model-2/src/datasource/file"
)

// FetchCSV 从远程URL下载数据集并转换为DataFrame
// 本地文件缺失时的兜底数据源
func FetchCSV(url string, timeout time.Duration) (dataframe.DataFrame, error) {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(url)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("下载远程数据集失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return dataframe.DataFrame{}, fmt.Errorf("远程数据集返回异常状态: %s", resp.Status)
	}

	return file.FromReader(resp.Body)
}
