// cache.go
package datasource

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/dravya1311/Delay-Model-2/src/datasource/file"
	"github.com/dravya1311/Delay-Model-2/src/datasource/remote"
)

// DatasetCache 封装DataFrame并提供线程安全访问
// 每次请求从这里取当前数据集，文件监控触发Reload原子替换
type DatasetCache struct {
	df       dataframe.DataFrame
	origin   string // "local" 或 "remote"
	loadedAt time.Time
	loaded   bool
	mu       sync.RWMutex
}

// Get 获取当前DataFrame(线程安全)
func (c *DatasetCache) Get() (dataframe.DataFrame, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.df, c.loaded
}

// Set 替换当前DataFrame(线程安全)
func (c *DatasetCache) Set(df dataframe.DataFrame, origin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.df = df
	c.origin = origin
	c.loadedAt = time.Now()
	c.loaded = true
}

// Origin 返回最近一次加载的来源和时间
func (c *DatasetCache) Origin() (string, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.origin, c.loadedAt
}

// Load 先尝试本地路径，失败后回退到远程URL
// 两个来源都失败时返回合并错误，调用方应视为致命错误终止
func (c *DatasetCache) Load(localPath, remoteURL string, timeout time.Duration) error {
	df, localErr := file.ReadCSVToDataFrame(localPath)
	if localErr == nil {
		c.Set(df, "local")
		return nil
	}

	if remoteURL == "" {
		return fmt.Errorf("本地数据集不可用: %v，且未配置远程兜底URL", localErr)
	}

	df, remoteErr := remote.FetchCSV(remoteURL, timeout)
	if remoteErr == nil {
		c.Set(df, "remote")
		return nil
	}

	return fmt.Errorf("两个数据源均不可用: local: %v; remote: %v", localErr, remoteErr)
}

// Reload 重新读取本地文件，失败时保留旧数据
func (c *DatasetCache) Reload(localPath string) error {
	df, err := file.ReadCSVToDataFrame(localPath)
	if err != nil {
		return err
	}
	c.Set(df, "local")
	return nil
}
