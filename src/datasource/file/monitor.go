// monitor.go
package file

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileMonitor 监控数据集文件所在目录
// 数据集被重写（mtime变新）时触发回调，用于热替换缓存
type FileMonitor struct {
	target  string // 被监控的数据集文件
	watcher *fsnotify.Watcher
	lastMod time.Time
	mu      sync.Mutex
}

func NewFileMonitor(target string) (*FileMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &FileMonitor{
		target:  target,
		watcher: watcher,
	}, nil
}

func (m *FileMonitor) Close() error {
	return m.watcher.Close()
}

// Watch 阻塞处理文件事件，只对目标文件的写入作出反应
func (m *FileMonitor) Watch(handler func(string)) error {
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			if filepath.Clean(event.Name) != filepath.Clean(m.target) {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			m.mu.Lock()
			if info.ModTime().After(m.lastMod) {
				m.lastMod = info.ModTime()
				go handler(event.Name)
			}
			m.mu.Unlock()
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
