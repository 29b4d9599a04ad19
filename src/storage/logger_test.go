package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(path, "")
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("服务启动")
	logger.Error("出错了")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: 服务启动")
	assert.Contains(t, string(data), "ERROR: 出错了")
}

func TestLoggerSubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := NewLogger(path, "")
	require.NoError(t, err)
	defer logger.Close()

	ch := logger.Subscribe()
	logger.Warning("磁盘空间不足")

	msg := <-ch
	assert.Contains(t, msg, "WARNING: 磁盘空间不足")
}

func TestLoggerRotate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	// 上限16字节，写一条就超
	logger, err := NewLogger(path, "16")
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("这一条足够长，超过轮转上限")
	logger.CheckRotate()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	// 旧文件被改名，新文件重新打开
	assert.GreaterOrEqual(t, len(entries), 2)
}

func TestEval(t *testing.T) {
	assert.Equal(t, int64(10485760), eval("10 * 1024 * 1024"))
	assert.Equal(t, int64(0), eval(""))
}
