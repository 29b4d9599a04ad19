package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/robfig/cron"

	"github.com/dravya1311/Delay-Model-2/src/config"
	"github.com/dravya1311/Delay-Model-2/src/datasource"
	dsfile "github.com/dravya1311/Delay-Model-2/src/datasource/file"
	"github.com/dravya1311/Delay-Model-2/src/processor"
	"github.com/dravya1311/Delay-Model-2/src/render"
	"github.com/dravya1311/Delay-Model-2/src/storage"
)

func main() {
	jsonFolder := "./config"
	jsonFile := "config.json"
	aliasJsonFile := "aliasconfig.json"
	cfg, acfg, err := config.LoadConfig(jsonFolder, jsonFile, aliasJsonFile)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志系统
	logger, err := storage.NewLogger(cfg.LogName, cfg.LogMaxSize)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()

	// 加载数据集：本地优先，远程兜底，都失败属于致命错误
	cache := &datasource.DatasetCache{}
	t1 := time.Now()
	if err := cache.Load(cfg.Data.LocalPath, cfg.Data.RemoteURL, time.Duration(cfg.Data.FetchTimeout)); err != nil {
		logger.Fatal(err.Error())
		log.Fatal(err)
	}
	origin, _ := cache.Origin()
	logger.Info(fmt.Sprintf("数据集加载完成(来源: %s, 耗时: %v)", origin, time.Since(t1)))

	// 启动前校验必备列，缺失时带完整表头退出
	raw, _ := cache.Get()
	if _, err := processor.NewSession(raw, acfg.Aliases); err != nil {
		logger.Fatal(err.Error())
		log.Fatal(err)
	}

	// 本地文件变更时热替换缓存
	if cfg.Data.Watch {
		monitor, err := dsfile.NewFileMonitor(cfg.Data.LocalPath)
		if err != nil {
			logger.Error("创建文件监控失败: " + err.Error())
		} else {
			go func() {
				err := monitor.Watch(func(path string) {
					if err := cache.Reload(path); err != nil {
						logger.Error("重新加载数据集失败: " + err.Error())
						return
					}
					logger.Info("数据集已更新: " + path)
				})
				if err != nil {
					logger.Error("文件监控错误: " + err.Error())
				}
			}()
		}
	}

	// 定时检查日志轮转
	c := cron.New()
	if err := c.AddFunc(cfg.RotateSpec, logger.CheckRotate); err != nil {
		logger.Error("创建定时任务失败: " + err.Error())
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	handler := render.NewHandler(cache, acfg.Aliases, logger)

	logger.Info(fmt.Sprintf("仪表盘服务已启动: %s", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, handler.Routes()); err != nil {
		logger.Fatal("HTTP服务退出: " + err.Error())
		log.Fatal(err)
	}
}
