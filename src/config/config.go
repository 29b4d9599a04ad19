package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config 结构体定义了仪表盘服务的配置结构
type Config struct {
	Server struct {
		Addr string `json:"addr" envconfig:"ADDR"` // HTTP监听地址
	} `json:"server"`

	Data struct {
		LocalPath    string   `json:"local_path" envconfig:"LOCAL_PATH"` // 本地数据集路径
		RemoteURL    string   `json:"remote_url" envconfig:"REMOTE_URL"` // 远程兜底URL
		Watch        bool     `json:"watch"`                             // 是否监控本地文件变更
		FetchTimeout Duration `json:"fetch_timeout"`                     // 远程下载超时
	} `json:"data"`

	LogName    string `json:"log_name"`
	LogMaxSize string `json:"log_max_size"` // 例如 "10 * 1024 * 1024"
	RotateSpec string `json:"rotate_spec"`  // cron表达式，检查日志轮转
}

// AliasConfig 为逻辑字段追加候选表头拼写
// 内置别名表之外的数据集修订版通过它接入
type AliasConfig struct {
	Aliases map[string][]string `json:"aliases"`
}

var (
	once                sync.Once
	instance            *Config
	aliasConfigInstance *AliasConfig
	mu                  sync.RWMutex
)

func LoadConfig(jsonFolder, jsonFile, aliasJsonFile string) (*Config, *AliasConfig, error) {
	var err error
	once.Do(func() {
		instance, aliasConfigInstance, err = loadConfigs(jsonFolder, jsonFile, aliasJsonFile)
	})
	return instance, aliasConfigInstance, err
}

func loadConfigs(jsonFolder, jsonFile, aliasJsonFile string) (*Config, *AliasConfig, error) {
	configFile := filepath.Join(jsonFolder, jsonFile)
	aliasConfigFile := filepath.Join(jsonFolder, aliasJsonFile)

	configData, err := readFile(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	aliasData, err := readFile(aliasConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("读取别名配置文件失败: %w", err)
	}

	cfgChan := make(chan *Config, 1)
	acfgChan := make(chan *AliasConfig, 1)
	errChan := make(chan error, 2)

	go parseConfig(configData, cfgChan, errChan)
	go parseAliasConfig(aliasData, acfgChan, errChan)

	cfg, acfg, err := waitForResults(cfgChan, acfgChan, errChan)
	if err != nil {
		return nil, nil, err
	}

	// 环境变量覆盖（DELAYDASH_ADDR 等）
	if err := envconfig.Process("delaydash", cfg); err != nil {
		return nil, nil, fmt.Errorf("解析环境变量失败: %w", err)
	}

	applyDefaults(cfg)

	return cfg, acfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Data.LocalPath == "" {
		cfg.Data.LocalPath = "Delay_Model.csv"
	}
	if cfg.Data.FetchTimeout == 0 {
		cfg.Data.FetchTimeout = Duration(30 * time.Second)
	}
	if cfg.LogName == "" {
		cfg.LogName = "app.log"
	}
	if cfg.RotateSpec == "" {
		cfg.RotateSpec = "@every 1h"
	}
}

func readFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件 %s: %w", filePath, err)
	}
	return data, nil
}

func parseConfig(data []byte, resultChan chan<- *Config, errChan chan<- error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		errChan <- fmt.Errorf("解析Config失败: %w", err)
		return
	}
	resultChan <- &cfg
}

func parseAliasConfig(data []byte, resultChan chan<- *AliasConfig, errChan chan<- error) {
	var acfg AliasConfig
	if err := json.Unmarshal(data, &acfg); err != nil {
		errChan <- fmt.Errorf("解析AliasConfig失败: %w", err)
		return
	}
	resultChan <- &acfg
}

func waitForResults(
	cfgChan <-chan *Config,
	acfgChan <-chan *AliasConfig,
	errChan <-chan error,
) (*Config, *AliasConfig, error) {
	var (
		cfg    *Config
		acfg   *AliasConfig
		errors []error
	)

	for i := 0; i < 2; i++ {
		select {
		case c := <-cfgChan:
			cfg = c
		case a := <-acfgChan:
			acfg = a
		case err := <-errChan:
			errors = append(errors, err)
		}
	}

	if len(errors) > 0 {
		return nil, nil, combineErrors(errors)
	}

	if cfg == nil || acfg == nil {
		return nil, nil, fmt.Errorf("部分配置未加载成功")
	}

	return cfg, acfg, nil
}

func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	msg := "配置加载遇到多个错误:"
	for _, err := range errs {
		msg = fmt.Sprintf("%s\n- %v", msg, err)
	}
	return fmt.Errorf("%s", msg)
}

// Duration 是time.Duration的自定义包装类型
// 用于支持JSON序列化和反序列化
type Duration time.Duration

// UnmarshalJSON 实现json.Unmarshaler接口
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalJSON 实现json.Marshaler接口
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// GetAliases 读取某个逻辑字段的追加别名（线程安全）
func (ac *AliasConfig) GetAliases(field string) []string {
	mu.RLock()
	defer mu.RUnlock()
	return ac.Aliases[field]
}

// SetAliases 覆盖某个逻辑字段的追加别名（线程安全）
func (ac *AliasConfig) SetAliases(field string, values []string) {
	mu.Lock()
	defer mu.Unlock()
	if ac.Aliases == nil {
		ac.Aliases = make(map[string][]string)
	}
	ac.Aliases[field] = values
}
