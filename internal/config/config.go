package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrCodeInvalid 表示配置文件无法读取/解析，或字段不合法。
const ErrCodeInvalid = "config_invalid"

// DefaultFormat 是输出格式的最终默认值（当 CLI 与配置文件都未指定时）。
const DefaultFormat = "json"

// CLIArgs 是 CLI 暴露的入口参数，并保留“是否显式指定”的信息，
// 保证覆盖优先级可实现（例如 --format 必须能覆盖配置中的 format）。
type CLIArgs struct {
	Query  string
	Link   string
	Output string

	Download bool

	Format    string
	FormatSet bool
}

// FileConfig 对应 javdata.json 的解析结构（cwd 下可选）。
type FileConfig struct {
	BaseURL string       `json:"base_url"`
	Proxy   *ProxyConfig `json:"proxy"`
	Format  string       `json:"format"`
}

type ProxyConfig struct {
	URL string `json:"url"`
}

// EffectiveConfig 是合并并做最小规范化后的最终配置
// （实现层直接消费，不再做二次默认/优先级判断）。
type EffectiveConfig struct {
	Query  string
	Link   string
	Output string

	Download bool
	Format   string

	// BaseURL 允许在主域名不可达/被阻断时切换到镜像域名（可选，仅配置文件暴露）。
	BaseURL string
	// ProxyURL 非空时页面与图片抓取都走该代理。
	ProxyURL string
}

// Error 是配置阶段的结构化错误（带 error_code）。
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s：配置文件 %q 无效：%v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s：配置文件 %q 无效", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// Code 从 error 中提取 error_code；若不是 *Error 则返回空串。
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// LoadEffective 读取 <cwd>/javdata.json（可选，不存在不报错），
// 并与 CLI 参数合并为最终配置。
//
// 覆盖优先级（固定）：
// - query/link/output/download：仅 CLI 暴露
// - format：CLI > config > 默认 json
// - base_url/proxy：仅 config 暴露
func LoadEffective(cwd string, cli CLIArgs) (EffectiveConfig, error) {
	cfgPath := filepath.Join(cwd, "javdata.json")

	fc, err := readFileConfig(cfgPath)
	if err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	format := DefaultFormat
	if cli.FormatSet {
		format = cli.Format
	} else if strings.TrimSpace(fc.Format) != "" {
		format = fc.Format
	}
	if err := validateFormat(format); err != nil {
		return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: err}
	}

	proxyURL := ""
	if fc.Proxy != nil {
		proxyURL = strings.TrimSpace(fc.Proxy.URL)
	}
	if proxyURL != "" {
		if _, err := url.Parse(proxyURL); err != nil {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("proxy.url 无效：%w", err)}
		}
	}

	baseURL := strings.TrimSpace(fc.BaseURL)
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("base_url 无效：%q", baseURL)}
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return EffectiveConfig{}, &Error{Code: ErrCodeInvalid, Path: cfgPath, Err: fmt.Errorf("base_url 必须是 http/https：%q", baseURL)}
		}
	}

	return EffectiveConfig{
		Query:    strings.TrimSpace(cli.Query),
		Link:     strings.TrimSpace(cli.Link),
		Output:   strings.TrimSpace(cli.Output),
		Download: cli.Download,
		Format:   format,
		BaseURL:  baseURL,
		ProxyURL: proxyURL,
	}, nil
}

func validateFormat(f string) error {
	switch f {
	case "json", "nfo":
		return nil
	case "":
		return fmt.Errorf("format 不能为空")
	default:
		return fmt.Errorf("format 只能是 json 或 nfo，实际是 %q", f)
	}
}

// readFileConfig 读取并解析 JSON 配置文件（不存在不算错误）。
func readFileConfig(path string) (FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, err
	}
	var fc FileConfig
	if err := json.Unmarshal(b, &fc); err != nil {
		return FileConfig{}, err
	}
	return fc, nil
}
