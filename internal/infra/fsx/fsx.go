package fsx

import (
	"fmt"
	"hash/fnv"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

const maxNameRunes = 200

var (
	invalidCharsRE = regexp.MustCompile(`[\\/:*?"<>|]+`)
	whitespaceRE   = regexp.MustCompile(`\s+`)
)

// SafeName 把任意字符串规范化为可作目录/文件名的形态：
// 非法字符折叠为 '-'，空白折叠为 '_'，按 rune 截断到 200。
func SafeName(name string) string {
	name = strings.TrimSpace(name)
	name = invalidCharsRE.ReplaceAllString(name, "-")
	name = whitespaceRE.ReplaceAllString(name, "_")
	if r := []rune(name); len(r) > maxNameRunes {
		name = string(r[:maxNameRunes])
	}
	return name
}

// AssetName 从资源 URL 推导落盘文件名：取路径最后一段并做 percent 解码。
// 推导不出（例如 URL 以 '/' 结尾）时退化为 URL 哈希名，保证非空。
func AssetName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		seg := u.Path
		if i := strings.LastIndex(seg, "/"); i >= 0 {
			seg = seg[i+1:]
		}
		if dec, derr := url.PathUnescape(seg); derr == nil {
			seg = dec
		}
		if seg = strings.TrimSpace(seg); seg != "" {
			return seg
		}
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(rawURL))
	return fmt.Sprintf("img_%x.jpg", h.Sum64())
}

// EnsureDir 幂等创建目录（已存在不报错）。
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// WriteFileAtomicReplace 在 dir 下原子写入 name（临时文件 + rename），
// 目标已存在则覆盖。
//
// - 临时文件必须与目标文件在同目录，以保证 rename 的原子性
// - 临时文件做 Sync；目录 Sync 采用 best-effort（平台语义差异大）
func WriteFileAtomicReplace(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	dst := filepath.Join(dir, name)

	// 同目录临时文件（前缀带 '.'，避免污染媒体库视图）。
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := writeAll(tmp, data); err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, dst); err != nil {
		return err
	}

	_ = syncDirBestEffort(dir)
	return nil
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func syncDirBestEffort(dir string) error {
	// Windows 上目录 Sync 的语义与支持情况不稳定，这里直接跳过。
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
