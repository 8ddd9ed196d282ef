// Package output 把聚合后的 MovieMeta 投影为落盘表示（JSON 或 NFO）。
// 提取逻辑只有一份（internal/jdb + internal/extract），两种输出各自独立投影。
package output

import (
	"fmt"

	"github.com/John-Robertt/javdata/internal/domain"
)

// Assets 描述下载阶段已落盘的本地资源；NFO 需要以相对路径引用它们。
// 两个字段都是 preview/ 子目录下的纯文件名（不含目录前缀）。
type Assets struct {
	PosterFile   string
	PreviewFiles []string
}

// Encoder 是输出投影的统一接口。
//
// 约束：
// - Encode 不得修改 meta（投影阶段只读）
// - 输出必须确定：相同输入 => 字节级相同的文档
type Encoder interface {
	Encode(meta domain.MovieMeta, assets Assets) ([]byte, error)
	// Ext 返回含点的扩展名（".json" / ".nfo"），用于派生落盘文件名。
	Ext() string
}

// ForFormat 按格式名选择 Encoder；空串等价于 "json"。
func ForFormat(format string) (Encoder, error) {
	switch format {
	case "", "json":
		return JSON{}, nil
	case "nfo":
		return NFO{}, nil
	default:
		return nil, fmt.Errorf("未知输出格式：%q（只支持 json 或 nfo）", format)
	}
}
