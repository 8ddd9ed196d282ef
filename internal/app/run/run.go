// Package run 串起一次完整的单发流程：
// 搜索 → 选择 → 抓详情 → 聚合/图集 → 投影 → 输出（可选落盘与图片下载）。
//
// 约束：
// - 全程顺序执行、阻塞 I/O；没有并发、没有跨次运行的状态
// - 每个网络调用在自己的调用点被捕获：失败降级为该阶段的空结果，
//   不允许异常跨过组件边界（终止性错误只有空查询/零结果/用户放弃）
// - 元数据与图集对同一详情页各自独立抓取（互不共享文档，也不缓存）
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/John-Robertt/javdata/internal/domain"
	"github.com/John-Robertt/javdata/internal/infra/fsx"
	"github.com/John-Robertt/javdata/internal/jdb"
	"github.com/John-Robertt/javdata/internal/output"
)

var (
	// ErrEmptyQuery：既没有 -l 也没有非空查询词（终止，不算网络失败）。
	ErrEmptyQuery = errors.New("查询词为空")
	// ErrNoResults：搜索返回零候选（终止）。
	ErrNoResults = errors.New("没有搜索结果")
	// ErrCancelled：用户在候选列表中放弃选择（终止）。
	ErrCancelled = errors.New("用户取消了选择")
)

// Selector 在多个候选中挑选一个（交互实现位于 cmd；测试用桩实现）。
// 返回选中下标；放弃选择时返回 ErrCancelled。
type Selector interface {
	Select(items []domain.SearchResult) (int, error)
}

// Options 是一次运行的全部输入与外部协作者。
type Options struct {
	Client   *jdb.Client  // 页面抓取
	Images   *http.Client // 图片下载（更长超时）
	Encoder  output.Encoder
	Selector Selector // nil 时直接取第一个候选

	Query  string
	Link   string // 非空时跳过搜索，直接进详情页
	Output string // 可选：把序列化文档写到该路径

	Download bool
	// DownloadRoot 是作品目录的父目录；空串表示当前目录。
	DownloadRoot string

	// Stdout 承载序列化文档（契约：始终完整打印一份）。
	Stdout io.Writer
	// Progress 承载进度/错误行；nil 表示静默。
	Progress io.Writer
}

func (o Options) progressf(format string, args ...any) {
	if o.Progress == nil {
		return
	}
	fmt.Fprintf(o.Progress, format+"\n", args...)
}

// Execute 执行一次完整流程。返回的错误只会是终止性错误
// （空查询/零结果/放弃选择/搜索抓取失败/输出写入失败）。
func Execute(ctx context.Context, opts Options) error {
	link := strings.TrimSpace(opts.Link)
	query := strings.TrimSpace(opts.Query)
	fallbackTitle := ""

	if link == "" {
		if query == "" {
			return ErrEmptyQuery
		}
		opts.progressf("正在搜索：%s", query)
		items, err := opts.Client.Search(ctx, query)
		if err != nil {
			opts.progressf("搜索失败：%v", err)
			return fmt.Errorf("搜索失败：%w", err)
		}
		if len(items) == 0 {
			return ErrNoResults
		}

		idx := 0
		if opts.Selector != nil {
			idx, err = opts.Selector.Select(items)
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(items) {
				return fmt.Errorf("候选下标越界：%d", idx)
			}
		}
		link = strings.TrimSpace(items[idx].Link)
		fallbackTitle = items[idx].Title
		if link == "" {
			return errors.New("选中的候选没有详情页链接")
		}
	}

	// 元数据阶段：抓取失败降级为只含 link/标题的空记录。
	opts.progressf("正在抓取详情页：%s", link)
	meta := domain.MovieMeta{Link: link, Title: fallbackTitle}
	if html, err := opts.Client.FetchPage(ctx, link); err != nil {
		opts.progressf("抓取详情页失败（元数据阶段）：%v", err)
	} else if m, perr := jdb.ParseMeta(html, link, fallbackTitle); perr != nil {
		opts.progressf("解析详情页失败：%v", perr)
	} else {
		meta = m
	}

	// 图集阶段：对同一详情页独立抓取；失败降级为空图集。
	var images []domain.PreviewImage
	if html, err := opts.Client.FetchPage(ctx, link); err != nil {
		opts.progressf("抓取详情页失败（图集阶段）：%v", err)
	} else {
		images, _ = jdb.ParseImages(html)
		if poster, perr := jdb.ParsePoster(html); perr == nil {
			meta.PosterURL = poster
		}
	}
	meta.PreviewImages = previewURLs(images)
	meta = meta.Normalized()

	// 资源下载在投影之前：NFO 需要引用已落盘文件的相对路径。
	var folder string
	var assets output.Assets
	if opts.Download {
		folder, assets = opts.downloadAssets(ctx, meta, query)
	}

	doc, err := opts.Encoder.Encode(meta, assets)
	if err != nil {
		return fmt.Errorf("编码输出失败：%w", err)
	}

	if opts.Stdout != nil {
		if _, err := opts.Stdout.Write(doc); err != nil {
			return fmt.Errorf("写 stdout 失败：%w", err)
		}
	}

	if opts.Output != "" {
		dir, name := filepath.Split(opts.Output)
		if dir == "" {
			dir = "."
		}
		if err := fsx.WriteFileAtomicReplace(dir, name, doc); err != nil {
			return fmt.Errorf("写输出文件失败：%w", err)
		}
		opts.progressf("已写出元数据：%s", opts.Output)
	}

	// 作品目录里固定放一份元数据副本（下载阶段创建了目录才写）。
	if folder != "" {
		name := metadataFileName(meta, opts.Encoder.Ext())
		if err := fsx.WriteFileAtomicReplace(folder, name, doc); err != nil {
			opts.progressf("写入元数据副本失败：%v", err)
		} else {
			opts.progressf("已存入元数据副本：%s", filepath.Join(folder, name))
		}
	}
	return nil
}

// previewURLs 按条目顺序取可下载地址（原图优先，预览兜底），过滤不可用条目。
func previewURLs(images []domain.PreviewImage) []string {
	out := make([]string, 0, len(images))
	for _, im := range images {
		if u := im.BestURL(); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// metadataFileName 是作品目录内元数据副本的显式命名约定：
// nfo 取 <dvd_id>.nfo（缺番号时 movie.nfo）；json 取 <content_id|dvd_id|metadata>.json。
// 不做“从目录现有文件推导输出名”的隐式约定（顺序相关、不可复现）。
func metadataFileName(meta domain.MovieMeta, ext string) string {
	if ext == ".nfo" {
		if meta.DVDID != "" {
			return fsx.SafeName(meta.DVDID) + ext
		}
		return "movie" + ext
	}
	base := meta.ContentID
	if base == "" {
		base = meta.DVDID
	}
	if base == "" {
		base = "metadata"
	}
	return fsx.SafeName(base) + ext
}
