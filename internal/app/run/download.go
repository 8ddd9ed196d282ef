package run

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/John-Robertt/javdata/internal/domain"
	"github.com/John-Robertt/javdata/internal/infra/fsx"
	"github.com/John-Robertt/javdata/internal/output"
)

// sentinelName 是下载完成后写入 preview/ 的空标记文件。
const sentinelName = ".complete"

// downloadAssets 把图集（NFO 模式下连同海报）落盘到 <作品目录>/preview/。
//
// 约束：
// - 目录名 = 文件系统安全化后的 dvd_id，其次标题，再次查询词
// - 单张失败只记录，不影响其余图片，也不影响整体流程
// - 返回的 folder 为空表示没有可下载资源或目录创建失败
func (o Options) downloadAssets(ctx context.Context, meta domain.MovieMeta, query string) (string, output.Assets) {
	var assets output.Assets

	wantPoster := o.Encoder.Ext() == ".nfo" && meta.PosterURL != ""
	if len(meta.PreviewImages) == 0 && !wantPoster {
		o.progressf("没有可下载的图片。")
		return "", assets
	}

	base := meta.DVDID
	if base == "" {
		base = meta.Title
	}
	if base == "" {
		base = query
	}
	if base == "" {
		base = "movie"
	}
	folder := filepath.Join(o.DownloadRoot, fsx.SafeName(base))
	previewDir := filepath.Join(folder, "preview")
	if err := fsx.EnsureDir(previewDir); err != nil {
		o.progressf("创建下载目录失败：%v", err)
		return "", assets
	}

	o.progressf("正在下载 %d 张图片到 %s", len(meta.PreviewImages), previewDir)
	for _, u := range meta.PreviewImages {
		name := fsx.AssetName(u)
		if err := downloadFile(ctx, o.Images, u, filepath.Join(previewDir, name)); err != nil {
			o.progressf("下载失败 %s：%v", u, err)
			continue
		}
		assets.PreviewFiles = append(assets.PreviewFiles, name)
		o.progressf("已下载 %s", name)
	}

	if wantPoster {
		name := fsx.AssetName(meta.PosterURL)
		if err := downloadFile(ctx, o.Images, meta.PosterURL, filepath.Join(previewDir, name)); err != nil {
			o.progressf("下载海报失败 %s：%v", meta.PosterURL, err)
		} else {
			assets.PosterFile = name
			o.progressf("已下载海报 %s", name)
		}
	}

	if err := os.WriteFile(filepath.Join(previewDir, sentinelName), nil, 0o644); err != nil {
		o.progressf("写入完成标记失败：%v", err)
	}
	return folder, assets
}

// downloadFile 流式下载单个资源：打开 → 写完 → 关闭，任何退出路径都不泄漏句柄。
func downloadFile(ctx context.Context, c *http.Client, rawURL, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, werr := io.Copy(f, resp.Body)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}
