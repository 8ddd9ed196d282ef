package output

import (
	"encoding/json"

	"github.com/John-Robertt/javdata/internal/domain"
)

// JSON 直接映射 MovieMeta 的字段（snake_case；缺失标量整体省略，
// 列表字段始终存在——空列表而不是 null）。
type JSON struct{}

func (JSON) Ext() string { return ".json" }

func (JSON) Encode(meta domain.MovieMeta, _ Assets) ([]byte, error) {
	b, err := json.MarshalIndent(meta.Normalized(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
