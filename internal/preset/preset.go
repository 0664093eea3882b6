// Package preset provides named preview modes and a registry to look them up.
package preset

import "github.com/roboco-io/ogpreview/internal/ogimage"

// Names of the built-in presets.
const (
	Classic    = "classic"
	Text       = "text"
	TextLegacy = "text-legacy"
)

// Preset is a named mode.
type Preset struct {
	Name        string
	Description string
	Mode        ogimage.Mode
}

// Builtin returns the presets registered in DefaultRegistry.
func Builtin() []Preset {
	return []Preset{
		{
			Name:        Classic,
			Description: "이미지 프리로드 후 메타 태그 갱신",
			Mode:        ogimage.ClassicMode(),
		},
		{
			Name:        Text,
			Description: "오버레이 텍스트/폰트 지원, 프리로드 없음",
			Mode:        ogimage.TextMode(),
		},
		{
			Name:        TextLegacy,
			Description: "text와 동일하나 비율/크기 변경 시에만 동기화",
			Mode:        ogimage.LegacyTextMode(),
		},
	}
}
