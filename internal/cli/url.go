package cli

import (
	"encoding/json"
	"fmt"

	"github.com/roboco-io/ogpreview/internal/ogimage"
	"github.com/spf13/cobra"
)

var urlFormat string

var urlCmd = &cobra.Command{
	Use:   "url [query]",
	Short: "쿼리 문자열에서 이미지 URL 계산",
	Long: `쿼리 문자열(또는 전체 URL)을 읽어 미리보기 이미지 URL과 픽셀 크기를 출력합니다.
이미지 프리로드나 HTML 수정은 하지 않습니다.

빈 값이나 잘못된 값은 무시되고 기본값이 유지됩니다.

출력 형식:
  text    이미지 URL, 크기, 정규화된 쿼리 (기본)
  json    JSON 객체

예시:
  ogpreview url "ratio=4:3&size=800&bg=ff0000"
  ogpreview url "https://example.com/?ratio=1:1&size=500" --format json
  ogpreview url "text=Hello%2520World" --mode text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runURL,
}

func init() {
	urlCmd.Flags().StringVarP(&urlFormat, "format", "f", "text", "출력 형식 (text, json)")

	rootCmd.AddCommand(urlCmd)
}

// urlResult is the JSON output of the url command.
type urlResult struct {
	ImageURL   string              `json:"imageUrl"`
	Dimensions *ogimage.Dimensions `json:"dimensions,omitempty"`
	Error      string              `json:"error,omitempty"`
	Params     ogimage.Params      `json:"params"`
	Query      string              `json:"query"`
}

func runURL(cmd *cobra.Command, args []string) error {
	if urlFormat != "text" && urlFormat != "json" {
		return fmt.Errorf("지원하지 않는 출력 형식: %s (지원: text, json)", urlFormat)
	}

	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 0 {
		query = args[0]
	}
	loc, err := parseLocation(query)
	if err != nil {
		return fmt.Errorf("쿼리 파싱 실패: %w", err)
	}

	// The URL is computed without preloading, so no loader is needed.
	cfg.Preload.Enabled = new(bool)
	p, err := buildPreview(cfg, loc, nil, newLogger(cmd, false))
	if err != nil {
		return err
	}
	p.ParseURLParams()
	if err := p.UpdateURL(); err != nil {
		return fmt.Errorf("쿼리 갱신 실패: %w", err)
	}

	res := urlResult{
		ImageURL: p.ImageURL(),
		Params:   p.Params(),
		Query:    loc.RawQuery(),
	}
	dims, dimErr := p.Dimensions()
	if dimErr != nil {
		res.Error = dimErr.Error()
	} else {
		res.Dimensions = &dims
	}

	out := cmd.OutOrStdout()
	if urlFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintln(out, res.ImageURL)
	if res.Dimensions != nil {
		fmt.Fprintf(out, "크기: %s\n", res.Dimensions)
	} else {
		fmt.Fprintf(out, "크기: 계산 불가 (%s)\n", res.Error)
	}
	fmt.Fprintf(out, "쿼리: %s\n", res.Query)
	return nil
}
