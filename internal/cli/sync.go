package cli

import (
	"fmt"
	"os"

	"github.com/roboco-io/ogpreview/internal/htmldoc"
	"github.com/spf13/cobra"
)

var (
	syncQuery     string
	syncOutput    string
	syncNoPreload bool
	syncVerbose   bool
	syncQuiet     bool
)

var syncCmd = &cobra.Command{
	Use:   "sync <page.html>",
	Short: "HTML 메타 태그를 쿼리에 맞게 동기화",
	Long: `HTML 파일의 og-image, twitter-image 메타 태그 content 값을
쿼리 문자열에서 계산한 이미지 URL로 갱신합니다.

classic 모드에서는 이미지를 먼저 프리로드합니다. 프리로드가 실패해도
메타 태그는 갱신되며 경고만 출력됩니다.

출력 파일을 지정하지 않으면 결과 HTML을 표준 출력으로 내보냅니다.

예시:
  ogpreview sync index.html -q "ratio=1:1&size=500" -o out.html
  ogpreview sync index.html -q "text=Hello" --mode text > out.html
  ogpreview sync index.html --no-preload -v`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncQuery, "query", "q", "", "쿼리 문자열 또는 전체 URL")
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "", "출력 파일 경로 (기본: stdout)")
	syncCmd.Flags().BoolVar(&syncNoPreload, "no-preload", false, "이미지 프리로드 생략")
	syncCmd.Flags().BoolVarP(&syncVerbose, "verbose", "v", false, "상세 출력")
	syncCmd.Flags().BoolVar(&syncQuiet, "quiet", false, "경고 출력 안 함")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("파일을 찾을 수 없습니다: %s", inputPath)
	}

	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	if syncNoPreload {
		cfg.Preload.Enabled = new(bool)
	}

	doc, err := htmldoc.ParseFile(inputPath)
	if err != nil {
		return fmt.Errorf("HTML 파싱 실패: %w", err)
	}

	loc, err := parseLocation(syncQuery)
	if err != nil {
		return fmt.Errorf("쿼리 파싱 실패: %w", err)
	}

	p, err := buildPreview(cfg, loc, doc, newLogger(cmd, syncQuiet))
	if err != nil {
		return err
	}
	if err := p.Mount(cmd.Context()); err != nil {
		return fmt.Errorf("동기화 실패: %w", err)
	}
	defer p.Unmount()

	if syncVerbose {
		stderr := cmd.ErrOrStderr()
		fmt.Fprintf(stderr, "모드: %s\n", cfg.Mode)
		fmt.Fprintf(stderr, "이미지 URL: %s\n", p.ImageURL())
		if dims, err := p.Dimensions(); err == nil {
			fmt.Fprintf(stderr, "크기: %s\n", dims)
		}
		if p.Mode().Preload {
			fmt.Fprintf(stderr, "프리로드: %v\n", p.IsImageLoaded())
		}
		fmt.Fprintf(stderr, "쿼리: %s\n", loc.RawQuery())
	}

	if syncOutput == "" {
		return doc.Render(cmd.OutOrStdout())
	}

	if err := doc.WriteFile(syncOutput); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}
	if !syncQuiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "저장됨: %s\n", syncOutput)
	}
	return nil
}
