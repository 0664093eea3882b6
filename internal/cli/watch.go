package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roboco-io/ogpreview/internal/htmldoc"
	"github.com/roboco-io/ogpreview/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	watchQuery    string
	watchOutput   string
	watchDebounce time.Duration
	watchInit     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <controls.yaml> <page.html>",
	Short: "컨트롤 파일 변경 시 메타 태그 자동 갱신",
	Long: `YAML 컨트롤 파일을 감시하다가 값이 바뀌면 미리보기를 다시 계산하고
HTML 파일의 메타 태그를 갱신합니다.

컨트롤 파일 형식:
  ratio: "16:9"
  size: 1080
  bg: "#4285f4"
  color: "ffffff"
  text: "Hello"     # text 모드
  font: "arial"     # text 모드

출력 파일을 지정하지 않으면 HTML 파일을 덮어씁니다.

예시:
  ogpreview watch controls.yaml index.html
  ogpreview watch controls.yaml index.html --init --mode text
  ogpreview watch controls.yaml index.html -o dist/index.html`,
	Args: cobra.ExactArgs(2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchQuery, "query", "q", "", "초기 쿼리 문자열 또는 전체 URL")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "출력 파일 경로 (기본: 입력 HTML 덮어쓰기)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "변경 감지 후 대기 시간")
	watchCmd.Flags().BoolVar(&watchInit, "init", false, "컨트롤 파일이 없으면 현재 값으로 생성")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	controlsPath, pagePath := args[0], args[1]
	outputPath := watchOutput
	if outputPath == "" {
		outputPath = pagePath
	}

	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}

	doc, err := htmldoc.ParseFile(pagePath)
	if err != nil {
		return fmt.Errorf("HTML 파싱 실패: %w", err)
	}

	loc, err := parseLocation(watchQuery)
	if err != nil {
		return fmt.Errorf("쿼리 파싱 실패: %w", err)
	}

	logger := newLogger(cmd, false)
	p, err := buildPreview(cfg, loc, doc, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Mount(ctx); err != nil {
		return fmt.Errorf("동기화 실패: %w", err)
	}
	defer p.Unmount()

	if _, err := os.Stat(controlsPath); os.IsNotExist(err) {
		if !watchInit {
			return fmt.Errorf("컨트롤 파일을 찾을 수 없습니다: %s\n생성하려면 --init 플래그를 사용하세요", controlsPath)
		}
		if err := watcher.ControlsFromParams(p.Params()).Save(controlsPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "컨트롤 파일 생성됨: %s\n", controlsPath)
	}

	out := cmd.OutOrStdout()
	write := func() {
		if err := doc.WriteFile(outputPath); err != nil {
			logger.Printf("Failed to write %s: %v", outputPath, err)
			return
		}
		fmt.Fprintf(out, "갱신됨: %s\n", p.ImageURL())
	}

	w, err := watcher.New(controlsPath, p.Store,
		watcher.WithDebounce(watchDebounce),
		watcher.WithLogger(logger),
		watcher.WithOnApply(func(err error) {
			if err == nil {
				write()
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("감시 시작 실패: %w", err)
	}
	defer w.Close()

	// Bring the page in line with the current file before waiting for edits.
	if err := w.Apply(); err != nil {
		return err
	}
	write()

	fmt.Fprintf(out, "감시 중: %s (종료: Ctrl+C)\n", w.Path())
	return w.Run(ctx)
}
