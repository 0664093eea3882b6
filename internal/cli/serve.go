package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/roboco-io/ogpreview/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveHost string
	servePort int
	servePage string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "미리보기 HTTP 서버 실행",
	Long: `요청 쿼리에 맞춰 메타 태그가 채워진 페이지를 제공하는 HTTP 서버를 실행합니다.

경로:
  /               메타 태그가 갱신된 HTML 페이지
  /preview.json   이미지 URL, 크기, 파라미터 (JSON)
  /image          이미지 URL로 리다이렉트
  /healthz        상태 확인

예시:
  ogpreview serve
  ogpreview serve --port 9000 --page ./index.html
  ogpreview serve --mode text`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "바인드 호스트 (기본: 설정값)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "포트 (기본: 설정값)")
	serveCmd.Flags().StringVar(&servePage, "page", "", "HTML 템플릿 경로 (기본: 내장 페이지)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadEffectiveConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if servePage != "" {
		cfg.Server.Page = servePage
	}

	srv, err := server.New(cfg, server.WithLogger(newLogger(cmd, false)))
	if err != nil {
		return fmt.Errorf("서버 초기화 실패: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "서버 시작: http://%s (모드: %s)\n", cfg.Addr(), cfg.Mode)
	if err := srv.ListenAndServe(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("서버 오류: %w", err)
	}
	return nil
}
