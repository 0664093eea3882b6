// Package cli implements the ogpreview command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/roboco-io/ogpreview/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "ogpreview",
	Short: "소셜 미리보기(Open Graph) 이미지 URL 생성 및 메타 태그 동기화",
	Long: `ogpreview는 비율, 크기, 배경/글자 색상, 오버레이 텍스트로부터
Open Graph / Twitter 카드용 미리보기 이미지 URL을 만들고,
쿼리 문자열과 HTML 메타 태그(og-image, twitter-image)를 동기화합니다.

쿼리 파라미터:
  ratio   비율 (예: 16:9)
  size    긴 변 픽셀 크기 (예: 1080)
  bg      배경색 (hex, # 생략 가능)
  color   글자색 (hex, # 생략 가능)
  text    오버레이 텍스트 (text 모드)
  font    폰트 이름 (text 모드)

예시:
  ogpreview url "ratio=4:3&size=800&bg=ff0000"
  ogpreview sync index.html -q "ratio=1:1&size=500"
  ogpreview serve --port 8080
  ogpreview watch controls.yaml index.html`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ogpreview %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "설정 파일 경로 (기본: ~/.ogpreview/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "환경 변수 파일 (없으면 무시)")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadEnvFile loads variables from path when it exists. Variables already
// set in the environment win.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("환경 변수 파일 로드 실패: %w", err)
	}
	return nil
}

// newLoader returns the loader for --config or the default location.
func newLoader() (*config.Loader, error) {
	if configPath != "" {
		return config.NewLoaderWithPath(configPath), nil
	}
	return config.NewLoader()
}

// loadConfig loads the configuration with environment overrides applied.
func loadConfig() (*config.Config, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}
	cfg, err := loader.LoadWithEnv()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	return cfg, nil
}
