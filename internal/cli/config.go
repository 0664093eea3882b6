package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/roboco-io/ogpreview/internal/config"
	"github.com/roboco-io/ogpreview/internal/ogimage"
	"github.com/roboco-io/ogpreview/internal/preset"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "설정 관리",
	Long: `ogpreview 설정을 관리합니다.

설정 파일 위치: ~/.ogpreview/config.yaml

하위 명령:
  show    현재 설정 표시
  init    기본 설정 파일 생성
  set     설정 값 변경
  path    설정 파일 경로 표시`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "현재 설정 표시",
	Long: `현재 적용된 설정을 표시합니다.

환경 변수가 설정되어 있으면 해당 값이 적용됩니다.
설정 파일이 없으면 기본값이 표시됩니다.`,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "기본 설정 파일 생성",
	Long: `기본 설정 파일을 ~/.ogpreview/config.yaml에 생성합니다.

이미 설정 파일이 있는 경우 오류가 발생합니다.
기존 파일을 덮어쓰려면 --force 플래그를 사용하세요.`,
	RunE: runConfigInit,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "설정 값 변경",
	Long: `설정 값을 변경합니다.

지원하는 키:
  service           이미지 서비스 호스트
  mode              모드 (classic, text, text-legacy)
  defaults.ratio    기본 비율 (예: 16:9)
  defaults.size     기본 크기 (픽셀)
  defaults.bg       기본 배경색
  defaults.color    기본 글자색
  defaults.text     기본 텍스트
  defaults.font     기본 폰트
  preload.enabled   프리로드 사용 여부 (true, false)
  preload.timeout   프리로드 제한 시간 (예: 10s)
  server.host       서버 호스트
  server.port       서버 포트

예시:
  ogpreview config set mode text
  ogpreview config set defaults.size 1200`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "설정 파일 경로 표시",
	Run: func(cmd *cobra.Command, args []string) {
		loader, err := newLoader()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "오류: %v\n", err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
	},
}

var configForce bool

var configKeys = []string{
	"service", "mode",
	"defaults.ratio", "defaults.size", "defaults.bg", "defaults.color", "defaults.text", "defaults.font",
	"preload.enabled", "preload.timeout",
	"server.host", "server.port",
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "기존 설정 파일 덮어쓰기")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	out := cmd.OutOrStdout()

	// Show config file status
	if loader.Exists() {
		fmt.Fprintf(out, "설정 파일: %s\n\n", loader.ConfigPath())
	} else {
		fmt.Fprintf(out, "설정 파일: (기본값 사용)\n\n")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("설정 출력 실패: %w", err)
	}
	fmt.Fprintln(out, string(data))

	// Show environment variable overrides
	fmt.Fprintln(out, "환경 변수:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	envVars := []struct {
		key  string
		desc string
	}{
		{"OGPREVIEW_SERVICE", "이미지 서비스 호스트"},
		{"OGPREVIEW_MODE", "모드"},
		{"OGPREVIEW_PRELOAD", "프리로드 사용 여부"},
		{"OGPREVIEW_PRELOAD_TIMEOUT", "프리로드 제한 시간"},
	}

	for _, ev := range envVars {
		status := "(미설정)"
		if v := os.Getenv(ev.key); v != "" {
			status = v
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", ev.key, ev.desc, status)
	}
	w.Flush()

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	if loader.Exists() && !configForce {
		return fmt.Errorf("설정 파일이 이미 존재합니다: %s\n덮어쓰려면 --force 플래그를 사용하세요", loader.ConfigPath())
	}

	if err := loader.Save(config.DefaultConfig()); err != nil {
		return fmt.Errorf("설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일 생성됨: %s\n", loader.ConfigPath())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	loader, err := newLoader()
	if err != nil {
		return fmt.Errorf("설정 로더 초기화 실패: %w", err)
	}

	cfg, err := loader.LoadRaw()
	if err != nil {
		return fmt.Errorf("설정 로드 실패: %w", err)
	}

	if err := setConfigValue(cfg, key, value); err != nil {
		return err
	}

	if err := loader.Save(cfg); err != nil {
		return fmt.Errorf("설정 저장 실패: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "설정 변경됨: %s = %s\n", key, value)
	return nil
}

// setConfigValue updates cfg for one of configKeys.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "service":
		if value == "" || strings.ContainsAny(value, "/ ") {
			return fmt.Errorf("유효하지 않은 서비스 호스트: %q", value)
		}
		cfg.Service = value

	case "mode":
		if !contains(preset.List(), value) {
			return fmt.Errorf("유효하지 않은 모드: %s (지원: %s)", value, strings.Join(preset.List(), ", "))
		}
		cfg.Mode = value

	case "defaults.ratio":
		if _, _, err := ogimage.ParseRatio(value); err != nil {
			return fmt.Errorf("유효하지 않은 비율: %s", value)
		}
		cfg.Defaults.Ratio = value

	case "defaults.size":
		size, err := strconv.Atoi(value)
		if err != nil || size <= 0 {
			return fmt.Errorf("유효하지 않은 크기: %s", value)
		}
		cfg.Defaults.Size = size

	case "defaults.bg":
		cfg.Defaults.BgColor = strings.TrimPrefix(value, "#")

	case "defaults.color":
		cfg.Defaults.TextColor = strings.TrimPrefix(value, "#")

	case "defaults.text":
		cfg.Defaults.Text = value

	case "defaults.font":
		cfg.Defaults.Font = value

	case "preload.enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("유효하지 않은 값: %s (true 또는 false)", value)
		}
		cfg.Preload.Enabled = &enabled

	case "preload.timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("유효하지 않은 제한 시간: %s", value)
		}
		cfg.Preload.Timeout = value

	case "server.host":
		cfg.Server.Host = value

	case "server.port":
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("유효하지 않은 포트: %s", value)
		}
		cfg.Server.Port = port

	default:
		return fmt.Errorf("알 수 없는 설정 키: %s\n지원하는 키: %s", key, strings.Join(configKeys, ", "))
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
