package cli

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/roboco-io/ogpreview/internal/config"
	"github.com/roboco-io/ogpreview/internal/location"
	"github.com/roboco-io/ogpreview/internal/ogimage"
	"github.com/roboco-io/ogpreview/internal/preload"
	"github.com/spf13/cobra"
)

// baseURL anchors bare query strings given on the command line.
const baseURL = "http://localhost/"

var (
	modeName    string
	serviceHost string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&modeName, "mode", "", "모드 (classic, text, text-legacy)")
	rootCmd.PersistentFlags().StringVar(&serviceHost, "service", "", "이미지 서비스 호스트 (기본: dummyimage.com)")
}

// loadEffectiveConfig loads the configuration and applies --mode and --service.
func loadEffectiveConfig() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if modeName != "" {
		cfg.Mode = modeName
	}
	if serviceHost != "" {
		cfg.Service = serviceHost
	}
	return cfg, nil
}

// parseLocation accepts a full URL or a bare query string ("ratio=1:1&size=500").
func parseLocation(s string) (*location.Location, error) {
	if strings.Contains(s, "://") {
		return location.New(s)
	}
	return location.New(baseURL + "?" + strings.TrimPrefix(s, "?"))
}

// newLogger returns a logger writing to the command's error stream.
func newLogger(cmd *cobra.Command, quiet bool) *log.Logger {
	if quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "ogpreview: ", 0)
}

// buildPreview creates a preview for cfg over loc and doc.
func buildPreview(cfg *config.Config, loc *location.Location, doc ogimage.Document, logger *log.Logger) (*ogimage.Preview, error) {
	mode, err := cfg.ResolveMode()
	if err != nil {
		return nil, fmt.Errorf("모드 설정 오류: %w", err)
	}
	timeout, err := cfg.PreloadTimeout()
	if err != nil {
		return nil, err
	}

	opts := ogimage.Options{
		Mode:           mode,
		Service:        cfg.Service,
		Defaults:       cfg.Params(),
		Query:          loc,
		Document:       doc,
		PreloadTimeout: timeout,
		Logger:         logger,
	}
	if mode.Preload {
		opts.Loader = preload.New(preload.Config{})
	}

	p, err := ogimage.New(opts)
	if err != nil {
		return nil, fmt.Errorf("미리보기 생성 실패: %w", err)
	}
	return p, nil
}
