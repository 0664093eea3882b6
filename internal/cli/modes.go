package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/roboco-io/ogpreview/internal/preset"
	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "사용 가능한 모드 목록 표시",
	Long: `미리보기 모드 목록과 각 모드의 동작을 표시합니다.

열 설명:
  PRELOAD   메타 태그 갱신 전 이미지 프리로드 여부
  FIELDS    쿼리/이미지 URL에 포함되는 파라미터
  TRIGGERS  변경 시 동기화를 일으키는 파라미터`,
	RunE: runModes,
}

func init() {
	rootCmd.AddCommand(modesCmd)
}

func runModes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRELOAD\tFIELDS\tTRIGGERS\tDESCRIPTION")
	fmt.Fprintln(w, "----\t-------\t------\t--------\t-----------")

	for _, name := range preset.List() {
		p, err := preset.Get(name)
		if err != nil {
			return err
		}
		preloadStatus := "-"
		if p.Mode.Preload {
			preloadStatus = "✓"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, preloadStatus, p.Mode.Fields, p.Mode.Triggers, p.Description)
	}
	w.Flush()

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "사용법: ogpreview --mode <name> ... 또는 OGPREVIEW_MODE 환경 변수")
	return nil
}
