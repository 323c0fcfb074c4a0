package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"bidwatch/backend/internal/repository"
	"bidwatch/backend/internal/service"
)

const (
	sourceFlag = "source"
	gapFlag    = "gap"
	outFlag    = "out"
)

var exportFlags = map[string]cobraflags.Flag{
	sourceFlag: &cobraflags.StringFlag{
		Name:  sourceFlag,
		Value: "gov",
		Usage: "公告来源 (gov, nara)",
	},
	gapFlag: &cobraflags.StringFlag{
		Name:  gapFlag,
		Value: "7",
		Usage: "导出最近 N 天的公告，0 表示全部",
	},
	outFlag: &cobraflags.StringFlag{
		Name:  outFlag,
		Value: "",
		Usage: "输出文件路径，缺省使用服务端生成的文件名",
	},
}

func newExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "离线导出数据",
	}

	noticesCmd := &cobra.Command{
		Use:   "notices",
		Short: "导出公告列表为 Excel",
		Example: `  bidctl export notices --source gov --gap 7 --out notices.xlsx
  bidctl export notices --source nara --gap 0`,
		Args: cobra.NoArgs,
		RunE: exportNoticesCommand,
	}
	cobraflags.RegisterMap(noticesCmd, exportFlags)
	cobraflags.RegisterMap(noticesCmd, configFlags)

	exportCmd.AddCommand(noticesCmd)
	return exportCmd
}

func exportNoticesCommand(cmd *cobra.Command, _ []string) error {
	gap, err := strconv.Atoi(exportFlags[gapFlag].GetString())
	if err != nil || gap < 0 {
		return fmt.Errorf("--gap 必须是非负整数")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	svc := service.NewExportService(repository.NewRepository(e.db), e.logger)
	buf, filename, err := svc.ExportNotices(cmd.Context(), exportFlags[sourceFlag].GetString(), gap)
	if err != nil {
		return fmt.Errorf("导出失败: %w", err)
	}

	out := exportFlags[outFlag].GetString()
	if out == "" {
		out = filename
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已导出 %s (%d 字节)\n", out, buf.Len())
	return nil
}
