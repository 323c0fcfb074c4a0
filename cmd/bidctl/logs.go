package main

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"bidwatch/backend/internal/repository"
	"bidwatch/backend/internal/service"
)

const daysFlag = "days"

var pruneFlags = map[string]cobraflags.Flag{
	daysFlag: &cobraflags.StringFlag{
		Name:  daysFlag,
		Value: "",
		Usage: "保留天数，缺省取配置 logs.retention_days",
	},
}

func newLogsCommand() *cobra.Command {
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "爬取日志维护",
	}

	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "立即清理超过保留期的爬取日志",
		Args:  cobra.NoArgs,
		RunE:  pruneLogsCommand,
	}
	cobraflags.RegisterMap(pruneCmd, pruneFlags)
	cobraflags.RegisterMap(pruneCmd, configFlags)

	logsCmd.AddCommand(pruneCmd)
	return logsCmd
}

func pruneLogsCommand(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	days := e.cfg.Logs.RetentionDays
	if v := pruneFlags[daysFlag].GetString(); v != "" {
		if days, err = strconv.Atoi(v); err != nil || days <= 0 {
			return fmt.Errorf("--days 必须是正整数")
		}
	}

	svc := service.NewLogService(repository.NewRepository(e.db), e.logger)
	n, err := svc.Prune(cmd.Context(), days)
	if err != nil {
		return fmt.Errorf("清理失败: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已清理 %d 条日志（保留 %d 天）\n", n, days)
	return nil
}
