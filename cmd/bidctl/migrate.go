package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"bidwatch/backend/pkg/database"
)

const stepsFlag = "steps"

var rollbackFlags = map[string]cobraflags.Flag{
	stepsFlag: &cobraflags.StringFlag{
		Name:  stepsFlag,
		Value: "1",
		Usage: "回退的版本数",
	},
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "管理内嵌的数据库迁移",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "应用全部未执行的迁移",
		Args:  cobra.NoArgs,
		RunE:  migrateUpCommand,
	}
	cobraflags.RegisterMap(up, configFlags)

	down := &cobra.Command{
		Use:   "down",
		Short: "回退指定步数的迁移",
		Args:  cobra.NoArgs,
		RunE:  migrateDownCommand,
	}
	cobraflags.RegisterMap(down, configFlags)
	cobraflags.RegisterMap(down, rollbackFlags)

	version := &cobra.Command{
		Use:   "version",
		Short: "打印当前迁移版本",
		Args:  cobra.NoArgs,
		RunE:  migrateVersionCommand,
	}
	cobraflags.RegisterMap(version, configFlags)

	cmd.AddCommand(up, down, version)
	return cmd
}

func withSQLDB(fn func(e *env, db *sql.DB) error) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	sqlDB, err := e.db.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	return fn(e, sqlDB)
}

func migrateUpCommand(cmd *cobra.Command, _ []string) error {
	return withSQLDB(func(e *env, db *sql.DB) error {
		if err := database.RunMigrations(db, e.logger); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "迁移完成")
		return nil
	})
}

func migrateDownCommand(cmd *cobra.Command, _ []string) error {
	steps, err := strconv.Atoi(rollbackFlags[stepsFlag].GetString())
	if err != nil || steps <= 0 {
		return fmt.Errorf("--steps 必须是正整数")
	}
	return withSQLDB(func(e *env, db *sql.DB) error {
		if err := database.RollbackMigrations(db, steps, e.logger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已回退 %d 个版本\n", steps)
		return nil
	})
}

func migrateVersionCommand(cmd *cobra.Command, _ []string) error {
	return withSQLDB(func(_ *env, db *sql.DB) error {
		st, err := database.CurrentMigration(db)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch {
		case st.Empty:
			fmt.Fprintln(out, "尚未执行任何迁移")
		case st.Dirty:
			fmt.Fprintf(out, "%d (dirty)\n", st.Version)
		default:
			fmt.Fprintln(out, st.Version)
		}
		return nil
	})
}
