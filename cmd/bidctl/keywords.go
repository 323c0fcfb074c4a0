package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bidwatch/backend/internal/search"
)

func newKeywordsCommand() *cobra.Command {
	keywordsCmd := &cobra.Command{
		Use:   "keywords",
		Short: "关键词权重串工具",
	}

	parseCmd := &cobra.Command{
		Use:     "parse <keyword-weight-str>",
		Short:   "解析关键词权重串并打印结果",
		Example: `  bidctl keywords parse "공사*3,설계*2,용역"`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    parseKeywordsCommand,
	}

	scoreCmd := &cobra.Command{
		Use:     "score <keyword-weight-str> <title>",
		Short:   "计算标题在给定关键词下的得分",
		Example: `  bidctl keywords score "공사*3,설계*2" "도로 공사 설계 용역"`,
		Args:    cobra.ExactArgs(2),
		RunE:    scoreKeywordsCommand,
	}

	keywordsCmd.AddCommand(parseCmd, scoreCmd)
	return keywordsCmd
}

func parseKeywordsCommand(cmd *cobra.Command, args []string) error {
	weights, err := search.ParseKeywordWeights(strings.Join(args, ","))
	if err != nil {
		return err
	}
	if len(weights) == 0 {
		return search.ErrEmptyKeywords
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tWEIGHT")
	for _, kw := range weights {
		fmt.Fprintf(w, "%s\t%d\n", kw.Keyword, kw.Weight)
	}
	return w.Flush()
}

func scoreKeywordsCommand(cmd *cobra.Command, args []string) error {
	weights, err := search.ParseKeywordWeights(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), search.Score(args[1], weights))
	return nil
}
