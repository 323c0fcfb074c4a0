package main

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"bidwatch/backend/internal/search"
)

func runCLI(args ...string) (string, error) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestKeywordsParse(t *testing.T) {
	c := qt.New(t)

	out, err := runCLI("keywords", "parse", "공사*3, 설계*2,용역")
	c.Assert(err, qt.IsNil)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	c.Assert(lines, qt.HasLen, 4)
	c.Assert(strings.Fields(lines[1]), qt.DeepEquals, []string{"공사", "3"})
	c.Assert(strings.Fields(lines[2]), qt.DeepEquals, []string{"설계", "2"})
	c.Assert(strings.Fields(lines[3]), qt.DeepEquals, []string{"용역", "1"})
}

func TestKeywordsParse_InvalidWeight(t *testing.T) {
	c := qt.New(t)

	_, err := runCLI("keywords", "parse", "공사*x")
	c.Assert(err, qt.IsNotNil)
}

func TestKeywordsParse_Empty(t *testing.T) {
	c := qt.New(t)

	_, err := runCLI("keywords", "parse", " , ")
	c.Assert(err, qt.ErrorIs, search.ErrEmptyKeywords)
}

func TestKeywordsScore(t *testing.T) {
	c := qt.New(t)

	out, err := runCLI("keywords", "score", "공사*3,설계*2,교량", "도로 공사 설계 용역")
	c.Assert(err, qt.IsNil)
	c.Assert(strings.TrimSpace(out), qt.Equals, "5")
}

func TestExportNotices_BadGap(t *testing.T) {
	c := qt.New(t)

	_, err := runCLI("export", "notices", "--gap=-1")
	c.Assert(err, qt.ErrorMatches, ".*--gap.*")
}

func TestMigrateDown_BadSteps(t *testing.T) {
	c := qt.New(t)

	_, err := runCLI("migrate", "down", "--steps=0")
	c.Assert(err, qt.ErrorMatches, ".*--steps.*")
}

func TestKeywordsScore_IgnoresCase(t *testing.T) {
	c := qt.New(t)

	out, err := runCLI("keywords", "score", "road*", "Road works")
	c.Assert(err, qt.IsNil)
	c.Assert(strings.TrimSpace(out), qt.Equals, "1")
}
