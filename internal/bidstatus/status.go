// Package bidstatus 定义我的投标的状态流转：
//
//	progress ──► bidding ──► 낙찰 / 패찰 / 포기
//	    │  ◄──────┘
//	    └──► 포기
//
// 낙찰（中标）、패찰（落标）、포기（放弃）为终态。
package bidstatus

import "fmt"

const (
	Progress = "progress"
	Bidding  = "bidding"
	Won      = "낙찰"
	Lost     = "패찰"
	GaveUp   = "포기"
)

var transitions = map[string][]string{
	Progress: {Bidding, GaveUp},
	Bidding:  {Progress, Won, Lost, GaveUp},
}

// Parse 校验状态值
func Parse(s string) (string, error) {
	for _, v := range All() {
		if v == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("未知的投标状态 %q", s)
}

// CanTransition 判断 from → to 是否允许；状态不变总是允许（仅更新 detail/memo）
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal 是否为终态
func IsTerminal(s string) bool {
	_, ok := transitions[s]
	return !ok
}

// All 全部状态，按流转顺序排列
func All() []string {
	return []string{Progress, Bidding, Won, Lost, GaveUp}
}
