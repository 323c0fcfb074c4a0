package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"bidwatch/backend/internal/bidstatus"
	"bidwatch/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 公告与我的投标导出为 Excel (.xlsx)
//   - 未结束且有截止时间的投标导出为日历 (.ics)
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportNotices(ctx context.Context, source string, gap int) (*bytes.Buffer, string, error)
	ExportMyBids(ctx context.Context, status string) (*bytes.Buffer, string, error)
	ExportMyBidCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportNotices，公告列表导出为 Excel
// ═══════════════════════════════════════════════════════════

var noticeHeaders = []string{"번호", "제목", "기관", "지역", "분류", "게시일", "마감", "공고번호", "예산", "링크"}

func (s *exportService) ExportNotices(ctx context.Context, source string, gap int) (*bytes.Buffer, string, error) {
	source = normalizeSource(source)
	notices, err := s.repo.Notice.List(ctx, source, repository.NoticeFilter{Since: sinceDays(s.now(), gap)})
	if err != nil {
		s.logger.Error("查询导出公告失败", zap.String("source", source), zap.Error(err))
		return nil, "", err
	}

	rows := make([][]interface{}, 0, len(notices))
	for _, n := range notices {
		rows = append(rows, []interface{}{
			n.Nid, n.Title, n.OrgName, n.OrgRegion, n.Category,
			formatTimePtr(n.PostedDate, "2006-01-02"),
			formatTimePtr(n.ClosingAt, "2006-01-02 15:04"),
			n.BidNo, n.Budget, n.DetailURL,
		})
	}

	buf, err := s.writeSheet("공고", noticeHeaders, []float64{8, 60, 24, 10, 12, 12, 18, 18, 14, 40}, rows)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("notices_%s_%s.xlsx", source, s.now().Format("20060102"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportMyBids，我的投标导出为 Excel
// ═══════════════════════════════════════════════════════════

var myBidHeaders = []string{"번호", "출처", "제목", "기관", "상태", "마감", "등록일", "링크"}

func (s *exportService) ExportMyBids(ctx context.Context, status string) (*bytes.Buffer, string, error) {
	if status != "" {
		if _, err := bidstatus.Parse(status); err != nil {
			return nil, "", ErrInvalidStatus
		}
	}
	bids, err := s.repo.MyBid.List(ctx, status)
	if err != nil {
		s.logger.Error("查询导出投标失败", zap.Error(err))
		return nil, "", err
	}

	rows := make([][]interface{}, 0, len(bids))
	for _, b := range bids {
		rows = append(rows, []interface{}{
			b.Nid, b.Source, b.Title, b.OrgName, b.Status,
			formatTimePtr(b.ClosingAt, "2006-01-02 15:04"),
			b.CreatedAt.Format("2006-01-02"),
			b.DetailURL,
		})
	}

	buf, err := s.writeSheet("입찰", myBidHeaders, []float64{8, 8, 60, 24, 10, 18, 12, 40}, rows)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("mybids_%s.xlsx", s.now().Format("20060102")), nil
}

// writeSheet 生成单 Sheet 工作簿：首行表头，其后为数据行
func (s *exportService) writeSheet(sheetName string, headers []string, widths []float64, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	for r, row := range rows {
		for c, v := range row {
			f.SetCellValue(sheetName, cell(colName(c), r+2), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, ErrExportGenerateFail
	}
	return buf, nil
}

// ═══════════════════════════════════════════════════════════
// ExportMyBidCalendar，投标截止日历 (.ics)
// ═══════════════════════════════════════════════════════════

// 截止事件时长
const deadlineEventDuration = 30 * time.Minute

func (s *exportService) ExportMyBidCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	bids, err := s.repo.MyBid.List(ctx, "")
	if err != nil {
		s.logger.Error("查询日历投标失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//bidwatch//mybids//KO")
	cal.SetXWRCalName("입찰 마감")

	now := s.now()
	for _, b := range bids {
		if b.ClosingAt == nil || bidstatus.IsTerminal(b.Status) {
			continue
		}
		evt := cal.AddEvent(fmt.Sprintf("mybid-%s-%d@bidwatch", b.Source, b.Nid))
		evt.SetDtStampTime(now)
		evt.SetStartAt(b.ClosingAt.Add(-deadlineEventDuration))
		evt.SetEndAt(*b.ClosingAt)
		evt.SetSummary(fmt.Sprintf("[마감] %s", b.Title))
		evt.SetDescription(fmt.Sprintf("%s / %s", b.OrgName, b.Status))
		if b.DetailURL != "" {
			evt.SetURL(b.DetailURL)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, fmt.Sprintf("mybids_%s.ics", now.Format("20060102")), nil
}

// ── 辅助函数 ──

// colName 0 起始列号转列名
func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
