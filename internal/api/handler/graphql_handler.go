package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"bidwatch/backend/internal/api/middleware"
)

// GraphQLHandler GraphQL 端点
type GraphQLHandler struct {
	schema *graphql.Schema
	logger *zap.Logger
}

// NewGraphQLHandler 创建 GraphQLHandler
func NewGraphQLHandler(schema *graphql.Schema, logger *zap.Logger) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, logger: logger}
}

// graphqlRequest 标准 GraphQL over HTTP 请求体
type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Serve 执行 GraphQL 请求
// POST /graphql  {query, operationName, variables}
func (h *GraphQLHandler) Serve(c *gin.Context) {
	var req graphqlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			// 由 BodyLimit 中间件统一返回 413
			_ = c.Error(err)
			return
		}
		writeGraphQLError(c, http.StatusBadRequest, "请求体不是合法的 GraphQL 请求")
		return
	}
	if req.Query == "" {
		writeGraphQLError(c, http.StatusBadRequest, "query 不能为空")
		return
	}

	if req.OperationName != "" {
		c.Set(middleware.OperationKey, req.OperationName)
	}

	resp := h.schema.Exec(c.Request.Context(), req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		h.logger.Debug("GraphQL 返回错误",
			zap.String("operation", req.OperationName),
			zap.Int("errors", len(resp.Errors)),
		)
	}

	c.JSON(http.StatusOK, resp)
}

func writeGraphQLError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"errors": []gin.H{{"message": message}}})
}
