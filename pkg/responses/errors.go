package responses

import "fmt"

// 错误码
const (
	CodeSuccess         = 2000000
	CodeBadRequest      = 4000000
	CodeUnauthorized    = 4010000
	CodeForbidden       = 4030000
	CodeNotFound        = 4040000
	CodeConflict        = 4090000
	CodeValidationError = 4220000
	CodeInternalError   = 5000000
	CodeDatabaseError   = 5001000
	CodeUpstreamError   = 5002000
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// New 创建新错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// 预定义错误
var (
	ErrBadRequest      = New(CodeBadRequest, "请求参数错误")
	ErrNotFound        = New(CodeNotFound, "资源不存在")
	ErrConflict        = New(CodeConflict, "资源冲突")
	ErrInternalError   = New(CodeInternalError, "内部服务器错误")
	ErrDatabaseError   = New(CodeDatabaseError, "数据库错误")
	ErrValidationError = New(CodeValidationError, "数据验证失败")
	ErrUpstreamError   = New(CodeUpstreamError, "上游服务调用失败")

	// 具体业务错误
	ErrRecordNotFound     = New(CodeNotFound, "记录不存在")
	ErrRecordExists       = New(CodeConflict, "记录已存在")
	ErrProjectNotFound    = New(CodeNotFound, "项目不存在")
	ErrProjectHasChildren = New(CodeConflict, "项目下仍存在任务/特性/待办/风险，无法删除")
	ErrLookupNotFound     = New(CodeValidationError, "引用的字典项不存在")
	ErrSelfDependency     = New(CodeValidationError, "任务不能依赖自身")
	ErrDuplicateBinding   = New(CodeConflict, "关联关系已存在")
	ErrUnknownRoom        = New(CodeBadRequest, "未知的房间名称")
)
