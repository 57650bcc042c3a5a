package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/utils"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/sirupsen/logrus"
)

// statusForKind 错误类别对应的 HTTP 状态码
var statusForKind = map[workflow.Kind]int{
	workflow.KindValidation:    http.StatusBadRequest,
	workflow.KindAuthorization: http.StatusForbidden,
	workflow.KindInvalidState:  http.StatusConflict,
	workflow.KindNotFound:      http.StatusNotFound,
}

// RespondError 将错误转换为 HTTP 响应
// 审批流程错误按类别映射并本地化,其余错误视为存储故障返回 500
func RespondError(c *gin.Context, err error) {
	var wfErr *workflow.Error
	if errors.As(err, &wfErr) {
		status, ok := statusForKind[wfErr.Kind]
		if !ok {
			status = http.StatusBadRequest
		}
		Error(c, status, translateOr(c, "error."+wfErr.Code, wfErr.Message), wfErr.Code)
		return
	}

	GetLogger(c).WithError(err).WithField("path", c.FullPath()).Error("Request failed")
	Error(c, http.StatusInternalServerError, T(c, "error.internal_error"), "internal_error")
}

// BadRequest 请求参数错误
func BadRequest(c *gin.Context, err error) {
	Error(c, http.StatusBadRequest, T(c, "error.bad_request"), err.Error())
}

// textTooLong 自由文本超长
func textTooLong(c *gin.Context, err error) {
	var vErr *utils.ValidationError
	if errors.As(err, &vErr) {
		Error(c, http.StatusBadRequest, translateOr(c, "error."+vErr.Code, vErr.Message), vErr.Code)
		return
	}
	BadRequest(c, err)
}

// pathID 读取并校验路径参数 id,格式非法时按资源不存在处理
func pathID(c *gin.Context, notFound error) (string, bool) {
	id := c.Param("id")
	if utils.ValidateID(id) != nil {
		RespondError(c, notFound)
		return "", false
	}
	return id, true
}

// ErrorHandlerMiddleware 处理通过 c.Error 记录但尚未响应的错误
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			RespondError(c, c.Errors.Last().Err)
		}
	}
}

// GetLogger 获取请求关联的日志记录器
func GetLogger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(loggerKey); ok {
		if logger, ok := v.(*logrus.Logger); ok {
			return logger.WithField("request_id", c.GetString(requestIDKey))
		}
	}
	return logrus.WithField("request_id", c.GetString(requestIDKey))
}
