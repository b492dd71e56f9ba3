package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/gogpu/algoviz"
	"github.com/gogpu/algoviz/compute"
	"github.com/gogpu/algoviz/dataset"
	"github.com/gogpu/algoviz/viz"
)

// ResponseData is the envelope of every JSON response:
//
//	{"code": 0, "message": "success", "data": {...}}
type ResponseData[T any] struct {
	Code    ResCode `json:"code"`
	Message string  `json:"message"`
	Data    T       `json:"data"`
}

// ResCode is a dashboard result code. Zero is success.
type ResCode int64

const (
	CodeSuccess        ResCode = 0
	CodeInvalidParam   ResCode = 4000
	CodeInvalidDataset ResCode = 4001
	CodeNoDataset      ResCode = 4090
	CodeNoResult       ResCode = 4091
	CodeSuperseded     ResCode = 4092
	CodeRenderFailed   ResCode = 4220
	CodeServerBusy     ResCode = 5000
	CodeServiceFailed  ResCode = 5020
	CodeServiceTimeout ResCode = 5040
)

var codeMsgMap = map[ResCode]string{
	CodeSuccess:        "success",
	CodeInvalidParam:   "invalid request parameters",
	CodeInvalidDataset: "invalid dataset",
	CodeNoDataset:      "no dataset loaded",
	CodeNoResult:       "no result available",
	CodeSuperseded:     "result superseded by a newer run",
	CodeRenderFailed:   "result cannot be rendered",
	CodeServerBusy:     "internal error",
	CodeServiceFailed:  "compute service error",
	CodeServiceTimeout: "compute service timed out",
}

// Msg returns the default message of the code.
func (c ResCode) Msg() string {
	msg, ok := codeMsgMap[c]
	if !ok {
		msg = codeMsgMap[CodeServerBusy]
	}
	return msg
}

// ResponseSuccess writes data with status 200.
func ResponseSuccess[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, &ResponseData[T]{
		Code:    CodeSuccess,
		Message: CodeSuccess.Msg(),
		Data:    data,
	})
}

// ResponseErrorWithMsg writes an error envelope with a custom message.
func ResponseErrorWithMsg(c *gin.Context, status int, code ResCode, msg string) {
	c.AbortWithStatusJSON(status, &ResponseData[any]{
		Code:    code,
		Message: msg,
	})
}

// ResponseError maps err to a status and code and writes the envelope.
func ResponseError(c *gin.Context, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	ResponseErrorWithMsg(c, status, code, err.Error())
}

// classify maps session errors to an HTTP status and result code.
func classify(err error) (int, ResCode) {
	var (
		pe  *dataset.ParseError
		pre *algoviz.PreconditionError
		re  *viz.RenderError
		se  *compute.ServiceError
		ue  *url.Error
	)
	switch {
	case errors.As(err, &pe):
		return http.StatusBadRequest, CodeInvalidDataset
	case errors.Is(err, algoviz.ErrSuperseded):
		return http.StatusConflict, CodeSuperseded
	case errors.As(err, &pre):
		if errors.Is(err, algoviz.ErrNoResult) {
			return http.StatusConflict, CodeNoResult
		}
		return http.StatusConflict, CodeNoDataset
	case errors.As(err, &re):
		return http.StatusUnprocessableEntity, CodeRenderFailed
	case errors.As(err, &se):
		return http.StatusBadGateway, CodeServiceFailed
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeServiceTimeout
	case errors.As(err, &ue):
		return http.StatusBadGateway, CodeServiceFailed
	default:
		return http.StatusInternalServerError, CodeServerBusy
	}
}
