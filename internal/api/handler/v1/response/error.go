package response

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error"`
	RequestID  string `json:"request_id,omitempty"`
}

func (e *Err) Error() string {
	return e.Msg
}

func RenderErr(ctx *gin.Context, err *Err) {
	err.RequestID = requestid.Get(ctx)

	if err.StatusCode >= http.StatusInternalServerError {
		// Never leak internals; the detail goes to the log instead.
		zap.L().Error("internal error",
			zap.String("request_id", err.RequestID),
			zap.String("detail", err.Msg))
		err.Msg = "internal server error"
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Msg:        err.Error(),
	}
}

func ErrUnauthorized(msg string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        msg,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Msg:        "incorrect email or password",
	}
}

func ErrForbidden(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Msg:        err.Error(),
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Msg:        err.Error(),
	}
}

func ErrBadGateway(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadGateway,
		Msg:        err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Msg:        err.Error(),
	}
}
