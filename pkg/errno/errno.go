package errno

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	SuccessCode                = 0
	ServiceErrCode             = 10001
	ParamErrCode               = 10002
	AuthorizationFailedErrCode = 10003
	ForbiddenErrCode           = 10004
	NotFoundErrCode            = 10005
	TooManyRequestsErrCode     = 10006
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is reports kind equality so that errors.Is(err, NotFoundErr) ignores the message.
func (e ErrNo) Is(target error) bool {
	t, ok := target.(ErrNo)
	return ok && t.ErrCode == e.ErrCode
}

// HTTPStatus maps the error kind onto the status code written by the gateway.
func (e ErrNo) HTTPStatus() int {
	switch e.ErrCode {
	case SuccessCode:
		return http.StatusOK
	case ParamErrCode:
		return http.StatusBadRequest
	case AuthorizationFailedErrCode:
		return http.StatusUnauthorized
	case ForbiddenErrCode:
		return http.StatusForbidden
	case NotFoundErrCode:
		return http.StatusNotFound
	case TooManyRequestsErrCode:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

var (
	Success                = NewErrNo(SuccessCode, "Success")
	ServiceErr             = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr               = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	BadRequestErr          = ParamErr
	AuthorizationFailedErr = NewErrNo(AuthorizationFailedErrCode, "You need to be logged in to visit this route")
	ForbiddenErr           = NewErrNo(ForbiddenErrCode, "You are not authorized to perform this action")
	NotFoundErr            = NewErrNo(NotFoundErrCode, "Resource not found")
	TooManyRequestsErr     = NewErrNo(TooManyRequestsErrCode, "Too many requests, please retry later")
)

// ConvertErr convert error to Errno
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}

	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}
