package handlers

import (
	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response. The HTTP status follows the error kind.
func SendResponse(c *app.RequestContext, err error, data interface{}) {
	Err := errno.ConvertErr(err)
	c.JSON(Err.HTTPStatus(), Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// CurrentUser is the authenticated user id set by the auth middleware, nil for anonymous requests.
func CurrentUser(c *app.RequestContext) *int64 {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return nil
	}
	id, ok := v.(int64)
	if !ok {
		return nil
	}
	return &id
}

// PathID parses the named path parameter as an id.
func PathID(c *app.RequestContext, name string) (int64, error) {
	id, err := utils.ConvertStringToInt64(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errno.BadRequestErr.WithMessage("Invalid " + name)
	}
	return id, nil
}
