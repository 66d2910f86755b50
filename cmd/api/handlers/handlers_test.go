package handlers

import (
	"encoding/json"
	"errors"
	"testing"

	"VidTube.com/pkg/constants"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/route/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, c *app.RequestContext) Response {
	var resp Response
	require.NoError(t, json.Unmarshal(c.Response.Body(), &resp))
	return resp
}

func TestSendResponse(t *testing.T) {
	c := app.NewContext(0)
	SendResponse(c, nil, map[string]string{"k": "v"})
	assert.Equal(t, 200, c.Response.StatusCode())
	assert.Equal(t, int64(errno.SuccessCode), decode(t, c).Code)

	c = app.NewContext(0)
	SendResponse(c, errno.NotFoundErr.WithMessage("No video found"), nil)
	assert.Equal(t, 404, c.Response.StatusCode())
	resp := decode(t, c)
	assert.Equal(t, int64(errno.NotFoundErrCode), resp.Code)
	assert.Equal(t, "No video found", resp.Message)

	c = app.NewContext(0)
	SendResponse(c, errors.New("disk full"), nil)
	assert.Equal(t, 500, c.Response.StatusCode())
}

func TestCurrentUser(t *testing.T) {
	c := app.NewContext(0)
	assert.Nil(t, CurrentUser(c))
	c.Set(constants.IdentityKey, int64(7))
	require.NotNil(t, CurrentUser(c))
	assert.Equal(t, int64(7), *CurrentUser(c))
}

func TestPathID(t *testing.T) {
	c := app.NewContext(0)
	c.Params = param.Params{{Key: "videoId", Value: "42"}}
	id, err := PathID(c, "videoId")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	c = app.NewContext(0)
	c.Params = param.Params{{Key: "videoId", Value: "abc"}}
	_, err = PathID(c, "videoId")
	assert.True(t, errors.Is(err, errno.BadRequestErr))
}
