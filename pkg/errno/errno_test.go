package errno

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	assert.Equal(t, Success, ConvertErr(nil))

	wrapped := errors.Wrap(NotFoundErr.WithMessage("No video found with id: 7"), "detail")
	got := ConvertErr(wrapped)
	assert.Equal(t, int64(NotFoundErrCode), got.ErrCode)
	assert.Equal(t, "No video found with id: 7", got.ErrMsg)

	plain := ConvertErr(errors.New("connection refused"))
	assert.Equal(t, int64(ServiceErrCode), plain.ErrCode)
	assert.Equal(t, "connection refused", plain.ErrMsg)
}

func TestErrNoIsMatchesKind(t *testing.T) {
	err := errors.WithMessage(ForbiddenErr.WithMessage("not yours"), "delete")
	assert.True(t, errors.Is(err, ForbiddenErr))
	assert.False(t, errors.Is(err, NotFoundErr))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[ErrNo]int{
		Success:                http.StatusOK,
		BadRequestErr:          http.StatusBadRequest,
		AuthorizationFailedErr: http.StatusUnauthorized,
		ForbiddenErr:           http.StatusForbidden,
		NotFoundErr:            http.StatusNotFound,
		TooManyRequestsErr:     http.StatusTooManyRequests,
		ServiceErr:             http.StatusInternalServerError,
	}
	for e, status := range cases {
		assert.Equal(t, status, e.HTTPStatus(), e.ErrMsg)
	}
}
