package mark

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWith(t *testing.T) {
	base := errors.New("boom")

	err := With(base, ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "not found: boom", err.Error())

	assert.NoError(t, With(nil, ErrNotFound))
	assert.Same(t, base, With(base, nil))
}

func TestFromResponse(t *testing.T) {
	base := errors.New("request failed")

	tests := []struct {
		name   string
		status int
		mark   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, mark: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, mark: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, mark: ErrNotFound},
		{name: "gone", status: http.StatusGone, mark: ErrGone},
		{name: "validation", status: http.StatusUnprocessableEntity, mark: ErrInvalid},
		{name: "unavailable", status: http.StatusServiceUnavailable, mark: ErrUnavailable},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := FromResponse(&http.Response{StatusCode: tc.status}, base)
			assert.ErrorIs(t, err, tc.mark)
			assert.ErrorIs(t, err, base)
		})
	}

	t.Run("unmapped status keeps the error as is", func(t *testing.T) {
		assert.Same(t, base, FromResponse(&http.Response{StatusCode: http.StatusTeapot}, base))
	})

	t.Run("nil response", func(t *testing.T) {
		assert.Same(t, base, FromResponse(nil, base))
	})
}
