package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationError(t *testing.T) {
	type createReq struct {
		Name     string `validate:"required"`
		Progress int    `validate:"gte=0,lte=100"`
	}

	v := validator.New()

	t.Run("required", func(t *testing.T) {
		err := v.Struct(&createReq{Progress: 50})
		require.Error(t, err)
		assert.Equal(t, "field 'Name' is required", FormatValidationError(err))
	})

	t.Run("range", func(t *testing.T) {
		err := v.Struct(&createReq{Name: "发布计划", Progress: 120})
		require.Error(t, err)
		assert.Contains(t, FormatValidationError(err), "must be less than or equal to 100")
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, "", FormatValidationError(nil))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, "连接超时", FormatValidationError(errors.New("连接超时")))
	})
}
