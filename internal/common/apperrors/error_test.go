package apperrors

import (
	"fmt"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	t.Run("Hierarchy", func(t *testing.T) {
		ErrBase := New("base error")
		assert.Equal(t, "base error", ErrBase.Error())
		assert.Equal(t, "msg", ErrBase.New("msg").Error())
		assert.ErrorIs(t, ErrBase, ErrBase)

		ErrFirstLevel := ErrBase.New("first level")
		assert.Equal(t, "first level", ErrFirstLevel.Error())
		assert.ErrorIs(t, ErrFirstLevel, ErrBase)
	})

	t.Run("Wrapping", func(t *testing.T) {
		ErrBase := New("base error")
		ErrFirstLevel := ErrBase.New("first level")

		err := errors.New("error")
		wrapped := ErrFirstLevel.Err(err)
		assert.Equal(t, "first level", wrapped.Error())
		assert.ErrorIs(t, wrapped, ErrBase)
		assert.ErrorIs(t, wrapped, err)

		wrapped = ErrFirstLevel.MsgErr("msg", err)
		assert.Equal(t, "msg", wrapped.Error())
		assert.ErrorIs(t, wrapped, ErrBase)
		assert.ErrorIs(t, wrapped, err)

		goErrA := fmt.Errorf("another error")
		goErrB := fmt.Errorf("yet another error")
		wrapped = ErrFirstLevel.Err(goErrA, goErrB)
		assert.Equal(t, "first level", wrapped.Error())
		assert.ErrorIs(t, wrapped, ErrBase)
		assert.ErrorIs(t, wrapped, goErrA)
		assert.ErrorIs(t, wrapped, goErrB)
	})

	t.Run("OSErrorsSurvive", func(t *testing.T) {
		ErrIO := New("io failure")
		wrapped := ErrIO.MsgErr("failed to read spill file", os.ErrNotExist)
		assert.ErrorIs(t, wrapped, ErrIO)
		assert.ErrorIs(t, wrapped, os.ErrNotExist)
	})

	t.Run("ExpandError", func(t *testing.T) {
		ErrBase := New("base error").SetExpandError(true)
		wrapped := ErrBase.MsgErr("top", fmt.Errorf("detail one"), fmt.Errorf("detail two"))
		assert.Contains(t, wrapped.ErrorAll(), "top")
		assert.Contains(t, wrapped.ErrorAll(), "detail one")
		assert.Contains(t, wrapped.ErrorAll(), "detail two")
	})

	t.Run("PrefixSuffix", func(t *testing.T) {
		base := New("message")
		assert.Equal(t, "pre: message", base.Prefix("pre").Error())
		assert.Equal(t, "message: post", base.Suffix("post").Error())
		assert.Equal(t, "message", base.Error())
	})
}
