package async

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverError struct{ msg string }

func (e *serverError) Error() string       { return "server: " + e.msg }
func (e *serverError) UserMessage() string { return e.msg }

func TestRunSuccess(t *testing.T) {
	a := NewAction[string]()
	assert.False(t, a.Loading())

	var during bool
	res := a.Run(context.Background(), func(ctx context.Context) (string, error) {
		during = a.Loading()
		return "X", nil
	})

	assert.True(t, during)
	assert.False(t, a.Loading())
	assert.True(t, res.OK)
	assert.Equal(t, "X", res.Data)
	assert.NoError(t, res.Err)
}

func TestRunFailure(t *testing.T) {
	boom := errors.New("E")
	var handled []error
	a := NewAction[int](WithErrorHandler(func(ctx context.Context, err error) {
		handled = append(handled, err)
	}))

	var during bool
	res := a.Run(context.Background(), func(ctx context.Context) (int, error) {
		during = a.Loading()
		return 42, boom
	})

	assert.True(t, during)
	assert.False(t, a.Loading())
	assert.False(t, res.OK)
	assert.Zero(t, res.Data)
	assert.ErrorIs(t, res.Err, boom)
	require.Len(t, handled, 1)
	assert.ErrorIs(t, handled[0], boom)
}

func TestRunRecoversPanic(t *testing.T) {
	a := NewAction[int]()
	res := a.Run(context.Background(), func(ctx context.Context) (int, error) {
		panic("bad")
	})
	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Err, ErrPanic)
	assert.False(t, a.Loading())
}

func TestRunSingleAttempt(t *testing.T) {
	a := NewAction[int]()
	calls := 0
	a.Run(context.Background(), func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	})
	assert.Equal(t, 1, calls)
}

func TestIsLatest(t *testing.T) {
	a := NewAction[int]()
	_, first := a.RunTracked(context.Background(), func(ctx context.Context) (int, error) { return 1, nil })
	assert.True(t, a.IsLatest(first))

	_, second := a.RunTracked(context.Background(), func(ctx context.Context) (int, error) { return 2, nil })
	assert.False(t, a.IsLatest(first))
	assert.True(t, a.IsLatest(second))
}

func TestWithNotifier(t *testing.T) {
	rec := &Recorder{}
	a := NewAction[int](WithNotifier(rec))

	a.Run(context.Background(), func(ctx context.Context) (int, error) {
		return 0, &serverError{msg: "City already exists"}
	})
	a.Run(context.Background(), func(ctx context.Context) (int, error) {
		return 0, errors.New("dial tcp: refused")
	})

	toasts := rec.Drain()
	require.Len(t, toasts, 2)
	assert.Equal(t, Toast{Level: "error", Message: "City already exists"}, toasts[0])
	assert.Equal(t, Toast{Level: "error", Message: "Something went wrong"}, toasts[1])
	assert.Empty(t, rec.Drain())
}

func TestMessage(t *testing.T) {
	wrapped := errors.Join(errors.New("ctx"), &serverError{msg: "  Saved  "})
	assert.Equal(t, "Saved", Message(wrapped, "default"))
	assert.Equal(t, "default", Message(&serverError{msg: " "}, "default"))
	assert.Equal(t, "default", Message(nil, "default"))
}
