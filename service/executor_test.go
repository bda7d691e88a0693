package service

import (
	"context"
	"errors"
	"testing"

	"myfleet/domain"
	"myfleet/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskExecutor_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("exit code is returned as a result", func(t *testing.T) {
		runner := &mock.CommandRunnerMock{RunFunc: func(context.Context, domain.TaskDescriptor) (int, error) { return 2, nil }}
		executor := NewTaskExecutor(runner, log.NewNopLogger())

		code, err := executor.Execute(ctx, domain.TaskDescriptor{Instructions: "false"})
		require.NoError(t, err)
		assert.Equal(t, 2, code)
		assert.Equal(t, "false", runner.RunCalls()[0].Task.Instructions)
	})

	t.Run("start failure is an execution error", func(t *testing.T) {
		runner := &mock.CommandRunnerMock{RunFunc: func(context.Context, domain.TaskDescriptor) (int, error) {
			return 0, errors.New("executable file not found in $PATH")
		}}
		executor := NewTaskExecutor(runner, log.NewNopLogger())

		_, err := executor.Execute(ctx, domain.TaskDescriptor{Instructions: "no-such-program"})
		require.Error(t, err)
		assert.True(t, IsExecutionError(err))
		assert.Contains(t, err.Error(), "no-such-program")
	})

	t.Run("empty instructions", func(t *testing.T) {
		runner := &mock.CommandRunnerMock{}
		executor := NewTaskExecutor(runner, log.NewNopLogger())

		_, err := executor.Execute(ctx, domain.TaskDescriptor{})
		assert.True(t, IsBadParameterError(err))
		assert.Empty(t, runner.RunCalls())
	})
}
