package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/flowerpass/flowerpass/pkg/fpcode"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	var errOut bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	cmd.SetErr(&errOut)
	return cmd, &errOut
}

func TestHandleError_Nil(t *testing.T) {
	cmd, errOut := newTestCommand()

	assert.Equal(t, ExitSuccess, HandleError(cmd, nil))
	assert.Empty(t, errOut.String())
}

func TestHandleError_Cancelled(t *testing.T) {
	cmd, errOut := newTestCommand()

	code := HandleError(cmd, fmt.Errorf("derive: %w", context.Canceled))
	assert.Equal(t, ExitCancelled, code)
	assert.Contains(t, errOut.String(), "cancelled")
}

func TestHandleError_InvalidLength(t *testing.T) {
	cmd, errOut := newTestCommand()

	_, err := fpcode.Code("x", "y", 33)
	code := HandleError(cmd, err)
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut.String(), "got: 33")
}

func TestHandleError_CLIError(t *testing.T) {
	cmd, errOut := newTestCommand()

	code := HandleError(cmd, NewCLIError(ExitStoreError, "store unavailable"))
	assert.Equal(t, ExitStoreError, code)
	assert.Contains(t, errOut.String(), "store unavailable")
}

func TestHandleError_WrappedCLIError(t *testing.T) {
	cmd, _ := newTestCommand()

	inner := WrapError(ExitConfigError, "bad config", errors.New("boom"))
	code := HandleError(cmd, fmt.Errorf("startup: %w", inner))
	assert.Equal(t, ExitConfigError, code)
}

func TestHandleError_Generic(t *testing.T) {
	cmd, errOut := newTestCommand()

	code := HandleError(cmd, errors.New("something broke"))
	assert.Equal(t, ExitError, code)
	assert.Contains(t, errOut.String(), "something broke")
}

func TestCLIError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := WrapError(ExitError, "outer", cause)

	assert.Contains(t, err.Error(), "outer")
	assert.Contains(t, err.Error(), "root cause")
	assert.ErrorIs(t, err, cause)

	plain := NewCLIError(ExitUsage, "just a message")
	assert.Equal(t, "just a message", plain.Error())
	assert.Nil(t, plain.Unwrap())
}
