// nolint:forbidigo,depguard // This test file needs the standard errors package for testing the custom errors package
package errors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test_NewCustomError tests the creation of custom errors.
func Test_NewCustomError(t *testing.T) {
	err := New(ERR_NOT_FOUND, "resource not found")
	require.NotNil(t, err)
	require.Equal(t, ERR_NOT_FOUND, err.Code())
	require.Equal(t, "resource not found", err.Message())

	secondErr := New(ERR_INVALID_ARGUMENT, "[Connect][%s] failed to look up previous block", "_test_string_", err)
	thirdErr := New(ERR_NO_PREVIOUS_BLOCK, "[Connect][%s] orphan header", "_test_string_", secondErr)
	anotherErr := New(ERR_NO_PREVIOUS_BLOCK, "Another ERR, header is an orphan")
	fourthErr := New(ERR_SERVICE_ERROR, "older error: ", thirdErr)
	fifthErr := New(ERR_BLOCK_INVALID, "invalid header", fourthErr)

	require.True(t, anotherErr.Is(thirdErr))
	require.True(t, fourthErr.Is(New(ERR_NO_PREVIOUS_BLOCK, "")))
	require.True(t, fourthErr.Is(ErrNoPreviousBlock))

	require.True(t, fourthErr.Is(err))
	require.True(t, fifthErr.Is(thirdErr))
	require.True(t, fifthErr.Is(err))

	require.False(t, anotherErr.Is(fourthErr))
	require.False(t, fifthErr.Is(ErrBlockNotFound))
}

func Test_FmtErrorCustomError(t *testing.T) {
	err := New(ERR_NOT_FOUND, "resource not found")

	fmtError := fmt.Errorf("error: %w", err)
	require.NotNil(t, fmtError)

	secondErr := New(ERR_INVALID_ARGUMENT, "[Connect][%s] wrapped", "_test_string_", fmtError)

	// the wrapped fmt error still unwraps to the original *Error
	require.True(t, errors.Is(secondErr, ErrNotFound))
	require.True(t, Is(fmtError, ErrNotFound))
}

func Test_MessageFormatting(t *testing.T) {
	err := New(ERR_BLOCK_NOT_FOUND, "block %s at height %d", "abc", 7)
	assert.Equal(t, "block abc at height 7", err.Message())
	assert.Equal(t, "Error: BLOCK_NOT_FOUND (error code: 10), Message: block abc at height 7", err.Error())

	wrapped := New(ERR_STORAGE_ERROR, "could not read", err)
	assert.Contains(t, wrapped.Error(), "Wrapped err: Error: BLOCK_NOT_FOUND")
	assert.Equal(t, err, wrapped.Unwrap())
}

func Test_InvalidCode(t *testing.T) {
	err := New(ERR(999), "boom")
	assert.Equal(t, "invalid error code", err.Message())
	assert.Equal(t, "999", ERR(999).String())
}

func Test_WrapStandardErrors(t *testing.T) {
	err := NewStorageError("failed to get block", sql.ErrNoRows)

	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.True(t, Is(err, ErrStorageError))
	require.False(t, Is(err, ErrBlockNotFound))

	var tErr *Error
	require.True(t, As(err, &tErr))
	assert.Equal(t, ERR_STORAGE_ERROR, tErr.Code())
}

func Test_ErrData(t *testing.T) {
	err := New(ERR_BLOCK_INVALID, "header failed")
	err.SetData("height", 12)

	assert.Equal(t, 12, err.GetData("height"))
	assert.Contains(t, err.Error(), "Data:")

	data, decodeErr := GetErrorData(err.Data().EncodeErrorData())
	require.NoError(t, decodeErr)
	assert.Equal(t, float64(12), data.GetData("height"))
}

func Test_NilError(t *testing.T) {
	var err *Error

	assert.Equal(t, "<nil>", err.Error())
	assert.Equal(t, ERR_UNKNOWN, err.Code())
	assert.Nil(t, err.Unwrap())
	assert.False(t, err.Is(ErrNotFound))
}

func Test_Join(t *testing.T) {
	assert.Nil(t, Join(nil, nil))

	joined := Join(errors.New("first"), nil, errors.New("second"))
	assert.Equal(t, "first, second", joined.Error())
}

func Test_ErrorClassification(t *testing.T) {
	assert.True(t, IsContinuityError(NewNoPreviousBlockError("orphan")))
	assert.False(t, IsContinuityError(NewBlockInvalidError("bad pow")))

	assert.True(t, IsValidationError(NewWrongPreviousHeaderError("mismatch")))
	assert.True(t, IsValidationError(NewBlockInvalidError("bad pow")))
	assert.False(t, IsValidationError(NewStorageError("db down")))
	assert.False(t, IsValidationError(nil))

	assert.True(t, IsRetryableError(NewStorageUnavailableError("db down")))
	assert.False(t, IsRetryableError(context.Canceled))
	assert.False(t, IsRetryableError(NewBlockInvalidError("bad pow")))
}
