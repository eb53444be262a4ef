package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/slidedeck/internal/deck"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONNoHTMLEscape(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success("<b>&</b>"))
	assert.Contains(t, buf.String(), `"<b>&</b>"`)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeNotFound, "deck does not exist", nil))
	assert.Equal(t, "Error [E202]: deck does not exist\n", buf.String())
}

func TestOutputFormatter_TraceID(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf, TraceID: "call-7"}

	require.NoError(t, formatter.Error(ErrCodeNotFound, "deck does not exist", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "call-7", resp.TraceID)

	buf.Reset()
	formatter.TraceID = ""
	require.NoError(t, formatter.Success("x"))
	assert.NotContains(t, buf.String(), "trace_id")
}

func TestOutputFormatter_RegistryError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{"unauthorized", deck.Unauthorized("append slide", "bob", "alice"), ErrCodeUnauthorized, ExitFailure},
		{"deck not found", deck.DeckNotFound("read slides", "alice", "x"), ErrCodeNotFound, ExitFailure},
		{"owner not found", fmt.Errorf("wrapped: %w", deck.OwnerNotFound("read deck names", "alice")), ErrCodeNotFound, ExitFailure},
		{"invalid argument", deck.InvalidArgument("create deck", "deck name must not be empty"), ErrCodeInvalidArgument, ExitFailure},
		{"database failure", errors.New("disk I/O error"), ErrCodeDatabase, ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: buf}

			err := formatter.RegistryError(tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.ErrorIs(t, err, tt.err)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.True(t, exitErr.Reported)

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitFailure, "x"))))
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "boom", NewExitError(ExitFailure, "boom").Error())
	assert.Equal(t, "boom: cause", WrapExitError(ExitFailure, "boom", errors.New("cause")).Error())
}
