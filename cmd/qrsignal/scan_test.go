package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/qr-signal/internal/common"
	"github.com/Veraticus/qr-signal/internal/model"
)

func runCommand(t *testing.T, args []string, stdin string) (string, string, error) {
	t.Helper()

	cmd := scanCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestScanCmd(t *testing.T) {
	tests := []struct {
		name          string
		args          []string
		stdin         string
		wantErr       bool
		errorContains string
		outputCheck   func(t *testing.T, output string)
	}{
		{
			name: "single payload shows a card",
			args: []string{"https://bit.ly/promo"},
			outputCheck: func(t *testing.T, output string) {
				t.Helper()
				assert.Contains(t, output, "Scan Result")
				assert.Contains(t, output, "AMBER")
				assert.Contains(t, output, "bit.ly")
			},
		},
		{
			name: "several payloads show lines and a summary",
			args: []string{"https://example.com", "tel:123", "https://grabify.link/x"},
			outputCheck: func(t *testing.T, output string) {
				t.Helper()
				assert.Contains(t, output, "3 payloads analyzed")
				assert.Contains(t, output, "EMERALD")
				assert.Contains(t, output, "INDIGO")
				assert.Contains(t, output, "CRIMSON")
				assert.NotContains(t, output, "Scan Result")
			},
		},
		{
			name:  "stdin payloads",
			args:  []string{"--no-progress"},
			stdin: "tel:1\n\nmailto:a@example.com\n",
			outputCheck: func(t *testing.T, output string) {
				t.Helper()
				assert.Contains(t, output, "2 payloads analyzed")
			},
		},
		{
			name:  "dash reads stdin",
			args:  []string{"-"},
			stdin: "WIFI:S:Lobby;;\n",
			outputCheck: func(t *testing.T, output string) {
				t.Helper()
				assert.Contains(t, output, `"Lobby"`)
			},
		},
		{
			name: "signal filter",
			args: []string{"--signal", "amber", "https://bit.ly/a", "tel:1", "https://t.co/b"},
			outputCheck: func(t *testing.T, output string) {
				t.Helper()
				assert.Contains(t, output, "bit.ly")
				assert.NotContains(t, output, "tel:1")
				assert.Contains(t, output, "2 payloads analyzed")
				assert.Contains(t, output, "1 of 3 results hidden by --signal AMBER")
			},
		},
		{
			name: "signal filter without matches",
			args: []string{"--signal", "crimson", "tel:1"},
			outputCheck: func(t *testing.T, output string) {
				t.Helper()
				assert.Contains(t, output, "No results with signal CRIMSON")
				assert.Contains(t, output, "1 of 1 results hidden")
			},
		},
		{
			name:          "no payloads",
			args:          []string{},
			stdin:         "\n\n",
			wantErr:       true,
			errorContains: "No payloads to analyze",
		},
		{
			name:          "invalid signal",
			args:          []string{"--fail-on", "teal", "tel:1"},
			wantErr:       true,
			errorContains: "Invalid --fail-on value",
		},
		{
			name:          "fail-on threshold reached",
			args:          []string{"--fail-on", "AMBER", "https://example.com", "https://bit.ly/x"},
			wantErr:       true,
			errorContains: "1 of 2 payloads at or above AMBER",
		},
		{
			name: "fail-on threshold not reached",
			args: []string{"--fail-on", "CRIMSON", "https://example.com", "tel:1"},
		},
		{
			name:          "file and args conflict",
			args:          []string{"--file", "payloads.txt", "tel:1"},
			wantErr:       true,
			errorContains: "not both",
		},
		{
			name: "history listing",
			args: []string{"--history", "1", "--no-progress", "tel:111", "tel:222"},
			outputCheck: func(t *testing.T, output string) {
				t.Helper()
				require.Contains(t, output, "Recent Scans")
				history := output[strings.Index(output, "Recent Scans"):]
				assert.Contains(t, history, "222")
				assert.NotContains(t, history, "111")
			},
		},
		{
			name: "history listing filtered by signal",
			args: []string{"--history", "5", "--signal", "amber", "--no-progress", "https://bit.ly/a", "tel:111"},
			outputCheck: func(t *testing.T, output string) {
				t.Helper()
				require.Contains(t, output, "Recent Scans")
				history := output[strings.Index(output, "Recent Scans"):]
				assert.Contains(t, history, "bit.ly")
				assert.NotContains(t, history, "111")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, _, err := runCommand(t, tt.args, tt.stdin)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
			}

			if tt.outputCheck != nil {
				tt.outputCheck(t, output)
			}
		})
	}
}

func TestScanCmd_JSON(t *testing.T) {
	output, _, err := runCommand(t, []string{"--json", "https://example.com/?utm_source=qr"}, "")
	require.NoError(t, err)

	var result model.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, model.TypeWebsite, result.Type)
	assert.Equal(t, model.SignalAmber, result.Signal)
	assert.Equal(t, []string{"utm_source"}, result.HiddenVariables())

	output, stderr, err := runCommand(t, []string{"--json", "tel:1", "https://"}, "")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var results []model.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 2)
	assert.Equal(t, model.TypePhone, results[0].Type)
	assert.Equal(t, model.SignalCrimson, results[1].Signal)
}

func TestScanCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payloads.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://paypal.me/bob\r\nhttps://play.google.com/store/apps/details?id=x\n"), 0o600))

	output, stderr, err := runCommand(t, []string{"--file", path}, "")
	require.NoError(t, err)

	assert.Contains(t, output, "Payment")
	assert.Contains(t, output, "App Download")
	assert.Contains(t, output, "2 payloads analyzed")
	assert.Contains(t, stderr, "2/2")

	_, _, err = runCommand(t, []string{"--file", filepath.Join(t.TempDir(), "missing.txt")}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open payload file")
}

func TestScanCmd_Flags(t *testing.T) {
	cmd := scanCmd()

	for _, name := range []string{"file", "json", "details", "no-progress", "history", "signal", "fail-on"} {
		assert.NotNil(t, cmd.Flag(name), "flag %s should exist", name)
	}
	assert.Equal(t, "f", cmd.Flag("file").Shorthand)
}

func TestCollectPayloads_EmptyInput(t *testing.T) {
	_, err := collectPayloads(context.Background(), strings.NewReader(""), nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyInput)

	payloads, err := collectPayloads(context.Background(), strings.NewReader(""), []string{""}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, payloads)
}
