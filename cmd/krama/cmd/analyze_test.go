package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LearnWithSuryaa/analyzer-app/internal/report"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/config"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

func TestCollectSentences(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  []string
	}{
		{"args form one sentence", []string{"aku", "mangan", "sega"}, "ignored\n", []string{"aku mangan sega"}},
		{"stdin lines", nil, "aku mangan\n\n  bapak dhahar  \n", []string{"aku mangan", "bapak dhahar"}},
		{"empty stdin", nil, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectSentences(tt.args, strings.NewReader(tt.stdin))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoteSummary(t *testing.T) {
	tests := []struct {
		name      string
		item      map[string]interface{}
		wantLine  string
		wantValid bool
	}{
		{
			name: "valid",
			item: map[string]interface{}{
				"input": "aku mangan",
				"record": map[string]interface{}{
					"result": map[string]interface{}{
						"analysis": map[string]interface{}{"verdict": "appropriate"},
					},
				},
			},
			wantLine:  `"aku mangan": VALID`,
			wantValid: true,
		},
		{
			name: "corrected",
			item: map[string]interface{}{
				"input": "aku dhahar",
				"record": map[string]interface{}{
					"result": map[string]interface{}{
						"analysis":   map[string]interface{}{"verdict": "ambiguous"},
						"correction": map[string]interface{}{"sentence": "aku mangan"},
					},
				},
			},
			wantLine: `"aku dhahar": AMBIGUOUS -> "aku mangan"`,
		},
		{
			name: "syntax error",
			item: map[string]interface{}{
				"input": "mangan",
				"error": map[string]interface{}{"error": "unexpected word", "code": "KRAMA_SYNTAX"},
			},
			wantLine: `"mangan": ERROR unexpected word`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, valid := remoteSummary(tt.item)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantValid, valid)
		})
	}
}

func TestAnalyzeLocally(t *testing.T) {
	cfg := config.Default()
	svc, err := newService(cfg, logging.Discard(), serviceOptions{noHistory: true, noCache: true})
	require.NoError(t, err)
	defer svc.Close()

	tests := []struct {
		name         string
		sentences    []string
		wantRejected bool
		contains     []string
	}{
		{"all valid", []string{"aku mangan", "bapak dhahar"}, false, []string{"Status      : VALID"}},
		{"violation", []string{"aku mangan", "aku dhahar"}, true, []string{`Correction  : "aku mangan"`}},
		{"syntax error", []string{"aku mangxn"}, true, []string{"Status      : ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := analyzeLocally(context.Background(), &buf, svc, report.FormatText, tt.sentences)
			if tt.wantRejected {
				assert.True(t, errors.Is(err, errRejected), "err = %v", err)
			} else {
				assert.NoError(t, err)
			}
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestAnalyzeLocally_InputError(t *testing.T) {
	svc, err := newService(config.Default(), logging.Discard(), serviceOptions{noHistory: true, noCache: true})
	require.NoError(t, err)
	defer svc.Close()

	var buf bytes.Buffer
	err = analyzeLocally(context.Background(), &buf, svc, report.FormatText, []string{strings.Repeat("aku ", 200)})
	require.Error(t, err)
	assert.False(t, errors.Is(err, errRejected))
}
