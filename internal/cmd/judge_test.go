package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJudge(t *testing.T) {
	_, work := setupHome(t)

	tests := []struct {
		name    string
		answers map[string]string
		overall string
	}{
		{"complete low", lowAnswers, "Overall risk of bias: Low"},
		{"high measurement", withAnswers(lowAnswers, map[string]string{"4.1": "Yes"}), "Overall risk of bias: High"},
		{"incomplete", map[string]string{"1.1": "Yes"}, "Overall risk of bias: Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(work, tt.name+".json")
			writeAssessment(t, path, tt.name, "r1", tt.answers)

			stdout, _, err := execute(t, "judge", path)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.overall)
			assert.Contains(t, stdout, "Manuscript: "+tt.name)
		})
	}
}

func TestJudgeAnswers(t *testing.T) {
	_, work := setupHome(t)
	path := filepath.Join(work, "a.json")
	writeAssessment(t, path, "a", "r1", map[string]string{"1.1": "No"})

	stdout, _, err := execute(t, "judge", path, "--answers")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Question 1.1:")
	assert.Contains(t, stdout, "Response: No")
	assert.Contains(t, stdout, "Response: Not answered")
}

func TestJudgeMissingFile(t *testing.T) {
	_, work := setupHome(t)

	_, _, err := execute(t, "judge", filepath.Join(work, "none.json"))
	require.Error(t, err)
}
