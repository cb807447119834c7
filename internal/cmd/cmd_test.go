package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/harrison/rob/internal/filestore"
	"github.com/harrison/rob/internal/models"
	"github.com/harrison/rob/internal/rob2"
)

var lowAnswers = map[string]string{
	"1.1": "Yes", "1.2": "Yes", "1.3": "No",
	"2.1": "No", "2.2": "No", "2.6": "Yes",
	"3.1": "Yes",
	"4.1": "No", "4.2": "No", "4.3": "No",
	"5.1": "Yes", "5.2": "No", "5.3": "No",
}

// setupHome points ROB_HOME at a fresh directory and runs the test from an
// empty working directory. It returns the home and working directories.
func setupHome(t *testing.T) (home, work string) {
	t.Helper()
	for _, key := range []string{"ROB_LOG_LEVEL", "ROB_ASSESSOR", "ROB_DB_PATH", "ROB_AUDIT_LOG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	home = t.TempDir()
	t.Setenv("ROB_HOME", home)
	work = t.TempDir()
	chdir(t, work)
	return home, work
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeAssessment saves a RoB2 assessment with the given answers.
func writeAssessment(t *testing.T, path, manuscript, assessor string, answers map[string]string) *models.Framework {
	t.Helper()
	fw := rob2.NewFramework()
	fw.Manuscript = manuscript
	fw.Assessor = assessor
	for id, a := range answers {
		require.NoError(t, fw.RecordResponse(id, a, "", nil, nil))
	}
	require.NoError(t, filestore.Save(path, fw))
	return fw
}

func withAnswers(base map[string]string, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

const customDefinition = `framework:
  name: "Funding review"
  domains:
    - index: 1
      name: "Funding"
      aggregate: false
      questions:
        - id: "F1"
          question: "Industry funded?"
          answers: ["Yes", "No"]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
