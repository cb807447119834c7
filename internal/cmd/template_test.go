package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/rob/internal/filestore"
	"github.com/harrison/rob/internal/models"
	"github.com/harrison/rob/internal/rob2"
)

func TestTemplateToStdout(t *testing.T) {
	setupHome(t)

	stdout, _, err := execute(t, "template", "--manuscript", "smith-2020", "--assessor", "r1")
	require.NoError(t, err)

	fw, err := models.UnmarshalFramework([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, rob2.Name, fw.Name)
	assert.Equal(t, "smith-2020", fw.Manuscript)
	assert.Equal(t, "r1", fw.Assessor)
	assert.Len(t, fw.Domains, 7)
}

func TestTemplateToFile(t *testing.T) {
	home, work := setupHome(t)
	writeFile(t, home, "config.yaml", "assessor: configured\n")
	out := filepath.Join(work, "smith.json")

	stdout, _, err := execute(t, "template", "-o", out, "--manuscript", "smith-2020")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created "+out)
	assert.Contains(t, stdout, "7 domains")

	fw, err := filestore.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "configured", fw.Assessor)
	assert.Equal(t, models.VerdictUnknown, fw.Judgement())

	// Existing files are kept unless forced
	_, _, err = execute(t, "template", "-o", out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "template", "-o", out, "--force", "--manuscript", "other")
	require.NoError(t, err)
	fw, err = filestore.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "other", fw.Manuscript)
}

func TestTemplateIntoNewDirectory(t *testing.T) {
	_, work := setupHome(t)
	out := filepath.Join(work, "assessments", "new", "smith.json")

	_, _, err := execute(t, "template", "-o", out, "--manuscript", "smith-2020")
	require.NoError(t, err)

	fw, err := filestore.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "smith-2020", fw.Manuscript)
}

func TestTemplateFromDefinition(t *testing.T) {
	_, work := setupHome(t)
	def := writeFile(t, work, "funding.yaml", customDefinition)
	out := filepath.Join(work, "funding.json")

	_, _, err := execute(t, "template", "--definition", def, "-o", out)
	require.NoError(t, err)

	fw, err := filestore.Load(out)
	require.NoError(t, err)
	assert.Equal(t, "Funding review", fw.Name)
	require.NotNil(t, fw.Question("F1"))
}

func TestTemplateBadDefinition(t *testing.T) {
	_, work := setupHome(t)
	def := writeFile(t, work, "broken.txt", "nothing")

	_, _, err := execute(t, "template", "--definition", def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown file format")

	_, err = os.Stat(filepath.Join(work, "broken.json"))
	assert.True(t, os.IsNotExist(err))
}
