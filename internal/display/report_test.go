package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/harrison/rob/internal/models"
	"github.com/harrison/rob/internal/rob2"
)

func TestPrintJudgement(t *testing.T) {
	fw := rob2.NewFramework()
	fw.Manuscript = "smith-2020"
	fw.Assessor = "reviewer-1"
	for id, answer := range map[string]string{
		"1.1": "Yes", "1.2": "Yes", "1.3": "No",
	} {
		if err := fw.RecordResponse(id, answer, "", nil, nil); err != nil {
			t.Fatal(err)
		}
	}

	var buf bytes.Buffer
	PrintJudgement(&buf, fw)
	output := buf.String()

	for _, want := range []string{
		rob2.Name + "\n",
		"Manuscript: smith-2020\n",
		"Assessor: reviewer-1\n",
		"Overall risk of bias: Unknown\n",
		"required questions unanswered\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	var d0, d1 string
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "D0 "):
			d0 = line
		case strings.HasPrefix(line, "D1 "):
			d1 = line
		}
	}
	if !strings.Contains(d0, "n/a") || !strings.Contains(d0, "Preliminary *") {
		t.Errorf("D0 row = %q", d0)
	}
	if !strings.Contains(d1, models.VerdictLow.String()) {
		t.Errorf("D1 row = %q", d1)
	}
}
