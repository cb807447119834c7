package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// domainWith builds a domain of the given kind whose signaling questions
// carry the supplied answers. Missing keys stay unanswered.
func domainWith(t *testing.T, kind DomainKind, answers map[string]string) *Domain {
	t.Helper()

	var questions []*Question
	for _, id := range SignalingQuestionIDs(kind) {
		q := &Question{ID: id, Text: "Question " + id, IsRequired: true}
		if kind != KindOverall {
			q.AllowedAnswers = SignalingAnswers()
		}
		questions = append(questions, q)
	}
	d := NewDomain(1, string(kind), kind, questions...)

	for id, answer := range answers {
		q := d.Question(id)
		require.NotNil(t, q, "unknown question %s", id)
		require.NoError(t, q.RecordResponse(answer, "", nil, nil))
	}
	return d
}

func TestJudgeRandomization(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		want    Verdict
	}{
		{
			name:    "random and concealed with no imbalance is low",
			answers: map[string]string{"1.1": "Yes", "1.2": "Yes", "1.3": "No"},
			want:    VerdictLow,
		},
		{
			name:    "non-random sequence is high",
			answers: map[string]string{"1.1": "No", "1.2": "Yes", "1.3": "No"},
			want:    VerdictHigh,
		},
		{
			name:    "non-random sequence short-circuits remaining questions",
			answers: map[string]string{"1.1": "Probably No"},
			want:    VerdictHigh,
		},
		{
			name:    "unconcealed allocation is high",
			answers: map[string]string{"1.1": "Probably Yes", "1.2": "Probably No", "1.3": "No"},
			want:    VerdictHigh,
		},
		{
			name:    "baseline imbalance is high",
			answers: map[string]string{"1.1": "Yes", "1.2": "Yes", "1.3": "Probably Yes"},
			want:    VerdictHigh,
		},
		{
			name:    "no information on concealment is some concerns",
			answers: map[string]string{"1.1": "Yes", "1.2": "No Information", "1.3": "No"},
			want:    VerdictSomeConcerns,
		},
		{
			name:    "no information on sequence is some concerns",
			answers: map[string]string{"1.1": "No Information", "1.2": "Yes", "1.3": "No Information"},
			want:    VerdictSomeConcerns,
		},
		{
			name:    "unanswered imbalance question is unknown",
			answers: map[string]string{"1.1": "Yes", "1.2": "Yes"},
			want:    VerdictUnknown,
		},
		{
			name:    "nothing answered is unknown",
			answers: map[string]string{},
			want:    VerdictUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domainWith(t, KindRandomization, tt.answers)
			assert.Equal(t, tt.want, d.Judgement())
		})
	}
}

func TestJudgeDeviations(t *testing.T) {
	lowAnalysis := map[string]string{"2.6": "Yes"}
	merge := func(parts ...map[string]string) map[string]string {
		out := map[string]string{}
		for _, p := range parts {
			for k, v := range p {
				out[k] = v
			}
		}
		return out
	}

	tests := []struct {
		name    string
		answers map[string]string
		want    Verdict
	}{
		{
			name:    "blinded trial with appropriate analysis is low",
			answers: merge(map[string]string{"2.1": "No", "2.2": "Probably No"}, lowAnalysis),
			want:    VerdictLow,
		},
		{
			name:    "aware but no trial-context deviations is low",
			answers: merge(map[string]string{"2.1": "Yes", "2.2": "Yes", "2.3": "No"}, lowAnalysis),
			want:    VerdictLow,
		},
		{
			name:    "no information on deviations is some concerns",
			answers: merge(map[string]string{"2.1": "Yes", "2.2": "No", "2.3": "No Information"}, lowAnalysis),
			want:    VerdictSomeConcerns,
		},
		{
			name:    "deviations without effect on outcome is some concerns",
			answers: merge(map[string]string{"2.1": "Yes", "2.2": "Yes", "2.3": "Yes", "2.4": "No"}, lowAnalysis),
			want:    VerdictSomeConcerns,
		},
		{
			name:    "balanced deviations is some concerns",
			answers: merge(map[string]string{"2.1": "Yes", "2.2": "Yes", "2.3": "Yes", "2.4": "Yes", "2.5": "Probably Yes"}, lowAnalysis),
			want:    VerdictSomeConcerns,
		},
		{
			name:    "unbalanced deviations is high",
			answers: merge(map[string]string{"2.1": "Yes", "2.2": "Yes", "2.3": "Yes", "2.4": "No Information", "2.5": "No"}, lowAnalysis),
			want:    VerdictHigh,
		},
		{
			name:    "inappropriate analysis without substantial impact is some concerns",
			answers: map[string]string{"2.1": "No", "2.2": "No", "2.6": "No", "2.7": "Probably No"},
			want:    VerdictSomeConcerns,
		},
		{
			name:    "inappropriate analysis with substantial impact is high",
			answers: map[string]string{"2.1": "No", "2.2": "No", "2.6": "No", "2.7": "Yes"},
			want:    VerdictHigh,
		},
		{
			name:    "some concerns in both parts stays some concerns",
			answers: map[string]string{"2.1": "Yes", "2.2": "Yes", "2.3": "No Information", "2.6": "No Information", "2.7": "No"},
			want:    VerdictSomeConcerns,
		},
		{
			name:    "not applicable deviations after failed blinding gate is unknown",
			answers: merge(map[string]string{"2.1": "Yes", "2.2": "No", "2.3": "Not Applicable"}, lowAnalysis),
			want:    VerdictUnknown,
		},
		{
			name:    "unanswered analysis part is unknown",
			answers: map[string]string{"2.1": "No", "2.2": "No"},
			want:    VerdictUnknown,
		},
		{
			name:    "unanswered awareness part is unknown even when analysis is high",
			answers: map[string]string{"2.1": "Yes", "2.6": "No", "2.7": "Yes"},
			want:    VerdictUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domainWith(t, KindDeviations, tt.answers)
			assert.Equal(t, tt.want, d.Judgement())
		})
	}
}

func TestJudgeMissingData(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		want    Verdict
	}{
		{
			name:    "complete data short-circuits to low",
			answers: map[string]string{"3.1": "Yes"},
			want:    VerdictLow,
		},
		{
			name:    "evidence of no bias is low",
			answers: map[string]string{"3.1": "No", "3.2": "Probably Yes"},
			want:    VerdictLow,
		},
		{
			name:    "missingness independent of true value is low",
			answers: map[string]string{"3.1": "No", "3.2": "No", "3.3": "No"},
			want:    VerdictLow,
		},
		{
			name:    "missingness unlikely to depend on true value is some concerns",
			answers: map[string]string{"3.1": "No", "3.2": "No", "3.3": "Yes", "3.4": "No"},
			want:    VerdictSomeConcerns,
		},
		{
			name:    "missingness likely depends on true value is high",
			answers: map[string]string{"3.1": "No", "3.2": "No", "3.3": "Yes", "3.4": "Yes"},
			want:    VerdictHigh,
		},
		{
			name:    "no information throughout is high",
			answers: map[string]string{"3.1": "No Information", "3.2": "No", "3.3": "No Information", "3.4": "No Information"},
			want:    VerdictHigh,
		},
		{
			name:    "unanswered 3.4 on the active path is unknown",
			answers: map[string]string{"3.1": "No", "3.2": "No", "3.3": "Yes"},
			want:    VerdictUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domainWith(t, KindMissingData, tt.answers)
			assert.Equal(t, tt.want, d.Judgement())
		})
	}
}

func TestJudgeMeasurement(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		want    Verdict
	}{
		{
			name:    "inappropriate method is high",
			answers: map[string]string{"4.1": "Yes"},
			want:    VerdictHigh,
		},
		{
			name:    "ascertainment differing between groups is high",
			answers: map[string]string{"4.1": "No", "4.2": "Probably Yes"},
			want:    VerdictHigh,
		},
		{
			name:    "blinded assessors is low",
			answers: map[string]string{"4.1": "No", "4.2": "No", "4.3": "No"},
			want:    VerdictLow,
		},
		{
			name:    "aware assessors but no influence possible is low",
			answers: map[string]string{"4.1": "No", "4.2": "No Information", "4.3": "Yes", "4.4": "No"},
			want:    VerdictLow,
		},
		{
			name:    "influence possible but unlikely is some concerns",
			answers: map[string]string{"4.1": "No", "4.2": "No", "4.3": "Yes", "4.4": "Yes", "4.5": "Probably No"},
			want:    VerdictSomeConcerns,
		},
		{
			name:    "influence likely is high",
			answers: map[string]string{"4.1": "No", "4.2": "No", "4.3": "Yes", "4.4": "Yes", "4.5": "Yes"},
			want:    VerdictHigh,
		},
		{
			name:    "not applicable ascertainment question is unknown",
			answers: map[string]string{"4.1": "No", "4.2": "Not Applicable", "4.3": "No"},
			want:    VerdictUnknown,
		},
		{
			name:    "unanswered 4.3 is unknown",
			answers: map[string]string{"4.1": "No", "4.2": "No"},
			want:    VerdictUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domainWith(t, KindMeasurement, tt.answers)
			assert.Equal(t, tt.want, d.Judgement())
		})
	}
}

func TestJudgeSelection(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]string
		want    Verdict
	}{
		{
			name:    "pre-specified plan with no selection is low",
			answers: map[string]string{"5.1": "Yes", "5.2": "No", "5.3": "No"},
			want:    VerdictLow,
		},
		{
			name:    "selection from multiple measurements is high regardless of others",
			answers: map[string]string{"5.2": "Yes"},
			want:    VerdictHigh,
		},
		{
			name:    "selection from multiple analyses is high",
			answers: map[string]string{"5.1": "Yes", "5.2": "No", "5.3": "Probably Yes"},
			want:    VerdictHigh,
		},
		{
			name:    "no information on measurements is some concerns",
			answers: map[string]string{"5.1": "Yes", "5.2": "No Information", "5.3": "No"},
			want:    VerdictSomeConcerns,
		},
		{
			name:    "no pre-specified plan is some concerns",
			answers: map[string]string{"5.1": "No Information", "5.2": "No", "5.3": "Probably No"},
			want:    VerdictSomeConcerns,
		},
		{
			name:    "not applicable selection answer is unknown",
			answers: map[string]string{"5.1": "Yes", "5.2": "Not Applicable", "5.3": "No"},
			want:    VerdictUnknown,
		},
		{
			name:    "unanswered 5.3 is unknown when 5.2 is not yes",
			answers: map[string]string{"5.1": "Yes", "5.2": "No"},
			want:    VerdictUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domainWith(t, KindSelection, tt.answers)
			assert.Equal(t, tt.want, d.Judgement())
		})
	}
}

func TestJudgeOverall(t *testing.T) {
	tests := []struct {
		answer string
		want   Verdict
	}{
		{"Low", VerdictLow},
		{"Some Concerns", VerdictSomeConcerns},
		{"High", VerdictHigh},
		{"Undecided", VerdictUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			d := domainWith(t, KindOverall, map[string]string{OverallJudgementID: tt.answer})
			assert.Equal(t, tt.want, d.Judgement())
			assert.False(t, d.Aggregate)
		})
	}

	t.Run("unanswered", func(t *testing.T) {
		d := domainWith(t, KindOverall, nil)
		assert.Equal(t, VerdictUnknown, d.Judgement())
	})
}

func TestJudgementWithoutTree(t *testing.T) {
	for _, kind := range []DomainKind{KindCustom, KindPreliminary} {
		d := NewDomain(0, "no tree", kind, &Question{ID: "0.1", Text: "Design?"})
		require.NoError(t, d.Questions[0].RecordResponse("Parallel", "", nil, nil))
		assert.Equal(t, VerdictUnknown, d.Judgement(), kind.String())
		assert.False(t, HasJudgement(kind))
	}
}

// TestJudgementTotal walks every combination of answer classes for each
// tree, including unanswered and free-text answers. Trees must never panic
// and must return the same verdict for the same answers.
func TestJudgementTotal(t *testing.T) {
	choices := []string{"", "Yes", "No", "No Information", "Not Applicable", "Unclear"}

	for _, kind := range []DomainKind{KindRandomization, KindMissingData, KindMeasurement, KindSelection, KindDeviations} {
		ids := SignalingQuestionIDs(kind)
		combos := 1
		for range ids {
			combos *= len(choices)
		}

		t.Run(kind.String(), func(t *testing.T) {
			for n := 0; n < combos; n++ {
				d := NewDomain(1, "total", kind)
				rest := n
				for _, id := range ids {
					q := &Question{ID: id, IsRequired: true}
					if c := choices[rest%len(choices)]; c != "" {
						q.Response = NewResponse(c, "", nil, nil)
					}
					rest /= len(choices)
					d.Questions = append(d.Questions, q)
				}

				first := d.Judgement()
				require.Equal(t, first, d.Judgement())
				if n == 0 {
					require.Equal(t, VerdictUnknown, first)
				}
			}
		})
	}
}
