// Package compare lines up two completed assessments of the same instrument
// question by question and reports where the assessors agree.
package compare

import (
	"errors"
	"fmt"

	"github.com/harrison/rob/internal/models"
)

// Default assessor labels when a framework does not name its assessor.
const (
	DefaultAssessorA = "assessor_1"
	DefaultAssessorB = "assessor_2"
)

// Row is one question answered (or not) by both assessors.
type Row struct {
	DomainShort   string // "D1"
	QuestionShort string // "Q1.1"
	Domain        string
	Question      string
	QuestionID    string
	AnswerA       string
	AnsweredA     bool
	AnswerB       string
	AnsweredB     bool
}

// Comparable reports whether both assessors answered the question.
func (r Row) Comparable() bool {
	return r.AnsweredA && r.AnsweredB
}

// Agree reports whether both assessors gave the same answer.
func (r Row) Agree() bool {
	return r.Comparable() && r.AnswerA == r.AnswerB
}

// JudgementPair holds the computed verdicts of one domain for both assessors.
type JudgementPair struct {
	DomainShort string
	Domain      string
	Aggregate   bool
	A           models.Verdict
	B           models.Verdict
}

// Agree reports matching verdicts. Unknown on either side never agrees.
func (p JudgementPair) Agree() bool {
	return p.A.Known() && p.A == p.B
}

// Result is the comparison of two frameworks.
type Result struct {
	AssessorA  string
	AssessorB  string
	Rows       []Row
	Judgements []JudgementPair
	OverallA   models.Verdict
	OverallB   models.Verdict
}

// Frameworks compares a and b. Both must have the same domains, in the same
// order and with the same names, each holding the same question texts;
// otherwise a *models.StructuralMismatchError is returned.
func Frameworks(a, b *models.Framework) (*Result, error) {
	if a == nil || b == nil {
		return nil, errors.New("compare: nil framework")
	}
	if len(a.Domains) != len(b.Domains) {
		return nil, &models.StructuralMismatchError{
			Message: fmt.Sprintf("frameworks have different numbers of domains (%d vs %d)", len(a.Domains), len(b.Domains)),
		}
	}

	res := &Result{
		AssessorA: a.Assessor,
		AssessorB: b.Assessor,
		OverallA:  a.Judgement(),
		OverallB:  b.Judgement(),
	}
	if res.AssessorA == "" {
		res.AssessorA = DefaultAssessorA
	}
	if res.AssessorB == "" {
		res.AssessorB = DefaultAssessorB
	}

	for i, da := range a.Domains {
		db := b.Domains[i]
		if da.Name != db.Name {
			return nil, &models.StructuralMismatchError{
				Message: fmt.Sprintf("domain names do not match: %q vs %q", da.Name, db.Name),
			}
		}
		if len(da.Questions) != len(db.Questions) {
			return nil, &models.StructuralMismatchError{
				Domain:  da.Name,
				Message: fmt.Sprintf("different numbers of questions (%d vs %d)", len(da.Questions), len(db.Questions)),
			}
		}

		for j, qa := range da.Questions {
			qb := db.Questions[j]
			if qa.Text != qb.Text {
				return nil, &models.StructuralMismatchError{
					Domain:  da.Name,
					Message: fmt.Sprintf("questions do not match: %q vs %q", qa.Text, qb.Text),
				}
			}
			row := Row{
				DomainShort:   da.ShortName(),
				QuestionShort: "Q" + qa.IndexLabel(),
				Domain:        da.Name,
				Question:      qa.Text,
				QuestionID:    qa.ID,
			}
			row.AnswerA, row.AnsweredA = qa.Answer()
			row.AnswerB, row.AnsweredB = qb.Answer()
			res.Rows = append(res.Rows, row)
		}

		res.Judgements = append(res.Judgements, JudgementPair{
			DomainShort: da.ShortName(),
			Domain:      da.Name,
			Aggregate:   da.Aggregate,
			A:           da.Judgement(),
			B:           db.Judgement(),
		})
	}

	return res, nil
}

// Disagreements returns the comparable rows where the answers differ.
func (r *Result) Disagreements() []Row {
	var out []Row
	for _, row := range r.Rows {
		if row.Comparable() && !row.Agree() {
			out = append(out, row)
		}
	}
	return out
}
