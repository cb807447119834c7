package models

import "strconv"

// Question is a single signaling question within a domain.
type Question struct {
	ID             string    `json:"id"`              // Stable identity used by judgement logic (e.g. "1.1")
	Text           string    `json:"question"`        // Prompt shown to the assessor
	AllowedAnswers []string  `json:"allowed_answers"` // Closed vocabulary; nil means free text
	Index          float64   `json:"index"`           // Display ordering only
	IsRequired     bool      `json:"is_required"`     // Must be answered for a complete assessment
	Response       *Response `json:"response"`        // Recorded answer, nil while pending
}

// RecordResponse validates chosen against the allowed answers and stores a
// new Response, replacing any previous one. On InvalidAnswerError the prior
// response is left unchanged.
func (q *Question) RecordResponse(chosen, reasoning string, evidence []string, raw any) error {
	if err := q.Check(chosen); err != nil {
		return err
	}
	q.Response = NewResponse(chosen, reasoning, evidence, raw)
	return nil
}

// Check reports whether chosen would be accepted by RecordResponse.
func (q *Question) Check(chosen string) error {
	if q.AllowedAnswers == nil {
		return nil
	}
	for _, allowed := range q.AllowedAnswers {
		if chosen == allowed {
			return nil
		}
	}
	return &InvalidAnswerError{
		QuestionID: q.ID,
		Value:      chosen,
		Allowed:    cloneStrings(q.AllowedAnswers),
	}
}

// Answer returns the recorded answer and whether one exists.
func (q *Question) Answer() (string, bool) {
	if q.Response == nil {
		return "", false
	}
	return q.Response.ChosenAnswer(), true
}

// Pending reports a required question that has no response yet.
func (q *Question) Pending() bool {
	return q.IsRequired && q.Response == nil
}

// IsFreeText reports whether the question accepts any answer.
func (q *Question) IsFreeText() bool {
	return q.AllowedAnswers == nil
}

// IndexLabel formats Index without trailing zeros (1.1, 2.9, 6).
func (q *Question) IndexLabel() string {
	return strconv.FormatFloat(q.Index, 'f', -1, 64)
}

func (q *Question) clone() *Question {
	return &Question{
		ID:             q.ID,
		Text:           q.Text,
		AllowedAnswers: cloneStrings(q.AllowedAnswers),
		Index:          q.Index,
		IsRequired:     q.IsRequired,
	}
}
