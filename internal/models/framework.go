package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Framework is a complete assessment instrument: an ordered set of domains
// plus the manuscript and assessor of the run it holds. A framework without
// manuscript and assessor is a reusable template.
type Framework struct {
	Name       string    `json:"name"`
	Manuscript string    `json:"manuscript,omitempty"`
	Assessor   string    `json:"assessor,omitempty"`
	Domains    []*Domain `json:"domains"`
}

// Judgement aggregates the verdicts of every aggregating domain: the most
// severe one wins, and a single Unknown makes the whole framework Unknown.
// A framework with no aggregating domains is Unknown.
func (f *Framework) Judgement() Verdict {
	var verdicts []Verdict
	for _, d := range f.Domains {
		if !d.Aggregate {
			continue
		}
		verdicts = append(verdicts, d.Judgement())
	}
	return MostSevere(verdicts)
}

// Domain returns the domain with the given index, or nil.
func (f *Framework) Domain(index int) *Domain {
	for _, d := range f.Domains {
		if d.Index == index {
			return d
		}
	}
	return nil
}

// Question returns the question with the given ID from any domain, or nil.
func (f *Framework) Question(id string) *Question {
	for _, d := range f.Domains {
		if q := d.Question(id); q != nil {
			return q
		}
	}
	return nil
}

// RecordResponse records an answer on the question with the given ID.
func (f *Framework) RecordResponse(questionID, chosen, reasoning string, evidence []string, raw any) error {
	q := f.Question(questionID)
	if q == nil {
		return fmt.Errorf("question %s not found in framework %q", questionID, f.Name)
	}
	return q.RecordResponse(chosen, reasoning, evidence, raw)
}

// Pending returns every required question still awaiting an answer.
func (f *Framework) Pending() []*Question {
	var pending []*Question
	for _, d := range f.Domains {
		pending = append(pending, d.Pending()...)
	}
	return pending
}

// Clone returns a deep copy of the structure with no responses, for use as
// the working copy of one assessment.
func (f *Framework) Clone() *Framework {
	domains := make([]*Domain, len(f.Domains))
	for i, d := range f.Domains {
		domains[i] = d.clone()
	}
	return &Framework{
		Name:       f.Name,
		Manuscript: f.Manuscript,
		Assessor:   f.Assessor,
		Domains:    domains,
	}
}

// Validate checks the structural invariants the judgement logic relies on.
func (f *Framework) Validate() error {
	var errs []error
	seenIDs := make(map[string]string)
	seenIndex := make(map[int]bool)

	for _, d := range f.Domains {
		if seenIndex[d.Index] {
			errs = append(errs, fmt.Errorf("domain index %d is used more than once", d.Index))
		}
		seenIndex[d.Index] = true

		for _, q := range d.Questions {
			if q.ID == "" {
				errs = append(errs, fmt.Errorf("domain %d: question %q has no id", d.Index, q.Text))
				continue
			}
			if other, dup := seenIDs[q.ID]; dup {
				errs = append(errs, fmt.Errorf("question id %s is used in both %q and %q", q.ID, other, d.Name))
			}
			seenIDs[q.ID] = d.Name

			if q.AllowedAnswers != nil && len(q.AllowedAnswers) == 0 {
				errs = append(errs, fmt.Errorf("question %s declares an empty answer set", q.ID))
			}
			if q.Response != nil {
				if err := q.Check(q.Response.ChosenAnswer()); err != nil {
					errs = append(errs, err)
				}
			}
		}

		for _, id := range signalingIDs[d.Kind] {
			if d.Question(id) == nil {
				errs = append(errs, fmt.Errorf("domain %d (%s): missing question %s required by its judgement", d.Index, d.Kind, id))
			}
		}
	}

	return errors.Join(errs...)
}

// String renders the framework tree for review and debugging.
func (f *Framework) String() string {
	if len(f.Domains) == 0 {
		return "Framework: No domains defined"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Framework: %s\n", f.Name)
	if f.Manuscript != "" {
		fmt.Fprintf(&sb, "Manuscript: %s\n", f.Manuscript)
	}
	if f.Assessor != "" {
		fmt.Fprintf(&sb, "Assessor: %s\n", f.Assessor)
	}

	for _, d := range f.Domains {
		fmt.Fprintf(&sb, "\nDomain %d: %s\n", d.Index, d.Name)
		if len(d.Questions) == 0 {
			sb.WriteString("  No questions defined\n")
			continue
		}

		for _, q := range d.Questions {
			fmt.Fprintf(&sb, "  Question %s: %s", q.ID, q.Text)
			if len(q.AllowedAnswers) > 0 {
				fmt.Fprintf(&sb, " [%s]", strings.Join(q.AllowedAnswers, ", "))
			}
			sb.WriteString("\n")

			if q.Response == nil {
				sb.WriteString("    Response: Not answered\n")
				continue
			}
			fmt.Fprintf(&sb, "    Response: %s\n", q.Response.ChosenAnswer())
			if r := q.Response.Reasoning(); r != "" {
				fmt.Fprintf(&sb, "      Reasoning: %s\n", r)
			}
			for _, e := range q.Response.Evidence() {
				fmt.Fprintf(&sb, "        Evidence: %s\n", e)
			}
		}
	}

	return sb.String()
}

// MarshalIndent encodes the framework as indented JSON. Judgement logic and
// raw provenance are not part of the document.
func (f *Framework) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// UnmarshalFramework decodes a framework document. Domains written without
// an aggregate flag take the default of their kind.
func UnmarshalFramework(data []byte) (*Framework, error) {
	var wire struct {
		Name       string `json:"name"`
		Manuscript string `json:"manuscript"`
		Assessor   string `json:"assessor"`
		Domains    []struct {
			Index     int         `json:"index"`
			Name      string      `json:"name"`
			Kind      string      `json:"kind"`
			Aggregate *bool       `json:"aggregate"`
			Questions []*Question `json:"questions"`
		} `json:"domains"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode framework: %w", err)
	}

	f := &Framework{
		Name:       wire.Name,
		Manuscript: wire.Manuscript,
		Assessor:   wire.Assessor,
	}
	for _, wd := range wire.Domains {
		kind, err := ParseDomainKind(wd.Kind)
		if err != nil {
			return nil, fmt.Errorf("domain %d: %w", wd.Index, err)
		}
		d := NewDomain(wd.Index, wd.Name, kind, wd.Questions...)
		if wd.Aggregate != nil {
			d.Aggregate = *wd.Aggregate
		}
		f.Domains = append(f.Domains, d)
	}
	return f, nil
}
