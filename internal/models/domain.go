package models

import (
	"fmt"
	"strings"
)

// DomainKind selects the decision tree used to judge a domain.
// Only the kind is persisted; the tree itself is process-wide static data.
type DomainKind string

const (
	// KindCustom has no decision tree; its judgement is always Unknown
	KindCustom DomainKind = ""
	// KindPreliminary holds study-design questions and is never judged
	KindPreliminary DomainKind = "preliminary"
	// KindRandomization is RoB2 domain 1
	KindRandomization DomainKind = "randomization"
	// KindDeviations is RoB2 domain 2 (effect of assignment)
	KindDeviations DomainKind = "deviations"
	// KindMissingData is RoB2 domain 3
	KindMissingData DomainKind = "missing_data"
	// KindMeasurement is RoB2 domain 4
	KindMeasurement DomainKind = "measurement"
	// KindSelection is RoB2 domain 5
	KindSelection DomainKind = "selection"
	// KindOverall holds the assessor's final call and is never aggregated
	KindOverall DomainKind = "overall"
)

// ParseDomainKind validates a kind tag read from a definition or document.
func ParseDomainKind(s string) (DomainKind, error) {
	kind := DomainKind(strings.ToLower(strings.TrimSpace(s)))
	switch kind {
	case KindCustom, KindPreliminary, KindRandomization, KindDeviations,
		KindMissingData, KindMeasurement, KindSelection, KindOverall:
		return kind, nil
	case "custom":
		return KindCustom, nil
	default:
		return KindCustom, fmt.Errorf("unknown domain kind %q", s)
	}
}

// String returns the tag, or "custom" for KindCustom.
func (k DomainKind) String() string {
	if k == KindCustom {
		return "custom"
	}
	return string(k)
}

// DefaultAggregate reports whether domains of this kind take part in the
// framework-level verdict unless told otherwise.
func (k DomainKind) DefaultAggregate() bool {
	switch k {
	case KindPreliminary, KindOverall:
		return false
	default:
		return true
	}
}

// Domain is an ordered group of questions covering one bias category.
type Domain struct {
	Index     int         `json:"index"`
	Name      string      `json:"name"`
	Kind      DomainKind  `json:"kind,omitempty"`
	Aggregate bool        `json:"aggregate"` // Participates in Framework.Judgement
	Questions []*Question `json:"questions"`
}

// NewDomain creates a domain whose aggregation flag follows its kind.
func NewDomain(index int, name string, kind DomainKind, questions ...*Question) *Domain {
	return &Domain{
		Index:     index,
		Name:      name,
		Kind:      kind,
		Aggregate: kind.DefaultAggregate(),
		Questions: questions,
	}
}

// Judgement evaluates the domain's decision tree over its recorded answers.
func (d *Domain) Judgement() Verdict {
	judge, ok := judges[d.Kind]
	if !ok {
		return VerdictUnknown
	}
	return judge(d)
}

// Question returns the question with the given ID, or nil.
func (d *Domain) Question(id string) *Question {
	for _, q := range d.Questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

// Answer returns the recorded answer of the question with the given ID.
// ok is false when the question is missing or unanswered.
func (d *Domain) Answer(id string) (string, bool) {
	q := d.Question(id)
	if q == nil {
		return "", false
	}
	return q.Answer()
}

// Pending returns the required questions that are still unanswered.
func (d *Domain) Pending() []*Question {
	var pending []*Question
	for _, q := range d.Questions {
		if q.Pending() {
			pending = append(pending, q)
		}
	}
	return pending
}

// ShortName returns the "D<index>" label used in tables.
func (d *Domain) ShortName() string {
	return fmt.Sprintf("D%d", d.Index)
}

func (d *Domain) clone() *Domain {
	questions := make([]*Question, len(d.Questions))
	for i, q := range d.Questions {
		questions[i] = q.clone()
	}
	return &Domain{
		Index:     d.Index,
		Name:      d.Name,
		Kind:      d.Kind,
		Aggregate: d.Aggregate,
		Questions: questions,
	}
}
