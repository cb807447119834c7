package models

// judgeFunc derives a verdict from a domain's recorded answers. Judge
// functions are pure: no I/O, no mutation, and they never panic on
// incomplete input.
type judgeFunc func(d *Domain) Verdict

// judges is the process-wide dispatch table keyed by domain kind.
// Kinds without an entry (preliminary, custom) are always Unknown.
var judges = map[DomainKind]judgeFunc{
	KindRandomization: judgeRandomization,
	KindDeviations:    judgeDeviations,
	KindMissingData:   judgeMissingData,
	KindMeasurement:   judgeMeasurement,
	KindSelection:     judgeSelection,
	KindOverall:       judgeOverall,
}

// signalingIDs lists the question IDs each decision tree addresses.
var signalingIDs = map[DomainKind][]string{
	KindRandomization: {"1.1", "1.2", "1.3"},
	KindDeviations:    {"2.1", "2.2", "2.3", "2.4", "2.5", "2.6", "2.7"},
	KindMissingData:   {"3.1", "3.2", "3.3", "3.4"},
	KindMeasurement:   {"4.1", "4.2", "4.3", "4.4", "4.5"},
	KindSelection:     {"5.1", "5.2", "5.3"},
	KindOverall:       {OverallJudgementID},
}

// OverallJudgementID is the question holding the assessor's final call.
const OverallJudgementID = "6.1"

// SignalingQuestionIDs returns the question IDs the judgement of kind reads.
func SignalingQuestionIDs(kind DomainKind) []string {
	return cloneStrings(signalingIDs[kind])
}

// HasJudgement reports whether a decision tree exists for kind.
func HasJudgement(kind DomainKind) bool {
	_, ok := judges[kind]
	return ok
}

// answerSet resolves answers by question ID for a decision tree.
type answerSet struct {
	domain *Domain
}

// class returns the answer class of the question with the given ID.
// ok is false when the question is unanswered or its answer falls outside
// the signaling vocabulary; the tree must then stop with Unknown.
func (a answerSet) class(id string) (AnswerClass, bool) {
	answer, ok := a.domain.Answer(id)
	if !ok {
		return ClassOther, false
	}
	c := ClassOf(answer)
	if c == ClassOther {
		return c, false
	}
	return c, true
}

// judgeRandomization: bias arising from the randomization process.
func judgeRandomization(d *Domain) Verdict {
	a := answerSet{d}

	q1, ok := a.class("1.1")
	if !ok {
		return VerdictUnknown
	}
	if q1 == ClassNo {
		return VerdictHigh
	}

	q2, ok := a.class("1.2")
	if !ok {
		return VerdictUnknown
	}
	if q2 == ClassNo {
		return VerdictHigh
	}

	q3, ok := a.class("1.3")
	if !ok {
		return VerdictUnknown
	}
	if q3 == ClassYes {
		return VerdictHigh
	}

	if q1 == ClassYes && q2 == ClassYes {
		return VerdictLow
	}
	return VerdictSomeConcerns
}

// judgeDeviations: deviations from intended interventions. The awareness
// part (2.1-2.5) and the analysis part (2.6-2.7) are judged separately.
func judgeDeviations(d *Domain) Verdict {
	a := answerSet{d}

	part1 := deviationsAwareness(a)
	part2 := deviationsAnalysis(a)

	if part1 == VerdictUnknown || part2 == VerdictUnknown {
		return VerdictUnknown
	}
	if part1 == VerdictLow && part2 == VerdictLow {
		return VerdictLow
	}
	if part1 == VerdictHigh || part2 == VerdictHigh {
		return VerdictHigh
	}
	return VerdictSomeConcerns
}

func deviationsAwareness(a answerSet) Verdict {
	q1, ok := a.class("2.1")
	if !ok {
		return VerdictUnknown
	}
	if q1 == ClassNo {
		q2, ok := a.class("2.2")
		if !ok {
			return VerdictUnknown
		}
		if q2 == ClassNo {
			return VerdictLow
		}
	}

	q3, ok := a.class("2.3")
	if !ok {
		return VerdictUnknown
	}
	switch q3 {
	case ClassNo:
		return VerdictLow
	case ClassNoInformation:
		return VerdictSomeConcerns
	case ClassYes:
	default:
		// Not Applicable once participants or carers may have been aware.
		return VerdictUnknown
	}

	q4, ok := a.class("2.4")
	if !ok {
		return VerdictUnknown
	}
	if q4 == ClassNo {
		return VerdictSomeConcerns
	}

	q5, ok := a.class("2.5")
	if !ok {
		return VerdictUnknown
	}
	if q5 == ClassYes {
		return VerdictSomeConcerns
	}
	return VerdictHigh
}

func deviationsAnalysis(a answerSet) Verdict {
	q6, ok := a.class("2.6")
	if !ok {
		return VerdictUnknown
	}
	if q6 == ClassYes {
		return VerdictLow
	}

	q7, ok := a.class("2.7")
	if !ok {
		return VerdictUnknown
	}
	if q7 == ClassNo {
		return VerdictSomeConcerns
	}
	return VerdictHigh
}

// judgeMissingData: missing outcome data.
func judgeMissingData(d *Domain) Verdict {
	a := answerSet{d}

	q1, ok := a.class("3.1")
	if !ok {
		return VerdictUnknown
	}
	if q1 == ClassYes {
		return VerdictLow
	}

	q2, ok := a.class("3.2")
	if !ok {
		return VerdictUnknown
	}
	if q2 == ClassYes {
		return VerdictLow
	}

	q3, ok := a.class("3.3")
	if !ok {
		return VerdictUnknown
	}
	if q3 == ClassNo {
		return VerdictLow
	}

	q4, ok := a.class("3.4")
	if !ok {
		return VerdictUnknown
	}
	if q4 == ClassNo {
		return VerdictSomeConcerns
	}
	return VerdictHigh
}

// judgeMeasurement: measurement of the outcome.
func judgeMeasurement(d *Domain) Verdict {
	a := answerSet{d}

	q1, ok := a.class("4.1")
	if !ok {
		return VerdictUnknown
	}
	if q1 == ClassYes {
		return VerdictHigh
	}

	q2, ok := a.class("4.2")
	if !ok {
		return VerdictUnknown
	}
	switch q2 {
	case ClassYes:
		return VerdictHigh
	case ClassNo, ClassNoInformation:
	default:
		return VerdictUnknown
	}

	q3, ok := a.class("4.3")
	if !ok {
		return VerdictUnknown
	}
	if q3 == ClassNo {
		return VerdictLow
	}

	q4, ok := a.class("4.4")
	if !ok {
		return VerdictUnknown
	}
	if q4 == ClassNo {
		return VerdictLow
	}

	q5, ok := a.class("4.5")
	if !ok {
		return VerdictUnknown
	}
	if q5 == ClassNo {
		return VerdictSomeConcerns
	}
	return VerdictHigh
}

// judgeSelection: selection of the reported result.
func judgeSelection(d *Domain) Verdict {
	a := answerSet{d}

	q2, ok := a.class("5.2")
	if !ok {
		return VerdictUnknown
	}
	if q2 == ClassYes {
		return VerdictHigh
	}

	q3, ok := a.class("5.3")
	if !ok {
		return VerdictUnknown
	}
	if q3 == ClassYes {
		return VerdictHigh
	}

	if q2 == ClassNoInformation || q3 == ClassNoInformation {
		return VerdictSomeConcerns
	}

	if q2 == ClassNo && q3 == ClassNo {
		q1, ok := a.class("5.1")
		if !ok {
			return VerdictUnknown
		}
		if q1 == ClassYes {
			return VerdictLow
		}
		return VerdictSomeConcerns
	}

	// Not Applicable on 5.2 or 5.3 has no branch.
	return VerdictUnknown
}

// judgeOverall returns the assessor's recorded final call.
func judgeOverall(d *Domain) Verdict {
	answer, ok := d.Answer(OverallJudgementID)
	if !ok {
		return VerdictUnknown
	}
	v, _ := ParseVerdict(answer)
	return v
}
