package models

// Standard RoB2 signaling answers.
const (
	AnswerYes           = "Yes"
	AnswerProbablyYes   = "Probably Yes"
	AnswerProbablyNo    = "Probably No"
	AnswerNo            = "No"
	AnswerNoInformation = "No Information"
	AnswerNotApplicable = "Not Applicable"
)

// SignalingAnswers returns the default closed vocabulary for signaling
// questions. A new slice is returned on every call.
func SignalingAnswers() []string {
	return []string{
		AnswerYes,
		AnswerProbablyYes,
		AnswerProbablyNo,
		AnswerNo,
		AnswerNoInformation,
		AnswerNotApplicable,
	}
}

// AnswerClass groups raw answers into the buckets the decision trees branch on.
type AnswerClass int

const (
	// ClassOther is any answer outside the standard signaling vocabulary
	ClassOther AnswerClass = iota
	// ClassYes covers Yes and Probably Yes
	ClassYes
	// ClassNo covers No and Probably No
	ClassNo
	// ClassNoInformation covers No Information
	ClassNoInformation
	// ClassNotApplicable covers Not Applicable
	ClassNotApplicable
)

// String returns the conventional abbreviation of the class.
func (c AnswerClass) String() string {
	switch c {
	case ClassYes:
		return "Y/PY"
	case ClassNo:
		return "N/PN"
	case ClassNoInformation:
		return "NI"
	case ClassNotApplicable:
		return "NA"
	default:
		return "other"
	}
}

// ClassOf maps an answer to its class. Matching is exact.
func ClassOf(answer string) AnswerClass {
	switch answer {
	case AnswerYes, AnswerProbablyYes:
		return ClassYes
	case AnswerNo, AnswerProbablyNo:
		return ClassNo
	case AnswerNoInformation:
		return ClassNoInformation
	case AnswerNotApplicable:
		return ClassNotApplicable
	default:
		return ClassOther
	}
}
