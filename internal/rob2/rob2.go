// Package rob2 provides the Cochrane RoB2 instrument for randomized trials:
// the preliminary considerations, the five bias domains and the overall
// judgement, with the published question texts and answer vocabularies.
package rob2

import "github.com/harrison/rob/internal/models"

// Name is the framework name carried by every RoB2 assessment.
const Name = "RoB2 Framework for Randomized Trials"

// Study designs accepted by question 0.1.
const (
	DesignParallel  = "Individually-randomized parallel-group trial"
	DesignCluster   = "Cluster-randomized parallel-group trial"
	DesignCrossOver = "Individually randomized cross-over (or other matched) trial"
)

// OverallQuestionText is the text of the assessor's final-call question.
const OverallQuestionText = "Risk-of-bias judgement"

// NewFramework returns a fresh, unanswered RoB2 template. Every call builds
// a new tree, so callers may record responses without affecting each other.
func NewFramework() *models.Framework {
	return &models.Framework{
		Name: Name,
		Domains: []*models.Domain{
			preliminary(),
			randomization(),
			deviations(),
			missingData(),
			measurement(),
			selection(),
			overall(),
		},
	}
}

// Answer vocabularies. Each helper returns a fresh slice.

func signaling() []string { return models.SignalingAnswers() }

// notApplicableFirst is the vocabulary of conditional questions, which lead
// with Not Applicable.
func notApplicableFirst() []string {
	return []string{
		models.AnswerNotApplicable,
		models.AnswerYes,
		models.AnswerProbablyYes,
		models.AnswerProbablyNo,
		models.AnswerNo,
		models.AnswerNoInformation,
	}
}

// withoutNotApplicable is the vocabulary of questions that always apply.
func withoutNotApplicable() []string {
	return []string{
		models.AnswerYes,
		models.AnswerProbablyYes,
		models.AnswerProbablyNo,
		models.AnswerNo,
		models.AnswerNoInformation,
	}
}

// Direction answers for the optional predicted-direction questions.
func direction() []string {
	return []string{
		"NA",
		"Favours experimental",
		"Favours comparator",
		"Towards null",
		"Away from null",
		"Unpredictable",
	}
}

func question(id string, index float64, text string, answers []string, required bool) *models.Question {
	return &models.Question{
		ID:             id,
		Text:           text,
		AllowedAnswers: answers,
		Index:          index,
		IsRequired:     required,
	}
}

func preliminary() *models.Domain {
	return models.NewDomain(0, "Preliminary", models.KindPreliminary,
		question("0.1", 0.1, "What was the study design?",
			[]string{DesignParallel, DesignCluster, DesignCrossOver}, true),
		question("0.2", 0.2, "For the purposes of this assessment, the Experimental "+
			"interventions being compared is defined as?", nil, true),
		question("0.3", 0.3, "For the purposes of this assessment, the Comparator "+
			"interventions being compared is defined as?", nil, true),
	)
}

func randomization() *models.Domain {
	return models.NewDomain(1, "Bias arising from the randomization process.", models.KindRandomization,
		question("1.1", 1.1, "Question 1.1: Was the allocation sequence random?", signaling(), true),
		question("1.2", 1.2, "Question 1.2: Was the allocation sequence concealed until participants were "+
			"enrolled and assigned to interventions?", signaling(), true),
		question("1.3", 1.3, "Question 1.3: Did baseline differences between intervention groups suggest "+
			"a problem with the randomization process?", signaling(), true),
		question("1.5", 1.5, "Optional Question: What is the predicted direction of bias arising from "+
			"the randomization process?", direction(), false),
	)
}

func deviations() *models.Domain {
	return models.NewDomain(2, "Deviations from intended interventions", models.KindDeviations,
		question("2.1", 2.1, "Question 2.1: Were participants aware of "+
			"their assigned intervention during the trial?", signaling(), true),
		question("2.2", 2.2, "Question 2.2: Were carers and people delivering the interventions "+
			"aware of participants' assigned intervention during the trial?", signaling(), true),
		question("2.3", 2.3, "Question 2.3: If Yes, Probably Yes or No Information to 2.1 or 2.2: "+
			"Were there deviations from the intended intervention "+
			"that arose because of the trial context?", notApplicableFirst(), true),
		question("2.4", 2.4, "Question 2.4: If Yes or Probably Yes to 2.3: Were these deviations "+
			"likely to have affected the outcome?", notApplicableFirst(), true),
		question("2.5", 2.5, "Question 2.5: If Yes, Probably Yes or No Information to 2.4: "+
			"Were these deviations from intended intervention balanced between groups?", notApplicableFirst(), true),
		question("2.6", 2.6, "Question 2.6: Was an appropriate analysis used to estimate the effect "+
			"of assignment to intervention?", signaling(), true),
		question("2.7", 2.7, "Question 2.7: If No, Probably No or No Information to 2.6: "+
			"Was there potential for a substantial impact on the result "+
			"of the failure to analyse participants in "+
			"the group to which they were randomized?", notApplicableFirst(), true),
		question("2.9", 2.9, "Optional Questions: What is the predicted direction of bias due to deviations "+
			"from intended interventions?", direction(), false),
	)
}

func missingData() *models.Domain {
	return models.NewDomain(3, "Missing outcome data", models.KindMissingData,
		question("3.1", 3.1, "Question 3.1: Were data for this outcome available for all, or nearly all, "+
			"participants randomized?", withoutNotApplicable(), true),
		question("3.2", 3.2, "Question 3.2: If No, Probably No or No Information to 3.1: "+
			"Is there evidence that the result was not biased by missing outcome data?",
			[]string{
				models.AnswerNotApplicable,
				models.AnswerYes,
				models.AnswerProbablyYes,
				models.AnswerProbablyNo,
				models.AnswerNo,
			}, true),
		question("3.3", 3.3, "Question 3.3: If No or Probably No to 3.2: "+
			"Could missingness in the outcome depend on its true value?", notApplicableFirst(), true),
		question("3.4", 3.4, "Question 3.4: If Yes, Probably Yes or No Information to 3.3: "+
			"Is it likely that missingness in the outcome depended on its true value?", notApplicableFirst(), true),
		question("3.6", 3.6, "Optional Questions: What is the predicted direction of bias due to "+
			"missing outcome data?", direction(), false),
	)
}

func measurement() *models.Domain {
	return models.NewDomain(4, "Measurement of the outcome", models.KindMeasurement,
		question("4.1", 4.1, "Question 4.1: Was the method of measuring the outcome inappropriate?",
			withoutNotApplicable(), true),
		question("4.2", 4.2, "Question 4.2: Could measurement or ascertainment of the outcome "+
			"have differed between intervention groups?", withoutNotApplicable(), true),
		question("4.3", 4.3, "Question 4.3: If No, Probably No or No Information to 4.1 and 4.2: "+
			"Were outcome assessors aware of the intervention received by participants?", notApplicableFirst(), true),
		question("4.4", 4.4, "Question 4.4: If Yes, Probably Yes or No Information to 4.3: "+
			"Could assessment of the outcome have been influenced "+
			"by knowledge of intervention received?", notApplicableFirst(), true),
		question("4.5", 4.5, "Question 4.5: If Yes, Probably Yes or No Information to 4.4: "+
			"Is it likely that assessment of the outcome was influenced "+
			"by knowledge of intervention received?", notApplicableFirst(), true),
		question("4.7", 4.7, "Optional Questions: What is the predicted direction "+
			"of bias in measurement of the outcome?", direction(), false),
	)
}

func selection() *models.Domain {
	return models.NewDomain(5, "Selection of the reported result", models.KindSelection,
		question("5.1", 5.1, "Question 5.1: Were the data that produced this "+
			"result analysed in accordance with a "+
			"pre-specified analysis plan that was finalized "+
			"before unblinded outcome data were available?", withoutNotApplicable(), true),
		question("5.2", 5.2, "Question 5.2: Is the numerical result being "+
			"assessed likely to have been selected, "+
			"on the basis of the results, from multiple eligible outcome measurements "+
			"(e.g. scales, definitions, time points) within the outcome domain?", withoutNotApplicable(), true),
		question("5.3", 5.3, "Question 5.3: Is the numerical result "+
			"being assessed likely to have been selected, "+
			"on the basis of the results, from multiple eligible analyses of the data?", withoutNotApplicable(), true),
		question("5.5", 5.5, "Optional Questions: What is the predicted direction of bias due to selection "+
			"of the reported result?", direction(), false),
	)
}

func overall() *models.Domain {
	return models.NewDomain(6, "Overall", models.KindOverall,
		question(models.OverallJudgementID, 6.1, OverallQuestionText,
			[]string{"Low", "High", "Some Concerns"}, true),
		question("6.2", 6.2, "What is the overall predicted direction of bias for this outcome?",
			direction(), false),
	)
}
