package parser

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/harrison/rob/internal/models"
)

// YAMLParser parses framework definitions written in YAML:
//
//	framework:
//	  name: "Blinding review"
//	  domains:
//	    - index: 1
//	      name: "Randomization"
//	      kind: randomization
//	      questions:
//	        - id: "1.1"
//	          question: "Was the allocation sequence random?"
//	          answers: ["Yes", "No", "No Information"]
//
// Questions default to required with the standard signaling answers;
// free_text: true removes the closed vocabulary.
type YAMLParser struct{}

// NewYAMLParser creates a YAML definition parser
func NewYAMLParser() *YAMLParser {
	return &YAMLParser{}
}

type yamlDefinition struct {
	Framework struct {
		Name    string       `yaml:"name"`
		Domains []yamlDomain `yaml:"domains"`
	} `yaml:"framework"`
}

type yamlDomain struct {
	Index     int            `yaml:"index"`
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	Aggregate *bool          `yaml:"aggregate"`
	Questions []yamlQuestion `yaml:"questions"`
}

type yamlQuestion struct {
	ID       string   `yaml:"id"`
	Question string   `yaml:"question"`
	Index    float64  `yaml:"index"`
	Required *bool    `yaml:"required"`
	Answers  []string `yaml:"answers"`
	FreeText bool     `yaml:"free_text"`
}

// Parse implements Parser
func (p *YAMLParser) Parse(r io.Reader) (*models.Framework, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var def yamlDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	fw := &models.Framework{Name: def.Framework.Name}
	for _, yd := range def.Framework.Domains {
		kind, err := models.ParseDomainKind(yd.Kind)
		if err != nil {
			return nil, fmt.Errorf("domain %d: %w", yd.Index, err)
		}

		d := models.NewDomain(yd.Index, yd.Name, kind)
		if yd.Aggregate != nil {
			d.Aggregate = *yd.Aggregate
		}

		for _, yq := range yd.Questions {
			if yq.FreeText && len(yq.Answers) > 0 {
				return nil, fmt.Errorf("question %s: free_text and answers are mutually exclusive", yq.ID)
			}
			q := &models.Question{
				ID:         yq.ID,
				Text:       yq.Question,
				Index:      yq.Index,
				IsRequired: yq.Required == nil || *yq.Required,
			}
			switch {
			case yq.FreeText:
			case len(yq.Answers) > 0:
				q.AllowedAnswers = yq.Answers
			default:
				q.AllowedAnswers = models.SignalingAnswers()
			}
			d.Questions = append(d.Questions, q)
		}
		fw.Domains = append(fw.Domains, d)
	}

	return finish(fw)
}
