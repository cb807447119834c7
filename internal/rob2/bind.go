package rob2

import (
	"strings"

	"github.com/harrison/rob/internal/models"
)

// Bind re-attaches domain kinds, aggregation flags and question IDs to a
// framework decoded from a document that predates them. Domains that
// already carry a kind are left alone. A domain is matched to the RoB2
// template by index first and then by name; questions are matched by index
// and then by text. Questions that still lack an ID receive their index
// label. Bind returns the number of domains it bound.
func Bind(fw *models.Framework) int {
	template := NewFramework()
	bound := 0

	for _, d := range fw.Domains {
		if d.Kind == models.KindCustom {
			if t := matchDomain(template, d); t != nil {
				d.Kind = t.Kind
				d.Aggregate = t.Kind.DefaultAggregate()
				bindQuestions(d, t)
				bound++
			}
		}
		for _, q := range d.Questions {
			if q.ID == "" {
				q.ID = q.IndexLabel()
			}
		}
	}
	return bound
}

func matchDomain(template *models.Framework, d *models.Domain) *models.Domain {
	if t := template.Domain(d.Index); t != nil && sameName(t.Name, d.Name) {
		return t
	}
	for _, t := range template.Domains {
		if sameName(t.Name, d.Name) {
			return t
		}
	}
	return nil
}

func bindQuestions(d, t *models.Domain) {
	for _, q := range d.Questions {
		if q.ID != "" {
			continue
		}
		for _, tq := range t.Questions {
			if tq.Index == q.Index || tq.Text == q.Text {
				q.ID = tq.ID
				break
			}
		}
	}
}

// sameName compares domain names ignoring case and a trailing period.
func sameName(a, b string) bool {
	norm := func(s string) string {
		return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".")
	}
	return norm(a) == norm(b)
}
