package compare

import (
	"github.com/montanaflynn/stats"
)

// Rate is the share of comparable items on which both assessors agree.
type Rate struct {
	Compared int
	Agreed   int
	// Percent is 0-100; meaningless when Compared is 0
	Percent float64
}

// DomainRate is the agreement within one domain.
type DomainRate struct {
	DomainShort string
	Domain      string
	Rate
}

// Agreement summarises a comparison.
type Agreement struct {
	Questions Rate
	Domains   []DomainRate
	// Judgements counts agreement on computed domain verdicts
	Judgements Rate
}

// ComputeAgreement derives question-level agreement overall and per domain,
// plus agreement on the computed domain verdicts. Questions unanswered by
// either assessor are left out.
func ComputeAgreement(r *Result) Agreement {
	var ag Agreement

	var all []float64
	byDomain := make(map[string][]float64)
	var order []DomainRate
	for _, row := range r.Rows {
		if _, seen := byDomain[row.DomainShort]; !seen {
			byDomain[row.DomainShort] = nil
			order = append(order, DomainRate{DomainShort: row.DomainShort, Domain: row.Domain})
		}
		if !row.Comparable() {
			continue
		}
		v := indicator(row.Agree())
		all = append(all, v)
		byDomain[row.DomainShort] = append(byDomain[row.DomainShort], v)
	}

	ag.Questions = rate(all)
	for _, d := range order {
		d.Rate = rate(byDomain[d.DomainShort])
		ag.Domains = append(ag.Domains, d)
	}

	var verdicts []float64
	for _, p := range r.Judgements {
		if !p.A.Known() || !p.B.Known() {
			continue
		}
		verdicts = append(verdicts, indicator(p.Agree()))
	}
	ag.Judgements = rate(verdicts)

	return ag
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func rate(values []float64) Rate {
	r := Rate{Compared: len(values)}
	if len(values) == 0 {
		return r
	}
	sum, _ := stats.Sum(values)
	r.Agreed = int(sum)
	mean, err := stats.Mean(values)
	if err == nil {
		r.Percent = mean * 100
	}
	return r
}
