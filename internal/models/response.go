package models

import "encoding/json"

// Response is the immutable record of one answered question.
// Build it with NewResponse; the raw provenance payload never leaves the
// process (it is dropped on serialization).
type Response struct {
	chosen    string
	reasoning string
	evidence  []string
	raw       any
}

// NewResponse creates a Response. The evidence slice is copied.
func NewResponse(chosen, reasoning string, evidence []string, raw any) *Response {
	return &Response{
		chosen:    chosen,
		reasoning: reasoning,
		evidence:  cloneStrings(evidence),
		raw:       raw,
	}
}

// ChosenAnswer returns the selected or typed answer.
func (r *Response) ChosenAnswer() string { return r.chosen }

// Reasoning returns the free-text justification.
func (r *Response) Reasoning() string { return r.reasoning }

// Evidence returns a copy of the supporting excerpts.
func (r *Response) Evidence() []string { return cloneStrings(r.evidence) }

// RawProvenance returns the opaque payload attached by the populating
// collaborator, or nil.
func (r *Response) RawProvenance() any { return r.raw }

type responseJSON struct {
	Response  string   `json:"response"`
	Reasoning string   `json:"reasoning"`
	Evidence  []string `json:"evidence"`
}

// MarshalJSON implements json.Marshaler. Raw provenance is omitted.
func (r *Response) MarshalJSON() ([]byte, error) {
	evidence := r.evidence
	if evidence == nil {
		evidence = []string{}
	}
	return json.Marshal(responseJSON{
		Response:  r.chosen,
		Reasoning: r.reasoning,
		Evidence:  evidence,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Unknown keys (such as the
// raw_data field of older documents) are ignored.
func (r *Response) UnmarshalJSON(data []byte) error {
	var wire responseJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*r = Response{
		chosen:    wire.Response,
		reasoning: wire.Reasoning,
		evidence:  wire.Evidence,
	}
	return nil
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
