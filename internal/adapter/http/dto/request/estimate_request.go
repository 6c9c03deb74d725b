package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"greenpro_billing/internal/domain/entities"
)

// FreeText accepts a JSON string or number. Area and rooms are typed by hand in the
// quote form ("1000 sq ft", "3") and are parsed leniently by the pricing engine.
type FreeText string

func (f *FreeText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FreeText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FreeText(n.String())
	return nil
}

func (f FreeText) String() string {
	return strings.TrimSpace(string(f))
}

// EstimateRequest is the body of POST /estimates.
type EstimateRequest struct {
	Service string   `json:"service"`
	Area    FreeText `json:"area"`
	Rooms   FreeText `json:"rooms"`
}

// ServiceName is the trimmed service; empty when none was chosen.
func (r EstimateRequest) ServiceName() entities.ServiceName {
	return entities.ServiceName(strings.TrimSpace(r.Service))
}
