package compare

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter writes the comparison set with the best-performing sizes picked out
type JSONFormatter struct {
	Pretty bool
}

type jsonComparison struct {
	*ComparisonSet
	FastestPayback string `json:"fastestPayback,omitempty"`
	HighestSavings string `json:"highestSavings,omitempty"`
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{ComparisonSet: compSet}

	var fastest, richest *ComparisonResult
	all := compSet.All()
	for i := range all {
		r := &all[i]
		if r.BreakEvenReached && (fastest == nil || r.BreakEvenMonth < fastest.BreakEvenMonth) {
			fastest = r
		}
		if richest == nil || r.LifetimeSavings.GreaterThan(richest.LifetimeSavings) {
			richest = r
		}
	}
	if fastest != nil {
		doc.FastestPayback = fastest.ScenarioName
	}
	if richest != nil {
		doc.HighestSavings = richest.ScenarioName
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
