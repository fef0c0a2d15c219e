// Package recommendation holds the items returned by the collaborator.
package recommendation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Item is one recommended assessment. Fields the collaborator omitted or sent
// with an unexpected type stay zero; a missing score is NaN.
type Item struct {
	Name  string
	Score float64
	URL   string
}

// New creates an item.
func New(name string, score float64, url string) Item {
	return Item{Name: name, Score: score, URL: url}
}

// ScoreLabel renders the score as a rounded integer percentage, e.g. "87%".
func (i Item) ScoreLabel() string {
	return FormatScore(i.Score)
}

// FormatScore renders round(score*100) followed by "%". Non-finite scores render "NaN%".
func FormatScore(score float64) string {
	pct := score * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "NaN%"
	}
	// math.Round keeps -0 for small negatives.
	return strconv.FormatFloat(math.Round(pct)+0, 'f', 0, 64) + "%"
}

type wireItem struct {
	Name  *string  `json:"assessment_name"`
	Score *float64 `json:"score,omitempty"`
	URL   *string  `json:"assessment_url"`
}

// MarshalJSON writes the collaborator field names. A non-finite score is
// omitted so that decoding the output yields NaN again.
func (i Item) MarshalJSON() ([]byte, error) {
	w := wireItem{Name: &i.Name, URL: &i.URL}
	if !math.IsNaN(i.Score) && !math.IsInf(i.Score, 0) {
		s := i.Score
		w.Score = &s
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes one item without validating its shape.
func (i *Item) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object: keep a blank row rather than failing the list.
		*i = Item{Score: math.NaN()}
		return nil //nolint:nilerr // shape mismatches degrade into blank cells
	}
	*i = Item{
		Name:  stringField(fields["assessment_name"]),
		Score: numberField(fields["score"]),
		URL:   stringField(fields["assessment_url"]),
	}
	return nil
}

// DecodeList decodes a JSON array of items. Anything other than an array is an error.
func DecodeList(data []byte) ([]Item, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode item list: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode item list: null body")
	}
	items := make([]Item, len(raw))
	for idx, r := range raw {
		if err := items[idx].UnmarshalJSON(r); err != nil {
			return nil, fmt.Errorf("decode item %d: %w", idx, err)
		}
	}
	return items, nil
}

func stringField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func numberField(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return math.NaN()
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return math.NaN()
}
