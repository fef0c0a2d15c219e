package recommendation

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFormatScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.87, "87%"},
		{0, "0%"},
		{1, "100%"},
		{0.875, "88%"},
		{0.004, "0%"},
		{0.005, "1%"},
		{0.5, "50%"},
		{-0.001, "0%"},
		{1.234, "123%"},
		{math.NaN(), "NaN%"},
		{math.Inf(1), "NaN%"},
	}
	for _, tc := range tests {
		if got := FormatScore(tc.score); got != tc.want {
			t.Errorf("FormatScore(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestDecodeList(t *testing.T) {
	body := `[{"assessment_name":"Java Test","score":0.87,"assessment_url":"https://x/y"},
	          {"assessment_name":"Python","score":0.5,"assessment_url":"https://x/p","extra":true}]`

	items, err := DecodeList([]byte(body))
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "Java Test" || items[0].URL != "https://x/y" || items[0].ScoreLabel() != "87%" {
		t.Errorf("unexpected first item %+v", items[0])
	}
	if items[1].Name != "Python" || items[1].ScoreLabel() != "50%" {
		t.Errorf("unexpected second item %+v", items[1])
	}
}

func TestDecodeList_PreservesOrder(t *testing.T) {
	body := `[{"assessment_name":"low","score":0.1},{"assessment_name":"high","score":0.9}]`
	items, err := DecodeList([]byte(body))
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if items[0].Name != "low" || items[1].Name != "high" {
		t.Errorf("order changed: %+v", items)
	}
}

func TestDecodeList_ShapeMismatchDegrades(t *testing.T) {
	body := `[{"score":"oops"},{"assessment_name":42,"score":"0.25"},{},"not an object",null]`
	items, err := DecodeList([]byte(body))
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}
	if items[0].Name != "" || items[0].ScoreLabel() != "NaN%" {
		t.Errorf("item 0: %+v", items[0])
	}
	if items[1].Name != "42" || items[1].ScoreLabel() != "25%" {
		t.Errorf("item 1: %+v", items[1])
	}
	if items[2].URL != "" || items[2].ScoreLabel() != "NaN%" {
		t.Errorf("item 2: %+v", items[2])
	}
	if items[3].ScoreLabel() != "NaN%" {
		t.Errorf("item 3: %+v", items[3])
	}
}

func TestDecodeList_Empty(t *testing.T) {
	items, err := DecodeList([]byte(`[]`))
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestDecodeList_NotAnArray(t *testing.T) {
	for _, body := range []string{`{"detail":"x"}`, `null`, `"str"`, `not json`, ``} {
		if _, err := DecodeList([]byte(body)); err == nil {
			t.Errorf("DecodeList(%q): expected error", body)
		}
	}
}

func TestItem_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(New("Java Test", 0.87, "https://x/y"))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"assessment_name":"Java Test","score":0.87,"assessment_url":"https://x/y"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	data, err = json.Marshal(Item{Name: "n", Score: math.NaN()})
	if err != nil {
		t.Fatalf("NaN score must not fail marshal: %v", err)
	}
	want = `{"assessment_name":"n","assessment_url":""}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestItem_MissingScoreSurvivesReencode(t *testing.T) {
	items, err := DecodeList([]byte(`[{"assessment_name":"B"},{"assessment_name":"Z","score":0}]`))
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(items)
	if err != nil {
		t.Fatal(err)
	}
	again, err := DecodeList(data)
	if err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}

	if got := again[0].ScoreLabel(); got != "NaN%" {
		t.Errorf("missing score re-decoded as %q from %s", got, data)
	}
	if got := again[1].ScoreLabel(); got != "0%" {
		t.Errorf("zero score re-decoded as %q from %s", got, data)
	}
}
