package utils

import (
	"testing"
	"time"
)

func TestParseStringAs_Scalars(t *testing.T) {
	if got, err := ParseStringAs[string]("Monaco"); err != nil || got != "Monaco" {
		t.Errorf("string: got %q, %v", got, err)
	}
	if got, err := ParseStringAs[bool]("1"); err != nil || !got {
		t.Errorf("bool: got %v, %v", got, err)
	}
	if got, err := ParseStringAs[int]("50"); err != nil || got != 50 {
		t.Errorf("int: got %v, %v", got, err)
	}
	if got, err := ParseStringAs[uint8]("255"); err != nil || got != 255 {
		t.Errorf("uint8: got %v, %v", got, err)
	}
	if got, err := ParseStringAs[float64]("0.925"); err != nil || got != 0.925 {
		t.Errorf("float64: got %v, %v", got, err)
	}
	if got, err := ParseStringAs[time.Duration]("1m30s"); err != nil || got != 90*time.Second {
		t.Errorf("duration: got %v, %v", got, err)
	}
}

func TestParseStringAs_ScalarErrors(t *testing.T) {
	tests := []struct {
		name  string
		parse func() error
	}{
		{"bool", func() error { _, err := ParseStringAs[bool]("maybe"); return err }},
		{"int", func() error { _, err := ParseStringAs[int]("1,000"); return err }},
		{"int8 overflow", func() error { _, err := ParseStringAs[int8]("300"); return err }},
		{"uint negative", func() error { _, err := ParseStringAs[uint]("-1"); return err }},
		{"float", func() error { _, err := ParseStringAs[float64]("n/a"); return err }},
		{"duration", func() error { _, err := ParseStringAs[time.Duration]("30"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.parse() == nil {
				t.Error("expected an error")
			}
		})
	}
}

type override struct {
	URL        string `json:"url"`
	HeaderRows *int   `json:"header_rows"`
}

// TestParseStringAs_ValidJSON decodes a well-formed document without repair.
func TestParseStringAs_ValidJSON(t *testing.T) {
	got, err := ParseStringAs[map[string]override](`{"gdp": {"url": "file:///tmp/gdp.html", "header_rows": 2}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["gdp"].URL != "file:///tmp/gdp.html" || got["gdp"].HeaderRows == nil || *got["gdp"].HeaderRows != 2 {
		t.Errorf("unexpected result: %+v", got)
	}
}

// TestParseStringAs_RepairedJSON accepts the mistakes people make when they
// edit an override file by hand.
func TestParseStringAs_RepairedJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"trailing comma", `{"hdi": {"url": "https://example.org/hdi",},}`},
		{"single quotes", `{'hdi': {'url': 'https://example.org/hdi'}}`},
		{"unquoted keys", `{hdi: {url: "https://example.org/hdi"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringAs[map[string]override](tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got["hdi"].URL != "https://example.org/hdi" {
				t.Errorf("url = %q", got["hdi"].URL)
			}
		})
	}
}

// TestParseStringAs_WrongShape fails even after repair when the JSON does not
// fit the target type.
func TestParseStringAs_WrongShape(t *testing.T) {
	if _, err := ParseStringAs[[]int](`{"a": 1}`); err == nil {
		t.Error("expected an error decoding an object into a slice")
	}
}
