package foldinput

import (
	"reflect"
	"testing"
)

func TestParseChainIDs(t *testing.T) {
	tests := []struct {
		field    string
		expected []string
		multi    bool
	}{
		{"A", []string{"A"}, false},
		{"  B  ", []string{"B"}, false},
		{"A|C|D", []string{"A", "C", "D"}, true},
		{" A | C |D ", []string{"A", "C", "D"}, true},
		{"A||C|", []string{"A", "C"}, true},
		{"A|", []string{"A"}, true},
		{"|", []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got := ParseChainIDs(tt.field)
			if got.IsMulti() != tt.multi {
				t.Errorf("ParseChainIDs(%q).IsMulti() = %v, want %v", tt.field, got.IsMulti(), tt.multi)
			}
			if !reflect.DeepEqual(got.IDs(), tt.expected) {
				t.Errorf("ParseChainIDs(%q) = %v, want %v", tt.field, got.IDs(), tt.expected)
			}
		})
	}
}
