package internal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReconstructPath(t *testing.T) {
	parent := map[string]string{"b": "a", "c": "b", "d": "c", "x": "a"}

	tests := []struct {
		name string
		goal string
		want []string
	}{
		{name: "chain", goal: "d", want: []string{"a", "b", "c", "d"}},
		{name: "branch", goal: "x", want: []string{"a", "x"}},
		{name: "start is goal", goal: "a", want: []string{"a"}},
		{name: "unknown state", goal: "z", want: []string{"z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ReconstructPath(parent, tt.goal)); diff != "" {
				t.Errorf("ReconstructPath(%q) mismatch (-want +got):\n%s", tt.goal, diff)
			}
		})
	}
}
