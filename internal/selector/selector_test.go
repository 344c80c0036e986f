package selector

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"1,3,5-7", []int{1, 3, 5, 6, 7}, false},
		{"", nil, false},
		{"   ", nil, false},
		{"2,2,2", []int{2}, false},
		{"5-10", []int{5, 6, 7, 8, 9, 10}, false},
		{"10,1", []int{1, 10}, false},
		{"1, 3 , 5-7", []int{1, 3, 5, 6, 7}, false},
		{"3-3", []int{3}, false},
		{"0", []int{0}, false},
		{"3-1", nil, true}, // inverted range is rejected, not dropped
		{"a", nil, true},
		{"1,,3", nil, true},
		{"1-", nil, true},
		{"-3", nil, true},
		{"1.5", nil, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFilter(t *testing.T) {
	sel := []int{0, 1, 3, 5, 12}
	got := Filter(sel, 5)
	want := []int{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter(%v, 5) = %v, want %v", sel, got, want)
	}

	if got := Filter(nil, 5); len(got) != 0 {
		t.Errorf("Filter(nil, 5) = %v, want empty", got)
	}
}
