package amount

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		decimals int
		want     uint64
		wantErr  bool
	}{
		{"1", 9, 1000000000, false},
		{"0.000005", 9, 5000, false},
		{"0.024981836", 9, 24981836, false},
		{"1.5", 6, 1500000, false},
		{"100", 0, 100, false},
		{".5", 9, 500000000, false},
		{"0.0000000001", 9, 0, true}, // more digits than the asset has
		{"", 9, 0, true},
		{"abc", 9, 0, true},
		{"1.2.3", 9, 0, true},
		{"1.", 9, 0, true},
		{"-1", 9, 0, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input, tt.decimals)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q, %d): expected error, got %d", tt.input, tt.decimals, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q, %d): unexpected error: %v", tt.input, tt.decimals, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q, %d) = %d, want %d", tt.input, tt.decimals, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		value    uint64
		decimals int
		want     string
	}{
		{1000000000, 9, "1.000000000"},
		{24981836, 9, "0.024981836"},
		{5000, 9, "0.000005000"},
		{0, 9, "0.000000000"},
		{100, 0, "100"},
	}

	for _, tt := range tests {
		if got := Format(tt.value, tt.decimals); got != tt.want {
			t.Errorf("Format(%d, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 5000, 890880, 1000000000, 123456789012345}
	for _, v := range values {
		s := FormatSOL(v)
		got, err := ParseSOL(s)
		if err != nil {
			t.Fatalf("ParseSOL(%q): %v", s, err)
		}
		if got != v {
			t.Errorf("round trip %d -> %q -> %d", v, s, got)
		}
	}
}
