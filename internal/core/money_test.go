package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12.34", "12.34", false},
		{"12,34", "12.34", false},
		{" 7 ", "7.00", false},
		{"0", "0.00", false},
		{".5", "0.50", false},
		{"5.", "5.00", false},
		{"1000000.999", "1000001.00", false},
		{"", "", true},
		{".", "", true},
		{"-1", "", true},
		{"+1", "", true},
		{"1e3", "", true},
		{"1.2.3", "", true},
		{"NaN", "", true},
		{"Inf", "", true},
		{"١٢", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) expected error, got %s", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.in, err)
			}
			if got.Format() != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got.Format(), tt.want)
			}
		})
	}
}

func TestMoneyJSONIsBareNumber(t *testing.T) {
	m, _ := ParseAmount("12.5")
	b, err := json.Marshal(m)
	if err != nil || string(b) != "12.5" {
		t.Fatalf("marshal = %s, %v", b, err)
	}

	var back Money
	if err := json.Unmarshal([]byte("12.5"), &back); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if !back.Equal(m.Decimal) {
		t.Errorf("got %s", back)
	}
	if err := json.Unmarshal([]byte(`"3.10"`), &back); err != nil || back.Format() != "3.10" {
		t.Errorf("unmarshal quoted: %s, %v", back, err)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a, _ := ParseAmount("0.1")
	b, _ := ParseAmount("0.2")
	if got := a.Add(b).String(); got != "0.3" {
		t.Errorf("0.1 + 0.2 = %s", got)
	}
	if got := a.Sub(b).Format(); got != "-0.10" {
		t.Errorf("0.1 - 0.2 = %s", got)
	}
	if err := a.Sub(b).Validate(); err == nil {
		t.Error("negative money should not validate")
	}
}
