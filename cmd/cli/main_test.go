package main

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := map[float64]string{
		0:       "0:00.000",
		12.5:    "0:12.500",
		62.25:   "1:02.250",
		600.001: "10:00.001",
	}
	for in, want := range tests {
		if got := formatTimestamp(in); got != want {
			t.Errorf("formatTimestamp(%v): expected %s, got %s", in, want, got)
		}
	}
}
