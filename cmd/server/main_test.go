package main

import (
	"slices"
	"testing"
)

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins("*"); !slices.Equal(got, []string{"*"}) {
		t.Errorf("Expected [*], got %v", got)
	}

	got := parseOrigins(" https://a.example , https://b.example,,")
	want := []string{"https://a.example", "https://b.example"}
	if !slices.Equal(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
