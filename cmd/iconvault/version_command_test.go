package main

import "testing"

func TestCLIVersionSkipsConfigLoad(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "iconvault dev")
	requireContains(t, out, "commit: none")
}
