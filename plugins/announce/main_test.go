package main

import "testing"

func TestBuildAnnouncement(t *testing.T) {
	req := Request{
		Round:    2,
		Player:   "rock",
		Opponent: "scissors",
		Verdict:  "You Win!",
		Score:    Score{Player: 2, Opponent: 0},
	}

	got := buildAnnouncement(req)
	want := "Round 2: rock against scissors. You Win! Score 2 to 0."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
