package online

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/kleene/dfa"
)

func TestTracker_Ledgers(t *testing.T) {
	mt := NewTracker()
	mt.Record(dfa.Event{Tag: dfa.Tag{Kind: dfa.CandidateStart, Pattern: 1}, Offset: 0})
	mt.Record(dfa.Event{Tag: dfa.Tag{Kind: dfa.MatchEnd, Pattern: 1}, Offset: 2})
	mt.Record(dfa.Event{Tag: dfa.Tag{Kind: dfa.EmptyMatch, Pattern: 0}, Offset: 2})
	mt.AddCandidateStart(0, 2)
	mt.AddCandidateStart(1, 2)
	mt.AddCandidateStart(0, 5)
	mt.AddMatch(1, Span{Start: 0, End: 3})
	mt.AddMatch(0, Span{Start: 2, End: 2})

	if diff := cmp.Diff([]int{0, 2}, mt.StartPositions(1)); diff != "" {
		t.Errorf("StartPositions(1) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, mt.EndPositions(1)); diff != "" {
		t.Errorf("EndPositions(1) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, mt.EmptyMatchPositions(0)); diff != "" {
		t.Errorf("EmptyMatchPositions(0) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Span{{Start: 0, End: 3}}, mt.MatchesFor(1)); diff != "" {
		t.Errorf("MatchesFor(1) (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1}, mt.Patterns()); diff != "" {
		t.Errorf("Patterns() (-want +got):\n%s", diff)
	}

	want := map[int][]int{0: {1}, 2: {0, 1}, 5: {0}}
	if diff := cmp.Diff(want, mt.InvertCandidateStarts()); diff != "" {
		t.Errorf("InvertCandidateStarts() (-want +got):\n%s", diff)
	}

	since := []struct {
		marks []int
		want  map[int][]int
	}{
		{[]int{0, 0}, want},
		{[]int{1, 1}, map[int][]int{2: {1}, 5: {0}}},
		{[]int{2}, map[int][]int{0: {1}, 2: {1}}},
		{[]int{2, 2}, map[int][]int{}},
	}
	for _, tt := range since {
		if diff := cmp.Diff(tt.want, mt.InvertCandidateStartsSince(tt.marks)); diff != "" {
			t.Errorf("InvertCandidateStartsSince(%v) (-want +got):\n%s", tt.marks, diff)
		}
	}

	mt.Reset()
	if len(mt.StartPositions(1)) != 0 || len(mt.MatchesFor(1)) != 0 || len(mt.Patterns()) != 0 {
		t.Error("Reset left entries behind")
	}
}
