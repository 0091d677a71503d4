package staging

import "testing"

func TestAddAndCounts(t *testing.T) {
	stage := NewSuggestionStage[string](4)

	stage.Add(1, "apple")
	stage.Add(1, "apply")
	stage.Add(2, "banana")

	if stage.DeleteCount() != 2 {
		t.Errorf("DeleteCount: got %d, want 2", stage.DeleteCount())
	}
	if stage.NodeCount() != 3 {
		t.Errorf("NodeCount: got %d, want 3", stage.NodeCount())
	}
}

func TestCommitPreservesInsertionOrder(t *testing.T) {
	stage := NewSuggestionStage[string](4)
	stage.Add(7, "first")
	stage.Add(7, "second")
	stage.Add(7, "third")

	permanent := make(map[uint64][]string)
	stage.CommitTo(permanent)

	want := []string{"first", "second", "third"}
	got := permanent[7]
	if len(got) != len(want) {
		t.Fatalf("bucket size: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCommitAppendsToExistingBucket(t *testing.T) {
	stage := NewSuggestionStage[string](4)
	stage.Add(3, "staged")

	permanent := map[uint64][]string{3: {"existing"}}
	stage.CommitTo(permanent)

	got := permanent[3]
	if len(got) != 2 || got[0] != "existing" || got[1] != "staged" {
		t.Errorf("bucket: got %v, want [existing staged]", got)
	}
}

func TestClear(t *testing.T) {
	stage := NewSuggestionStage[string](4)
	stage.Add(1, "a")
	stage.Clear()

	if stage.DeleteCount() != 0 || stage.NodeCount() != 0 {
		t.Errorf("Clear left %d deletes, %d nodes", stage.DeleteCount(), stage.NodeCount())
	}
}
