package ignorelist

import (
	"fmt"
	"slices"
	"testing"

	"github.com/sourcegraph/conc"
)

func TestListAdd(t *testing.T) {
	l := New()
	if l.Len() != 0 {
		t.Fatalf("new list has %d entries", l.Len())
	}
	if !l.Add("10.0.0.5") {
		t.Error("first Add should report true")
	}
	if l.Add("10.0.0.5") {
		t.Error("second Add of the same address should report false")
	}
	l.Add("10.0.0.6")

	want := []string{"10.0.0.5", "10.0.0.6"}
	if got := l.Snapshot(); !slices.Equal(got, want) {
		t.Errorf("Snapshot() = %v, want %v", got, want)
	}
	if !l.Contains("10.0.0.6") || l.Contains("10.0.0.7") {
		t.Error("Contains returned wrong result")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	l := New()
	l.Add("a")
	snap := l.Snapshot()
	l.Add("b")
	if len(snap) != 1 {
		t.Errorf("snapshot changed after Add: %v", snap)
	}
}

func TestNilList(t *testing.T) {
	var l *List
	if l.Contains("x") || l.Len() != 0 || l.Snapshot() != nil {
		t.Error("nil list should behave as empty")
	}
	if l.Add("10.0.0.1") {
		t.Error("Add on a nil list reported an insert")
	}
	if l.Len() != 0 {
		t.Errorf("Len() after Add on nil list = %d, want 0", l.Len())
	}
}

func TestConcurrentAdd(t *testing.T) {
	l := New()
	var wg conc.WaitGroup
	for i := 0; i < 50; i++ {
		addr := fmt.Sprintf("10.0.0.%d", i)
		wg.Go(func() {
			l.Add(addr)
			for range l.Snapshot() {
			}
		})
	}
	wg.Wait()

	if l.Len() != 50 {
		t.Errorf("Len() = %d, want 50", l.Len())
	}
}
