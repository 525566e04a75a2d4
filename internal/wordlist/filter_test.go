package wordlist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFilterForLength(t *testing.T) {
	filter := FilterForLength(5)
	if !filter("hello") {
		t.Fatalf("expected hello to pass the filter")
	}
	for _, word := range []string{"résumé", "naïve", "hell", "helloo", "Hello", "co-op", ""} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestPrepare(t *testing.T) {
	raw := []string{"Apple", "o'dell", "co-op", "apple", "knoll", "banana", "Ice Age", "crane"}
	got := Prepare(raw, FilterForLength(5))
	want := []string{"apple", "odell", "knoll", "crane"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected words (-want +got):\n%s", diff)
	}
}
