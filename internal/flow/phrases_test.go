package flow

import "testing"

func TestSelectVariantStable(t *testing.T) {
	variants := []string{"a", "b", "c"}

	first := SelectVariant("user-42", variants)
	for i := 0; i < 10; i++ {
		if got := SelectVariant("user-42", variants); got != first {
			t.Fatalf("SelectVariant() changed between calls: %q then %q", first, got)
		}
	}

	found := false
	for _, v := range variants {
		if v == first {
			found = true
		}
	}
	if !found {
		t.Errorf("SelectVariant() = %q, not a member of the variant set", first)
	}
}

func TestSelectVariantEmpty(t *testing.T) {
	if got := SelectVariant("user-42", nil); got != "" {
		t.Errorf("SelectVariant() with no variants = %q, want empty", got)
	}
}
