package decode_test

import (
	"testing"

	"github.com/talentosprecato/Mari/pkg/decode"
)

type item struct {
	ID    string   `json:"id"`
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

func TestFromMap(t *testing.T) {
	input := map[string]any{
		"id":    "a1",
		"tags":  []any{"go", "cv"},
		"count": 2.0,
	}

	got, err := decode.FromMap[item](input)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	if got.ID != "a1" {
		t.Errorf("ID = %q, want %q", got.ID, "a1")
	}
	if len(got.Tags) != 2 || got.Tags[1] != "cv" {
		t.Errorf("Tags = %v, want [go cv]", got.Tags)
	}
	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
}

func TestInto_SameType(t *testing.T) {
	want := item{ID: "x"}

	got, err := decode.Into[item](want)
	if err != nil {
		t.Fatalf("Into() error = %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("ID = %q, want %q", got.ID, want.ID)
	}
}

func TestInto_Slice(t *testing.T) {
	got, err := decode.Into[[]item]([]any{
		map[string]any{"id": "a"},
		map[string]any{"id": "b"},
	})
	if err != nil {
		t.Fatalf("Into() error = %v", err)
	}
	if len(got) != 2 || got[1].ID != "b" {
		t.Errorf("Into() = %+v, want two items", got)
	}
}

func TestInto_Mismatch(t *testing.T) {
	if _, err := decode.Into[item]("not an object"); err == nil {
		t.Error("Into() error = nil, want error")
	}
}
