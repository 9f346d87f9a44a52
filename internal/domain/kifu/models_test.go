package kifu

import (
	"encoding/json"
	"testing"
)

func TestStorageKeyJoinsPrefixAndID(t *testing.T) {
	if got := StorageKey(PrefixCSA, "alice-bob-20240102_123456"); got != "csa:alice-bob-20240102_123456" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestPlayerOmitsUnknownWin(t *testing.T) {
	raw, err := json.Marshal(Player{Name: "alice", Rank: 3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"name":"alice","rank":3}` {
		t.Fatalf("unexpected json %s", raw)
	}

	p := Player{Name: "bob", IsWin: Bool(true)}
	if !p.Won() {
		t.Fatal("expected Won to report true")
	}
	if (Player{}).Won() {
		t.Fatal("unknown win must not report true")
	}
}

func TestSummariesEntityCopiesInput(t *testing.T) {
	games := []GameSummary{{GameID: "a"}}
	entity := SummariesEntity(games)
	games[0].GameID = "mutated"

	if entity.Summaries[0].GameID != "a" {
		t.Fatalf("entity shares caller slice: %+v", entity.Summaries)
	}
	if entity.Kind != KindSummaries {
		t.Fatalf("unexpected kind %s", entity.Kind)
	}
}
