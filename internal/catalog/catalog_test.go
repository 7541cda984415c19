package catalog

import (
	"encoding/json"
	"testing"
)

func mustEntries(t *testing.T, raw string) []Entry {
	t.Helper()
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("decoding entries: %v", err)
	}
	return entries
}

func TestEntryUnmarshal(t *testing.T) {
	entries := mustEntries(t, `[
		"Lionel Messi",
		{"name": "Greece", "iso2": "GR", "aliases": ["Ελλάδα", "Hellas"]},
		{"name": "Germany", "code": "DE", "key": "DEU"}
	]`)

	want := []Entry{
		{Name: "Lionel Messi"},
		{Key: "GR", Name: "Greece", Aliases: []string{"Ελλάδα", "Hellas"}},
		{Key: "DEU", Name: "Germany"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i := range want {
		got := entries[i]
		if got.Key != want[i].Key || got.Name != want[i].Name || len(got.Aliases) != len(want[i].Aliases) {
			t.Errorf("entry %d = %+v, want %+v", i, got, want[i])
		}
	}
}

func TestEntryUnmarshalNumbers(t *testing.T) {
	entries := mustEntries(t, `[{"name": 1860, "key": 7, "aliases": [1, "TSV"]}]`)
	got := entries[0]
	if got.Name != "1860" || got.Key != "7" {
		t.Errorf("got name %q key %q, want 1860 and 7", got.Name, got.Key)
	}
	if len(got.Aliases) != 2 || got.Aliases[0] != "1" || got.Aliases[1] != "TSV" {
		t.Errorf("aliases = %v", got.Aliases)
	}
}

func TestEntryUnmarshalIgnoresBadAliases(t *testing.T) {
	entries := mustEntries(t, `[{"name": "X", "aliases": "nope"}, {"name": "Y", "aliases": null}]`)
	for _, e := range entries {
		if len(e.Aliases) != 0 {
			t.Errorf("%s: aliases = %v, want none", e.Name, e.Aliases)
		}
	}
}

func TestEntryUnmarshalRejectsGarbage(t *testing.T) {
	var entries []Entry
	if err := json.Unmarshal([]byte(`[42]`), &entries); err == nil {
		t.Fatal("expected error for a bare number entry")
	}
}

func TestNewItem(t *testing.T) {
	it := newItem("players", Entry{Name: "Kylian Mbappé", Aliases: []string{"Κιλιάν Εμπαπέ"}})

	if it.ID != "players:kylian-mbappe" {
		t.Errorf("ID = %q", it.ID)
	}
	norms := it.Norms()
	if len(norms) != 2 || norms[0] != "kylian mbappe" || norms[1] != "κιλιαν εμπαπε" {
		t.Errorf("Norms = %q", norms)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Real Madrid C.F.", "real-madrid-c-f"},
		{"  --Atlético--  ", "atletico"},
		{"Ολυμπιακός", ""},
		{"1. FC Köln", "1-fc-koln"},
	}
	for _, tt := range tests {
		if got := slug(tt.in); got != tt.want {
			t.Errorf("slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestItemLabel(t *testing.T) {
	it := newItem("players", Entry{Name: "Theodoros Zagorakis", Aliases: []string{"Zago", "Θοδωρής Ζαγοράκης"}})

	if got := it.Label("zag"); got != "Theodoros Zagorakis" {
		t.Errorf("latin query label = %q", got)
	}
	if got := it.Label("ζαγ"); got != "Θοδωρής Ζαγοράκης" {
		t.Errorf("greek query label = %q", got)
	}

	plain := newItem("players", Entry{Name: "Pelé"})
	if got := plain.Label("πελε"); got != "Pelé" {
		t.Errorf("greek query without greek alias = %q", got)
	}
}
