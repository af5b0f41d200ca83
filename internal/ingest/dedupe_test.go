package ingest

import (
	"reflect"
	"testing"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

func officer(email, name, position string) contracts.OfficerRecord {
	return contracts.OfficerRecord{
		Email:    email,
		Name:     name,
		Position: position,
		Division: "Finance",
		Grade:    "Grade 10",
	}
}

func TestDedupOfficersLastWriteWins(t *testing.T) {
	in := []contracts.OfficerRecord{
		officer("a@x.com", "A", "Clerk"),
		officer("b@x.com", "B", "Officer"),
		officer("a@x.com", "A", "Senior Clerk"),
	}

	out := DedupOfficers(in)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	// First-seen order preserved, later record's fields win
	if out[0].Email != "a@x.com" || out[0].Position != "Senior Clerk" {
		t.Errorf("out[0] = %+v, want the later a@x.com record", out[0])
	}
	if out[1].Email != "b@x.com" {
		t.Errorf("out[1] = %+v", out[1])
	}
}

func TestDedupOfficersEmailCaseInsensitive(t *testing.T) {
	in := []contracts.OfficerRecord{
		officer("a@x.com", "A", "Clerk"),
		officer("A@X.com", "A2", "Clerk2"),
	}

	out := DedupOfficers(in)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	if out[0].Name != "A2" || out[0].Position != "Clerk2" {
		t.Errorf("out[0] = %+v, want the second record's fields", out[0])
	}
}

func TestDedupOfficersNamePositionFallback(t *testing.T) {
	in := []contracts.OfficerRecord{
		officer("", "Jane Doe", "Accountant"),
		officer("", "jane doe ", "accountant"),
		officer("", "Jane Doe", "Auditor"),
	}

	out := DedupOfficers(in)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2 (same name+position merges, different position does not)", len(out))
	}
}

func TestDedupOfficersDropsEmptyKeys(t *testing.T) {
	in := []contracts.OfficerRecord{
		officer("", "", ""), // key "-"
		officer("a@x.com", "A", "Clerk"),
	}

	out := DedupOfficers(in)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	if out[0].Email != "a@x.com" {
		t.Errorf("out[0] = %+v", out[0])
	}
}

func TestDedupOfficersIdempotent(t *testing.T) {
	in := []contracts.OfficerRecord{
		officer("a@x.com", "A", "Clerk"),
		officer("", "B", "Officer"),
		officer("a@x.com", "A", "Senior Clerk"),
	}

	once := DedupOfficers(in)
	twice := DedupOfficers(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dedup not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestDedupOfficersEmptyInput(t *testing.T) {
	out := DedupOfficers(nil)
	if len(out) != 0 {
		t.Errorf("got %d records, want 0", len(out))
	}
}
