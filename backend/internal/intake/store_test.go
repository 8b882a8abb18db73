package intake

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "intake.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_InsertAndList(t *testing.T) {
	db := openTestDB(t)
	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	p := ParticipantIntake{
		Age:              34,
		Gender:           "male",
		DaysSinceRelease: 45,
		HousingStatus:    "transitional",
		EmploymentStatus: "unemployed_seeking",
		Substances:       []string{"alcohol"},
	}
	tags := DeriveTags(p)
	if err := db.InsertParticipant("P001", "http://interventions.org/participant/P001", created, p, tags); err != nil {
		t.Fatalf("InsertParticipant: %v", err)
	}

	roster, err := db.ListParticipants()
	if err != nil {
		t.Fatalf("ListParticipants: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("expected 1 row, got %d", len(roster))
	}
	row := roster[0]
	if row.ParticipantID != "P001" || row.Age != 34 || row.HousingStatus != "transitional" {
		t.Errorf("unexpected row: %+v", row)
	}
	if len(row.Tags) != len(tags) {
		t.Errorf("expected %d tags, got %d", len(tags), len(row.Tags))
	}
	if !hasTag(row.Tags, "recently_released") {
		t.Error("derived tags not persisted")
	}
}

func TestDB_DuplicateParticipantRejected(t *testing.T) {
	db := openTestDB(t)
	created := time.Now().UTC()
	p := ParticipantIntake{Age: 28}

	if err := db.InsertParticipant("P001", "uri1", created, p, nil); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertParticipant("P001", "uri2", created, p, nil); err == nil {
		t.Error("expected unique constraint violation on duplicate participant_id")
	}
}

func TestDB_CountParticipants(t *testing.T) {
	db := openTestDB(t)
	created := time.Now().UTC()

	n, err := db.CountParticipants()
	if err != nil || n != 0 {
		t.Fatalf("expected 0, got %d (%v)", n, err)
	}

	for i, id := range []string{"P001", "P002", "P003"} {
		if err := db.InsertParticipant(id, id+"-uri", created, ParticipantIntake{Age: 20 + i}, nil); err != nil {
			t.Fatal(err)
		}
	}
	n, err = db.CountParticipants()
	if err != nil || n != 3 {
		t.Fatalf("expected 3, got %d (%v)", n, err)
	}
}
