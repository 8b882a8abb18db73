package intake

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "modernc.org/sqlite"

	"intervention-graph/backend/internal/graph"
	pkgerrors "intervention-graph/backend/pkg/errors"
)

// DB is the relational side-table for enrollment demographics. The graph
// is the system of record for intervention data; this table exists for
// the participant roster view and tag browsing.
type DB struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS participants (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	participant_id TEXT UNIQUE NOT NULL,
	participant_uri TEXT UNIQUE,
	created_date TEXT NOT NULL,
	dob TEXT,
	age INTEGER,
	gender TEXT,
	release_date TEXT,
	days_since_release INTEGER,
	supervision_status TEXT,
	housing_status TEXT,
	housing_type TEXT,
	substances TEXT,
	current_substance_use TEXT,
	mental_health TEXT,
	disability_status TEXT,
	disability_duration TEXT,
	medication_use TEXT,
	medication_types TEXT,
	education_level TEXT,
	relationship_status TEXT,
	employment_status TEXT
);
CREATE TABLE IF NOT EXISTS bcio_tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	participant_id TEXT NOT NULL,
	tag_name TEXT NOT NULL,
	tag_category TEXT NOT NULL,
	bcio_id TEXT,
	FOREIGN KEY (participant_id) REFERENCES participants (participant_id)
);`

// OpenDB opens or creates the side-table at path
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, pkgerrors.NewStoreError(path, "open intake database", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pkgerrors.NewStoreError(path, "initialize intake schema", err)
	}
	return &DB{db: db}, nil
}

// Close releases the database handle
func (d *DB) Close() error {
	return d.db.Close()
}

// InsertParticipant records the enrollment form and its derived tags
func (d *DB) InsertParticipant(participantID, participantURI string, created time.Time, p ParticipantIntake, tags []graph.AttributeTag) error {
	substances, _ := json.Marshal(p.Substances)
	mentalHealth, _ := json.Marshal(p.MentalHealth)
	medicationTypes, _ := json.Marshal(p.MedicationTypes)

	tx, err := d.db.Begin()
	if err != nil {
		return pkgerrors.NewStoreError("intake", "begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO participants
		(participant_id, participant_uri, created_date, dob, age, gender, release_date,
		 days_since_release, supervision_status, housing_status, housing_type,
		 substances, current_substance_use, mental_health, disability_status,
		 disability_duration, medication_use, medication_types, education_level,
		 relationship_status, employment_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		participantID, participantURI, created.Format(time.RFC3339), p.DOB, p.Age, p.Gender,
		p.ReleaseDate, p.DaysSinceRelease, p.SupervisionStatus, p.HousingStatus, p.HousingType,
		string(substances), p.CurrentSubstanceUse, string(mentalHealth), p.DisabilityStatus,
		p.DisabilityDuration, p.MedicationUse, string(medicationTypes), p.EducationLevel,
		p.RelationshipStatus, p.EmploymentStatus)
	if err != nil {
		return pkgerrors.NewStoreError("intake", "insert participant", err)
	}

	for _, tag := range tags {
		if _, err := tx.Exec(`INSERT INTO bcio_tags (participant_id, tag_name, tag_category, bcio_id)
			VALUES (?, ?, ?, ?)`, participantID, tag.Name, tag.Category, tag.ClassID); err != nil {
			return pkgerrors.NewStoreError("intake", "insert tag", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.NewStoreError("intake", "commit", err)
	}
	return nil
}

// ParticipantRow is the roster view of one enrolled participant
type ParticipantRow struct {
	ParticipantID    string               `json:"participant_id"`
	ParticipantURI   string               `json:"participant_uri"`
	CreatedDate      string               `json:"created_date"`
	Age              int                  `json:"age"`
	Gender           string               `json:"gender"`
	DaysSinceRelease int                  `json:"days_since_release"`
	HousingStatus    string               `json:"housing_status"`
	EmploymentStatus string               `json:"employment_status"`
	Tags             []graph.AttributeTag `json:"tags"`
}

// ListParticipants returns the roster in enrollment order with tags
func (d *DB) ListParticipants() ([]ParticipantRow, error) {
	rows, err := d.db.Query(`SELECT participant_id, participant_uri, created_date, age, gender,
		days_since_release, housing_status, employment_status FROM participants ORDER BY id`)
	if err != nil {
		return nil, pkgerrors.NewStoreError("intake", "list participants", err)
	}
	defer rows.Close()

	var roster []ParticipantRow
	for rows.Next() {
		var r ParticipantRow
		if err := rows.Scan(&r.ParticipantID, &r.ParticipantURI, &r.CreatedDate, &r.Age, &r.Gender,
			&r.DaysSinceRelease, &r.HousingStatus, &r.EmploymentStatus); err != nil {
			return nil, pkgerrors.NewStoreError("intake", "scan participant", err)
		}
		roster = append(roster, r)
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.NewStoreError("intake", "iterate participants", err)
	}

	for i := range roster {
		tags, err := d.participantTags(roster[i].ParticipantID)
		if err != nil {
			return nil, err
		}
		roster[i].Tags = tags
	}
	return roster, nil
}

// CountParticipants returns the number of enrolled participants
func (d *DB) CountParticipants() (int, error) {
	var n int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM participants`).Scan(&n); err != nil {
		return 0, pkgerrors.NewStoreError("intake", "count participants", err)
	}
	return n, nil
}

func (d *DB) participantTags(participantID string) ([]graph.AttributeTag, error) {
	rows, err := d.db.Query(`SELECT tag_name, tag_category, bcio_id FROM bcio_tags
		WHERE participant_id = ? ORDER BY id`, participantID)
	if err != nil {
		return nil, pkgerrors.NewStoreError("intake", "list tags", err)
	}
	defer rows.Close()

	var tags []graph.AttributeTag
	for rows.Next() {
		var tag graph.AttributeTag
		if err := rows.Scan(&tag.Name, &tag.Category, &tag.ClassID); err != nil {
			return nil, pkgerrors.NewStoreError("intake", "scan tag", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
