package library

import (
	"path/filepath"
	"reflect"
	"testing"
)

func sampleRecord() Record {
	year := 2005
	return Record{
		ID:                "keski.3376040",
		Title:             "Arkham Horror",
		AlternativeTitles: []string{"Arkham Horror : the board game"},
		Year:              &year,
		Languages:         []string{"eng"},
		Authors: AuthorGroups{
			Primary: map[string]AuthorDetail{
				"Launius, Richard": {Role: []string{"designer"}},
				"Wilson, Kevin":    {Role: []string{"designer"}},
			},
		},
		Publishers:   []string{"Fantasy Flight Games"},
		Summary:      []string{"Cooperative horror adventure."},
		Genres:       []string{"lautapelit"},
		Subjects:     []string{"kauhu", "yhteistyö"},
		PlayingTimes: []string{"120-240 min"},
	}
}

func TestRecordRowRoundTrip(t *testing.T) {
	record := sampleRecord()

	row, err := record.ToRow()
	if err != nil {
		t.Fatalf("ToRow: %v", err)
	}
	if len(row) != len(RecordHeader) {
		t.Fatalf("row has %d columns, header has %d", len(row), len(RecordHeader))
	}

	parsed, err := RecordFromRow(row)
	if err != nil {
		t.Fatalf("RecordFromRow: %v", err)
	}
	if !reflect.DeepEqual(parsed, record) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", parsed, record)
	}
}

func TestRecordRowMissingYear(t *testing.T) {
	record := sampleRecord()
	record.Year = nil

	row, err := record.ToRow()
	if err != nil {
		t.Fatalf("ToRow: %v", err)
	}
	if row[3] != "" {
		t.Fatalf("year column = %q, want empty", row[3])
	}
	parsed, err := RecordFromRow(row)
	if err != nil {
		t.Fatalf("RecordFromRow: %v", err)
	}
	if parsed.Year != nil {
		t.Fatalf("expected nil year, got %d", *parsed.Year)
	}
}

func TestWriteAndReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	records := []Record{sampleRecord()}
	second := sampleRecord()
	second.ID = "keski.99"
	second.Title = "Ra"
	records = append(records, second)

	if err := WriteRecords(path, records); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	loaded, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("loaded %d records, want 2", len(loaded))
	}
	if loaded[0].ID != "keski.3376040" || loaded[1].Title != "Ra" {
		t.Fatalf("order not preserved: %s, %s", loaded[0].ID, loaded[1].Title)
	}
}

func TestAvailabilityRowRoundTrip(t *testing.T) {
	availability := Availability{
		ID:    "keski.3376040",
		Title: "Arkham Horror",
		Buildings: []Building{
			{Value: "0/Keski/", Name: "Keski-kirjasto"},
			{Value: "1/Keski/pää/", Name: "Pääkirjasto"},
		},
		Locations:     []string{"Keski-kirjasto", "Pääkirjasto"},
		Organizations: []string{"Keski"},
	}

	row, err := availability.ToRow()
	if err != nil {
		t.Fatalf("ToRow: %v", err)
	}
	if row[2] != "2" {
		t.Fatalf("num_locations = %q, want 2", row[2])
	}
	parsed, err := AvailabilityFromRow(row)
	if err != nil {
		t.Fatalf("AvailabilityFromRow: %v", err)
	}
	if !reflect.DeepEqual(parsed, availability) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", parsed, availability)
	}
}

func TestAvailabilityRowEmptyBuildings(t *testing.T) {
	row, err := Availability{ID: "keski.1", Title: "Ra"}.ToRow()
	if err != nil {
		t.Fatalf("ToRow: %v", err)
	}
	if row[5] != "[]" {
		t.Fatalf("buildings cell = %q, want []", row[5])
	}
}
