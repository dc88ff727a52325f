package library

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const listSeparator = "; "

// RecordHeader is the column layout of the catalog records CSV.
var RecordHeader = []string{
	"id",
	"title",
	"alternative_titles",
	"year",
	"publication_dates",
	"human_readable_publication_dates",
	"languages",
	"original_languages",
	"authors",
	"publishers",
	"summary",
	"genres",
	"subjects",
	"playing_times",
	"target_audience_notes",
	"physical_descriptions",
}

// AvailabilityHeader is the column layout of the availability CSV. The id
// column comes first so the incremental bookkeeping can key on it.
var AvailabilityHeader = []string{
	"id",
	"title",
	"num_locations",
	"locations",
	"organizations",
	"buildings_json",
}

// ToRow renders a record as a CSV row. List columns join with a semicolon;
// the author groups serialize as JSON so the role structure survives the
// round trip.
func (r Record) ToRow() ([]string, error) {
	authors, err := json.Marshal(r.Authors)
	if err != nil {
		return nil, fmt.Errorf("library: encode authors for %s: %w", r.ID, err)
	}
	year := ""
	if r.Year != nil {
		year = strconv.Itoa(*r.Year)
	}
	return []string{
		r.ID,
		r.Title,
		joinList(r.AlternativeTitles),
		year,
		joinList(r.PublicationDates),
		joinList(r.HumanReadablePublicationDates),
		joinList(r.Languages),
		joinList(r.OriginalLanguages),
		string(authors),
		joinList(r.Publishers),
		joinList(r.Summary),
		joinList(r.Genres),
		joinList(r.Subjects),
		joinList(r.PlayingTimes),
		joinList(r.TargetAudienceNotes),
		joinList(r.PhysicalDescriptions),
	}, nil
}

// RecordFromRow parses a CSV row back into a Record.
func RecordFromRow(row []string) (Record, error) {
	if len(row) < len(RecordHeader) {
		return Record{}, fmt.Errorf("library: record row has %d columns, want %d", len(row), len(RecordHeader))
	}
	record := Record{
		ID:                            row[0],
		Title:                         row[1],
		AlternativeTitles:             splitList(row[2]),
		Year:                          parseYear(row[3]),
		PublicationDates:              splitList(row[4]),
		HumanReadablePublicationDates: splitList(row[5]),
		Languages:                     splitList(row[6]),
		OriginalLanguages:             splitList(row[7]),
		Publishers:                    splitList(row[9]),
		Summary:                       splitList(row[10]),
		Genres:                        splitList(row[11]),
		Subjects:                      splitList(row[12]),
		PlayingTimes:                  splitList(row[13]),
		TargetAudienceNotes:           splitList(row[14]),
		PhysicalDescriptions:          splitList(row[15]),
	}
	if cell := strings.TrimSpace(row[8]); cell != "" {
		if err := json.Unmarshal([]byte(cell), &record.Authors); err != nil {
			return Record{}, fmt.Errorf("library: decode authors for %s: %w", record.ID, err)
		}
	}
	return record, nil
}

// WriteRecords writes the full record set to path, header first.
func WriteRecords(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("library: create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(RecordHeader); err != nil {
		return fmt.Errorf("library: write header: %w", err)
	}
	for _, record := range records {
		row, err := record.ToRow()
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("library: write record %s: %w", record.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("library: flush records: %w", err)
	}
	return file.Sync()
}

// ReadRecords loads a records CSV written by WriteRecords. The header row
// is skipped; order is preserved.
func ReadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("library: open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("library: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record, err := RecordFromRow(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ToRow renders an availability result as a CSV row.
func (a Availability) ToRow() ([]string, error) {
	buildings, err := json.Marshal(a.Buildings)
	if err != nil {
		return nil, fmt.Errorf("library: encode buildings for %s: %w", a.ID, err)
	}
	if len(a.Buildings) == 0 {
		buildings = []byte("[]")
	}
	return []string{
		a.ID,
		a.Title,
		strconv.Itoa(len(a.Buildings)),
		joinList(a.Locations),
		joinList(a.Organizations),
		string(buildings),
	}, nil
}

// AvailabilityFromRow parses a CSV row back into an Availability.
func AvailabilityFromRow(row []string) (Availability, error) {
	if len(row) < len(AvailabilityHeader) {
		return Availability{}, fmt.Errorf("library: availability row has %d columns, want %d", len(row), len(AvailabilityHeader))
	}
	availability := Availability{
		ID:            row[0],
		Title:         row[1],
		Locations:     splitList(row[3]),
		Organizations: splitList(row[4]),
	}
	if cell := strings.TrimSpace(row[5]); cell != "" {
		if err := json.Unmarshal([]byte(cell), &availability.Buildings); err != nil {
			return Availability{}, fmt.Errorf("library: decode buildings for %s: %w", availability.ID, err)
		}
	}
	return availability, nil
}

func joinList(values []string) string {
	return strings.Join(values, listSeparator)
}

func splitList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, listSeparator)
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
