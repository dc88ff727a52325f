package library

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestAuthorGroupsObjectForm(t *testing.T) {
	payload := `{"primary": {"Knizia, Reiner": {"role": ["designer"]}}, "secondary": {"Menzel, Michael": {"role": ["illustrator"]}}}`

	var groups AuthorGroups
	if err := json.Unmarshal([]byte(payload), &groups); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := groups.Primary["Knizia, Reiner"]; !ok {
		t.Fatalf("missing primary author, got %v", groups.Primary)
	}
	if _, ok := groups.Secondary["Menzel, Michael"]; !ok {
		t.Fatalf("missing secondary author, got %v", groups.Secondary)
	}
}

func TestAuthorGroupsListForm(t *testing.T) {
	payload := `[{"primary": {"Kramer, Wolfgang": {}}}, {"primary": {"Kiesling, Michael": {}}, "corporate": {"Ravensburger": {}}}]`

	var groups AuthorGroups
	if err := json.Unmarshal([]byte(payload), &groups); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(groups.Primary) != 2 {
		t.Fatalf("expected 2 merged primary authors, got %v", groups.Primary)
	}
	if len(groups.Corporate) != 1 {
		t.Fatalf("expected 1 corporate author, got %v", groups.Corporate)
	}
}

func TestPrimaryAuthorsSorted(t *testing.T) {
	record := Record{
		Authors: AuthorGroups{
			Primary: map[string]AuthorDetail{
				"Teuber, Klaus":     {},
				"Kramer, Wolfgang":  {},
				"Kiesling, Michael": {},
			},
			Secondary: map[string]AuthorDetail{
				"Menzel, Michael": {},
			},
		},
	}

	got := record.PrimaryAuthors()
	want := []string{"Kiesling, Michael", "Kramer, Wolfgang", "Teuber, Klaus"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PrimaryAuthors() = %v, want %v", got, want)
	}
}

func TestPrimaryAuthorsEmpty(t *testing.T) {
	if got := (Record{}).PrimaryAuthors(); got != nil {
		t.Fatalf("expected nil for empty groups, got %v", got)
	}
}

func TestAllAuthorsDeduplicates(t *testing.T) {
	record := Record{
		Authors: AuthorGroups{
			Primary:   map[string]AuthorDetail{"Knizia, Reiner": {}},
			Secondary: map[string]AuthorDetail{"Knizia, Reiner": {}, "Menzel, Michael": {}},
		},
	}

	got := record.AllAuthors()
	want := []string{"Knizia, Reiner", "Menzel, Michael"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AllAuthors() = %v, want %v", got, want)
	}
}
