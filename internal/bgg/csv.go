package bgg

import (
	"fmt"
	"strconv"
	"strings"
)

const listSeparator = "; "

// DetailsHeader is the column layout of the games CSV. The id column comes
// first so the incremental bookkeeping can key on it.
var DetailsHeader = []string{
	"id",
	"primary_name",
	"all_names",
	"year",
	"description",
	"min_players",
	"max_players",
	"playing_time",
	"min_playtime",
	"max_playtime",
	"min_age",
	"categories",
	"mechanics",
	"families",
	"designers",
	"artists",
	"publishers",
	"rank",
	"average_rating",
	"bayes_average",
	"users_rated",
	"weight",
	"owned",
}

// ToRow renders game details as a CSV row.
func (d GameDetails) ToRow() []string {
	year := ""
	if d.Year != nil {
		year = strconv.Itoa(*d.Year)
	}
	return []string{
		d.ID,
		d.PrimaryName,
		strings.Join(d.Names, listSeparator),
		year,
		d.Description,
		d.MinPlayers,
		d.MaxPlayers,
		d.PlayingTime,
		d.MinPlayTime,
		d.MaxPlayTime,
		d.MinAge,
		strings.Join(d.Categories, listSeparator),
		strings.Join(d.Mechanics, listSeparator),
		strings.Join(d.Families, listSeparator),
		strings.Join(d.Designers, listSeparator),
		strings.Join(d.Artists, listSeparator),
		strings.Join(d.Publishers, listSeparator),
		d.Rank,
		d.AverageRating,
		d.BayesAverage,
		d.UsersRated,
		d.Weight,
		d.Owned,
	}
}

// DetailsFromRow parses a CSV row back into GameDetails.
func DetailsFromRow(row []string) (GameDetails, error) {
	if len(row) < len(DetailsHeader) {
		return GameDetails{}, fmt.Errorf("bgg: details row has %d columns, want %d", len(row), len(DetailsHeader))
	}
	return GameDetails{
		ID:            row[0],
		PrimaryName:   row[1],
		Names:         splitList(row[2]),
		Year:          parseYearString(row[3]),
		Description:   row[4],
		MinPlayers:    row[5],
		MaxPlayers:    row[6],
		PlayingTime:   row[7],
		MinPlayTime:   row[8],
		MaxPlayTime:   row[9],
		MinAge:        row[10],
		Categories:    splitList(row[11]),
		Mechanics:     splitList(row[12]),
		Families:      splitList(row[13]),
		Designers:     splitList(row[14]),
		Artists:       splitList(row[15]),
		Publishers:    splitList(row[16]),
		Rank:          row[17],
		AverageRating: row[18],
		BayesAverage:  row[19],
		UsersRated:    row[20],
		Weight:        row[21],
		Owned:         row[22],
	}, nil
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
