package bgg

import (
	"encoding/json"
	"encoding/xml"
)

// Game is one title-search result.
type Game struct {
	ID    string
	Names []string
	Year  *int
}

// GameDetails carries the full attribute set for a single game. Numeric
// rating fields stay as the API's string representation; they are
// pass-through payload for the games log, not matching inputs.
type GameDetails struct {
	ID          string
	PrimaryName string
	Names       []string
	Year        *int
	Description string

	MinPlayers  string
	MaxPlayers  string
	PlayingTime string
	MinPlayTime string
	MaxPlayTime string
	MinAge      string

	Categories []string
	Mechanics  []string
	Families   []string
	Designers  []string
	Artists    []string
	Publishers []string

	Rank          string
	AverageRating string
	BayesAverage  string
	UsersRated    string
	Weight        string
	Owned         string
}

// searchPayload mirrors the XML search response.
type searchPayload struct {
	XMLName xml.Name     `xml:"items"`
	Items   []searchItem `xml:"item"`
}

type searchItem struct {
	Type  string      `xml:"type,attr"`
	ID    string      `xml:"id,attr"`
	Names []nameValue `xml:"name"`
	Year  *attrValue  `xml:"yearpublished"`
}

type nameValue struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type attrValue struct {
	Value string `xml:"value,attr"`
}

// thingPayload mirrors the XML thing (details) response.
type thingPayload struct {
	XMLName xml.Name    `xml:"items"`
	Items   []thingItem `xml:"item"`
}

type thingItem struct {
	Type        string      `xml:"type,attr"`
	ID          string      `xml:"id,attr"`
	Names       []nameValue `xml:"name"`
	Year        *attrValue  `xml:"yearpublished"`
	Description string      `xml:"description"`
	MinPlayers  *attrValue  `xml:"minplayers"`
	MaxPlayers  *attrValue  `xml:"maxplayers"`
	PlayingTime *attrValue  `xml:"playingtime"`
	MinPlayTime *attrValue  `xml:"minplaytime"`
	MaxPlayTime *attrValue  `xml:"maxplaytime"`
	MinAge      *attrValue  `xml:"minage"`
	Links       []thingLink `xml:"link"`
	Statistics  *statistics `xml:"statistics"`
}

type thingLink struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type statistics struct {
	Ratings ratings `xml:"ratings"`
}

type ratings struct {
	Average       *attrValue `xml:"average"`
	BayesAverage  *attrValue `xml:"bayesaverage"`
	UsersRated    *attrValue `xml:"usersrated"`
	AverageWeight *attrValue `xml:"averageweight"`
	Owned         *attrValue `xml:"owned"`
	Ranks         []rank     `xml:"ranks>rank"`
}

type rank struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// linkedItemsPayload mirrors the linked-items JSON response used by the
// designer-to-games lookup.
type linkedItemsPayload struct {
	Items []linkedItem `json:"items"`
}

type linkedItem struct {
	ObjectType    string          `json:"objecttype"`
	Subtype       string          `json:"subtype"`
	ObjectID      json.RawMessage `json:"objectid"`
	Name          string          `json:"name"`
	YearPublished json.RawMessage `json:"yearpublished"`
}
