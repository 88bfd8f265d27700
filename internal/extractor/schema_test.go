package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZipRowsTruncatesToShortestList(t *testing.T) {
	fields := []Field{
		{Name: "name", Match: IsName},
		{Name: "address", Match: IsAddress},
		{Name: "date", Match: IsDate},
	}
	candidates := map[string][]string{
		"name":    {"ALPHA LTD", "BETA LTD", "GAMMA LTD"},
		"address": {"ROYAL ROAD, CUREPIPE", "OLD MOKA ROAD"},
		"date":    {"01/01/2020", "02/02/2021", "03/03/2022"},
	}

	rows := zipRows(candidates, fields)

	// One field is short by one: exactly 2 rows, using the first 2 of the
	// longer lists.
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"ALPHA LTD", "ROYAL ROAD, CUREPIPE", "01/01/2020"}, rows[0])
	assert.Equal(t, []string{"BETA LTD", "OLD MOKA ROAD", "02/02/2021"}, rows[1])
}

func TestZipRowsEmptyField(t *testing.T) {
	fields := []Field{
		{Name: "name", Match: IsName},
		{Name: "date", Match: IsDate},
	}
	candidates := map[string][]string{
		"name": {"ALPHA LTD"},
		"date": {},
	}
	assert.Empty(t, zipRows(candidates, fields))
}

func TestCollectCandidatesFirstMatchWins(t *testing.T) {
	fields := []Field{
		{Name: "position", Match: IsPosition},
		{Name: "name", Match: IsName},
	}
	got := collectCandidates([]string{"DIRECTOR", "JOHN DOE", "SECRETARY"}, fields)
	assert.Equal(t, []string{"DIRECTOR", "SECRETARY"}, got["position"])
	assert.Equal(t, []string{"JOHN DOE"}, got["name"])
}

func TestExtractTableMissingSection(t *testing.T) {
	rows, found := extractTable([]string{"Company Details", "Name", "X LTD"}, TableSchema{
		Section: SectionCharges,
		Fields:  []Field{{Name: "holder", Match: IsName}},
	})
	assert.False(t, found)
	assert.Nil(t, rows)
}
