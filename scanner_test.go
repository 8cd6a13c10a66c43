package hiertab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRows lays out two customer records in label/value rows, the shape
// this package exists to flatten.
func sampleRows() [][]string {
	return [][]string{
		{"", "", "", "", ""},
		{"", "", "", "", ""},
		{"Customer ID", "12345", "", "", ""},
		{"Name", "John Doe", "", "", ""},
		{"Address", "123 Main St", "", "", ""},
		{"Order Date", "2024-01-15", "", "", ""},
		{"Total", "500.00", "", "", ""},
		{"", "", "", "", ""},
		{"Customer ID", "12346", "", "", ""},
		{"Name", "Jane Smith", "", "", ""},
		{"Address", "456 Oak Ave", "", "", ""},
		{"Order Date", "2024-01-16", "", "", ""},
		{"Total", "750.50", "", "", ""},
	}
}

func basicConfig() Config {
	return Config{
		SkipRows:        2,
		IdentifierField: "Customer ID",
		TargetFields:    []string{"Customer ID", "Name", "Address", "Order Date", "Total"},
		DateColumns:     []string{"Order Date"},
	}
}

func TestIsRecordStart(t *testing.T) {
	cfg := Config{IdentifierField: "Customer ID"}.withDefaults()

	assert.True(t, isRecordStart([]any{"Customer ID", "12345"}, cfg))
	assert.True(t, isRecordStart([]any{nil, "  Customer ID  "}, cfg), "trimmed match")
	assert.False(t, isRecordStart([]any{"Name", "John"}, cfg))
	assert.False(t, isRecordStart([]any{nil, nil, ""}, cfg))
	assert.False(t, isRecordStart([]any{"customer id"}, cfg), "match is case sensitive")
}

func TestIsRecordStart_Alias(t *testing.T) {
	cfg := Config{
		IdentifierField: "Customer ID",
		FieldAliases:    map[string]string{"Customer Number": "Customer ID"},
	}.withDefaults()

	assert.True(t, isRecordStart([]any{"Customer Number", "12345"}, cfg))
	assert.True(t, isRecordStart([]any{"Customer ID", "12345"}, cfg))
}

func TestExtractRecords_Basic(t *testing.T) {
	g := GridFromRows(sampleRows()[2:])
	records := extractRecords(g, basicConfig().withDefaults())

	require.Len(t, records, 2)
	assert.Equal(t, "12345", records[0]["Customer ID"])
	assert.Equal(t, "John Doe", records[0]["Name"])
	assert.Equal(t, "500.00", records[0]["Total"])
	assert.Equal(t, "Jane Smith", records[1]["Name"])
	assert.Equal(t, "750.50", records[1]["Total"])
}

func TestExtractRecords_ValueRightOfLabel(t *testing.T) {
	g := GridFromRows([][]string{
		{"Customer ID", "12345"},
		{"Name", "John Doe"},
		{"Total", "500.00"},
	})
	cfg := Config{
		IdentifierField: "Customer ID",
		TargetFields:    []string{"Customer ID", "Name", "Total"},
		SearchRadius:    3,
	}.withDefaults()

	records := extractRecords(g, cfg)
	require.Len(t, records, 1)
	assert.Equal(t, Record{
		"Customer ID": "12345",
		"Name":        "John Doe",
		"Total":       "500.00",
	}, records[0])
}

func TestExtractRecords_SearchRadiusOmitsDistantFields(t *testing.T) {
	g := GridFromRows([][]string{
		{"Customer ID", "12345"},
		{"Name", "John Doe"},
		{"Total", "500.00"},
	})
	cfg := Config{
		IdentifierField:    "Customer ID",
		TargetFields:       []string{"Customer ID", "Name", "Total"},
		SearchRadius:       1,
		ColumnSearchRadius: DefaultColumnSearchRadius,
	}

	records := extractRecords(g, cfg)
	require.Len(t, records, 1)
	assert.Equal(t, "12345", records[0]["Customer ID"])

	// Fields outside the window are absent, not empty-valued.
	_, hasName := records[0]["Name"]
	_, hasTotal := records[0]["Total"]
	assert.False(t, hasName)
	assert.False(t, hasTotal)
}

func TestExtractRecords_AdjacentIdentifiers(t *testing.T) {
	// Two identifier rows back to back: both must produce a record even
	// when the first window holds nothing but the identifier itself.
	g := GridFromRows([][]string{
		{"ID"},
		{"ID", "second"},
	})
	cfg := Config{
		IdentifierField: "ID",
		TargetFields:    []string{"ID"},
		SearchRadius:    1,
	}.withDefaults()

	records := extractRecords(g, cfg)
	require.Len(t, records, 2)
	assert.Empty(t, records[0])
	assert.Equal(t, "second", records[1]["ID"])
}

func TestExtractRecords_EmptyRecordStillCounted(t *testing.T) {
	g := GridFromRows([][]string{
		{"Customer ID"},
		{"", ""},
		{"Customer ID", "99"},
	})
	cfg := Config{
		IdentifierField: "Customer ID",
		TargetFields:    []string{"Customer ID"},
		SearchRadius:    2,
	}.withDefaults()

	records := extractRecords(g, cfg)
	require.Len(t, records, 2)
	assert.Empty(t, records[0])
	assert.Equal(t, "99", records[1]["Customer ID"])
}

func TestExtractRecords_SkipsRowsBetweenRecords(t *testing.T) {
	// Rows between one record start and the next never seed a new record,
	// whatever they contain.
	g := GridFromRows([][]string{
		{"ID", "1"},
		{"Note", "scratch"},
		{"Note", "more scratch"},
		{"ID", "2"},
	})
	cfg := Config{
		IdentifierField: "ID",
		TargetFields:    []string{"ID", "Note"},
		SearchRadius:    2,
	}.withDefaults()

	records := extractRecords(g, cfg)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0]["ID"])
	assert.Equal(t, "scratch", records[0]["Note"])
	assert.Equal(t, "2", records[1]["ID"])
}

func TestFindFieldValue_RightwardBeforeDownward(t *testing.T) {
	// The label has a value both to its right and below it; the same-row
	// value must win.
	g := GridFromRows([][]string{
		{"Amount", "right-value"},
		{"below-value", ""},
	})
	cfg := Config{SearchRadius: 5, ColumnSearchRadius: 5}

	v, ok := findFieldValue(g, 0, map[string]bool{"Amount": true}, cfg)
	require.True(t, ok)
	assert.Equal(t, "right-value", v)
}

func TestFindFieldValue_FallsBackDownward(t *testing.T) {
	g := GridFromRows([][]string{
		{"", "Amount", ""},
		{"", "", ""},
		{"", "below-value", ""},
	})
	cfg := Config{SearchRadius: 5, ColumnSearchRadius: 5}

	v, ok := findFieldValue(g, 0, map[string]bool{"Amount": true}, cfg)
	require.True(t, ok)
	assert.Equal(t, "below-value", v)
}

func TestFindFieldValue_ColumnRadiusBoundsRightwardSearch(t *testing.T) {
	g := GridFromRows([][]string{
		{"Amount", "", "", "far-value"},
	})
	cfg := Config{SearchRadius: 1, ColumnSearchRadius: 2}

	_, ok := findFieldValue(g, 0, map[string]bool{"Amount": true}, cfg)
	assert.False(t, ok, "value beyond the column radius must not be found")

	cfg.ColumnSearchRadius = 4
	v, ok := findFieldValue(g, 0, map[string]bool{"Amount": true}, cfg)
	require.True(t, ok)
	assert.Equal(t, "far-value", v)
}

func TestFindFieldValue_NoLabel(t *testing.T) {
	g := GridFromRows([][]string{{"Other", "x"}})
	cfg := Config{SearchRadius: 5, ColumnSearchRadius: 5}

	_, ok := findFieldValue(g, 0, map[string]bool{"Amount": true}, cfg)
	assert.False(t, ok)
}

func TestExtractSingleRecord_AliasEquivalentToCanonical(t *testing.T) {
	canonical := GridFromRows([][]string{
		{"Customer ID", "1"},
		{"Total", "10"},
	})
	aliased := GridFromRows([][]string{
		{"Customer ID", "1"},
		{"Amount", "10"},
	})
	cfg := Config{
		IdentifierField: "Customer ID",
		TargetFields:    []string{"Customer ID", "Total"},
		FieldAliases:    map[string]string{"Amount": "Total"},
	}.withDefaults()

	fromCanonical := extractSingleRecord(canonical, 0, cfg)
	fromAlias := extractSingleRecord(aliased, 0, cfg)
	assert.Equal(t, fromCanonical, fromAlias)
	assert.Equal(t, "10", fromAlias["Total"])
}
