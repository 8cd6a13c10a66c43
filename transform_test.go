package hiertab

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_Basic(t *testing.T) {
	g := GridFromRows(sampleRows())
	result, err := NewTransformer().Transform(g, basicConfig())
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowCount())
	assert.Equal(t,
		[]string{"customer_id", "name", "address", "order_date", "total"},
		result.Columns())
	assert.Equal(t, "12345", result.Cell(0, result.ColumnIndex("customer_id")))
	assert.Equal(t, "Jane Smith", result.Cell(1, result.ColumnIndex("name")))

	date, ok := result.Cell(0, result.ColumnIndex("order_date")).(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)
}

func TestTransform_MissingIdentifierField(t *testing.T) {
	cfg := Config{TargetFields: []string{"Name"}}
	_, err := Transform(GridFromRows(sampleRows()), cfg)
	require.ErrorIs(t, err, ErrMissingIdentifierField)
}

func TestTransform_MissingTargetFields(t *testing.T) {
	cfg := Config{IdentifierField: "Customer ID"}
	_, err := Transform(GridFromRows(sampleRows()), cfg)
	require.ErrorIs(t, err, ErrMissingTargetFields)
}

func TestTransform_ConfigCheckedBeforeGrid(t *testing.T) {
	// A broken config must win over a broken grid.
	_, err := Transform(GridFromRows(nil), Config{})
	require.ErrorIs(t, err, ErrMissingIdentifierField)
}

func TestTransform_EmptyGrid(t *testing.T) {
	cfg := basicConfig()
	_, err := Transform(GridFromRows(nil), cfg)
	require.ErrorIs(t, err, ErrEmptyGrid)

	_, err = Transform(nil, cfg)
	require.ErrorIs(t, err, ErrEmptyGrid)
}

func TestTransform_NoIdentifierOccurrences(t *testing.T) {
	cfg := Config{
		IdentifierField: "Nonexistent Field",
		TargetFields:    []string{"Customer ID", "Name"},
	}
	result, err := Transform(GridFromRows(sampleRows()), cfg)
	require.NoError(t, err)
	assert.Zero(t, result.RowCount())
}

func TestTransform_FieldAliases(t *testing.T) {
	rows := [][]string{
		{"Customer Number", "12345"},
		{"Full Name", "John Doe"},
		{"Amount", "500.00"},
	}
	cfg := Config{
		IdentifierField: "Customer ID",
		TargetFields:    []string{"Customer ID", "Name", "Total"},
		FieldAliases: map[string]string{
			"Customer Number": "Customer ID",
			"Full Name":       "Name",
			"Amount":          "Total",
		},
	}

	result, err := Transform(GridFromRows(rows), cfg)
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount())
	assert.Equal(t, []string{"customer_id", "name", "total"}, result.Columns())
	assert.Equal(t, "500.00", result.Cell(0, 2))
}

func TestTransform_SmallSearchRadius(t *testing.T) {
	cfg := Config{
		SkipRows:        2,
		IdentifierField: "Customer ID",
		TargetFields:    []string{"Customer ID", "Name", "Total"},
		SearchRadius:    2,
	}
	result, err := Transform(GridFromRows(sampleRows()), cfg)
	require.NoError(t, err)

	// Total sits four rows below the identifier, outside the radius, so
	// the column never materializes.
	assert.Equal(t, []string{"customer_id", "name"}, result.Columns())
}

func TestTransform_SkipRowsAndDropColumns(t *testing.T) {
	rows := [][]string{
		{"garbage header", "", ""},
		{"noise", "ID", "1"},
		{"noise", "Name", "Ada"},
	}
	cfg := Config{
		SkipRows:        1,
		DropColumns:     []int{0},
		IdentifierField: "ID",
		TargetFields:    []string{"ID", "Name"},
	}

	result, err := Transform(GridFromRows(rows), cfg)
	require.NoError(t, err)
	require.Equal(t, 1, result.RowCount())
	assert.Equal(t, "1", result.Cell(0, 0))
	assert.Equal(t, "Ada", result.Cell(0, 1))
}

func TestTransform_SourceGridUntouched(t *testing.T) {
	g := GridFromRows(sampleRows())
	before := g.RowCount()
	_, err := Transform(g, basicConfig())
	require.NoError(t, err)
	assert.Equal(t, before, g.RowCount())
	assert.Equal(t, "Customer ID", g.Cell(2, 0))
}

func TestTransform_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tr := NewTransformer(WithLogger(logger))

	_, err := tr.Transform(GridFromRows(sampleRows()), basicConfig())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "extracted records")
	assert.Contains(t, buf.String(), "count=2")
}
