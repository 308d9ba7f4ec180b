package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "primary", want: ModePrimary},
		{input: "SECONDARY", want: ModeSecondary},
		{input: "Guvi Query", want: ModePrimary},
		{input: " my own query ", want: ModeSecondary},
		{input: "", wantErr: true},
		{input: "tertiary", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				var modeErr *UnknownModeError
				require.ErrorAs(t, err, &modeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFor_ExposesTenLabelsPerMode(t *testing.T) {
	primaryLabels := For(ModePrimary).Labels()
	secondaryLabels := For(ModeSecondary).Labels()

	require.Len(t, primaryLabels, 10)
	require.Len(t, secondaryLabels, 10)
	assert.Equal(t, "1) Find top 10 highest revenue generating products", primaryLabels[0])
	assert.Equal(t, "20) Identify the Top 3 Products with the Highest Profit", secondaryLabels[9])

	seen := make(map[string]Mode)
	for _, m := range Modes() {
		for _, label := range For(m).Labels() {
			prev, dup := seen[label]
			assert.False(t, dup, "label %q appears in %s and %s", label, prev, m)
			seen[label] = m
		}
	}
	assert.Len(t, seen, 20)
}

func TestFor_UnknownModeIsEmpty(t *testing.T) {
	assert.Empty(t, For(Mode("other")).Queries)
}

func TestFor_ReturnsCopy(t *testing.T) {
	c := For(ModePrimary)
	c.Queries[0].SQL = "DROP TABLE amazon_products"

	assert.NotEqual(t, c.Queries[0].SQL, For(ModePrimary).Queries[0].SQL)
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 20)
	for i, q := range all {
		assert.Equal(t, i+1, q.Number(), q.Label)
	}
}

func TestLookup(t *testing.T) {
	c := For(ModePrimary)

	q, err := c.Lookup("3) Calculate the total discount given for each category")
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "total_discount")

	_, err = c.Lookup("11) Find the City with the Maximum Number of Orders")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLabelNotFound))

	var notFound *LabelNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, ModePrimary, notFound.Mode)
	assert.Contains(t, err.Error(), "primary catalog")
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		ref       string
		wantLabel string
		wantErr   bool
	}{
		{name: "exact label", mode: ModeSecondary, ref: "18) Calculate the Total Quantity Sold Per Ship Mode", wantLabel: "18) Calculate the Total Quantity Sold Per Ship Mode"},
		{name: "number", mode: ModePrimary, ref: "3", wantLabel: "3) Calculate the total discount given for each category"},
		{name: "number with paren", mode: ModePrimary, ref: "10)", wantLabel: "10) Calculate the total revenue generated per year"},
		{name: "number from other mode", mode: ModePrimary, ref: "12", wantErr: true},
		{name: "zero", mode: ModePrimary, ref: "0", wantErr: true},
		{name: "garbage", mode: ModeSecondary, ref: "revenue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := For(tt.mode).Resolve(tt.ref)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrLabelNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, q.Label)
		})
	}
}

func TestFind(t *testing.T) {
	mode, q, err := Find("15")
	require.NoError(t, err)
	assert.Equal(t, ModeSecondary, mode)
	assert.Equal(t, "15) Find the Total Revenue for Each City", q.Label)

	_, _, err = Find("21")
	require.ErrorIs(t, err, ErrLabelNotFound)
	assert.Equal(t, `unknown query "21"`, err.Error())
}

func TestQueries_AreLiteralSelects(t *testing.T) {
	for _, q := range All() {
		sql := strings.TrimSpace(q.SQL)
		assert.True(t, strings.HasPrefix(sql, "SELECT"), q.Label)
		assert.Contains(t, sql, "FROM\n    amazon_products", q.Label)
		assert.NotContains(t, sql, "$1", q.Label)
	}
}

func TestModeTitle(t *testing.T) {
	assert.Equal(t, "Guvi Query", ModePrimary.Title())
	assert.Equal(t, "My own Query", ModeSecondary.Title())
	assert.Equal(t, "Guvi Query (10 queries)", For(ModePrimary).String())
}
