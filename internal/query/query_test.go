package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name          string
		number, limit int
		want          Page
		wantOffset    int
	}{
		{name: "defaults", number: 0, limit: 0, want: Page{Number: 1, Limit: 50}, wantOffset: 0},
		{name: "negative", number: -3, limit: -1, want: Page{Number: 1, Limit: 50}, wantOffset: 0},
		{name: "third page", number: 3, limit: 20, want: Page{Number: 3, Limit: 20}, wantOffset: 40},
		{name: "capped", number: 2, limit: 10000, want: Page{Number: 2, Limit: MaxLimit}, wantOffset: MaxLimit},
		{name: "huge page", number: math.MaxInt, limit: MaxLimit, want: Page{Number: MaxPage, Limit: MaxLimit}, wantOffset: (MaxPage - 1) * MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.number, tt.limit)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestPage_OffsetNeverOverflows(t *testing.T) {
	for _, limit := range []int{1, DefaultLimit, MaxLimit} {
		for _, number := range []int{math.MaxInt, MaxPage + 1, MaxPage} {
			p := NewPage(number, limit)
			assert.Positive(t, p.Offset(), "page %d limit %d", number, limit)
		}
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 50))
	assert.Equal(t, 1, TotalPages(1, 50))
	assert.Equal(t, 1, TotalPages(50, 50))
	assert.Equal(t, 2, TotalPages(51, 50))
	assert.Equal(t, 4, TotalPages(10, 3))
	assert.Equal(t, 0, TotalPages(10, 0))
}

func TestNewResult(t *testing.T) {
	r := NewResult[string](nil, 7, NewPage(2, 3))
	assert.NotNil(t, r.Items)
	assert.Equal(t, int64(7), r.Total)
	assert.Equal(t, 3, r.TotalPages)
	assert.Equal(t, 2, r.Page)
	assert.Equal(t, 3, r.Limit)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "ali", EscapeLike("ali"))
	assert.Equal(t, "100!%", EscapeLike("100%"))
	assert.Equal(t, "a!_b", EscapeLike("a_b"))
	assert.Equal(t, "wow!!", EscapeLike("wow!"))
	assert.Equal(t, ".*(", EscapeLike(".*("))
}

func TestJSONText(t *testing.T) {
	assert.Equal(t, `JSON_UNQUOTE(JSON_EXTRACT(data, '$."Full Name"'))`, JSONText(MySQL, "data", "Full Name"))
	assert.Equal(t, `json_extract(data, '$."name"')`, JSONText(SQLite, "data", "name"))
	assert.Equal(t, `data->>'Name'`, JSONText(Postgres, "data", "Name"))
}

func TestFilter_ToSql(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var f Filter
		where, args, err := f.ToSql()
		require.NoError(t, err)
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("equality", func(t *testing.T) {
		var f Filter
		f.Eq("template_id", "abc")
		where, args, err := f.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(template_id = ?)", where)
		assert.Equal(t, []any{"abc"}, args)
	})

	t.Run("equality and name search", func(t *testing.T) {
		var f Filter
		f.Eq("template_id", "abc").AnyContains([]string{"a", "b"}, "Al_i")
		where, args, err := f.ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(template_id = ? AND (LOWER(a) LIKE ? ESCAPE '!' OR LOWER(b) LIKE ? ESCAPE '!'))", where)
		assert.Equal(t, []any{"abc", "%al!_i%", "%al!_i%"}, args)
	})
}
