package complexity_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/structviz/complexity"
)

func TestFactorialCap(t *testing.T) {
	assert.Equal(t, 1.0, complexity.FactorialOps(0))
	assert.Equal(t, 120.0, complexity.FactorialOps(5))
	assert.Equal(t, 5040.0, complexity.FactorialOps(7)) // 720 < 1000 when 7 is multiplied in
	assert.Equal(t, float64(complexity.FactorialCap), complexity.FactorialOps(8))
	assert.Equal(t, float64(complexity.FactorialCap), complexity.FactorialOps(50))
	assert.Equal(t, -1.0, complexity.FactorialOps(-3))
}

func TestOps(t *testing.T) {
	cases := []struct {
		class complexity.Class
		n     int
		want  float64
	}{
		{complexity.Constant, 40, 1},
		{complexity.Logarithmic, 8, 3},
		{complexity.Linear, 12, 12},
		{complexity.Linearithmic, 4, 8},
		{complexity.Quadratic, 9, 81},
		{complexity.Exponential, 10, 1024},
	}
	for _, tc := range cases {
		t.Run(string(tc.class), func(t *testing.T) {
			assert.InDelta(t, tc.want, complexity.Ops(tc.class, tc.n), 1e-9)
		})
	}
	assert.True(t, math.IsNaN(complexity.Ops("O(n^3)", 2)))
}

func TestSeriesClipped(t *testing.T) {
	for _, c := range complexity.Classes() {
		s := complexity.Series(c)
		require.Len(t, s, complexity.MaxN)
		for _, v := range s {
			assert.LessOrEqual(t, v, float64(complexity.MaxOps))
		}
	}
	assert.Equal(t, 2.0, complexity.Series(complexity.Exponential)[0])
}

func TestCounts(t *testing.T) {
	counts, err := complexity.Counts(10)
	require.NoError(t, err)
	require.Len(t, counts, 7)
	assert.Equal(t, "1,024", counts[5].Display)
	assert.Equal(t, "> 1,000", counts[6].Display)

	_, err = complexity.Counts(0)
	assert.ErrorIs(t, err, complexity.ErrBadN)
	_, err = complexity.Counts(complexity.MaxN + 1)
	assert.ErrorIs(t, err, complexity.ErrBadN)
}

func TestCards(t *testing.T) {
	cards := complexity.Cards()
	require.Len(t, cards, len(complexity.Classes()))
	for i, c := range complexity.Classes() {
		assert.Equal(t, c, cards[i].Class)
		assert.NotEmpty(t, cards[i].Name)
		assert.Contains(t, cards[i].Example, "func ")
	}
	assert.Equal(t, "Logarithmic Time", cards[1].Name)

	_, err := complexity.CardFor("O(n^3)")
	assert.ErrorIs(t, err, complexity.ErrUnknownClass)
}

func TestParseClass(t *testing.T) {
	c, err := complexity.ParseClass("O(n log n)")
	require.NoError(t, err)
	assert.Equal(t, complexity.Linearithmic, c)
	_, err = complexity.ParseClass("O(n)!")
	assert.ErrorIs(t, err, complexity.ErrUnknownClass)
}

func TestRenderChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, complexity.RenderChart(&buf, 10))
	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "O(n log n)")

	assert.ErrorIs(t, complexity.RenderChart(&buf, 0), complexity.ErrBadN)
}
