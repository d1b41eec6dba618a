package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

func TestLinesFromTokens(t *testing.T) {
	t.Run("groups tokens sharing a baseline into one line", func(t *testing.T) {
		tokens := []entity.PositionedToken{
			{Text: "BASIC", X: 120, Y: 700.2},
			{Text: "PAY", X: 160, Y: 699.8},
			{Text: "GROSS", X: 400, Y: 700.1},
		}

		lines := LinesFromTokens(tokens, 1)

		require.Len(t, lines, 1)
		assert.Equal(t, "BASIC PAY GROSS", lines[0].Text)
		assert.Equal(t, 700, lines[0].Y)
		assert.Equal(t, 1, lines[0].Page)
	})

	t.Run("orders lines top of page first", func(t *testing.T) {
		tokens := []entity.PositionedToken{
			{Text: "bottom", X: 50, Y: 100},
			{Text: "top", X: 50, Y: 750},
			{Text: "middle", X: 50, Y: 400},
		}

		lines := LinesFromTokens(tokens, 1)

		require.Len(t, lines, 3)
		assert.Equal(t, "top", lines[0].Text)
		assert.Equal(t, "middle", lines[1].Text)
		assert.Equal(t, "bottom", lines[2].Text)
	})

	t.Run("orders tokens within a line left to right regardless of input order", func(t *testing.T) {
		tokens := []entity.PositionedToken{
			{Text: "12345678", X: 80, Y: 500},
			{Text: "1", X: 40, Y: 500},
			{Text: "Shri", X: 160, Y: 500},
		}

		lines := LinesFromTokens(tokens, 1)

		require.Len(t, lines, 1)
		assert.Equal(t, "1 12345678 Shri", lines[0].Text)
	})

	t.Run("preserves the token multiset", func(t *testing.T) {
		tokens := []entity.PositionedToken{
			{Text: "a", X: 10, Y: 500.4},
			{Text: "b", X: 20, Y: 499.6},
			{Text: "a", X: 30, Y: 120},
			{Text: "c", X: 10, Y: 120},
		}

		lines := LinesFromTokens(tokens, 2)

		counts := map[string]int{}
		total := 0
		for _, l := range lines {
			for _, tok := range l.Tokens {
				counts[tok.Text]++
				total++
			}
		}
		assert.Equal(t, len(tokens), total)
		assert.Equal(t, map[string]int{"a": 2, "b": 1, "c": 1}, counts)
	})

	t.Run("empty token list yields no lines", func(t *testing.T) {
		assert.Nil(t, LinesFromTokens(nil, 1))
	})
}

func TestReconstruct(t *testing.T) {
	doc := entity.Document{
		Path: "bill.pdf",
		Pages: []entity.Page{
			{Number: 1, Tokens: []entity.PositionedToken{
				{Text: "PAY", X: 100, Y: 800},
				{Text: "BILL", X: 140, Y: 800},
			}},
			{Number: 2, Tokens: nil},
			{Number: 3, Tokens: []entity.PositionedToken{
				{Text: "Total", X: 40, Y: 90},
			}},
		},
	}

	pages, flat := Reconstruct(doc)

	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 1)
	assert.Empty(t, pages[1])
	assert.Len(t, pages[2], 1)

	require.Len(t, flat, 2)
	assert.Equal(t, "PAY BILL", flat[0].Text)
	assert.Equal(t, 1, flat[0].Page)
	assert.Equal(t, "Total", flat[1].Text)
	assert.Equal(t, 3, flat[1].Page)
}
