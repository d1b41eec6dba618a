package bill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/payroll-parser/internal/entity"
)

func TestSegment(t *testing.T) {
	t.Run("one block per anchor, neighbors disjoint", func(t *testing.T) {
		page := linesFromText(
			"Shri Kale A B",
			"1 12345678 Junior Clerk No M 10000 5000 15000",
			"Smt. Patil C D",
			"2 23456789 Senior Clerk No F 12000 6000 18000",
		)

		res := Segment([][]entity.Line{page}, 0)

		require.Len(t, res.Blocks, 2)
		assert.Equal(t, "12345678", res.Blocks[0].ID)
		assert.Equal(t, 1, res.Blocks[0].Serial)
		assert.Equal(t, "23456789", res.Blocks[1].ID)
		assert.Equal(t, 2, res.Blocks[1].Serial)

		// Shared lines would double-count salary figures.
		seen := map[int]int{}
		for _, b := range res.Blocks {
			for _, l := range b.Lines {
				seen[l.Y]++
			}
		}
		for y, n := range seen {
			assert.Equalf(t, 1, n, "line y=%d claimed by %d blocks", y, n)
		}
		assert.Len(t, res.Blocks[0].Lines, 2)
		assert.Len(t, res.Blocks[1].Lines, 2)
	})

	t.Run("noise lines never join a block", func(t *testing.T) {
		page := linesFromText(
			"Shri Kale A B",
			"Certified that the above claim is correct",
			"1 12345678 Junior Clerk 10000 15000",
		)

		res := Segment([][]entity.Line{page}, 0)

		require.Len(t, res.Blocks, 1)
		for _, l := range res.Blocks[0].Lines {
			assert.NotContains(t, l.Text, "Certified")
		}
		require.Len(t, res.Blocks[0].Lines, 2)
		assert.Equal(t, "Shri Kale A B", res.Blocks[0].Lines[0].Text)
	})

	t.Run("first anchor without honorific takes only the nearest line", func(t *testing.T) {
		page := linesFromText(
			"some stray content",
			"Junior Clerk",
			"1 12345678 10000 15000",
		)

		res := Segment([][]entity.Line{page}, 0)

		require.Len(t, res.Blocks, 1)
		require.Len(t, res.Blocks[0].Lines, 2)
		assert.Equal(t, "Junior Clerk", res.Blocks[0].Lines[0].Text)
	})

	t.Run("trailing continuation lines are absorbed", func(t *testing.T) {
		page := linesFromText(
			"Shri Kale A B",
			"1 12345678 10000 15000",
			"(Officiating)",
			"Smt. Patil C D",
			"2 23456789 12000 18000",
		)

		res := Segment([][]entity.Line{page}, 0)

		require.Len(t, res.Blocks, 2)
		require.Len(t, res.Blocks[0].Lines, 3)
		assert.Equal(t, "(Officiating)", res.Blocks[0].Lines[2].Text)
		// The next employee's honorific line stays out.
		assert.Equal(t, "Smt. Patil C D", res.Blocks[1].Lines[0].Text)
	})

	t.Run("continuation before an inline-name anchor stays with the first block", func(t *testing.T) {
		page := linesFromText(
			"Shri Kale A B",
			"1 12345678 Junior Clerk 10000 15000",
			"(Accounts Section)",
			"2 23456789 Smt Patil C D Senior Clerk 12000 18000",
		)

		res := Segment([][]entity.Line{page}, 0)

		require.Len(t, res.Blocks, 2)
		require.Len(t, res.Blocks[0].Lines, 3)
		assert.Equal(t, "(Accounts Section)", res.Blocks[0].Lines[2].Text)
		// The second anchor carries its own name, so it gets no leading
		// lines and never re-claims the first block's continuation.
		require.Len(t, res.Blocks[1].Lines, 1)
		assert.Equal(t, "23456789", res.Blocks[1].ID)

		seen := map[int]int{}
		for _, b := range res.Blocks {
			for _, l := range b.Lines {
				seen[l.Y]++
			}
		}
		for y, n := range seen {
			assert.Equalf(t, 1, n, "line y=%d claimed by %d blocks", y, n)
		}
	})

	t.Run("pay scale digits are stripped from block text", func(t *testing.T) {
		page := linesFromText(
			"Shri Kale A B 9300-34800 GP 4200",
			"1 12345678 10000 15000",
		)

		res := Segment([][]entity.Line{page}, 0)

		require.Len(t, res.Blocks, 1)
		assert.Equal(t, "Shri Kale A B", res.Blocks[0].Lines[0].Text)
	})

	t.Run("last total line wins as the document checksum", func(t *testing.T) {
		page := linesFromText(
			"1 12345678 10000 15000",
			"Total 10000 15000",
			"2 23456789 12000 18000",
			"Total 22000 33000",
		)

		res := Segment([][]entity.Line{page}, 0)

		require.NotNil(t, res.Total)
		assert.Equal(t, "Total 22000 33000", res.Total.Text)
		// Total rows bound blocks, they never join them.
		for _, b := range res.Blocks {
			for _, l := range b.Lines {
				assert.False(t, isTotalLine(l.Text))
			}
		}
	})

	t.Run("header zone is excluded on page one only", func(t *testing.T) {
		pageOne := linesFromText(
			"BASIC D.A. GROSS",
			"1 12345678 10000 15000",
		)
		pageTwo := linesFromText(
			"Shri Patil C D",
			"2 23456789 12000 18000",
		)

		res := Segment([][]entity.Line{pageOne, pageTwo}, 1)

		require.Len(t, res.Blocks, 2)
		// Page one's header line is past headerEnd and never leads a block.
		assert.Len(t, res.Blocks[0].Lines, 1)
		assert.Len(t, res.Blocks[1].Lines, 2)
	})
}

func TestStripPayScale(t *testing.T) {
	assert.Equal(t, "Shri Kale", stripPayScale("Shri Kale 9300-34800 GP 4200"))
	assert.Equal(t, "Shri Kale", stripPayScale("Shri Kale 5200-20200"))
	assert.Equal(t, "Shri Kale 123", stripPayScale("Shri Kale 123"))
}

func TestStartsWithHonorific(t *testing.T) {
	assert.True(t, startsWithHonorific("Shri Kale A B"))
	assert.True(t, startsWithHonorific("Smt. Patil"))
	assert.True(t, startsWithHonorific("KUM Deshmukh"))
	assert.False(t, startsWithHonorific("Junior Clerk"))
	assert.False(t, startsWithHonorific(""))
}
