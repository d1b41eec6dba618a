package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bill.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTokenDump(t *testing.T) {
	t.Run("loads a well-formed dump", func(t *testing.T) {
		path := writeDump(t, `{
			"pages": [
				{
					"number": 1,
					"tokens": [
						{"text": "PAY", "x": 100, "y": 820, "width": 30},
						{"text": "BILL", "x": 140, "y": 820}
					]
				}
			]
		}`)

		doc, err := LoadTokenDump(path)

		require.NoError(t, err)
		assert.Equal(t, path, doc.Path)
		require.Len(t, doc.Pages, 1)
		assert.Equal(t, 1, doc.Pages[0].Number)
		require.Len(t, doc.Pages[0].Tokens, 2)
		assert.Equal(t, "PAY", doc.Pages[0].Tokens[0].Text)
		assert.Equal(t, 100.0, doc.Pages[0].Tokens[0].X)
		assert.Equal(t, 820.0, doc.Pages[0].Tokens[0].Y)
	})

	t.Run("missing pages key fails schema validation", func(t *testing.T) {
		path := writeDump(t, `{"documents": []}`)

		_, err := LoadTokenDump(path)
		assert.Error(t, err)
	})

	t.Run("non-numeric coordinate fails schema validation", func(t *testing.T) {
		path := writeDump(t, `{
			"pages": [{"number": 1, "tokens": [{"text": "PAY", "x": "100", "y": 820}]}]
		}`)

		_, err := LoadTokenDump(path)
		assert.Error(t, err)
	})

	t.Run("page number below one fails schema validation", func(t *testing.T) {
		path := writeDump(t, `{"pages": [{"number": 0, "tokens": []}]}`)

		_, err := LoadTokenDump(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTokenDump(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
