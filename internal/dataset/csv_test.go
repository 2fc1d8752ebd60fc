package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMessages(t *testing.T) {
	path := writeFile(t, "messages.csv",
		"id,message,original,genre\n"+
			"1,Water is needed,Dlo nesesè,direct\n"+
			"2,\"Storm, then flooding\",,news\n")

	messages, err := LoadMessages(path)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, Message{ID: 1, Message: "Water is needed", Original: "Dlo nesesè", Genre: "direct"}, messages[0])
	assert.Equal(t, "Storm, then flooding", messages[1].Message)
	assert.Empty(t, messages[1].Original)
}

func TestLoadMessagesBadHeader(t *testing.T) {
	path := writeFile(t, "messages.csv", "id,text,original,genre\n1,a,b,direct\n")

	_, err := LoadMessages(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestLoadMessagesBadID(t *testing.T) {
	path := writeFile(t, "messages.csv", "id,message,original,genre\nx,a,b,direct\n")

	_, err := LoadMessages(path)
	assert.Error(t, err)
}

func TestLoadCategoryRecords(t *testing.T) {
	path := writeFile(t, "categories.csv",
		"id,categories\n"+
			"1,"+encodeCategories(map[string]int{"related": 1})+"\n")

	records, err := LoadCategoryRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Contains(t, records[0].Categories, "related-1")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadMessages(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)

	_, err = LoadCategoryRecords(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
