package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Term", "Translation", "Category", "Pronunciation", "Example", "ID"},
		{"pomme", "apple", "Food", "pom", "une pomme rouge", "food-1"},
		{"pain", "bread", "Food", "", "", "food-2"},
		{"train", "train", "Travel", "", "", ""},
		{"", "missing term", "Food", "", "", ""},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	path := filepath.Join(t.TempDir(), "vocab.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportWords_Excel(t *testing.T) {
	config := DefaultImportConfig()
	config.FilePath = writeTestWorkbook(t)

	categories, result, err := ImportWords(config)
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalProcessed)
	assert.Equal(t, 3, result.WordsImported)
	assert.Equal(t, 2, result.CategoriesCreated)
	assert.Equal(t, 1, result.Skipped)

	require.Len(t, categories, 2)
	food := categories[0]
	assert.Equal(t, "food", food.ID)
	require.Len(t, food.Words, 2)
	assert.Equal(t, "food-1", food.Words[0].ID)
	assert.Equal(t, "pomme", food.Words[0].Term)
	assert.Equal(t, "apple", food.Words[0].Translation)

	travel := categories[1]
	require.Len(t, travel.Words, 1)
	assert.NotEmpty(t, travel.Words[0].ID, "rows without an ID get a generated one")
}

func TestImportWords_CSV(t *testing.T) {
	csvData := "term,translation,category\n" +
		"chat,cat,Animals\n" +
		"chien,dog,Animals\n" +
		"livre,book,\n"
	path := filepath.Join(t.TempDir(), "vocab.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0644))

	config := DefaultImportConfig()
	config.FilePath = path

	categories, result, err := ImportWords(config)
	require.NoError(t, err)

	assert.Equal(t, 3, result.WordsImported)
	require.Len(t, categories, 2)
	assert.Equal(t, "Animals", categories[0].Name)
	assert.Len(t, categories[0].Words, 2)
	assert.Equal(t, "General", categories[1].Name, "rows without a category land in General")
}

func TestImportWords_MissingFile(t *testing.T) {
	config := DefaultImportConfig()
	config.FilePath = "does-not-exist.xlsx"

	_, _, err := ImportWords(config)
	assert.Error(t, err)
}

func TestColumnIndex(t *testing.T) {
	assert.Equal(t, 0, columnIndex("A"))
	assert.Equal(t, 2, columnIndex("c"))
	assert.Equal(t, 26, columnIndex("AA"))
	assert.Equal(t, -1, columnIndex(""))
	assert.Equal(t, -1, columnIndex("1"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "food-drink", slugify("Food  Drink"))
	assert.Equal(t, "travel", slugify("Travel!"))
}
