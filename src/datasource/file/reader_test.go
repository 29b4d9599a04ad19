package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReaderKeepsStrings(t *testing.T) {
	csv := "Label,Order Region,Sales\n-1,West,12.5\nbad,East,\n"
	df, err := FromReader(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"Label", "Order Region", "Sales"}, df.Names())
	// 类型推断关闭，数值和空值原样保留为字符串
	assert.Equal(t, []string{"-1", "bad"}, df.Col("Label").Records())
	assert.Equal(t, []string{"12.5", ""}, df.Col("Sales").Records())
}

func TestFromReaderEmptyBody(t *testing.T) {
	_, err := FromReader(strings.NewReader("Label,Order Region\n"))
	assert.Error(t, err)
}

func TestReadCSVToDataFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte("Label,Region\n-1,West\n"), 0644))

	df, err := ReadCSVToDataFrame(path)
	require.NoError(t, err)
	assert.Equal(t, 1, df.Nrow())
}

func TestReadCSVToDataFrameMissingFile(t *testing.T) {
	_, err := ReadCSVToDataFrame(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
