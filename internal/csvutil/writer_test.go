package csvutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func burgerFields(r burgerRow) []string {
	return []string{r.Season, r.Title}
}

func TestEncode(t *testing.T) {
	rows := []burgerRow{{"1", "Human Flesh"}, {"2", "Bob, Day \"Two\""}}

	data, err := Encode([]string{"season", "episode_title"}, rows, burgerFields, true)
	require.NoError(t, err)
	assert.Equal(t, "season,episode_title\r\n1,Human Flesh\r\n2,\"Bob, Day \"\"Two\"\"\"\r\n", string(data))

	data, err = Encode([]string{"season", "episode_title"}, rows[:1], burgerFields, false)
	require.NoError(t, err)
	assert.Equal(t, "season,episode_title\n1,Human Flesh\n", string(data))
}

func TestEncodeFieldCountMismatch(t *testing.T) {
	_, err := Encode([]string{"season"}, []burgerRow{{"1", "x"}}, burgerFields, false)
	assert.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "burgers.csv")
	header := []string{"season", "episode_title"}
	rows := []burgerRow{{"3", "Ear-Sy Rider"}, {"3", "Mutiny on the Windbreaker"}}

	written, err := WriteCSV(path, header, rows, burgerFields, WriterOptions{UseCRLF: true, Overwrite: true})
	require.NoError(t, err)
	assert.True(t, written)

	got, err := ProcessCSV(path, parseBurgerRow, ProcessorOptions{Header: header})
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestWriteCSVRespectsOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "burgers.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	written, err := WriteCSV(path, []string{"season", "episode_title"}, []burgerRow{{"1", "x"}}, burgerFields, WriterOptions{})
	require.NoError(t, err)
	assert.False(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}
