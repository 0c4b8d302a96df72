package host

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"platodropbox/internal/core/domain/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var events []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var ev map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
		events = append(events, ev)
	}
	return events
}

func TestPlatoHost_Events(t *testing.T) {
	var buf bytes.Buffer
	h := NewPlatoHost(&buf, nil)

	h.ShowNotification("Sync 3 files")
	h.SetWifi(true)
	h.AddDocument(models.CatalogRecord{
		Title:  "a.epub",
		Author: "Unknown",
		File:   models.FileInfo{Path: "Dropbox/a.epub", Kind: "epub", Size: 12},
	})

	events := decodeLines(t, &buf)
	require.Len(t, events, 3)

	assert.Equal(t, "notify", events[0]["type"])
	assert.Equal(t, "Sync 3 files", events[0]["message"])

	assert.Equal(t, "setWifi", events[1]["type"])
	assert.Equal(t, true, events[1]["enable"])

	assert.Equal(t, "addDocument", events[2]["type"])
	info, ok := events[2]["info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a.epub", info["title"])
	file := info["file"].(map[string]any)
	assert.Equal(t, "Dropbox/a.epub", file["path"])
	assert.Equal(t, float64(12), file["size"])
	reader := info["reader"].(map[string]any)
	assert.Equal(t, float64(0), reader["currentPage"])
	assert.Equal(t, false, reader["finished"])
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPlatoHost_WriteFailureIsSwallowed(t *testing.T) {
	h := NewPlatoHost(failingWriter{}, nil)
	assert.NotPanics(t, func() { h.ShowNotification("hello") })
}
