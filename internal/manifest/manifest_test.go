package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleManifest() *RunManifest {
	return &RunManifest{
		ID:        "run-123",
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Inputs: Inputs{
			ConfigHash:  "cfg",
			Target:      "vercel",
			ContentRoot: "src/content/docs",
			Groups: []GroupInput{
				{Label: "Courses", Directory: "courses", Pages: 2},
				{Label: "Guides", Directory: "how-to", Missing: true},
			},
		},
		Outputs: Outputs{File: "astro.config.mjs", Format: "mjs", Hash: "abc", Changed: true},
		Pages:   map[string]string{"courses/intro": "fp1", "courses/setup": "fp2"},
		Status:  "written",
	}
}

func TestManifestSerialization(t *testing.T) {
	m := sampleManifest()

	data, err := m.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content_root": "src/content/docs"`)

	restored, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, m.ID, restored.ID)
	assert.True(t, m.Timestamp.Equal(restored.Timestamp))
	assert.Equal(t, m.Inputs, restored.Inputs)
	assert.Equal(t, m.Pages, restored.Pages)
}

func TestHashIgnoresRunIdentity(t *testing.T) {
	a := sampleManifest()
	b := sampleManifest()
	b.ID = "run-456"
	b.Timestamp = b.Timestamp.Add(time.Hour)
	b.Duration = 99

	ha, err := a.Hash()
	require.NoError(t, err)
	hb, err := b.Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	b.Pages["courses/intro"] = "changed"
	hc, err := b.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	data, err := sampleManifest().ToJSON()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	m, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "vercel", m.Inputs.Target)

	_, err = Read(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = FromJSON([]byte("{"))
	assert.Error(t, err)
}
