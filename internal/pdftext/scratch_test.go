package pdftext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kavish/registry-harvester/internal/db"
)

func TestMaterializeAndClean(t *testing.T) {
	scratch, err := NewScratch(t.TempDir())
	require.NoError(t, err)

	company := &db.CompanyDetail{
		ID:       uuid.New(),
		Name:     "ACME TRADING LTD",
		Category: "DOMESTIC",
		Nature:   "PRIVATE",
	}
	doc := &db.DocumentFile{
		CompanyID: company.ID,
		Content:   []byte("%PDF-1.4 fake body"),
	}

	path, err := scratch.Materialize(company, doc)
	require.NoError(t, err)
	assert.Equal(t, company.ID.String()+".pdf", filepath.Base(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, content)

	metaPath := filepath.Join(filepath.Dir(path), company.ID.String()+".json")
	meta, err := os.ReadFile(metaPath)
	require.NoError(t, err)
	assert.Contains(t, string(meta), "ACME TRADING LTD")

	require.NoError(t, scratch.Clean(company.ID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(metaPath)
	assert.True(t, os.IsNotExist(err))

	// Cleaning an already-clean company is a no-op.
	assert.NoError(t, scratch.Clean(company.ID))
}

func TestMaterializeReplacesPriorPair(t *testing.T) {
	scratch, err := NewScratch(t.TempDir())
	require.NoError(t, err)

	company := &db.CompanyDetail{ID: uuid.New(), Name: "BETA HOLDINGS LTD", Category: "DOMESTIC"}

	_, err = scratch.Materialize(company, &db.DocumentFile{Content: []byte("first")})
	require.NoError(t, err)
	path, err := scratch.Materialize(company, &db.DocumentFile{Content: []byte("second")})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(content))
}

func TestExtractLinesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	lines, err := ExtractLines(path)
	assert.Nil(t, lines)

	var corrupt *CorruptFileError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, path, corrupt.Path)
}
