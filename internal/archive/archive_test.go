package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexkit/case-cli/internal/extract"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "Hukuk_Arsivi"))
	require.NoError(t, err)
	return s
}

func TestCreateCase_WritesSidecar(t *testing.T) {
	s := newTestStore(t)

	casePath, err := s.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "2024-123", "Yılmaz vs Demir")
	require.NoError(t, err)

	sc, err := s.ReadSidecar(casePath)
	require.NoError(t, err)
	assert.NotEmpty(t, sc.ID)
	assert.Equal(t, "Ankara 1. Asliye Hukuk", sc.Court)
	assert.Equal(t, "2024-123", sc.CaseNumber)
	assert.Equal(t, "Yılmaz vs Demir", sc.Parties)
	assert.False(t, sc.CreatedAt.IsZero())
}

func TestCreateCase_RefusesNonEmptyFolder(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "2024-123", "")
	require.NoError(t, err)

	_, err = s.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "2024-123", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateCase_SanitizesSegments(t *testing.T) {
	s := newTestStore(t)

	casePath, err := s.CreateCase("İcra Dosyaları", "İstanbul 5. İcra", "2024/77", "")
	require.NoError(t, err)
	// The slash cannot become a path separator.
	assert.Equal(t, "202477", filepath.Base(casePath))
}

func TestCreateCase_RejectsTraversalSegments(t *testing.T) {
	base := t.TempDir()
	s, err := NewStore(filepath.Join(base, "outer", "Hukuk_Arsivi"))
	require.NoError(t, err)

	_, err = s.CreateCase("..", "..", "evil", "")
	require.Error(t, err)

	_, err = s.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "..", "")
	require.Error(t, err)

	// Nothing may appear above the archive root.
	_, statErr := os.Stat(filepath.Join(base, "evil"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(base, "outer", "evil"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAddArtifacts(t *testing.T) {
	s := newTestStore(t)
	casePath, err := s.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "2024-123", "")
	require.NoError(t, err)

	err = s.AddArtifacts(casePath, []extract.File{
		{Name: "dilekce.txt", Data: []byte("dava dilekçesi")},
		{Name: "ek-1.txt", Data: []byte("ek belge")},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(casePath, "dilekce.txt"))
	require.NoError(t, err)
	assert.Equal(t, "dava dilekçesi", string(data))
}

func TestAddArtifacts_RejectsTraversalName(t *testing.T) {
	s := newTestStore(t)
	casePath, err := s.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "2024-123", "")
	require.NoError(t, err)

	err = s.AddArtifacts(casePath, []extract.File{{Name: "..", Data: []byte("x")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unusable artifact name")
}

func TestAddArtifacts_MissingCase(t *testing.T) {
	s := newTestStore(t)
	err := s.AddArtifacts(filepath.Join(s.Root(), "yok"), []extract.File{{Name: "a.txt"}})
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	casePath, err := s.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "2024-123", "")
	require.NoError(t, err)
	require.NoError(t, s.AddArtifacts(casePath, []extract.File{
		{Name: "bilirkisi-raporu.txt", Data: []byte("rapor")},
	}))

	t.Run("case folder found once, case-insensitive", func(t *testing.T) {
		hits, err := s.Search("2024-123")
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.True(t, hits[0].IsDir)
		assert.Equal(t, casePath, hits[0].Path)
		assert.Equal(t, 2, hits[0].FileCount) // sidecar + artifact
	})

	t.Run("file name match, case-insensitive", func(t *testing.T) {
		hits, err := s.Search("RAPORU")
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.False(t, hits[0].IsDir)
		assert.Equal(t, filepath.Join(casePath, "bilirkisi-raporu.txt"), hits[0].Path)
	})

	t.Run("no match is empty, not nil error", func(t *testing.T) {
		hits, err := s.Search("boyle-bir-dosya-yok")
		require.NoError(t, err)
		assert.Empty(t, hits)
	})
}

func TestOpenCase(t *testing.T) {
	s := newTestStore(t)
	casePath, err := s.CreateCase("Hukuk Davaları", "Ankara 1. Asliye Hukuk", "2024-123", "")
	require.NoError(t, err)
	require.NoError(t, s.AddArtifacts(casePath, []extract.File{
		{Name: "dilekce.txt", Data: []byte("dava dilekçesi metni")},
		{Name: "bozuk.udf", Data: []byte("not a container")},
	}))

	reg := extract.NewRegistry(extract.Options{}, nil)
	aggregate, perFileErrors, err := s.OpenCase(context.Background(), casePath, reg, 0, 2)
	require.NoError(t, err)

	assert.Contains(t, aggregate, "--- dilekce.txt ---")
	assert.Contains(t, aggregate, "dava dilekçesi metni")
	assert.NotContains(t, aggregate, "case.yaml", "sidecar must not enter the aggregate context")

	require.Len(t, perFileErrors, 1)
	assert.NotEmpty(t, perFileErrors["bozuk.udf"])
}

func TestNewStore_EmptyRoot(t *testing.T) {
	_, err := NewStore("")
	require.Error(t, err)
}
