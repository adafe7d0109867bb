package csvstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"secmatrix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, files map[models.SourceName][]byte) *Store {
	t.Helper()
	dir := t.TempDir()
	sources := models.DefaultSources()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, sources[name].File), content, 0o644))
	}
	return New(dir, sources)
}

const nistFixture = "Marco NIST CSF\r\n" +
	"Proyecto,Geotermia\r\n" +
	"\r\n" +
	"Función NIST,Control,Descripción\r\n" +
	"Identificar,ID.AM-1,\"Inventario, de dispositivos\"\r\n" +
	"   ,,\r\n" +
	"Proteger,PR.AC-1,\"Gestión de\r\nidentidades\"\r\n"

func TestRead_UTF8WithBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(nistFixture)...)
	s := newTestStore(t, map[models.SourceName][]byte{models.SourceNIST: content})

	rows, err := s.Read(models.SourceNIST)
	require.NoError(t, err)

	require.Len(t, rows, 7)
	assert.Equal(t, []string{"Marco NIST CSF"}, rows[0])
	assert.Equal(t, []string{}, rows[2], "blank line kept as empty row")
	assert.Equal(t, "Función NIST", rows[3][0], "BOM must not leak into the first cell")
	assert.Equal(t, "Inventario, de dispositivos", rows[4][2])
	assert.Equal(t, []string{"   ", "", ""}, rows[5])
	assert.Equal(t, "Gestión de\nidentidades", rows[6][2])
}

func TestRead_Latin1Fallback(t *testing.T) {
	// "Categoría,Control" with í encoded as a single 0xED byte
	content := []byte("Anexo A\nCategor\xeda,Control\nOrganizacional,A.5.1\n")
	s := newTestStore(t, map[models.SourceName][]byte{models.SourceAnexoA: content})

	rows, err := s.Read(models.SourceAnexoA)
	require.NoError(t, err)

	idx, ok := LocateHeader(rows, "Categoría")
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestRead_MissingFile(t *testing.T) {
	s := newTestStore(t, nil)

	_, err := s.Read(models.SourceCOBIT)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRead_UnknownSource(t *testing.T) {
	s := newTestStore(t, nil)

	_, err := s.Read(models.SourceName("pci"))
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestRead_TrailingBlankLines(t *testing.T) {
	s := newTestStore(t, map[models.SourceName][]byte{models.SourceCOBIT: []byte("a,b\r\n\r\n\r\n")})

	rows, err := s.Read(models.SourceCOBIT)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {}, {}}, rows)
}

func TestWrite_RoundTripKeepsSnapshot(t *testing.T) {
	s := newTestStore(t, map[models.SourceName][]byte{models.SourceNIST: []byte(nistFixture)})

	rows, err := s.Read(models.SourceNIST)
	require.NoError(t, err)
	idx, ok := LocateHeader(rows, "Función NIST")
	require.True(t, ok)
	before := Partition(rows, idx)

	require.NoError(t, s.Write(models.SourceNIST, rows))

	again, err := s.Read(models.SourceNIST)
	require.NoError(t, err)
	assert.Equal(t, rows, again)

	idx, ok = LocateHeader(again, "Función NIST")
	require.True(t, ok)
	assert.Equal(t, before, Partition(again, idx))
}

func TestWrite_EncodesUTF8WithBOMAndCRLF(t *testing.T) {
	s := newTestStore(t, map[models.SourceName][]byte{models.SourceMagerit: []byte("x\n")})

	require.NoError(t, s.Write(models.SourceMagerit, [][]string{{"N° Activos", "Tipo"}, {}, {"1", "a,b"}}))

	path, err := s.Path(models.SourceMagerit)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFN° Activos,Tipo\r\n\r\n1,\"a,b\"\r\n", string(raw))
}

func TestWrite_SingleEmptyFieldRoundTrips(t *testing.T) {
	fixture := "Titulo\r\n\"\"\r\n\r\nFunción NIST,Control\r\nA,B\r\n"
	s := newTestStore(t, map[models.SourceName][]byte{models.SourceNIST: []byte(fixture)})

	rows, err := s.Read(models.SourceNIST)
	require.NoError(t, err)
	require.Equal(t, []string{""}, rows[1])
	require.Empty(t, rows[2])

	require.NoError(t, s.Write(models.SourceNIST, rows))

	again, err := s.Read(models.SourceNIST)
	require.NoError(t, err)
	assert.Equal(t, rows, again)

	idx, ok := LocateHeader(again, "Función NIST")
	require.True(t, ok)
	assert.Equal(t, [][]string{{"Titulo"}, {""}, {}}, Partition(again, idx).Metadata)

	path, err := s.Path(models.SourceNIST)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBF"+fixture, string(raw))
}

func TestLocateHeader(t *testing.T) {
	rows := [][]string{{"titulo"}, {}, {" N° Activos"}, {"N° Activos", "Tipo"}, {"N° Activos"}}

	idx, ok := LocateHeader(rows, "N° Activos")
	assert.True(t, ok)
	assert.Equal(t, 3, idx, "match is exact, untrimmed, first wins")

	_, ok = LocateHeader(rows, "n° activos")
	assert.False(t, ok)
}

func TestPartition(t *testing.T) {
	rows := [][]string{
		{"MATRIZ"},
		{"", "fecha"},
		{"H1", "H2"},
		{"1", "a"},
		{"", "huérfana"},
		{"  ", "espacios"},
		{},
		{"2", "b"},
	}

	snap := Partition(rows, 2)

	assert.Equal(t, [][]string{{"MATRIZ"}, {"", "fecha"}}, snap.Metadata)
	assert.Equal(t, []string{"H1", "H2"}, snap.Headers)
	assert.Equal(t, [][]string{{"1", "a"}, {"2", "b"}}, snap.Data)
}

func TestPartition_HeaderOnly(t *testing.T) {
	snap := Partition([][]string{{"H"}}, 0)

	assert.NotNil(t, snap.Metadata)
	assert.NotNil(t, snap.Data)
	assert.Empty(t, snap.Data)
}
