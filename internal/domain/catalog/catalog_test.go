package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = "Descripción\tSubrubro\n" +
	"monocomando\t31\n" +
	"colilla\t14\n" +
	"llave de paso\t14\n" +
	"cisterna doble    pulsador\t18\n" +
	"colilla\t15\n"

func loadSample(t *testing.T) *Index {
	t.Helper()
	idx, err := Load(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	return idx
}

func TestLoad(t *testing.T) {
	idx := loadSample(t)
	// Header skipped, duplicate "colilla" collapsed in place.
	assert.Equal(t, 4, idx.Len())
}

func TestLoad_SkipsBadLines(t *testing.T) {
	idx, err := Load(strings.NewReader("header\nno tab here\n\t77\nvalid\t9\nbad code\tx9\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	code, miss := idx.Resolve("valid")
	assert.Nil(t, miss)
	assert.Equal(t, 9, code)
}

// A key reloaded with a different code keeps its first insertion position but
// takes the later code.
func TestLoad_LastWriteWins(t *testing.T) {
	idx := loadSample(t)
	code, miss := idx.Resolve("colilla")
	assert.Nil(t, miss)
	assert.Equal(t, 15, code)
}

func TestResolve_Exact(t *testing.T) {
	idx := loadSample(t)

	for _, tc := range []struct {
		description string
		code        int
	}{
		{"monocomando", 31},
		{"MONOCOMANDO", 31},
		{"  Llave   de Paso  ", 14},
		{"cisterna doble pulsador", 18}, // whitespace collapsed at load time too
	} {
		t.Run(tc.description, func(t *testing.T) {
			code, miss := idx.Resolve(tc.description)
			assert.Nil(t, miss)
			assert.Equal(t, tc.code, code)
		})
	}
}

// Key contained in description: "monocomando" ⊂ "MONOCOMANDO PARA BACHA".
func TestResolve_KeyInDescription(t *testing.T) {
	idx := loadSample(t)
	code, miss := idx.Resolve("MONOCOMANDO PARA BACHA RIMONTTI")
	assert.Nil(t, miss)
	assert.Equal(t, 31, code)
}

// Description contained in key: "cisterna doble" ⊂ "cisterna doble pulsador".
func TestResolve_DescriptionInKey(t *testing.T) {
	idx := loadSample(t)
	code, miss := idx.Resolve("cisterna doble")
	assert.Nil(t, miss)
	assert.Equal(t, 18, code)
}

// When several entries contain the description, the earliest-loaded wins.
func TestResolve_InsertionOrderPriority(t *testing.T) {
	idx, err := Load(strings.NewReader("h\ncanilla cocina\t40\ncanilla\t41\n"))
	require.NoError(t, err)

	code, miss := idx.Resolve("canilla cromada")
	assert.Nil(t, miss)
	assert.Equal(t, 41, code, "only 'canilla' is contained in the description")

	code, miss = idx.Resolve("canilla")
	assert.Nil(t, miss)
	assert.Equal(t, 41, code, "exact match beats the earlier containment match")

	code, miss = idx.Resolve("cani")
	assert.Nil(t, miss)
	assert.Equal(t, 40, code, "'cani' is contained in the earlier key first")
}

func TestResolve_DefaultWithMiss(t *testing.T) {
	idx := loadSample(t)

	code, miss := idx.Resolve("ZAPATO DE GOMA")
	assert.Equal(t, DefaultCode, code)
	require.NotNil(t, miss)
	assert.Equal(t, "ZAPATO DE GOMA", miss.Description)
	assert.Len(t, miss.Suggestions, maxSuggestions)
}

func TestResolve_EmptyCatalog(t *testing.T) {
	idx, err := Load(strings.NewReader("header only\n"))
	require.NoError(t, err)

	code, miss := idx.Resolve("anything")
	assert.Equal(t, DefaultCode, code)
	require.NotNil(t, miss)
	assert.Empty(t, miss.Suggestions)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.tsv")
	assert.Error(t, err)
}

func BenchmarkResolve(b *testing.B) {
	idx, err := Load(strings.NewReader(sampleCatalog))
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		idx.Resolve("MONOCOMANDO PARA BACHA RIMONTTI")
	}
}
