package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonCatalog = `[
  {
    "_id": "fw-gri",
    "name": "GRI",
    "description": "Global sustainability reporting standards.",
    "questions": [
      {"question": "How does your organization report on greenhouse gas emissions?", "category": "Environmental", "ref": "GRI-305"},
      {"question": "What is the composition of the highest governance body?", "category": "Governance", "_id": "q-gov-1"},
      {"question": "   ", "category": "Ignored"}
    ]
  },
  {
    "_id": "fw-sasb",
    "name": "SASB",
    "questions": [
      {"question": "What metrics do you use to track water consumption?", "category": "Environmental"}
    ]
  }
]`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	cat, err := Load(writeTemp(t, "frameworks.json", jsonCatalog))
	require.NoError(t, err)

	fws := cat.Frameworks()
	require.Len(t, fws, 2)
	assert.Equal(t, "fw-gri", fws[0].ID)
	assert.Equal(t, "GRI", fws[0].Name)

	// Blank question text is dropped.
	assert.Len(t, fws[0].Questions, 2)
	assert.Equal(t, "GRI-305", fws[0].Questions[0].Ref)
	// Ref falls back to the question's _id.
	assert.Equal(t, "q-gov-1", fws[0].Questions[1].Ref)
}

func TestLoad_YAML(t *testing.T) {
	yamlCatalog := `
- _id: fw-tcfd
  name: TCFD
  description: Climate-related financial disclosure.
  questions:
    - question: How does the board oversee climate-related risks?
      category: Governance
      ref: TCFD-GOV-A
`
	cat, err := Load(writeTemp(t, "frameworks.yaml", yamlCatalog))
	require.NoError(t, err)

	fws := cat.Frameworks()
	require.Len(t, fws, 1)
	assert.Equal(t, "TCFD", fws[0].Name)
	require.Len(t, fws[0].Questions, 1)
	assert.Equal(t, "TCFD-GOV-A", fws[0].Questions[0].Ref)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(writeTemp(t, "bad.json", "{not json"))
	assert.Error(t, err)
}

func TestLookup_CaseInsensitive(t *testing.T) {
	cat, err := Load(writeTemp(t, "frameworks.json", jsonCatalog))
	require.NoError(t, err)

	for _, name := range []string{"GRI", "gri", " Gri "} {
		fw, ok := cat.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, "GRI", fw.Name)
	}
}

func TestQuestionsFor_UnknownFramework(t *testing.T) {
	cat, err := Load(writeTemp(t, "frameworks.json", jsonCatalog))
	require.NoError(t, err)

	assert.Empty(t, cat.QuestionsFor("ISO14001"))
	assert.Empty(t, cat.Description("ISO14001"))
}

func TestDescription(t *testing.T) {
	cat, err := Load(writeTemp(t, "frameworks.json", jsonCatalog))
	require.NoError(t, err)

	assert.Equal(t, "Global sustainability reporting standards.", cat.Description("gri"))
	assert.Empty(t, cat.Description("SASB"))
}

func TestResolve_PreservesOrderAndDegrades(t *testing.T) {
	cat, err := Load(writeTemp(t, "frameworks.json", jsonCatalog))
	require.NoError(t, err)

	fws := cat.Resolve([]string{"SASB", "Unknown", "GRI"})
	require.Len(t, fws, 3)
	assert.Equal(t, "SASB", fws[0].Name)
	assert.Equal(t, "Unknown", fws[1].Name)
	assert.Empty(t, fws[1].Questions)
	assert.Equal(t, "GRI", fws[2].Name)
}
