package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMatchesPatternsInLexicalOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"data/b/more.json":   {Data: []byte(`[{"Project":"Wind","CO2":3,"Cost":9}]`)},
		"data/a/base.json":   {Data: []byte(`[{"Project":"Solar","CO2":4,"NO":1,"Cost":2},{"Project":"Trees","CH4":2,"Cost":1}]`)},
		"data/readme.txt":    {Data: []byte("not a catalog")},
		"other/ignored.json": {Data: []byte(`[{"Project":"Nope"}]`)},
	}

	c, err := Load(fsys, "data/**/*.json", "data/a/*.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"Solar", "Trees", "Wind"}, c.Names())

	solar, ok := c.Lookup("Solar")
	require.True(t, ok)
	assert.Equal(t, 4.0, solar.Emission(CO2))
	assert.Equal(t, 1.0, solar.Emission(NO))
	assert.Equal(t, 0.0, solar.Emission(BC))
	assert.Equal(t, 2.0, solar.Cost)
}

func TestLoadRejectsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(`[{"Project":"Solar"}]`)},
		"b.json": {Data: []byte(`[{"Project":"Solar"}]`)},
	}
	_, err := Load(fsys, "*.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateProject), "got %v", err)
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	cases := map[string]string{
		"missing name": `[{"CO2": 1}]`,
		"empty name":   `[{"Project": "  "}]`,
		"bad number":   `[{"Project": "x", "CO2": "lots"}]`,
		"not an array": `{"Project": "x"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(fstest.MapFS{"p.json": {Data: []byte(body)}}, "*.json")
			require.Error(t, err)
		})
	}
}

func TestLoadRejectsInvalidPattern(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "data/[")
	require.Error(t, err)
}

func TestFilterKeepsCatalogOrder(t *testing.T) {
	c, err := New([]Project{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	require.NoError(t, err)

	got := c.Filter([]string{"C", "A", "missing", "A"})
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
	assert.Empty(t, c.Filter(nil))
}

func TestProjectJSONRoundTripKeepsKeys(t *testing.T) {
	p := Project{Name: "Solar", Emissions: map[Pollutant]float64{CO2: 4}, Cost: 2}
	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Solar", raw["Project"])
	assert.Equal(t, 4.0, raw["CO2"])
	assert.Equal(t, 0.0, raw["N2O"])
	assert.Equal(t, 2.0, raw["Cost"])
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "PM<sub>2.5</sub>", PM25.LabelHTML())
	assert.Equal(t, "VOC", VOC.LabelHTML())
	assert.True(t, IsPollutant("N2O"))
	assert.False(t, IsPollutant("Cost"))
}

func TestBundledCatalogLoads(t *testing.T) {
	c, err := Load(os.DirFS("../.."), "data/**/*.json")
	require.NoError(t, err)
	assert.Greater(t, c.Len(), 0)
}
