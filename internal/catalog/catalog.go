// Package catalog loads the pollution reduction projects offered for
// selection. Catalog files are JSON arrays of objects keyed by "Project",
// the pollutant names and "Cost".
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type Pollutant string

const (
	CO2  Pollutant = "CO2"
	NO   Pollutant = "NO"
	SO2  Pollutant = "SO2"
	PM25 Pollutant = "PM2_5"
	CH4  Pollutant = "CH4"
	VOC  Pollutant = "VOC"
	CO   Pollutant = "CO"
	NH3  Pollutant = "NH3"
	BC   Pollutant = "BC"
	N2O  Pollutant = "N2O"
)

// Pollutants lists every tracked pollutant in constraint order.
var Pollutants = []Pollutant{CO2, NO, SO2, PM25, CH4, VOC, CO, NH3, BC, N2O}

var labels = map[Pollutant]string{
	CO2:  "CO<sub>2</sub>",
	NO:   "NO",
	SO2:  "SO<sub>2</sub>",
	PM25: "PM<sub>2.5</sub>",
	CH4:  "CH<sub>4</sub>",
	VOC:  "VOC",
	CO:   "CO",
	NH3:  "NH<sub>3</sub>",
	BC:   "BC",
	N2O:  "N<sub>2</sub>O",
}

// LabelHTML returns the display label with subscript markup.
func (p Pollutant) LabelHTML() string {
	if l, ok := labels[p]; ok {
		return l
	}
	return string(p)
}

func IsPollutant(name string) bool {
	_, ok := labels[Pollutant(name)]
	return ok
}

var ErrDuplicateProject = errors.New("duplicate project")

type Project struct {
	Name      string
	Emissions map[Pollutant]float64
	Cost      float64
}

// Emission returns the reduction the project achieves per unit.
func (p Project) Emission(pol Pollutant) float64 {
	return p.Emissions[pol]
}

func (p *Project) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	nameRaw, ok := raw["Project"]
	if !ok {
		return fmt.Errorf("missing \"Project\" field")
	}
	if err := json.Unmarshal(nameRaw, &p.Name); err != nil {
		return fmt.Errorf("decode project name: %w", err)
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	p.Emissions = make(map[Pollutant]float64, len(Pollutants))
	for _, pol := range Pollutants {
		v, ok := raw[string(pol)]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(v, &f); err != nil {
			return fmt.Errorf("project %q: decode %s: %w", p.Name, pol, err)
		}
		p.Emissions[pol] = f
	}
	if v, ok := raw["Cost"]; ok {
		if err := json.Unmarshal(v, &p.Cost); err != nil {
			return fmt.Errorf("project %q: decode Cost: %w", p.Name, err)
		}
	}
	return nil
}

func (p Project) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(Pollutants)+2)
	out["Project"] = p.Name
	for _, pol := range Pollutants {
		out[string(pol)] = p.Emissions[pol]
	}
	out["Cost"] = p.Cost
	return json.Marshal(out)
}

type Catalog struct {
	projects []Project
	byName   map[string]int
}

func New(projects []Project) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]int, len(projects))}
	for _, p := range projects {
		if _, exists := c.byName[p.Name]; exists {
			return nil, fmt.Errorf("%w %q", ErrDuplicateProject, p.Name)
		}
		c.byName[p.Name] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	return c, nil
}

// Load reads every file in fsys matched by the doublestar patterns.
// Files are read in lexical order; a file matched by several patterns is
// read once.
func Load(fsys fs.FS, patterns ...string) (*Catalog, error) {
	seen := map[string]struct{}{}
	var files []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid catalog pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)

	var projects []Project
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read catalog file %q: %w", name, err)
		}
		var batch []Project
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("parse catalog file %q: %w", name, err)
		}
		projects = append(projects, batch...)
	}
	c, err := New(projects)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.projects)
}

// Projects returns a copy of every project in catalog order.
func (c *Catalog) Projects() []Project {
	return append([]Project(nil), c.projects...)
}

func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.projects))
	for _, p := range c.projects {
		out = append(out, p.Name)
	}
	return out
}

func (c *Catalog) Lookup(name string) (Project, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Project{}, false
	}
	return c.projects[i], true
}

// Filter returns the named projects in catalog order. Unknown names are
// ignored, as are repeats.
func (c *Catalog) Filter(names []string) []Project {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[strings.TrimSpace(n)] = struct{}{}
	}
	var out []Project
	for _, p := range c.projects {
		if _, ok := want[p.Name]; ok {
			out = append(out, p)
		}
	}
	return out
}
