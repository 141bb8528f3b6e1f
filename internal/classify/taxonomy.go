package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Taxonomy is the ordered category → subcategory → keyword
// configuration driving classification. Order is significant at every
// level: classification is first-hit-wins, so reordering entries
// changes output. Overlapping keywords are handled by ordering the
// specific entry before the general one ("ultra marathon" before
// "marathon").
type Taxonomy []Category

// Category is one top-level category with its ordered subcategories.
type Category struct {
	Name          string        `yaml:"name"`
	Subcategories []Subcategory `yaml:"subcategories"`
}

// Subcategory carries the ordered keyword list matched against event text.
type Subcategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Default category returned when no keyword matches.
const (
	DefaultCategory    = "Other"
	DefaultSubcategory = "General"
)

// Load reads a taxonomy from a YAML file.
func Load(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(tax) == 0 {
		return nil, fmt.Errorf("taxonomy is empty: %s", path)
	}
	return tax, nil
}

// DefaultTaxonomy returns the built-in UK fitness/wellness/charity
// taxonomy used when no taxonomy file is configured.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		{
			Name: "Running",
			Subcategories: []Subcategory{
				{Name: "Road running", Keywords: []string{"10k", "5k", "10 mile", "half marathon", "fun run", "parkrun", "road race"}},
				{Name: "Trail running", Keywords: []string{"ultra marathon", "ultramarathon", "ultra", "trail run", "fell run", "cross country"}},
				{Name: "Road running", Keywords: []string{"marathon", "running", "runners", "jog"}},
			},
		},
		{
			Name: "Cycling",
			Subcategories: []Subcategory{
				{Name: "Sportive", Keywords: []string{"sportive", "gran fondo", "century ride"}},
				{Name: "Mountain biking", Keywords: []string{"mountain bike", "mtb", "downhill"}},
				{Name: "Road cycling", Keywords: []string{"cycle", "cycling", "bike ride", "ride london"}},
			},
		},
		{
			Name: "Swimming",
			Subcategories: []Subcategory{
				{Name: "Open water", Keywords: []string{"open water", "wild swim", "lake swim", "sea swim", "aquathlon"}},
				{Name: "Pool", Keywords: []string{"swimathon", "swim", "swimming"}},
			},
		},
		{
			Name: "Triathlon",
			Subcategories: []Subcategory{
				{Name: "Triathlon", Keywords: []string{"triathlon", "ironman", "duathlon", "tri "}},
			},
		},
		{
			Name: "Walking & Hiking",
			Subcategories: []Subcategory{
				{Name: "Challenge walk", Keywords: []string{"challenge walk", "trek", "night walk", "moonwalk", "peaks challenge"}},
				{Name: "Rambling", Keywords: []string{"walk", "walking", "hike", "hiking", "ramble"}},
			},
		},
		{
			Name: "Fitness",
			Subcategories: []Subcategory{
				{Name: "Obstacle course", Keywords: []string{"obstacle", "tough mudder", "mud run", "assault course"}},
				{Name: "Gym & classes", Keywords: []string{"bootcamp", "crossfit", "hiit", "spin class", "gym"}},
			},
		},
		{
			Name: "Wellness",
			Subcategories: []Subcategory{
				{Name: "Yoga & mindfulness", Keywords: []string{"yoga", "pilates", "meditation", "mindfulness", "breathwork"}},
				{Name: "Retreats", Keywords: []string{"retreat", "wellbeing", "wellness", "spa day"}},
			},
		},
		{
			Name: "Charity",
			Subcategories: []Subcategory{
				{Name: "Fundraising", Keywords: []string{"fundrais", "charity", "in aid of", "sponsored", "memory walk", "race for life"}},
			},
		},
	}
}
