// Package classify maps event text to a (category, subcategory) pair
// via an ordered keyword taxonomy.
package classify

import "strings"

// Classifier performs first-hit keyword classification over a Taxonomy.
type Classifier struct {
	taxonomy Taxonomy
}

// NewClassifier creates a classifier over the given taxonomy.
func NewClassifier(taxonomy Taxonomy) *Classifier {
	return &Classifier{taxonomy: taxonomy}
}

// Classify concatenates title and description parts into one lowercase
// blob and walks the taxonomy in order; the first keyword found as a
// substring wins and its category and subcategory are returned
// together. Matching is substring, not whole-word. Classify never
// fails: when nothing matches it returns ("Other", "General").
func (c *Classifier) Classify(title string, descriptionParts []string) (string, string) {
	var b strings.Builder
	b.WriteString(title)
	for _, part := range descriptionParts {
		b.WriteString(" ")
		b.WriteString(part)
	}
	blob := strings.ToLower(b.String())

	for _, cat := range c.taxonomy {
		for _, sub := range cat.Subcategories {
			for _, kw := range sub.Keywords {
				if kw != "" && strings.Contains(blob, kw) {
					return cat.Name, sub.Name
				}
			}
		}
	}
	return DefaultCategory, DefaultSubcategory
}
