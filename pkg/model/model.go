// Package model defines the glossary data model shared across the
// validation pipeline and the manifest merger: terms, sections,
// relationships, batches, and the closed enumerations they reference.
package model

import (
	"regexp"
	"time"
)

// Category is the domain category of a term. The set of valid values is
// closed; unknown categories are rejected at the decode boundary.
type Category string

// The 26 recognized categories. Matching is case-sensitive and exact.
const (
	CategoryNavigation         Category = "Navigation"
	CategoryWeather            Category = "Weather"
	CategoryCommunication      Category = "Communication"
	CategorySafety             Category = "Safety"
	CategoryPerformance        Category = "Performance"
	CategoryFlightControls     Category = "Flight Controls"
	CategoryNavigationSystems  Category = "Navigation Systems"
	CategoryEquipment          Category = "Equipment"
	CategoryProcedures         Category = "Procedures"
	CategoryElectricalSystems  Category = "Electrical Systems"
	CategoryElectrical         Category = "Electrical"
	CategoryPneumaticSystems   Category = "Pneumatic Systems"
	CategoryEnvironmental      Category = "Environmental Systems"
	CategoryIceProtection      Category = "Ice Protection Systems"
	CategoryCargoSystems       Category = "Cargo Systems"
	CategoryHydraulicSystems   Category = "Hydraulic Systems"
	CategoryCommSystems        Category = "Communication Systems"
	CategoryLightingSystems    Category = "Lighting Systems"
	CategoryCabinSystems       Category = "Cabin Systems"
	CategoryFireProtection     Category = "Fire Protection Systems"
	CategoryFlightInstruments  Category = "Flight Instruments"
	CategoryEngineSystems      Category = "Engine Systems"
	CategorySystemControls     Category = "System Controls"
	CategorySafetyEquipment    Category = "Safety Equipment"
	CategoryCommunications     Category = "Communications"
	CategoryLandingGear        Category = "Landing Gear"
)

// Categories returns all valid categories in declaration order.
func Categories() []Category {
	return []Category{
		CategoryNavigation, CategoryWeather, CategoryCommunication, CategorySafety,
		CategoryPerformance, CategoryFlightControls, CategoryNavigationSystems,
		CategoryEquipment, CategoryProcedures, CategoryElectricalSystems,
		CategoryElectrical, CategoryPneumaticSystems, CategoryEnvironmental,
		CategoryIceProtection, CategoryCargoSystems, CategoryHydraulicSystems,
		CategoryCommSystems, CategoryLightingSystems, CategoryCabinSystems,
		CategoryFireProtection, CategoryFlightInstruments, CategoryEngineSystems,
		CategorySystemControls, CategorySafetyEquipment, CategoryCommunications,
		CategoryLandingGear,
	}
}

var categorySet = func() map[Category]bool {
	m := make(map[Category]bool, 26)
	for _, c := range Categories() {
		m[c] = true
	}
	return m
}()

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	return categorySet[c]
}

// RelationType classifies a relationship between two terms. Relationship
// types are directional; adding broader on A→B does not imply narrower
// on B→A.
type RelationType string

const (
	RelationBroader  RelationType = "broader"
	RelationNarrower RelationType = "narrower"
	RelationRelated  RelationType = "related"
	RelationSeeAlso  RelationType = "seeAlso"
)

// RelationTypes returns the closed set of relationship types.
func RelationTypes() []RelationType {
	return []RelationType{RelationBroader, RelationNarrower, RelationRelated, RelationSeeAlso}
}

// Valid reports whether t is a recognized relationship type.
func (t RelationType) Valid() bool {
	switch t {
	case RelationBroader, RelationNarrower, RelationRelated, RelationSeeAlso:
		return true
	}
	return false
}

// SectionName identifies a named content section of a term. whatItIs is
// mandatory; the other four are optional. No other keys are permitted.
type SectionName string

const (
	SectionWhatItIs            SectionName = "whatItIs"
	SectionWhyItMatters        SectionName = "whyItMatters"
	SectionHowItWorks          SectionName = "howItWorks"
	SectionExample             SectionName = "example"
	SectionCommonMisconception SectionName = "commonMisconception"
)

// SectionNames returns the closed set of section names.
func SectionNames() []SectionName {
	return []SectionName{
		SectionWhatItIs, SectionWhyItMatters, SectionHowItWorks,
		SectionExample, SectionCommonMisconception,
	}
}

// Valid reports whether n is a recognized section name.
func (n SectionName) Valid() bool {
	switch n {
	case SectionWhatItIs, SectionWhyItMatters, SectionHowItWorks,
		SectionExample, SectionCommonMisconception:
		return true
	}
	return false
}

// Section is a single plain-text content block of a term.
type Section struct {
	Content string `json:"content"`
}

// Relationship points from the owning term to another term by id.
type Relationship struct {
	TermID      string       `json:"termId"`
	Type        RelationType `json:"type"`
	Description string       `json:"description,omitempty"`
}

// Term is the atomic glossary entry.
type Term struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Category      Category                `json:"category"`
	Sections      map[SectionName]Section `json:"sections"`
	Synonyms      []string                `json:"synonyms,omitempty"`
	Tags          []string                `json:"tags,omitempty"`
	Relationships []Relationship          `json:"relationships,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// Batch is an immutable, ordered collection of terms submitted for
// validation and merge.
type Batch struct {
	Terms []Term `json:"terms"`
}

// IDs returns the term ids in batch order.
func (b *Batch) IDs() []string {
	ids := make([]string, 0, len(b.Terms))
	for _, t := range b.Terms {
		ids = append(ids, t.ID)
	}
	return ids
}

// CategorySet returns the deduplicated categories present in the batch,
// in first-appearance order.
func (b *Batch) CategorySet() []Category {
	seen := make(map[Category]bool)
	var cats []Category
	for _, t := range b.Terms {
		if !seen[t.Category] {
			seen[t.Category] = true
			cats = append(cats, t.Category)
		}
	}
	return cats
}

// KebabCasePattern matches lowercase alphanumeric segments joined by
// single hyphens, with no leading, trailing, or consecutive hyphens.
const KebabCasePattern = `^[a-z0-9]+(-[a-z0-9]+)*$`

var kebabRe = regexp.MustCompile(KebabCasePattern)

// IsKebabCase reports whether s satisfies the identifier pattern.
func IsKebabCase(s string) bool {
	return kebabRe.MatchString(s)
}
