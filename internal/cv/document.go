// Package cv owns the CV document: its data model, the Store that mutates it
// and persists it after a quiet period, and the HTTP surface over the Store.
package cv

import (
	"maps"
	"slices"
)

// SocialLink is a profile on an external platform.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// PersonalDetails is the singleton contact block of a Document. Photo holds a
// data URL.
type PersonalDetails struct {
	FullName     string       `json:"fullName"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Address      string       `json:"address"`
	LinkedIn     string       `json:"linkedin"`
	Website      string       `json:"website"`
	Photo        string       `json:"photo,omitempty"`
	DateOfBirth  string       `json:"dateOfBirth,omitempty"`
	PlaceOfBirth string       `json:"placeOfBirth,omitempty"`
	SocialLinks  []SocialLink `json:"socialLinks"`
}

// Experience is one position. Responsibilities are free text, one "-" bullet
// per line by convention.
type Experience struct {
	ID               string `json:"id"`
	JobTitle         string `json:"jobTitle"`
	Company          string `json:"company"`
	Location         string `json:"location"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Responsibilities string `json:"responsibilities"`
}

type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Details     string `json:"details"`
}

type Project struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Technologies string `json:"technologies"`
	Link         string `json:"link"`
	Description  string `json:"description"`
}

type Certification struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	IssuingOrganization string `json:"issuingOrganization"`
	Date                string `json:"date"`
}

// Document is the complete CV. The Store is its only mutator; everything else
// works on copies returned by Store.Document.
type Document struct {
	Personal              PersonalDetails                  `json:"personal"`
	Experience            []Experience                     `json:"experience"`
	Education             []Education                      `json:"education"`
	Projects              []Project                        `json:"projects"`
	Certifications        []Certification                  `json:"certifications"`
	Skills                string                           `json:"skills"`
	ProfessionalNarrative string                           `json:"professionalNarrative"`
	VideoURL              string                           `json:"videoUrl"`
	Signature             string                           `json:"signature,omitempty"`
	SectionOrder          []SectionID                      `json:"sectionOrder"`
	SectionStyles         map[StylableSection]SectionStyle `json:"sectionStyles"`
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	c := d
	c.Personal.SocialLinks = slices.Clone(d.Personal.SocialLinks)
	c.Experience = slices.Clone(d.Experience)
	c.Education = slices.Clone(d.Education)
	c.Projects = slices.Clone(d.Projects)
	c.Certifications = slices.Clone(d.Certifications)
	c.SectionOrder = slices.Clone(d.SectionOrder)
	c.SectionStyles = maps.Clone(d.SectionStyles)
	c.normalize()
	return c
}

// StyleFor returns the style configured for section, or DefaultStyle.
func (d Document) StyleFor(section StylableSection) SectionStyle {
	if s, ok := d.SectionStyles[section]; ok {
		return s
	}
	return DefaultStyle()
}

// normalize replaces nil collections with empty ones so a Document always
// serializes with arrays and objects, never null.
func (d *Document) normalize() {
	if d.Personal.SocialLinks == nil {
		d.Personal.SocialLinks = []SocialLink{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.SectionOrder == nil {
		d.SectionOrder = []SectionID{}
	}
	if d.SectionStyles == nil {
		d.SectionStyles = map[StylableSection]SectionStyle{}
	}
}
