package cv

import "fmt"

// SectionID names an independently ordered block of the rendered CV.
type SectionID string

const (
	SectionPersonal              SectionID = "personal"
	SectionExperience            SectionID = "experience"
	SectionEducation             SectionID = "education"
	SectionSkills                SectionID = "skills"
	SectionProjects              SectionID = "projects"
	SectionCertifications        SectionID = "certifications"
	SectionVideo                 SectionID = "video"
	SectionProfessionalNarrative SectionID = "professionalNarrative"
	SectionJobSearch             SectionID = "jobSearch"
	SectionPortfolio             SectionID = "portfolio"
	SectionSignature             SectionID = "signature"
)

// Sections lists every recognized section identifier.
func Sections() []SectionID {
	return []SectionID{
		SectionPersonal,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionProjects,
		SectionCertifications,
		SectionVideo,
		SectionProfessionalNarrative,
		SectionJobSearch,
		SectionPortfolio,
		SectionSignature,
	}
}

// DefaultSectionOrder is the order of a new Document.
func DefaultSectionOrder() []SectionID {
	return []SectionID{
		SectionPersonal,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionProjects,
		SectionCertifications,
		SectionVideo,
		SectionProfessionalNarrative,
		SectionJobSearch,
	}
}

// StylableSection is a section that accepts a SectionStyle.
type StylableSection string

const (
	StyleExperience            StylableSection = "experience"
	StyleEducation             StylableSection = "education"
	StyleSkills                StylableSection = "skills"
	StyleProjects              StylableSection = "projects"
	StyleCertifications        StylableSection = "certifications"
	StyleProfessionalNarrative StylableSection = "professionalNarrative"
)

// ParseStylableSection converts a wire name into a StylableSection.
func ParseStylableSection(s string) (StylableSection, error) {
	switch v := StylableSection(s); v {
	case StyleExperience, StyleEducation, StyleSkills,
		StyleProjects, StyleCertifications, StyleProfessionalNarrative:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

type Border string

const (
	BorderNone   Border = "none"
	BorderTop    Border = "top"
	BorderBottom Border = "bottom"
	BorderFull   Border = "full"
)

type Spacing string

const (
	SpacingSmall  Spacing = "small"
	SpacingMedium Spacing = "medium"
	SpacingLarge  Spacing = "large"
)

// Background colors offered by the editor.
const (
	BackgroundTransparent = "transparent"
	BackgroundStone       = "#f5f5f4"
	BackgroundSky         = "#f0f9ff"
	BackgroundSlate       = "#f1f5f9"
)

// SectionStyle is a presentation hint for one section.
type SectionStyle struct {
	Border          Border  `json:"border"`
	Spacing         Spacing `json:"spacing"`
	BackgroundColor string  `json:"backgroundColor"`
}

// DefaultStyle is applied to sections without an explicit style.
func DefaultStyle() SectionStyle {
	return SectionStyle{
		Border:          BorderNone,
		Spacing:         SpacingMedium,
		BackgroundColor: BackgroundTransparent,
	}
}

// Validate reports whether every attribute is one of the offered values.
func (s SectionStyle) Validate() error {
	switch s.Border {
	case BorderNone, BorderTop, BorderBottom, BorderFull:
	default:
		return fmt.Errorf("%w: border %q", ErrInvalidStyle, s.Border)
	}

	switch s.Spacing {
	case SpacingSmall, SpacingMedium, SpacingLarge:
	default:
		return fmt.Errorf("%w: spacing %q", ErrInvalidStyle, s.Spacing)
	}

	switch s.BackgroundColor {
	case BackgroundTransparent, BackgroundStone, BackgroundSky, BackgroundSlate:
	default:
		return fmt.Errorf("%w: background %q", ErrInvalidStyle, s.BackgroundColor)
	}

	return nil
}
