package cv

import "fmt"

// Field names a scalar of the Document. Wire names match the JSON paths.
type Field string

const (
	FieldFullName              Field = "personal.fullName"
	FieldEmail                 Field = "personal.email"
	FieldPhone                 Field = "personal.phone"
	FieldAddress               Field = "personal.address"
	FieldLinkedIn              Field = "personal.linkedin"
	FieldWebsite               Field = "personal.website"
	FieldPhoto                 Field = "personal.photo"
	FieldDateOfBirth           Field = "personal.dateOfBirth"
	FieldPlaceOfBirth          Field = "personal.placeOfBirth"
	FieldSkills                Field = "skills"
	FieldProfessionalNarrative Field = "professionalNarrative"
	FieldVideoURL              Field = "videoUrl"
	FieldSignature             Field = "signature"
)

// Fields lists every scalar field.
func Fields() []Field {
	return []Field{
		FieldFullName,
		FieldEmail,
		FieldPhone,
		FieldAddress,
		FieldLinkedIn,
		FieldWebsite,
		FieldPhoto,
		FieldDateOfBirth,
		FieldPlaceOfBirth,
		FieldSkills,
		FieldProfessionalNarrative,
		FieldVideoURL,
		FieldSignature,
	}
}

// ParseField converts a wire name into a Field.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if f.target(&Document{}) == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

// target returns the string f addresses in d, or nil for an unknown field.
func (f Field) target(d *Document) *string {
	switch f {
	case FieldFullName:
		return &d.Personal.FullName
	case FieldEmail:
		return &d.Personal.Email
	case FieldPhone:
		return &d.Personal.Phone
	case FieldAddress:
		return &d.Personal.Address
	case FieldLinkedIn:
		return &d.Personal.LinkedIn
	case FieldWebsite:
		return &d.Personal.Website
	case FieldPhoto:
		return &d.Personal.Photo
	case FieldDateOfBirth:
		return &d.Personal.DateOfBirth
	case FieldPlaceOfBirth:
		return &d.Personal.PlaceOfBirth
	case FieldSkills:
		return &d.Skills
	case FieldProfessionalNarrative:
		return &d.ProfessionalNarrative
	case FieldVideoURL:
		return &d.VideoURL
	case FieldSignature:
		return &d.Signature
	default:
		return nil
	}
}

// Value returns the current value of f in d.
func (d Document) Value(f Field) string {
	if p := f.target(&d); p != nil {
		return *p
	}
	return ""
}

func (d *Document) setField(f Field, value string) bool {
	p := f.target(d)
	if p == nil {
		return false
	}
	return assign(p, value)
}

func assign(dst *string, value string) bool {
	if *dst == value {
		return false
	}
	*dst = value
	return true
}
