package cv

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Collection names one of the ordered item sequences of a Document.
type Collection string

const (
	CollectionExperience     Collection = "experience"
	CollectionEducation      Collection = "education"
	CollectionProjects       Collection = "projects"
	CollectionCertifications Collection = "certifications"
)

// ParseCollection converts a wire name into a Collection.
func ParseCollection(s string) (Collection, error) {
	switch c := Collection(s); c {
	case CollectionExperience, CollectionEducation, CollectionProjects, CollectionCertifications:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
}

// ItemField names a field of a collection item.
type ItemField string

const (
	ItemJobTitle            ItemField = "jobTitle"
	ItemCompany             ItemField = "company"
	ItemLocation            ItemField = "location"
	ItemStartDate           ItemField = "startDate"
	ItemEndDate             ItemField = "endDate"
	ItemResponsibilities    ItemField = "responsibilities"
	ItemDegree              ItemField = "degree"
	ItemInstitution         ItemField = "institution"
	ItemDetails             ItemField = "details"
	ItemName                ItemField = "name"
	ItemTechnologies        ItemField = "technologies"
	ItemLink                ItemField = "link"
	ItemDescription         ItemField = "description"
	ItemIssuingOrganization ItemField = "issuingOrganization"
	ItemDate                ItemField = "date"
)

// ParseItemField converts a wire name into an ItemField of collection c.
func ParseItemField(c Collection, s string) (ItemField, error) {
	f := ItemField(s)

	var ok bool
	switch c {
	case CollectionExperience:
		ok = (&Experience{}).field(f) != nil
	case CollectionEducation:
		ok = (&Education{}).field(f) != nil
	case CollectionProjects:
		ok = (&Project{}).field(f) != nil
	case CollectionCertifications:
		ok = (&Certification{}).field(f) != nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}

	if !ok {
		return "", fmt.Errorf("%w: %s.%s", ErrUnknownField, c, s)
	}
	return f, nil
}

func (e Experience) key() string    { return e.ID }
func (e Education) key() string     { return e.ID }
func (p Project) key() string       { return p.ID }
func (c Certification) key() string { return c.ID }

func (e *Experience) field(f ItemField) *string {
	switch f {
	case ItemJobTitle:
		return &e.JobTitle
	case ItemCompany:
		return &e.Company
	case ItemLocation:
		return &e.Location
	case ItemStartDate:
		return &e.StartDate
	case ItemEndDate:
		return &e.EndDate
	case ItemResponsibilities:
		return &e.Responsibilities
	}
	return nil
}

func (e *Education) field(f ItemField) *string {
	switch f {
	case ItemDegree:
		return &e.Degree
	case ItemInstitution:
		return &e.Institution
	case ItemLocation:
		return &e.Location
	case ItemStartDate:
		return &e.StartDate
	case ItemEndDate:
		return &e.EndDate
	case ItemDetails:
		return &e.Details
	}
	return nil
}

func (p *Project) field(f ItemField) *string {
	switch f {
	case ItemName:
		return &p.Name
	case ItemTechnologies:
		return &p.Technologies
	case ItemLink:
		return &p.Link
	case ItemDescription:
		return &p.Description
	}
	return nil
}

func (c *Certification) field(f ItemField) *string {
	switch f {
	case ItemName:
		return &c.Name
	case ItemIssuingOrganization:
		return &c.IssuingOrganization
	case ItemDate:
		return &c.Date
	}
	return nil
}

type keyed interface {
	key() string
}

type fielded[T any] interface {
	*T
	field(f ItemField) *string
}

func newID() string {
	return uuid.NewString()
}

func indexOf[T keyed](items []T, id string) int {
	return slices.IndexFunc(items, func(it T) bool { return it.key() == id })
}

func updateItem[T keyed, P fielded[T]](items []T, id string, f ItemField, value string) bool {
	i := indexOf(items, id)
	if i < 0 {
		return false
	}
	p := P(&items[i]).field(f)
	if p == nil {
		return false
	}
	return assign(p, value)
}

func removeItem[T keyed](items []T, id string) ([]T, bool) {
	i := indexOf(items, id)
	if i < 0 {
		return items, false
	}
	return slices.Delete(items, i, i+1), true
}

// moveItem relocates items[from] to index to, keeping the relative order of
// every other item. Out of range indices leave items unchanged.
func moveItem[T any](items []T, from, to int) ([]T, bool) {
	n := len(items)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return items, false
	}
	item := items[from]
	items = slices.Delete(items, from, from+1)
	return slices.Insert(items, to, item), true
}

func (d *Document) addItem(c Collection, id string) bool {
	switch c {
	case CollectionExperience:
		d.Experience = append(d.Experience, Experience{ID: id})
	case CollectionEducation:
		d.Education = append(d.Education, Education{ID: id})
	case CollectionProjects:
		d.Projects = append(d.Projects, Project{ID: id})
	case CollectionCertifications:
		d.Certifications = append(d.Certifications, Certification{ID: id})
	default:
		return false
	}
	return true
}

func (d *Document) updateItem(c Collection, id string, f ItemField, value string) bool {
	switch c {
	case CollectionExperience:
		return updateItem(d.Experience, id, f, value)
	case CollectionEducation:
		return updateItem(d.Education, id, f, value)
	case CollectionProjects:
		return updateItem(d.Projects, id, f, value)
	case CollectionCertifications:
		return updateItem(d.Certifications, id, f, value)
	}
	return false
}

func (d *Document) removeItem(c Collection, id string) bool {
	var ok bool
	switch c {
	case CollectionExperience:
		d.Experience, ok = removeItem(d.Experience, id)
	case CollectionEducation:
		d.Education, ok = removeItem(d.Education, id)
	case CollectionProjects:
		d.Projects, ok = removeItem(d.Projects, id)
	case CollectionCertifications:
		d.Certifications, ok = removeItem(d.Certifications, id)
	}
	return ok
}

func (d *Document) moveItem(c Collection, from, to int) bool {
	var ok bool
	switch c {
	case CollectionExperience:
		d.Experience, ok = moveItem(d.Experience, from, to)
	case CollectionEducation:
		d.Education, ok = moveItem(d.Education, from, to)
	case CollectionProjects:
		d.Projects, ok = moveItem(d.Projects, from, to)
	case CollectionCertifications:
		d.Certifications, ok = moveItem(d.Certifications, from, to)
	}
	return ok
}

// Len returns the number of items in collection c.
func (d Document) Len(c Collection) int {
	switch c {
	case CollectionExperience:
		return len(d.Experience)
	case CollectionEducation:
		return len(d.Education)
	case CollectionProjects:
		return len(d.Projects)
	case CollectionCertifications:
		return len(d.Certifications)
	}
	return 0
}

// IDs returns the item ids of collection c in order.
func (d Document) IDs(c Collection) []string {
	switch c {
	case CollectionExperience:
		return ids(d.Experience)
	case CollectionEducation:
		return ids(d.Education)
	case CollectionProjects:
		return ids(d.Projects)
	case CollectionCertifications:
		return ids(d.Certifications)
	}
	return nil
}

func ids[T keyed](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.key()
	}
	return out
}

// AssignIDs mints a fresh id for every collection item of doc, replacing any
// id the item carried. Documents produced outside the Store, such as parsed
// imports, pass through AssignIDs before LoadDocument.
func AssignIDs(doc *Document) {
	for i := range doc.Experience {
		doc.Experience[i].ID = newID()
	}
	for i := range doc.Education {
		doc.Education[i].ID = newID()
	}
	for i := range doc.Projects {
		doc.Projects[i].ID = newID()
	}
	for i := range doc.Certifications {
		doc.Certifications[i].ID = newID()
	}
}

// EnsureIDs keeps every item id that is set and unique within its
// collection. Items with an empty id, or one already used by an earlier item
// of the same collection, get a fresh id.
func EnsureIDs(doc *Document) {
	uniqueIDs(len(doc.Experience), func(i int) *string { return &doc.Experience[i].ID })
	uniqueIDs(len(doc.Education), func(i int) *string { return &doc.Education[i].ID })
	uniqueIDs(len(doc.Projects), func(i int) *string { return &doc.Projects[i].ID })
	uniqueIDs(len(doc.Certifications), func(i int) *string { return &doc.Certifications[i].ID })
}

func uniqueIDs(n int, id func(i int) *string) {
	seen := make(map[string]bool, n)
	for i := range n {
		p := id(i)
		if *p == "" || seen[*p] {
			*p = newID()
		}
		seen[*p] = true
	}
}
