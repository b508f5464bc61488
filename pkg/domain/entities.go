// Package domain defines the record entities, collection kinds, and
// persistence contracts used by librarycore.
package domain

// Kind identifies the type of record stored in one collection.
type Kind string

// Supported collection kinds, one per resource family.
const (
	// KindBook identifies a book record.
	KindBook Kind = "book"
	// KindReader identifies a library reader record.
	KindReader Kind = "reader"
	// KindStaff identifies a staff member record.
	KindStaff Kind = "staff"
)

// DisplayName returns the capitalized entity name used in API messages.
func (k Kind) DisplayName() string {
	switch k {
	case KindBook:
		return "Book"
	case KindReader:
		return "Reader"
	case KindStaff:
		return "Staff"
	default:
		return string(k)
	}
}

// Resource returns the URL path segment for the kind's resource family.
func (k Kind) Resource() string {
	switch k {
	case KindBook:
		return "books"
	case KindReader:
		return "readers"
	case KindStaff:
		return "staff"
	default:
		return string(k)
	}
}

// RequiredFields lists the JSON fields a request payload must carry for the
// kind. Payloads that omit any of them are rejected instead of decoding the
// absent fields to zero values.
func (k Kind) RequiredFields() []string {
	switch k {
	case KindBook:
		return []string{"id", "title", "author", "year"}
	case KindReader:
		return []string{"id", "name", "membership_id"}
	case KindStaff:
		return []string{"id", "name", "position"}
	default:
		return nil
	}
}

// Bucket returns the durable snapshot bucket name for the kind. Bucket names
// double as file basenames for the filesystem backend.
func (k Kind) Bucket() string {
	switch k {
	case KindBook:
		return "library_data"
	case KindReader:
		return "readers_data"
	case KindStaff:
		return "staff_data"
	default:
		return string(k)
	}
}

// Record constrains the entity types a collection store can hold. Identifiers
// are unique within one collection; collections share no id namespace.
type Record interface {
	RecordID() int
}

// Book is a catalogued title.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// RecordID implements Record.
func (b Book) RecordID() int { return b.ID }

// Reader is a registered library member.
type Reader struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	MembershipID string `json:"membership_id"`
}

// RecordID implements Record.
func (r Reader) RecordID() int { return r.ID }

// Staff is an employed staff member.
type Staff struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

// RecordID implements Record.
func (s Staff) RecordID() int { return s.ID }
