package domain

import "time"

type Category string

const (
	CategoryWork     Category = "Work"
	CategoryBusiness Category = "Business"
	CategoryPersonal Category = "Personal"
	CategoryMyCard   Category = "My Card"
)

type Contact struct {
	ID        string   `gorm:"primaryKey" json:"id"`
	UserID    string   `gorm:"index" json:"userId"`
	Name      string   `json:"name"`
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Email     string   `gorm:"index" json:"email"`
	Phone     string   `json:"phone"`
	Category  Category `json:"category"`
	Notes     string   `json:"notes,omitempty"`
	Website   string   `json:"website,omitempty"`
	Address   string   `json:"address,omitempty"`
	AvatarURL string   `json:"avatar,omitempty"`
	Pinned    bool     `json:"pinned"`
	// Stored as ISO-8601 on the wire; time.Time marshals to RFC 3339
	// which is what the old front end round-tripped.
	DateAdded time.Time `json:"dateAdded"`
}

// Draft is a contact parsed from scanned/imported text: everything but
// the identity fields the store assigns.
type Draft struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Category Category `json:"category"`
	Notes    string   `json:"notes"`
	Website  string   `json:"website"`
	Address  string   `json:"address"`
}
