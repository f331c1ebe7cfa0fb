package vault

import "time"

// Item is one stored credential. EncryptedPassword is client-side ciphertext
// and is never inspected here.
type Item struct {
	ID                string
	OwnerID           string
	Title             string
	Username          string
	EncryptedPassword string
	URL               string
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Draft holds the caller-supplied fields of a new item.
type Draft struct {
	Title             string
	Username          string
	EncryptedPassword string
	URL               string
	Notes             string
}

// Patch is a partial update. Nil fields keep their stored value.
type Patch struct {
	Title             *string
	Username          *string
	EncryptedPassword *string
	URL               *string
	Notes             *string
}

// Apply returns item with every non-nil patch field copied over.
func (p Patch) Apply(item Item) Item {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Username != nil {
		item.Username = *p.Username
	}
	if p.EncryptedPassword != nil {
		item.EncryptedPassword = *p.EncryptedPassword
	}
	if p.URL != nil {
		item.URL = *p.URL
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
	return item
}
