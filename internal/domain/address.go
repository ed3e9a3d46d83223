package domain

// Address Model
type Address struct {
	ID         uint   `gorm:"primaryKey"`        // Primary key
	UserID     uint   `gorm:"index;not null"`    // Owner
	Street     string `gorm:"size:255;not null"` // Street line
	City       string `gorm:"size:100;not null"` // City
	State      string `gorm:"size:100;not null"` // State or region
	Country    string `gorm:"size:100;not null"` // Country
	PostalCode string `gorm:"size:20;not null"`  // Postal code
}

// AddressPatch carries a partial address update. Nil fields are left unchanged.
type AddressPatch struct {
	Street     *string
	City       *string
	State      *string
	Country    *string
	PostalCode *string
}

// Columns returns the column/value pairs that the patch sets.
func (p AddressPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Street != nil {
		cols["street"] = *p.Street
	}
	if p.City != nil {
		cols["city"] = *p.City
	}
	if p.State != nil {
		cols["state"] = *p.State
	}
	if p.Country != nil {
		cols["country"] = *p.Country
	}
	if p.PostalCode != nil {
		cols["postal_code"] = *p.PostalCode
	}
	return cols
}
