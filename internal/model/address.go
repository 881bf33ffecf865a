package model

import "time"

// AddressType labels an address.
type AddressType string

const (
	AddressTypeHome  AddressType = "home"
	AddressTypeWork  AddressType = "work"
	AddressTypeOther AddressType = "other"
)

// DefaultCountry is applied when an address omits its country.
const DefaultCountry = "India"

// Address is a saved mailing address owned by one user. At most one address
// per user has IsDefault set.
type Address struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	FullName     string      `json:"fullName"`
	Phone        string      `json:"phone"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 string      `json:"addressLine2,omitempty"`
	Landmark     string      `json:"landmark,omitempty"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Pincode      string      `json:"pincode"`
	Country      string      `json:"country"`
	AddressType  AddressType `json:"addressType"`
	IsDefault    bool        `json:"isDefault"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// AddressRequest is the create payload. Email identifies the owner.
type AddressRequest struct {
	Email        string      `json:"email" validate:"required,email"`
	FullName     string      `json:"fullName" validate:"required"`
	Phone        string      `json:"phone" validate:"required"`
	AddressLine1 string      `json:"addressLine1" validate:"required"`
	AddressLine2 string      `json:"addressLine2,omitempty"`
	Landmark     string      `json:"landmark,omitempty"`
	City         string      `json:"city" validate:"required"`
	State        string      `json:"state" validate:"required"`
	Pincode      string      `json:"pincode" validate:"required"`
	Country      string      `json:"country,omitempty"`
	AddressType  AddressType `json:"addressType,omitempty" validate:"omitempty,oneof=home work other"`
	IsDefault    bool        `json:"isDefault"`
}

// AddressUpdate is a partial update. Email identifies the owner.
type AddressUpdate struct {
	Email        string       `json:"email" validate:"required,email"`
	FullName     *string      `json:"fullName,omitempty"`
	Phone        *string      `json:"phone,omitempty"`
	AddressLine1 *string      `json:"addressLine1,omitempty"`
	AddressLine2 *string      `json:"addressLine2,omitempty"`
	Landmark     *string      `json:"landmark,omitempty"`
	City         *string      `json:"city,omitempty"`
	State        *string      `json:"state,omitempty"`
	Pincode      *string      `json:"pincode,omitempty"`
	Country      *string      `json:"country,omitempty"`
	AddressType  *AddressType `json:"addressType,omitempty" validate:"omitempty,oneof=home work other"`
	IsDefault    *bool        `json:"isDefault,omitempty"`
}

// Apply copies every present field of u onto a.
func (u AddressUpdate) Apply(a *Address) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.FullName, u.FullName)
	set(&a.Phone, u.Phone)
	set(&a.AddressLine1, u.AddressLine1)
	set(&a.AddressLine2, u.AddressLine2)
	set(&a.Landmark, u.Landmark)
	set(&a.City, u.City)
	set(&a.State, u.State)
	set(&a.Pincode, u.Pincode)
	set(&a.Country, u.Country)
	if u.AddressType != nil {
		a.AddressType = *u.AddressType
	}
	if u.IsDefault != nil {
		a.IsDefault = *u.IsDefault
	}
}
