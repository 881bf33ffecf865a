package model

import "time"

// CardType is the card network inferred from the card number.
type CardType string

const (
	CardTypeVisa       CardType = "visa"
	CardTypeMastercard CardType = "mastercard"
	CardTypeAmex       CardType = "amex"
	CardTypeOther      CardType = "other"
)

// ClassifyCard infers the card network from the leading digit.
func ClassifyCard(number string) CardType {
	if number == "" {
		return CardTypeOther
	}
	switch number[0] {
	case '4':
		return CardTypeVisa
	case '5', '2':
		return CardTypeMastercard
	case '3':
		return CardTypeAmex
	default:
		return CardTypeOther
	}
}

// LastFour returns the trailing four characters of number.
func LastFour(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

// PaymentMethod is a saved card. CardNumber only ever holds the last four
// digits.
type PaymentMethod struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	CardNumber     string    `json:"cardNumber"`
	CardHolderName string    `json:"cardHolderName"`
	ExpiryDate     string    `json:"expiryDate"`
	CardType       CardType  `json:"cardType"`
	IsDefault      bool      `json:"isDefault"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SetCardNumber stores the last four digits of number and reclassifies the card.
func (p *PaymentMethod) SetCardNumber(number string) {
	p.CardType = ClassifyCard(number)
	p.CardNumber = LastFour(number)
}

// PaymentMethodRequest is the create payload. Email identifies the owner.
type PaymentMethodRequest struct {
	Email          string `json:"email" validate:"required,email"`
	CardNumber     string `json:"cardNumber" validate:"required"`
	CardHolderName string `json:"cardHolderName" validate:"required"`
	ExpiryDate     string `json:"expiryDate" validate:"required"`
	IsDefault      bool   `json:"isDefault"`
}

// PaymentMethodUpdate is a partial update. Email identifies the owner.
type PaymentMethodUpdate struct {
	Email          string  `json:"email" validate:"required,email"`
	CardNumber     *string `json:"cardNumber,omitempty"`
	CardHolderName *string `json:"cardHolderName,omitempty"`
	ExpiryDate     *string `json:"expiryDate,omitempty"`
	IsDefault      *bool   `json:"isDefault,omitempty"`
}

// Apply copies every present field of u onto p. The card type is only
// recomputed when a new number is supplied.
func (u PaymentMethodUpdate) Apply(p *PaymentMethod) {
	if u.CardNumber != nil && *u.CardNumber != "" {
		p.SetCardNumber(*u.CardNumber)
	}
	if u.CardHolderName != nil {
		p.CardHolderName = *u.CardHolderName
	}
	if u.ExpiryDate != nil {
		p.ExpiryDate = *u.ExpiryDate
	}
	if u.IsDefault != nil {
		p.IsDefault = *u.IsDefault
	}
}
