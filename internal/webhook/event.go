// AngelaMos | 2026
// event.go

package webhook

import (
	"strings"
)

const (
	eventUserCreated = "user.created"
	eventUserUpdated = "user.updated"
	eventUserDeleted = "user.deleted"
)

type identityEvent struct {
	Type string           `json:"type"`
	Data identityUserData `json:"data"`
}

type identityUserData struct {
	ID                    string         `json:"id"`
	FirstName             string         `json:"first_name"`
	LastName              string         `json:"last_name"`
	EmailAddresses        []emailAddress `json:"email_addresses"`
	PrimaryEmailAddressID string         `json:"primary_email_address_id"`
	PhoneNumbers          []phoneNumber  `json:"phone_numbers"`
	PrimaryPhoneNumberID  string         `json:"primary_phone_number_id"`
}

type emailAddress struct {
	ID           string `json:"id"`
	EmailAddress string `json:"email_address"`
}

type phoneNumber struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
}

// primaryEmail follows the payload's designated-primary scheme, falling
// back to the first listed address.
func (d *identityUserData) primaryEmail() string {
	for _, e := range d.EmailAddresses {
		if e.ID == d.PrimaryEmailAddressID {
			return e.EmailAddress
		}
	}
	if len(d.EmailAddresses) > 0 {
		return d.EmailAddresses[0].EmailAddress
	}
	return ""
}

func (d *identityUserData) primaryPhone() *string {
	for _, p := range d.PhoneNumbers {
		if p.ID == d.PrimaryPhoneNumberID {
			phone := p.PhoneNumber
			return &phone
		}
	}
	if len(d.PhoneNumbers) > 0 {
		phone := d.PhoneNumbers[0].PhoneNumber
		return &phone
	}
	return nil
}

func (d *identityUserData) fullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
