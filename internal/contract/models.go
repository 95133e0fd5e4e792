// Package contract holds the repair contract record kept in the archive.
package contract

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepairContract is the record the application edits and archives.
type RepairContract struct {
	ID                  uuid.UUID            `json:"id" toml:"id"`
	Date                Time                 `json:"date" toml:"date"`
	Info                Info                 `json:"info" toml:"info"`
	ClientContactEvents []ClientContactEvent `json:"client_contact_events" toml:"client_contact_events"`
	ReplacementDevice   *ReplacementDevice   `json:"replacement_device" toml:"replacement_device,omitempty"`
	FinalProtocol       *FinalProtocol       `json:"final_protocol" toml:"final_protocol,omitempty"`
}

// Info describes the device brought in and what is expected of the repair.
type Info struct {
	Customer                   Customer        `json:"customer" toml:"customer"`
	ExpectedRepairTimeWorkDays int64           `json:"expected_repair_time_work_days" toml:"expected_repair_time_work_days"`
	PrognosisPrice             decimal.Decimal `json:"prognosis_price" toml:"prognosis_price"`
	Description                []string        `json:"description" toml:"description"`
	Notes                      string          `json:"notes" toml:"notes"`
	VisibleDamages             []string        `json:"visible_damages" toml:"visible_damages"`
}

// Customer is either a private person or a company. A company is a
// customer with a tax number.
type Customer struct {
	Name      string `json:"name" toml:"name"`
	TaxNumber string `json:"tax_number" toml:"tax_number,omitempty"`
	Phone     string `json:"phone" toml:"phone"`
}

// IsCompany reports whether the customer is a company.
func (c Customer) IsCompany() bool { return c.TaxNumber != "" }

// ClientContactEvent records one contact with the customer.
type ClientContactEvent struct {
	Date Time   `json:"date" toml:"date"`
	Note string `json:"note" toml:"note"`
}

// ReplacementDevice is lent to the customer for the duration of the repair.
type ReplacementDevice struct {
	Device Device    `json:"device" toml:"device"`
	ID     uuid.UUID `json:"id" toml:"id"`
}

type Device struct {
	ModelName    string `json:"model_name" toml:"model_name"`
	SerialNumber string `json:"serial_number" toml:"serial_number"`
}

// FinalProtocol closes a contract.
type FinalProtocol struct {
	Date             Time              `json:"date" toml:"date"`
	FinalPrice       decimal.Decimal   `json:"final_price" toml:"final_price"`
	PerformedRepairs []PerformedRepair `json:"performed_repairs" toml:"performed_repairs"`
	PartsReplaced    []ReplacementPart `json:"parts_replaced" toml:"parts_replaced"`
}

type PerformedRepair struct {
	ID    string          `json:"id" toml:"id"`
	Name  string          `json:"name" toml:"name"`
	Price decimal.Decimal `json:"price" toml:"price"`
}

type ReplacementPart struct {
	ID    string          `json:"id" toml:"id"`
	Name  string          `json:"name" toml:"name"`
	Price decimal.Decimal `json:"price" toml:"price"`
}

// New returns a blank contract with a fresh id, dated now.
func New() RepairContract {
	return RepairContract{
		ID:                  uuid.New(),
		Date:                Now(),
		ClientContactEvents: []ClientContactEvent{},
		Info: Info{
			Description:    []string{},
			VisibleDamages: []string{},
		},
	}
}

// NewReplacementDevice returns a replacement device with its own id.
func NewReplacementDevice() ReplacementDevice {
	return ReplacementDevice{ID: uuid.New()}
}

// NewFinalProtocol returns an empty protocol dated now.
func NewFinalProtocol() FinalProtocol {
	return FinalProtocol{
		Date:             Now(),
		PerformedRepairs: []PerformedRepair{},
		PartsReplaced:    []ReplacementPart{},
	}
}

// NewContactEvent returns a contact event dated now.
func NewContactEvent(note string) ClientContactEvent {
	return ClientContactEvent{Date: Now(), Note: note}
}

// Total sums the prices of the performed repairs and replaced parts.
func (p FinalProtocol) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range p.PerformedRepairs {
		total = total.Add(r.Price)
	}
	for _, part := range p.PartsReplaced {
		total = total.Add(part.Price)
	}
	return total
}
