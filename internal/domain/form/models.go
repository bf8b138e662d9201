package form

import (
	"time"

	"gorm.io/datatypes"
)

// Field is one label/value pair of a submission, in declaration order.
// Used to build the notification body; values may be empty.
type Field struct {
	Name  string
	Value string
}

// Submission is implemented by the four form-kind models. A submission is
// created once on intake and never updated.
type Submission interface {
	Kind() Kind
	// RecordID returns the identifier assigned by the store, 0 before persistence.
	RecordID() uint64
	// Assign copies the kind's field subset out of the parsed request body.
	// Missing keys become empty strings.
	Assign(values map[string]string)
	SetAttachments(files []Attachment)
	AttachmentRecords() []Attachment
	// Fields returns the kind-specific fields in a stable order.
	Fields() []Field
}

// BudgetRequest is a homeowner's request for a repair quote.
type BudgetRequest struct {
	ID          uint64                           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                           `json:"name"`
	Email       string                           `json:"email"`
	Phone       string                           `json:"phone"`
	Address     string                           `json:"address"`
	District    string                           `json:"district"`
	DamageType  string                           `json:"damage_type"`
	Description string                           `json:"description"`
	Urgency     string                           `json:"urgency"`
	Attachments datatypes.JSONType[[]Attachment] `json:"attachments"`
	CreatedAt   time.Time                        `gorm:"autoCreateTime" json:"created_at"`
}

func (BudgetRequest) TableName() string { return "budget_requests" }

func (b *BudgetRequest) Kind() Kind       { return KindBudget }
func (b *BudgetRequest) RecordID() uint64 { return b.ID }

func (b *BudgetRequest) Assign(values map[string]string) {
	b.Name = values["name"]
	b.Email = values["email"]
	b.Phone = values["phone"]
	b.Address = values["address"]
	b.District = values["district"]
	b.DamageType = values["damage_type"]
	b.Description = values["description"]
	b.Urgency = values["urgency"]
}

func (b *BudgetRequest) SetAttachments(files []Attachment) {
	b.Attachments = datatypes.NewJSONType(files)
}

func (b *BudgetRequest) AttachmentRecords() []Attachment {
	return b.Attachments.Data()
}

func (b *BudgetRequest) Fields() []Field {
	return []Field{
		{"name", b.Name},
		{"email", b.Email},
		{"phone", b.Phone},
		{"address", b.Address},
		{"district", b.District},
		{"damage_type", b.DamageType},
		{"description", b.Description},
		{"urgency", b.Urgency},
	}
}

// InsuranceRequest is a request for help with an insurance claim.
type InsuranceRequest struct {
	ID           uint64                           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string                           `json:"name"`
	Email        string                           `json:"email"`
	Phone        string                           `json:"phone"`
	Address      string                           `json:"address"`
	Insurer      string                           `json:"insurer"`
	PolicyNumber string                           `json:"policy_number"`
	Description  string                           `json:"description"`
	Attachments  datatypes.JSONType[[]Attachment] `json:"attachments"`
	CreatedAt    time.Time                        `gorm:"autoCreateTime" json:"created_at"`
}

func (InsuranceRequest) TableName() string { return "insurance_requests" }

func (i *InsuranceRequest) Kind() Kind       { return KindInsurance }
func (i *InsuranceRequest) RecordID() uint64 { return i.ID }

func (i *InsuranceRequest) Assign(values map[string]string) {
	i.Name = values["name"]
	i.Email = values["email"]
	i.Phone = values["phone"]
	i.Address = values["address"]
	i.Insurer = values["insurer"]
	i.PolicyNumber = values["policy_number"]
	i.Description = values["description"]
}

func (i *InsuranceRequest) SetAttachments(files []Attachment) {
	i.Attachments = datatypes.NewJSONType(files)
}

func (i *InsuranceRequest) AttachmentRecords() []Attachment {
	return i.Attachments.Data()
}

func (i *InsuranceRequest) Fields() []Field {
	return []Field{
		{"name", i.Name},
		{"email", i.Email},
		{"phone", i.Phone},
		{"address", i.Address},
		{"insurer", i.Insurer},
		{"policy_number", i.PolicyNumber},
		{"description", i.Description},
	}
}

// StateAidRequest is a request for help applying to state support programs.
type StateAidRequest struct {
	ID          uint64                           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string                           `json:"name"`
	Email       string                           `json:"email"`
	Phone       string                           `json:"phone"`
	Address     string                           `json:"address"`
	TaxID       string                           `gorm:"column:tax_id" json:"tax_id"`
	AidType     string                           `json:"aid_type"`
	Description string                           `json:"description"`
	Attachments datatypes.JSONType[[]Attachment] `json:"attachments"`
	CreatedAt   time.Time                        `gorm:"autoCreateTime" json:"created_at"`
}

func (StateAidRequest) TableName() string { return "state_aid_requests" }

func (s *StateAidRequest) Kind() Kind       { return KindStateAid }
func (s *StateAidRequest) RecordID() uint64 { return s.ID }

func (s *StateAidRequest) Assign(values map[string]string) {
	s.Name = values["name"]
	s.Email = values["email"]
	s.Phone = values["phone"]
	s.Address = values["address"]
	s.TaxID = values["tax_id"]
	s.AidType = values["aid_type"]
	s.Description = values["description"]
}

func (s *StateAidRequest) SetAttachments(files []Attachment) {
	s.Attachments = datatypes.NewJSONType(files)
}

func (s *StateAidRequest) AttachmentRecords() []Attachment {
	return s.Attachments.Data()
}

func (s *StateAidRequest) Fields() []Field {
	return []Field{
		{"name", s.Name},
		{"email", s.Email},
		{"phone", s.Phone},
		{"address", s.Address},
		{"tax_id", s.TaxID},
		{"aid_type", s.AidType},
		{"description", s.Description},
	}
}

// ContractorRegistration is a contractor offering repair services.
type ContractorRegistration struct {
	ID              uint64                           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string                           `json:"name"`
	Email           string                           `json:"email"`
	Phone           string                           `json:"phone"`
	Company         string                           `json:"company"`
	TaxID           string                           `gorm:"column:tax_id" json:"tax_id"`
	District        string                           `json:"district"`
	Specialties     string                           `json:"specialties"`
	YearsExperience string                           `json:"years_experience"`
	Attachments     datatypes.JSONType[[]Attachment] `json:"attachments"`
	CreatedAt       time.Time                        `gorm:"autoCreateTime" json:"created_at"`
}

func (ContractorRegistration) TableName() string { return "contractor_registrations" }

func (c *ContractorRegistration) Kind() Kind       { return KindContractor }
func (c *ContractorRegistration) RecordID() uint64 { return c.ID }

func (c *ContractorRegistration) Assign(values map[string]string) {
	c.Name = values["name"]
	c.Email = values["email"]
	c.Phone = values["phone"]
	c.Company = values["company"]
	c.TaxID = values["tax_id"]
	c.District = values["district"]
	c.Specialties = values["specialties"]
	c.YearsExperience = values["years_experience"]
}

func (c *ContractorRegistration) SetAttachments(files []Attachment) {
	c.Attachments = datatypes.NewJSONType(files)
}

func (c *ContractorRegistration) AttachmentRecords() []Attachment {
	return c.Attachments.Data()
}

func (c *ContractorRegistration) Fields() []Field {
	return []Field{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"company", c.Company},
		{"tax_id", c.TaxID},
		{"district", c.District},
		{"specialties", c.Specialties},
		{"years_experience", c.YearsExperience},
	}
}
