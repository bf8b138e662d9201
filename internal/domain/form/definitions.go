package form

// Definition parameterizes the intake pipeline for one form kind: which
// endpoint it answers, which fields it reads from the body, the subject
// line of the operator notification, and how to build an empty record.
// The four pipelines are this one shape instantiated four times.
type Definition struct {
	Kind    Kind
	Path    string
	Fields  []string
	Subject string
	New     func() Submission
}

// Definitions returns every form kind served by the API, in route order.
func Definitions() []Definition {
	return []Definition{
		{
			Kind:    KindBudget,
			Path:    "/api/orcamentos",
			Fields:  []string{"name", "email", "phone", "address", "district", "damage_type", "description", "urgency"},
			Subject: "Novo pedido de orçamento",
			New:     func() Submission { return &BudgetRequest{} },
		},
		{
			Kind:    KindInsurance,
			Path:    "/api/seguros",
			Fields:  []string{"name", "email", "phone", "address", "insurer", "policy_number", "description"},
			Subject: "Novo pedido de apoio com seguro",
			New:     func() Submission { return &InsuranceRequest{} },
		},
		{
			Kind:    KindStateAid,
			Path:    "/api/apoios-estado",
			Fields:  []string{"name", "email", "phone", "address", "tax_id", "aid_type", "description"},
			Subject: "Novo pedido de apoio do Estado",
			New:     func() Submission { return &StateAidRequest{} },
		},
		{
			Kind:    KindContractor,
			Path:    "/api/empreiteiros",
			Fields:  []string{"name", "email", "phone", "company", "tax_id", "district", "specialties", "years_experience"},
			Subject: "Novo registo de empreiteiro",
			New:     func() Submission { return &ContractorRegistration{} },
		},
	}
}

// Models returns the gorm models behind every form kind, for migrations.
func Models() []any {
	return []any{
		&BudgetRequest{},
		&InsuranceRequest{},
		&StateAidRequest{},
		&ContractorRegistration{},
	}
}
