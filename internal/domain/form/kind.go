package form

// Kind identifies one of the submission categories accepted by the service.
type Kind string

const (
	KindBudget     Kind = "orcamento"
	KindInsurance  Kind = "seguro"
	KindStateAid   Kind = "apoio-estado"
	KindContractor Kind = "empreiteiro"
)

func (k Kind) String() string {
	return string(k)
}
