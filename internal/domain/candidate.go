package domain

// Candidate — кандидат на выборах.
//
// Кандидат может не состоять ни в одной партии (PartyID == nil).
// Ссылка на партию проверяется только внешним ключом БД.
type Candidate struct {
	// ID — идентификатор, назначается БД (SERIAL).
	ID int64 `json:"id"`

	// FirstName, LastName — имя и фамилия.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// IndustryConnected — связан ли кандидат с отраслевым лобби.
	IndustryConnected bool `json:"industry_connected"`

	// PartyID — ссылка на партию.
	PartyID *int64 `json:"party_id"`

	// PartyName — имя партии из LEFT JOIN, заполняется только при чтении.
	PartyName *string `json:"party_name,omitempty"`
}
