package domain

// Party — политическая партия.
type Party struct {
	// ID — идентификатор, назначается БД (SERIAL).
	ID int64 `json:"id"`

	// Name — название партии.
	Name string `json:"name"`

	// Description — описание программы партии, может отсутствовать.
	Description *string `json:"description"`
}
