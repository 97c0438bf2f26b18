package models

// Treasury is the single row holding the sum of membership fees.
type Treasury struct {
	tableName struct{} `pg:"treasury"`

	ID    int    `json:"id" pg:",pk"`
	Total string `json:"total" pg:"type:numeric,notnull"`
}

const TreasuryID = 1
