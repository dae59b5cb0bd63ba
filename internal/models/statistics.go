package models

// Statistics aggregates the transaction log for administrators.
type Statistics struct {
	NumberOfTransactions int   `json:"number_of_transactions" yaml:"number_of_transactions"`
	Profit               int64 `json:"profit" yaml:"profit"`
}
