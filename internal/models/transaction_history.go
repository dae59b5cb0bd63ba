package models

// TransactionHistory is the API view of a list of transactions.
type TransactionHistory struct {
	Transactions []Transaction `json:"transactions"`
}

// NewTransactionHistory never returns a nil slice so the JSON body is always a list.
func NewTransactionHistory(txs []*Transaction) TransactionHistory {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, *tx)
	}
	return TransactionHistory{Transactions: out}
}
