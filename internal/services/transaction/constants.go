package transaction

// Operation names used for metrics and logs
const (
	OperationMakeTransaction = "make_transaction"
	OperationGetTransactions = "get_transactions"
)
