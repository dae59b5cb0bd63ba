package handlers

import (
	"strconv"

	"btcwallet/internal/middleware"
	"btcwallet/internal/models"
	"btcwallet/internal/services/transaction"
	"btcwallet/internal/utils"
	"btcwallet/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

type TransactionHandler struct {
	transactionService transaction.Service
	errors             *ErrorFormatter
}

func NewTransactionHandler(transactionService transaction.Service, errors *ErrorFormatter) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		errors:             errors,
	}
}

// transferInput accepts amount as a JSON number or string.
type transferInput struct {
	Source      string         `json:"source"`
	Destination string         `json:"destination"`
	Amount      flexibleAmount `json:"amount"`
}

type flexibleAmount string

func (j *flexibleAmount) UnmarshalJSON(b []byte) error {
	if s, err := strconv.Unquote(string(b)); err == nil {
		*j = flexibleAmount(s)
		return nil
	}
	*j = flexibleAmount(b)
	return nil
}

// MakeTransaction reads its parameters from the query string, falling back
// to a JSON body for whatever the query leaves out.
func (h *TransactionHandler) MakeTransaction(c *fiber.Ctx) error {
	var body transferInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return invalidRequest(c, "malformed request body")
		}
	}

	source := fiberutils.CopyString(c.Query("source", body.Source))
	destination := fiberutils.CopyString(c.Query("destination", body.Destination))
	rawAmount := c.Query("amount", string(body.Amount))

	v := validation.New()
	v.Required("source", source)
	v.Required("destination", destination)
	amount := v.Int64("amount", rawAmount)
	if !v.Valid() {
		return invalidRequest(c, v.Error())
	}

	resp, err := h.transactionService.MakeTransaction(c.UserContext(), transaction.MakeTransactionRequest{
		APIKey:      middleware.APIKey(c),
		Source:      source,
		Destination: destination,
		Amount:      amount,
	})
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return utils.Created(c, resp)
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	return h.history(c, transaction.GetTransactionsRequest{APIKey: middleware.APIKey(c)})
}

func (h *TransactionHandler) GetWalletTransactions(c *fiber.Ctx) error {
	address := fiberutils.CopyString(c.Params("address"))
	return h.history(c, transaction.GetTransactionsRequest{
		APIKey:        middleware.APIKey(c),
		WalletAddress: &address,
	})
}

func (h *TransactionHandler) history(c *fiber.Ctx, req transaction.GetTransactionsRequest) error {
	txs, err := h.transactionService.GetTransactions(c.UserContext(), req)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return utils.Success(c, models.NewTransactionHistory(txs))
}
