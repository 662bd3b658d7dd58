package handlers

import (
	"net/http"

	"github.com/automation-market/marketplace/internal/domain"
	"go.uber.org/zap"
)

type WalletHandler struct {
	walletService domain.WalletService
	logger        *zap.Logger
}

func NewWalletHandler(walletService domain.WalletService, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

type withdrawRequest struct {
	Amount string `json:"amount"`
}

func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wallet, err := h.walletService.GetWallet(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "failed to get wallet")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, wallet)
}

func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	txs, err := h.walletService.GetTransactions(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err, "failed to get wallet transactions")
		return
	}

	if len(txs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, txs)
}

// QuoteDeposit рассчитывает комиссию пополнения без списания
func (h *WalletHandler) QuoteDeposit(w http.ResponseWriter, r *http.Request) {
	var req domain.DepositInput
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	quote, err := h.walletService.QuoteDeposit(req.Method, req.Amount)
	if err != nil {
		writeError(w, h.logger, err, "failed to quote deposit")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, quote)
}

func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req domain.DepositInput
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	result, err := h.walletService.Deposit(r.Context(), userID, req)
	if err != nil {
		writeError(w, h.logger, err, "failed to deposit")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, result)
}

func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req withdrawRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	tx, err := h.walletService.Withdraw(r.Context(), userID, req.Amount)
	if err != nil {
		writeError(w, h.logger, err, "failed to withdraw")
		return
	}

	writeJSON(w, h.logger, http.StatusAccepted, tx)
}
