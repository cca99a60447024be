package ledger

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/internal/common"
	"github.com/elite-fire/ledger/pkg/apperrors"
	"github.com/elite-fire/ledger/pkg/responses"
)

type LedgerController struct {
	repo   LedgerRepository
	config *config.Config
}

func NewLedgerController(repo LedgerRepository, cfg *config.Config) *LedgerController {
	return &LedgerController{repo: repo, config: cfg}
}

// @Summary      Transaction history for one account
// @Description  Newest first. Callers may read their own history; admins may read anyone's.
// @Tags         Ledger
// @Produce      json
// @Param        userId  path  string  true  "Account id"
// @Success      200  {array}  Transaction
// @Failure      403  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{userId} [get]
func (lc *LedgerController) GetTransactions(c *gin.Context) {
	userID := c.Param("userId")

	callerID, err := common.GetAccountIDFromContext(c)
	if err != nil {
		responses.Error(c, apperrors.Authorizationf("No authenticated caller"))
		return
	}
	if callerID != userID && !common.IsAdmin(c) {
		responses.Error(c, apperrors.Authorizationf("Cannot read another account's ledger"))
		return
	}

	transactions, err := lc.repo.ListByUser(userID)
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not list transactions"))
		return
	}
	responses.Entity(c, http.StatusOK, transactions)
}

// @Summary      Full transaction ledger
// @Description  Admin-only view of every ledger entry, newest first.
// @Tags         Ledger
// @Produce      json
// @Success      200  {array}  Transaction
// @Security     BearerAuth
// @Router       /transactions [get]
func (lc *LedgerController) GetAllTransactions(c *gin.Context) {
	transactions, err := lc.repo.ListAll()
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not list transactions"))
		return
	}
	responses.Entity(c, http.StatusOK, transactions)
}
