package settlement

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/internal/common"
	"github.com/elite-fire/ledger/internal/match"
	"github.com/elite-fire/ledger/pkg/responses"
	"github.com/elite-fire/ledger/pkg/validator"
)

type SettlementController struct {
	engine *Engine
	config *config.Config
}

func NewSettlementController(engine *Engine, cfg *config.Config) *SettlementController {
	return &SettlementController{engine: engine, config: cfg}
}

type SettleRequest struct {
	WinningTeam match.Team `json:"winningTeam" binding:"required"`
}

type AdjustRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AdminID     string          `json:"adminId"`
}

// @Summary      Settle a match
// @Description  Declare the winning side and atomically apply all balance transfers, ledger entries and notifications.
// @Tags         Settlement
// @Accept       json
// @Produce      json
// @Param        id      path  string         true  "Match id"
// @Param        result  body  SettleRequest  true  "Winning team"
// @Success      200  {object}  match.Match
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /matches/{id}/settle [patch]
func (sc *SettlementController) SettleMatch(c *gin.Context) {
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, validator.BindingMessage(err))
		return
	}

	settled, err := sc.engine.Settle(c.Param("id"), req.WinningTeam)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Entity(c, http.StatusOK, settled)
}

// @Summary      Mark a loser's debt as paid
// @Tags         Settlement
// @Produce      json
// @Param        id      path  string  true  "Match id"
// @Param        userId  path  string  true  "Losing player's account id"
// @Success      200  {object}  responses.AckResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /matches/{id}/pay/{userId} [post]
func (sc *SettlementController) MarkPaid(c *gin.Context) {
	if err := sc.engine.MarkPaid(c.Param("id"), c.Param("userId")); err != nil {
		responses.Error(c, err)
		return
	}
	responses.Ack(c)
}

// @Summary      Adjust an account balance
// @Description  Signed admin correction, recorded as an ADMIN_ADJUST ledger entry. Works on blocked and deleted accounts.
// @Tags         Settlement
// @Accept       json
// @Produce      json
// @Param        id          path  string         true  "Account id"
// @Param        adjustment  body  AdjustRequest  true  "Signed amount and reason"
// @Success      200  {object}  account.Account
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id}/adjust [post]
func (sc *SettlementController) AdjustBalance(c *gin.Context) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, validator.BindingMessage(err))
		return
	}

	// The authenticated admin is authoritative; the body's adminId is a
	// display-cache artifact of the client.
	adminID, _ := common.GetAccountIDFromContext(c)

	adjusted, err := sc.engine.AdjustBalance(adminID, c.Param("id"), req.Amount, req.Description)
	if err != nil {
		responses.Error(c, err)
		return
	}
	responses.Entity(c, http.StatusOK, adjusted)
}
