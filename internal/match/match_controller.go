package match

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/internal/account"
	"github.com/elite-fire/ledger/internal/common"
	"github.com/elite-fire/ledger/pkg/apperrors"
	"github.com/elite-fire/ledger/pkg/responses"
	"github.com/elite-fire/ledger/pkg/validator"
)

type MatchController struct {
	repo     MatchRepository
	accounts account.AccountRepository
	config   *config.Config
}

func NewMatchController(repo MatchRepository, accounts account.AccountRepository, cfg *config.Config) *MatchController {
	return &MatchController{repo: repo, accounts: accounts, config: cfg}
}

type StakeInput struct {
	UserID    string          `json:"userId" binding:"required"`
	Username  string          `json:"username" binding:"required"`
	BetAmount decimal.Decimal `json:"betAmount"`
}

type CreateMatchRequest struct {
	Name      string       `json:"name"`
	TeamA     []StakeInput `json:"teamA" binding:"required"`
	TeamB     []StakeInput `json:"teamB" binding:"required"`
	CreatorID string       `json:"creatorId" binding:"required"`
}

// @Summary      Create a match
// @Description  Record a wagering match between two rosters. Stakes are a commitment for later settlement; no funds move at creation.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Param        match  body  CreateMatchRequest  true  "Match rosters"
// @Success      201  {object}  Match
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, validator.BindingMessage(err))
		return
	}

	if err := mc.authorizeCreator(c, req.CreatorID); err != nil {
		responses.Error(c, err)
		return
	}
	if err := validateRosters(req.TeamA, req.TeamB); err != nil {
		responses.Error(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = fmt.Sprintf("CLASH-%s", strings.ToUpper(uuid.NewString()[:6]))
	}

	m := &Match{
		Name:   name,
		Status: StatusUndecided,
		Stakes: append(stakesFor(TeamA, req.TeamA), stakesFor(TeamB, req.TeamB)...),
	}
	if err := mc.repo.Create(m); err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not create match"))
		return
	}

	responses.Entity(c, http.StatusCreated, m)
}

// @Summary      List matches
// @Tags         Matches
// @Produce      json
// @Success      200  {array}  Match
// @Router       /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	matches, err := mc.repo.List()
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not list matches"))
		return
	}
	responses.Entity(c, http.StatusOK, matches)
}

// @Summary      Get a match
// @Tags         Matches
// @Produce      json
// @Param        id  path  string  true  "Match id"
// @Success      200  {object}  Match
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	m, err := mc.repo.GetByID(c.Param("id"))
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not load match"))
		return
	}
	if m == nil {
		responses.Error(c, apperrors.NotFoundf("Match not found"))
		return
	}
	responses.Entity(c, http.StatusOK, m)
}

// authorizeCreator checks that the caller is the declared creator (or an
// admin acting on their behalf) and holds match-creation permission.
func (mc *MatchController) authorizeCreator(c *gin.Context, creatorID string) error {
	callerID, err := common.GetAccountIDFromContext(c)
	if err != nil {
		return apperrors.Authorizationf("No authenticated caller")
	}
	if callerID != creatorID && !common.IsAdmin(c) {
		return apperrors.Authorizationf("Creator does not match the authenticated account")
	}

	creator, err := mc.accounts.GetByID(creatorID)
	if err != nil {
		return apperrors.Internalf(err, "Could not load creator account")
	}
	if creator == nil || creator.IsDeleted {
		return apperrors.NotFoundf("Creator account not found")
	}
	if !creator.IsAdmin() && !creator.CanCreateMatch {
		return apperrors.Authorizationf("Account lacks match-creation permission")
	}
	return nil
}

func validateRosters(teamA, teamB []StakeInput) error {
	if len(teamA) == 0 || len(teamB) == 0 {
		return apperrors.Validationf("Both rosters must have at least one player")
	}
	seen := make(map[string]bool)
	for _, s := range append(append([]StakeInput{}, teamA...), teamB...) {
		if !s.BetAmount.IsPositive() {
			return apperrors.Validationf("Stake for %s must be greater than zero", s.Username)
		}
		if seen[s.UserID] {
			return apperrors.Validationf("Player %s appears more than once in the match", s.Username)
		}
		seen[s.UserID] = true
	}
	return nil
}

func stakesFor(team Team, inputs []StakeInput) []Stake {
	stakes := make([]Stake, 0, len(inputs))
	for _, in := range inputs {
		stakes = append(stakes, Stake{
			Team:      team,
			UserID:    in.UserID,
			Username:  in.Username,
			BetAmount: in.BetAmount,
		})
	}
	return stakes
}
