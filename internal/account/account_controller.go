package account

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/internal/common"
	"github.com/elite-fire/ledger/pkg/apperrors"
	"github.com/elite-fire/ledger/pkg/responses"
	"github.com/elite-fire/ledger/pkg/token"
	"github.com/elite-fire/ledger/pkg/validator"
	"github.com/elite-fire/ledger/utils"
)

type AccountController struct {
	repo   AccountRepository
	config *config.Config
}

func NewAccountController(repo AccountRepository, cfg *config.Config) *AccountController {
	return &AccountController{repo: repo, config: cfg}
}

type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	Pin   string `json:"pin" binding:"required"`
}

// LoginResponse is the account plus its session token.
type LoginResponse struct {
	*Account
	Token string `json:"token"`
}

type CreateAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Pin      string `json:"pin" binding:"required"`
	Role     Role   `json:"role"`
}

// UpdateAccountRequest carries the partial PATCH fields the dashboard
// sends: pin reset, block/unblock, match-creation permission, soft delete.
type UpdateAccountRequest struct {
	Pin            *string `json:"pin"`
	IsBlocked      *bool   `json:"isBlocked"`
	CanCreateMatch *bool   `json:"canCreateMatch"`
	IsDeleted      *bool   `json:"isDeleted"`
}

// @Summary      Log in with email and PIN
// @Description  Authenticate a non-deleted, non-blocked account and issue a session token.
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object}  LoginResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /login [post]
func (ac *AccountController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, validator.BindingMessage(err))
		return
	}

	acct, err := ac.repo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Login failed"))
		return
	}
	if acct == nil || !utils.CheckPin(acct.PinHash, req.Pin) {
		responses.Error(c, apperrors.Authf("Invalid credentials"))
		return
	}
	if acct.IsDeleted {
		responses.Error(c, apperrors.Authf("This account has been deactivated"))
		return
	}
	if acct.IsBlocked {
		responses.Error(c, apperrors.Authf("This account is blocked"))
		return
	}

	sessionToken, err := token.GenerateJWT(acct.ID, string(acct.Role), ac.config.JWT.Secret, ac.config.JWT.ExpiryMinutes)
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not issue session token"))
		return
	}

	responses.Entity(c, http.StatusOK, LoginResponse{Account: acct, Token: sessionToken})
}

// @Summary      List accounts
// @Description  Return every account, soft-deleted ones included.
// @Tags         Accounts
// @Produce      json
// @Success      200  {array}  Account
// @Router       /users [get]
func (ac *AccountController) ListAccounts(c *gin.Context) {
	accounts, err := ac.repo.List()
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not list accounts"))
		return
	}
	responses.Entity(c, http.StatusOK, accounts)
}

// @Summary      Register an account
// @Description  Create a player account. Username must be uppercase letters and underscores, email a gmail address, PIN exactly six digits.
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        account  body  CreateAccountRequest  true  "Registration details"
// @Success      201  {object}  Account
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /users [post]
func (ac *AccountController) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, validator.BindingMessage(err))
		return
	}

	// The codename rule is enforced, not normalized: a lowercase username is
	// rejected rather than upcased on the caller's behalf.
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !validator.ValidUsername(req.Username) {
		responses.Error(c, apperrors.Validationf("Codename must be UPPERCASE & UNDERSCORE only"))
		return
	}
	if !validator.ValidEmail(req.Email) {
		responses.Error(c, apperrors.Validationf("Invalid identity: use @gmail.com or @gmail.in"))
		return
	}
	if !validator.ValidPin(req.Pin) {
		responses.Error(c, apperrors.Validationf("PIN must be exactly 6 digits"))
		return
	}

	role := RolePlayer
	if req.Role != "" && req.Role != RolePlayer {
		// Only an authenticated admin may mint another admin.
		if req.Role != RoleAdmin || !common.IsAdmin(c) {
			responses.Error(c, apperrors.Authorizationf("Only an administrator can assign roles"))
			return
		}
		role = RoleAdmin
	}

	// Email conflicts include soft-deleted rows to prevent credential reuse.
	if existing, err := ac.repo.GetByEmail(req.Email); err != nil {
		responses.Error(c, apperrors.Internalf(err, "Registration failed"))
		return
	} else if existing != nil {
		responses.Error(c, apperrors.Conflictf("An account with this email already exists"))
		return
	}
	if existing, err := ac.repo.GetByUsername(req.Username); err != nil {
		responses.Error(c, apperrors.Internalf(err, "Registration failed"))
		return
	} else if existing != nil {
		responses.Error(c, apperrors.Conflictf("An account with this codename already exists"))
		return
	}

	pinHash, err := utils.HashPin(req.Pin)
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not secure PIN"))
		return
	}

	acct := &Account{
		Username: req.Username,
		Email:    req.Email,
		PinHash:  pinHash,
		Role:     role,
		Balance:  decimal.Zero,
	}
	if err := ac.repo.Create(acct); err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not create account"))
		return
	}

	responses.Entity(c, http.StatusCreated, acct)
}

// @Summary      Update an account
// @Description  Admin-only partial update: PIN reset, block/unblock, match-creation permission, soft delete.
// @Tags         Accounts
// @Accept       json
// @Produce      json
// @Param        id       path  string                true  "Account id"
// @Param        updates  body  UpdateAccountRequest  true  "Fields to change"
// @Success      200  {object}  Account
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /users/{id} [patch]
func (ac *AccountController) UpdateAccount(c *gin.Context) {
	id := c.Param("id")

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, validator.BindingMessage(err))
		return
	}

	acct, err := ac.repo.GetByID(id)
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not load account"))
		return
	}
	if acct == nil {
		responses.Error(c, apperrors.NotFoundf("Account not found"))
		return
	}

	fields := map[string]interface{}{}

	if req.Pin != nil {
		if !validator.ValidPin(*req.Pin) {
			responses.Error(c, apperrors.Validationf("PIN must be exactly 6 digits"))
			return
		}
		pinHash, err := utils.HashPin(*req.Pin)
		if err != nil {
			responses.Error(c, apperrors.Internalf(err, "Could not secure PIN"))
			return
		}
		fields["pin_hash"] = pinHash
	}
	if req.IsBlocked != nil {
		fields["is_blocked"] = *req.IsBlocked
	}
	if req.CanCreateMatch != nil {
		fields["can_create_match"] = *req.CanCreateMatch
	}
	if req.IsDeleted != nil {
		if *req.IsDeleted && !acct.IsDeleted {
			debts, err := ac.repo.CountUnpaidDebts(id)
			if err != nil {
				responses.Error(c, apperrors.Internalf(err, "Could not check outstanding debts"))
				return
			}
			if debts > 0 {
				responses.Error(c, apperrors.Conflictf("Account has unpaid debts outstanding and cannot be retired"))
				return
			}
		}
		fields["is_deleted"] = *req.IsDeleted
	}

	if len(fields) == 0 {
		responses.Error(c, apperrors.Validationf("No updatable fields in request"))
		return
	}

	if err := ac.repo.UpdateFields(id, fields); err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not update account"))
		return
	}

	updated, err := ac.repo.GetByID(id)
	if err != nil || updated == nil {
		responses.Error(c, apperrors.Internalf(err, "Could not reload account"))
		return
	}
	responses.Entity(c, http.StatusOK, updated)
}
