package account_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/internal/account"
	"github.com/elite-fire/ledger/internal/ledger"
	"github.com/elite-fire/ledger/internal/match"
	"github.com/elite-fire/ledger/internal/notification"
	"github.com/elite-fire/ledger/pkg/token"
	"github.com/elite-fire/ledger/utils"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiryMinutes = 60
	return cfg
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&account.Account{},
		&match.Match{}, &match.Stake{},
		&ledger.Transaction{},
		&notification.Notification{},
	))

	cfg := testConfig()
	r := gin.New()
	account.AccountRoutes(r.Group("/api"), db, cfg)
	return r, db, cfg
}

func createAccount(t *testing.T, db *gorm.DB, username, email, pin string, role account.Role) *account.Account {
	t.Helper()
	pinHash, err := utils.HashPin(pin)
	require.NoError(t, err)
	acct := &account.Account{
		Username: username,
		Email:    email,
		PinHash:  pinHash,
		Role:     role,
		Balance:  decimal.Zero,
	}
	require.NoError(t, db.Create(acct).Error)
	return acct
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAccountValidation(t *testing.T) {
	r, _, _ := setupRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"lowercase username", gin.H{"username": "noshout", "email": "a@gmail.com", "pin": "123456"}},
		{"bad email domain", gin.H{"username": "ALPHA", "email": "a@yahoo.com", "pin": "123456"}},
		{"short pin", gin.H{"username": "ALPHA", "email": "a@gmail.com", "pin": "123"}},
		{"alphabetic pin", gin.H{"username": "ALPHA", "email": "a@gmail.com", "pin": "abcdef"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/users", tc.body, "")
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateAccountDefaults(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/users",
		gin.H{"username": "NEW_BLOOD", "email": "new.blood@gmail.com", "pin": "123456"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "PLAYER", created["role"])
	require.EqualValues(t, 0, created["balance"])
	require.Equal(t, false, created["canCreateMatch"])
	_, hasPin := created["pinHash"]
	require.False(t, hasPin)
}

func TestCreateAccountConflictIncludesSoftDeleted(t *testing.T) {
	r, db, _ := setupRouter(t)

	ghost := createAccount(t, db, "GHOST", "ghost@gmail.com", "123456", account.RolePlayer)
	require.NoError(t, db.Model(ghost).Update("is_deleted", true).Error)

	w := doJSON(t, r, http.MethodPost, "/api/users",
		gin.H{"username": "REBORN", "email": "ghost@gmail.com", "pin": "654321"}, "")
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateAccountRoleAssignment(t *testing.T) {
	r, db, cfg := setupRouter(t)
	admin := createAccount(t, db, "ADMIN", "admin@gmail.com", "444488", account.RoleAdmin)
	player := createAccount(t, db, "GRUNT", "grunt@gmail.com", "123456", account.RolePlayer)

	adminToken, err := token.GenerateJWT(admin.ID, string(admin.Role), cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	require.NoError(t, err)
	playerToken, err := token.GenerateJWT(player.ID, string(player.Role), cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	require.NoError(t, err)

	body := func(username, email string) gin.H {
		return gin.H{"username": username, "email": email, "pin": "123456", "role": "ADMIN"}
	}

	t.Run("anonymous caller cannot assign a role", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users", body("USURPER", "usurper@gmail.com"), "")
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("player cannot assign a role", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users", body("USURPER", "usurper@gmail.com"), playerToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin mints an admin", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/users", body("DEPUTY", "deputy@gmail.com"), adminToken)
		require.Equal(t, http.StatusCreated, w.Code)

		var created map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		require.Equal(t, "ADMIN", created["role"])
	})
}

func TestLogin(t *testing.T) {
	r, db, _ := setupRouter(t)
	createAccount(t, db, "ALPHA", "alpha@gmail.com", "123456", account.RolePlayer)

	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": "alpha@gmail.com", "pin": "123456"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])
	require.Equal(t, "ALPHA", resp["username"])

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": "alpha@gmail.com", "pin": "000000"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBlockedAndDeleted(t *testing.T) {
	r, db, _ := setupRouter(t)

	blocked := createAccount(t, db, "BLOCKED_ONE", "blocked@gmail.com", "123456", account.RolePlayer)
	require.NoError(t, db.Model(blocked).Update("is_blocked", true).Error)
	deleted := createAccount(t, db, "GONE_ONE", "gone@gmail.com", "123456", account.RolePlayer)
	require.NoError(t, db.Model(deleted).Update("is_deleted", true).Error)

	w := doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": "blocked@gmail.com", "pin": "123456"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "blocked")

	w = doJSON(t, r, http.MethodPost, "/api/login", gin.H{"email": "gone@gmail.com", "pin": "123456"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "deactivated")
}

func TestUpdateAccountRequiresAdmin(t *testing.T) {
	r, db, cfg := setupRouter(t)

	player := createAccount(t, db, "ALPHA", "alpha@gmail.com", "123456", account.RolePlayer)
	playerToken, err := token.GenerateJWT(player.ID, string(player.Role), cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, "/api/users/"+player.ID, gin.H{"isBlocked": true}, playerToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/users/"+player.ID, gin.H{"isBlocked": true}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateAccountAdminActions(t *testing.T) {
	r, db, cfg := setupRouter(t)

	admin := createAccount(t, db, "OVERSEER", "boss@gmail.com", "444488", account.RoleAdmin)
	player := createAccount(t, db, "ALPHA", "alpha@gmail.com", "123456", account.RolePlayer)
	adminToken, err := token.GenerateJWT(admin.ID, string(admin.Role), cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPatch, "/api/users/"+player.ID,
		gin.H{"isBlocked": true, "canCreateMatch": true}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var updated map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, true, updated["isBlocked"])
	require.Equal(t, true, updated["canCreateMatch"])

	// PIN reset validates the six-digit shape.
	w = doJSON(t, r, http.MethodPatch, "/api/users/"+player.ID, gin.H{"pin": "12"}, adminToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/users/"+player.ID, gin.H{"pin": "999999"}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	var row account.Account
	require.NoError(t, db.First(&row, "id = ?", player.ID).Error)
	require.True(t, utils.CheckPin(row.PinHash, "999999"))
}

func TestSoftDeleteBlockedByUnpaidDebts(t *testing.T) {
	r, db, cfg := setupRouter(t)

	admin := createAccount(t, db, "OVERSEER", "boss@gmail.com", "444488", account.RoleAdmin)
	debtor := createAccount(t, db, "DEBTOR_ONE", "debtor@gmail.com", "123456", account.RolePlayer)
	winner := createAccount(t, db, "WINNER_ONE", "winner@gmail.com", "123456", account.RolePlayer)
	adminToken, err := token.GenerateJWT(admin.ID, string(admin.Role), cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	require.NoError(t, err)

	winning := match.TeamA
	m := &match.Match{
		Name:        "SETTLED GRUDGE",
		Status:      match.StatusSettled,
		WinningTeam: &winning,
		Stakes: []match.Stake{
			{Team: match.TeamA, UserID: winner.ID, Username: winner.Username, BetAmount: decimal.RequireFromString("50")},
			{Team: match.TeamB, UserID: debtor.ID, Username: debtor.Username, BetAmount: decimal.RequireFromString("50")},
		},
	}
	require.NoError(t, db.Create(m).Error)

	w := doJSON(t, r, http.MethodPatch, "/api/users/"+debtor.ID, gin.H{"isDeleted": true}, adminToken)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "unpaid debts")

	// Once the debt is cleared the retirement goes through.
	require.NoError(t, db.Model(&match.Stake{}).
		Where("match_id = ? AND user_id = ?", m.ID, debtor.ID).
		Update("paid", true).Error)

	w = doJSON(t, r, http.MethodPatch, "/api/users/"+debtor.ID, gin.H{"isDeleted": true}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestListAccountsIncludesSoftDeleted(t *testing.T) {
	r, db, _ := setupRouter(t)

	createAccount(t, db, "ALPHA", "alpha@gmail.com", "123456", account.RolePlayer)
	gone := createAccount(t, db, "GONE_ONE", "gone@gmail.com", "123456", account.RolePlayer)
	require.NoError(t, db.Model(gone).Update("is_deleted", true).Error)

	w := doJSON(t, r, http.MethodGet, "/api/users", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var accounts []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &accounts))
	require.Len(t, accounts, 2)
}
