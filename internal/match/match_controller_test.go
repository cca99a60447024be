package match_test

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
	"github.com/elite-fire/ledger/internal/match"
	"github.com/elite-fire/ledger/pkg/token"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&account.Account{}, &match.Match{}, &match.Stake{}))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpiryMinutes = 60

	r := gin.New()
	match.MatchRoutes(r.Group("/api"), db, cfg)
	return r, db, cfg
}

func seedPlayer(t *testing.T, db *gorm.DB, username string, canCreate bool) *account.Account {
	t.Helper()
	acct := &account.Account{
		Username:       username,
		Email:          "user." + username + "@gmail.com",
		PinHash:        "irrelevant",
		Role:           account.RolePlayer,
		Balance:        decimal.Zero,
		CanCreateMatch: canCreate,
	}
	require.NoError(t, db.Create(acct).Error)
	return acct
}

func bearerFor(t *testing.T, cfg *config.Config, acct *account.Account) string {
	t.Helper()
	jwt, err := token.GenerateJWT(acct.ID, string(acct.Role), cfg.JWT.Secret, cfg.JWT.ExpiryMinutes)
	require.NoError(t, err)
	return jwt
}

func postMatch(t *testing.T, r *gin.Engine, body interface{}, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req, err := http.NewRequest(http.MethodPost, "/api/matches", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearer)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func stakeInput(acct *account.Account, amount string) gin.H {
	return gin.H{"userId": acct.ID, "username": acct.Username, "betAmount": json.Number(amount)}
}

func TestCreateMatch(t *testing.T) {
	r, db, cfg := setupRouter(t)

	creator := seedPlayer(t, db, "CAPTAIN", true)
	opponent := seedPlayer(t, db, "RIVAL", false)

	w := postMatch(t, r, gin.H{
		"name":      "FRIDAY SHOWDOWN",
		"teamA":     []gin.H{stakeInput(creator, "50")},
		"teamB":     []gin.H{stakeInput(opponent, "50")},
		"creatorId": creator.ID,
	}, bearerFor(t, cfg, creator))
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, "FRIDAY SHOWDOWN", created["name"])
	require.Equal(t, "UNDECIDED", created["status"])
	require.Nil(t, created["winningTeam"])
	require.Len(t, created["teamA"], 1)
	require.Len(t, created["teamB"], 1)

	// Creation records a commitment only; nobody's balance moved.
	var creatorRow account.Account
	require.NoError(t, db.First(&creatorRow, "id = ?", creator.ID).Error)
	require.True(t, creatorRow.Balance.IsZero())
}

func TestCreateMatchAutoName(t *testing.T) {
	r, db, cfg := setupRouter(t)

	creator := seedPlayer(t, db, "CAPTAIN", true)
	opponent := seedPlayer(t, db, "RIVAL", false)

	w := postMatch(t, r, gin.H{
		"teamA":     []gin.H{stakeInput(creator, "50")},
		"teamB":     []gin.H{stakeInput(opponent, "50")},
		"creatorId": creator.ID,
	}, bearerFor(t, cfg, creator))
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created["name"])
}

func TestCreateMatchValidation(t *testing.T) {
	r, db, cfg := setupRouter(t)

	creator := seedPlayer(t, db, "CAPTAIN", true)
	opponent := seedPlayer(t, db, "RIVAL", false)
	bearer := bearerFor(t, cfg, creator)

	t.Run("empty roster", func(t *testing.T) {
		w := postMatch(t, r, gin.H{
			"teamA":     []gin.H{stakeInput(creator, "50")},
			"teamB":     []gin.H{},
			"creatorId": creator.ID,
		}, bearer)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-positive stake", func(t *testing.T) {
		w := postMatch(t, r, gin.H{
			"teamA":     []gin.H{stakeInput(creator, "0")},
			"teamB":     []gin.H{stakeInput(opponent, "50")},
			"creatorId": creator.ID,
		}, bearer)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("player on both sides", func(t *testing.T) {
		w := postMatch(t, r, gin.H{
			"teamA":     []gin.H{stakeInput(creator, "50")},
			"teamB":     []gin.H{stakeInput(creator, "50")},
			"creatorId": creator.ID,
		}, bearer)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateMatchRequiresPermission(t *testing.T) {
	r, db, cfg := setupRouter(t)

	nobody := seedPlayer(t, db, "NOBODY", false)
	opponent := seedPlayer(t, db, "RIVAL", false)

	w := postMatch(t, r, gin.H{
		"teamA":     []gin.H{stakeInput(nobody, "50")},
		"teamB":     []gin.H{stakeInput(opponent, "50")},
		"creatorId": nobody.ID,
	}, bearerFor(t, cfg, nobody))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateMatchCreatorMustBeCaller(t *testing.T) {
	r, db, cfg := setupRouter(t)

	creator := seedPlayer(t, db, "CAPTAIN", true)
	imposter := seedPlayer(t, db, "IMPOSTER", true)

	w := postMatch(t, r, gin.H{
		"teamA":     []gin.H{stakeInput(creator, "50")},
		"teamB":     []gin.H{stakeInput(imposter, "50")},
		"creatorId": creator.ID,
	}, bearerFor(t, cfg, imposter))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestListMatchesNewestFirst(t *testing.T) {
	r, db, _ := setupRouter(t)

	first := &match.Match{Name: "FIRST", Status: match.StatusUndecided, CreatedAt: 1000}
	second := &match.Match{Name: "SECOND", Status: match.StatusUndecided, CreatedAt: 2000}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	req, err := http.NewRequest(http.MethodGet, "/api/matches", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var matches []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
	require.Len(t, matches, 2)
	require.Equal(t, "SECOND", matches[0]["name"])
	require.Equal(t, "FIRST", matches[1]["name"])
}
