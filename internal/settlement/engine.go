package settlement

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/elite-fire/ledger/internal/account"
	"github.com/elite-fire/ledger/internal/ledger"
	"github.com/elite-fire/ledger/internal/match"
	"github.com/elite-fire/ledger/internal/notification"
	"github.com/elite-fire/ledger/pkg/apperrors"
)

// Engine resolves wagers into balance changes, ledger entries, debt flags
// and notifications. Every operation runs inside one database transaction:
// either all of its writes apply or none do.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Settle declares the winning side of a match and applies all balance
// effects. The status flip is a guarded update, so a concurrent second
// settle of the same match fails with a state error instead of
// double-applying transfers.
func (e *Engine) Settle(matchID string, winning match.Team) (*match.Match, error) {
	if winning != match.TeamA && winning != match.TeamB {
		return nil, apperrors.Validationf("Winning team must be A or B")
	}

	var settled *match.Match
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var m match.Match
		if err := tx.Preload("Stakes").First(&m, "id = ?", matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("Match not found")
			}
			return apperrors.Internalf(err, "Could not load match")
		}

		res := tx.Model(&match.Match{}).
			Where("id = ? AND status = ?", matchID, match.StatusUndecided).
			Updates(map[string]interface{}{"status": match.StatusSettled, "winning_team": winning})
		if res.Error != nil {
			return apperrors.Internalf(res.Error, "Could not settle match")
		}
		if res.RowsAffected == 0 {
			return apperrors.Statef("Match is already settled")
		}

		losing := match.TeamB
		if winning == match.TeamB {
			losing = match.TeamA
		}
		winners := m.Roster(winning)
		losers := m.Roster(losing)

		losingPool := decimal.Zero
		for _, p := range losers {
			losingPool = losingPool.Add(p.BetAmount)
		}

		for _, p := range losers {
			if err := ledger.Append(tx, p.UserID, p.BetAmount.Neg(), ledger.TypeLoss,
				fmt.Sprintf("Lost stake on %s", m.Name)); err != nil {
				return apperrors.Internalf(err, "Could not record loss")
			}
			if err := addToBalance(tx, p.UserID, p.BetAmount.Neg()); err != nil {
				return err
			}
			if err := notification.Enqueue(tx, p.UserID,
				fmt.Sprintf("Match %q settled: you lost %s. Your stake is due to the admin.",
					m.Name, p.BetAmount.StringFixed(2))); err != nil {
				return apperrors.Internalf(err, "Could not enqueue notification")
			}
		}

		winningStakes := make([]decimal.Decimal, len(winners))
		for i, w := range winners {
			winningStakes[i] = w.BetAmount
		}
		payouts := Payouts(winningStakes, losingPool)

		for i, w := range winners {
			if err := ledger.Append(tx, w.UserID, payouts[i], ledger.TypeWin,
				fmt.Sprintf("Winnings from %s", m.Name)); err != nil {
				return apperrors.Internalf(err, "Could not record win")
			}
			if err := addToBalance(tx, w.UserID, payouts[i]); err != nil {
				return err
			}
			// Winners have nothing left to pay; their match counts as
			// settled immediately.
			if err := incrementMatchesPaid(tx, w.UserID); err != nil {
				return err
			}
			if err := notification.Enqueue(tx, w.UserID,
				fmt.Sprintf("Match %q settled: you won %s.", m.Name, payouts[i].StringFixed(2))); err != nil {
				return apperrors.Internalf(err, "Could not enqueue notification")
			}
		}

		m.Status = match.StatusSettled
		m.WinningTeam = &winning
		m.SplitRosters()
		settled = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// MarkPaid clears one losing player's debt on a settled match. The flip is
// guarded so the same debt cannot be cleared twice.
func (e *Engine) MarkPaid(matchID, userID string) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var m match.Match
		if err := tx.Preload("Stakes").First(&m, "id = ?", matchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("Match not found")
			}
			return apperrors.Internalf(err, "Could not load match")
		}
		if m.Status != match.StatusSettled || m.WinningTeam == nil {
			return apperrors.Statef("Match is not settled yet")
		}

		var stake *match.Stake
		for i := range m.Stakes {
			s := &m.Stakes[i]
			if s.UserID == userID && s.Team != *m.WinningTeam {
				stake = s
				break
			}
		}
		if stake == nil {
			return apperrors.Statef("Player is not on the losing side of this match")
		}
		if stake.Paid {
			return apperrors.Statef("Debt is already cleared for this player")
		}

		res := tx.Model(&match.Stake{}).
			Where("id = ? AND paid = ?", stake.ID, false).
			Update("paid", true)
		if res.Error != nil {
			return apperrors.Internalf(res.Error, "Could not mark debt paid")
		}
		if res.RowsAffected == 0 {
			return apperrors.Statef("Debt is already cleared for this player")
		}

		// Zero-amount audit entry: the monetary effect was applied at
		// settlement time, this records when the cash actually moved.
		if err := ledger.Append(tx, userID, decimal.Zero, ledger.TypePaymentClear,
			fmt.Sprintf("Debt cleared for %s", m.Name)); err != nil {
			return apperrors.Internalf(err, "Could not record payment")
		}
		if err := incrementMatchesPaid(tx, userID); err != nil {
			return err
		}
		return notificationOrInternal(tx, userID,
			fmt.Sprintf("Your debt of %s for match %q is cleared.", stake.BetAmount.StringFixed(2), m.Name))
	})
}

// AdjustBalance applies a signed admin correction. It works on blocked and
// deleted accounts too; the audit trail is independent of access status.
func (e *Engine) AdjustBalance(adminID, userID string, amount decimal.Decimal, reason string) (*account.Account, error) {
	if amount.IsZero() {
		return nil, apperrors.Validationf("Adjustment amount cannot be zero")
	}
	if reason == "" {
		reason = "Admin balance adjustment"
	}

	var adjusted *account.Account
	err := e.db.Transaction(func(tx *gorm.DB) error {
		var acct account.Account
		if err := tx.First(&acct, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("Account not found")
			}
			return apperrors.Internalf(err, "Could not load account")
		}

		if err := ledger.Append(tx, userID, amount, ledger.TypeAdminAdjust, reason); err != nil {
			return apperrors.Internalf(err, "Could not record adjustment")
		}
		if err := addToBalance(tx, userID, amount); err != nil {
			return err
		}
		if err := notificationOrInternal(tx, userID,
			fmt.Sprintf("Balance adjusted by %s: %s", amount.StringFixed(2), reason)); err != nil {
			return err
		}

		if err := tx.First(&acct, "id = ?", userID).Error; err != nil {
			return apperrors.Internalf(err, "Could not reload account")
		}
		adjusted = &acct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

func addToBalance(tx *gorm.DB, userID string, delta decimal.Decimal) error {
	res := tx.Model(&account.Account{}).
		Where("id = ?", userID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return apperrors.Internalf(res.Error, "Could not update balance")
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFoundf("Account not found for balance update")
	}
	return nil
}

func incrementMatchesPaid(tx *gorm.DB, userID string) error {
	err := tx.Model(&account.Account{}).
		Where("id = ?", userID).
		Update("total_matches_paid", gorm.Expr("total_matches_paid + 1")).Error
	if err != nil {
		return apperrors.Internalf(err, "Could not update paid-match counter")
	}
	return nil
}

func notificationOrInternal(tx *gorm.DB, userID, message string) error {
	if err := notification.Enqueue(tx, userID, message); err != nil {
		return apperrors.Internalf(err, "Could not enqueue notification")
	}
	return nil
}
