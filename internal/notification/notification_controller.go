package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elite-fire/ledger/config"
	"github.com/elite-fire/ledger/internal/common"
	"github.com/elite-fire/ledger/pkg/apperrors"
	"github.com/elite-fire/ledger/pkg/responses"
)

type NotificationController struct {
	repo   NotificationRepository
	config *config.Config
}

func NewNotificationController(repo NotificationRepository, cfg *config.Config) *NotificationController {
	return &NotificationController{repo: repo, config: cfg}
}

func (nc *NotificationController) authorize(c *gin.Context, userID string) error {
	callerID, err := common.GetAccountIDFromContext(c)
	if err != nil {
		return apperrors.Authorizationf("No authenticated caller")
	}
	if callerID != userID && !common.IsAdmin(c) {
		return apperrors.Authorizationf("Cannot access another account's notifications")
	}
	return nil
}

// @Summary      List notifications
// @Description  All notifications for the user, newest first. The dashboard polls this on a fixed interval.
// @Tags         Notifications
// @Produce      json
// @Param        userId  path  string  true  "Account id"
// @Success      200  {array}  Notification
// @Failure      403  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/{userId} [get]
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.Param("userId")
	if err := nc.authorize(c, userID); err != nil {
		responses.Error(c, err)
		return
	}

	notifications, err := nc.repo.ListByUser(userID)
	if err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not list notifications"))
		return
	}
	responses.Entity(c, http.StatusOK, notifications)
}

// @Summary      Mark all notifications read
// @Tags         Notifications
// @Produce      json
// @Param        userId  path  string  true  "Account id"
// @Success      200  {object}  responses.AckResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /notifications/{userId}/read [post]
func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID := c.Param("userId")
	if err := nc.authorize(c, userID); err != nil {
		responses.Error(c, err)
		return
	}

	if err := nc.repo.MarkAllRead(userID); err != nil {
		responses.Error(c, apperrors.Internalf(err, "Could not mark notifications read"))
		return
	}
	responses.Ack(c)
}
