package http

import (
	"fmt"
	"net/http"

	"collab-notifier/domain/dto"
	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// IEventHandler receives Pub/Sub push deliveries. A 2xx answer acknowledges
// the message, anything else makes Pub/Sub redeliver it.
type IEventHandler interface {
	SnapshotStored(c *gin.Context)
	VideoChanged(c *gin.Context)
}

type EventHandler struct {
	snapshotStored repository.MessageHandler
	videoChanged   repository.MessageHandler
}

func NewEventHandler(snapshotStored, videoChanged repository.MessageHandler) IEventHandler {
	return &EventHandler{snapshotStored: snapshotStored, videoChanged: videoChanged}
}

func (h *EventHandler) SnapshotStored(c *gin.Context) {
	h.dispatch(c, h.snapshotStored)
}

func (h *EventHandler) VideoChanged(c *gin.Context) {
	h.dispatch(c, h.videoChanged)
}

func (h *EventHandler) dispatch(c *gin.Context, handle repository.MessageHandler) {
	var req dto.PubSubPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error())})
		return
	}

	if err := handle(c.Request.Context(), req.Message.Data); err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":        err,
			"messageId":    req.Message.MessageID,
			"subscription": req.Subscription,
		}).Error("Push message handling failed")
		c.JSON(http.StatusInternalServerError, dto.Res{ResponseCode: "500", ResponseMessage: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
