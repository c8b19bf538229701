package http

import (
	"fmt"
	"net/http"

	"collab-notifier/domain/dto"
	"collab-notifier/infrastructure/logger"
	"collab-notifier/interfaces/middleware"
	"collab-notifier/usecase"

	"github.com/gin-gonic/gin"
)

type IChannelHandler interface {
	GetChannel(c *gin.Context)
	UpdateBlacklist(c *gin.Context)
}

type ChannelHandler struct {
	channelUsecase usecase.IChannelUsecase
}

func NewChannelHandler(channelUsecase usecase.IChannelUsecase) IChannelHandler {
	return &ChannelHandler{channelUsecase: channelUsecase}
}

// GetChannel handles GET /api/channels?url=<channel url>
func (h *ChannelHandler) GetChannel(c *gin.Context) {
	channel, err := h.channelUsecase.GetChannel(c.Request.Context(), c.Query("url"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, channel)
}

// UpdateBlacklist handles PATCH /api/channels
func (h *ChannelHandler) UpdateBlacklist(c *gin.Context) {
	var req dto.ChannelBlacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error())})
		return
	}

	channel, err := h.channelUsecase.UpdateBlacklist(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	logger.GetLogger().WithFields(map[string]interface{}{"url": req.URL, "subject": c.GetString(middleware.SubjectKey)}).Info("Blacklist changed through API")
	c.JSON(http.StatusOK, channel)
}
