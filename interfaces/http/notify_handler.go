package http

import (
	"fmt"
	"net/http"

	"collab-notifier/domain/dto"
	"collab-notifier/infrastructure/logger"
	"collab-notifier/usecase"

	"github.com/gin-gonic/gin"
)

type INotifyHandler interface {
	Preview(c *gin.Context)
}

type NotifyHandler struct {
	notifierUsecase usecase.INotifierUsecase
}

func NewNotifyHandler(notifierUsecase usecase.INotifierUsecase) INotifyHandler {
	return &NotifyHandler{notifierUsecase: notifierUsecase}
}

// Preview handles POST /api/notify/preview. Nothing is posted.
func (h *NotifyHandler) Preview(c *gin.Context) {
	var req dto.NotifyPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.Res{ResponseCode: "400", ResponseMessage: fmt.Sprintf("%s %v", ErrorUnmarshal, err.Error())})
		return
	}

	res, err := h.notifierUsecase.Preview(c.Request.Context(), req.URL)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
