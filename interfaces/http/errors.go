package http

import (
	"errors"
	"net/http"
	"strconv"

	"collab-notifier/domain/dto"
	"collab-notifier/domain/model"
	"collab-notifier/infrastructure/logger"
	"collab-notifier/usecase"

	"github.com/gin-gonic/gin"
)

const (
	ErrorUnmarshal = "Error while unmarshal"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidVideoURL),
		errors.Is(err, model.ErrInvalidChannelURL),
		errors.Is(err, usecase.ErrEmptyBlacklistUpdate):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.GetLogger().WithFields(map[string]interface{}{"error": err, "path": c.FullPath()}).Error("Request failed")
	}
	c.AbortWithStatusJSON(status, dto.Res{ResponseCode: strconv.Itoa(status), ResponseMessage: err.Error()})
}
