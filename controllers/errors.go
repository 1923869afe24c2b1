package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-console/services"
	"hotel-console/store"
	"hotel-console/utils"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var partial *services.PartialWriteError
	if errors.As(err, &partial) && len(partial.Applied) > 0 {
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "operation only partially applied", gin.H{
			"applied": partial.Applied,
			"failed":  partial.Failed,
			"cause":   partial.Err.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicate):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	}
}

func bindError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
}

// paramID reads the :id path parameter. It writes the 400 response itself.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id "+strconv.Quote(c.Param("id")))
		return 0, false
	}
	return uint(id), true
}
