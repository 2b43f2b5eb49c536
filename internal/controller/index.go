package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/sopheak-dev/agencyflow/internal/util"
)

type IndexController struct {
	*baseController
}

func (ic IndexController) Index(ctx *gin.Context) {
	util.ResponseSuccess(ctx, gin.H{
		"message": "Welcome to the AgencyFlow api",
	})
}
