package api

import (
	"net/http"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/pure_utils"
	"github.com/checkmarble/asset-lists/usecases"
	"github.com/gin-gonic/gin"
)

type GroupIdUriInput struct {
	GroupId string `uri:"group_id" binding:"required,uuid"`
}

func handleListGroups(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListGroupUsecase()
		groups, err := usecase.ListGroups(ctx, uri.ListId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"groups": pure_utils.Map(groups, dto.AdaptListGroupDto)})
	}
}

func handleCreateGroup(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.CreateListGroupBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListGroupUsecase()
		group, err := usecase.CreateGroup(ctx, models.CreateListGroupInput{
			ListId: uri.ListId,
			Name:   data.Name,
			Color:  data.Color,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"group": dto.AdaptListGroupDto(group)})
	}
}

func handleUpdateGroup(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri GroupIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.UpdateListGroupBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListGroupUsecase()
		group, err := usecase.UpdateGroup(ctx, dto.AdaptUpdateListGroupInput(uri.GroupId, data))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"group": dto.AdaptListGroupDto(group)})
	}
}

func handleDeleteGroup(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri GroupIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListGroupUsecase()
		err := usecase.DeleteGroup(ctx, uri.GroupId)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleReorderGroup(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.ReorderGroupBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewListGroupUsecase()
		groups, err := usecase.ReorderGroup(ctx, models.ReorderGroupInput{
			ListId:    uri.ListId,
			FromIndex: *data.FromIndex,
			ToIndex:   *data.ToIndex,
		})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"groups": pure_utils.Map(groups, dto.AdaptListGroupDto)})
	}
}
