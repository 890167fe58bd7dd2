package api

import (
	"net/http"

	"github.com/checkmarble/asset-lists/dto"
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/pure_utils"
	"github.com/checkmarble/asset-lists/usecases"
	"github.com/gin-gonic/gin"
)

type ListMemberUriInput struct {
	ListId string `uri:"list_id" binding:"required,uuid"`
	UserId string `uri:"user_id" binding:"required"`
}

func handleListMembers(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		members, err := usecase.ListMembers(ctx, uri.ListId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"members": pure_utils.Map(members, dto.AdaptListMemberDto)})
	}
}

func handleAddMember(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.AddListMemberBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		member, err := usecase.AddMember(ctx, dto.AdaptAddListMemberInput(uri.ListId, data))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusCreated, gin.H{"member": dto.AdaptListMemberDto(member)})
	}
}

func handleUpdateMember(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListMemberUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}
		var data dto.UpdateListMemberBody
		if err := c.ShouldBindJSON(&data); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		err := usecase.UpdateMemberPermission(ctx, uri.ListId,
			models.UserId(uri.UserId), models.MemberPermissionFrom(data.Permission))
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleRemoveMember(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListMemberUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		err := usecase.RemoveMember(ctx, uri.ListId, models.UserId(uri.UserId))
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func handleLeaveList(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var uri ListIdUriInput
		if err := c.ShouldBindUri(&uri); presentBindError(ctx, c, err) {
			return
		}

		usecase := usecasesWithCreds(ctx, uc).NewAssetListUsecase()
		err := usecase.LeaveList(ctx, uri.ListId)
		if presentError(ctx, c, err) {
			return
		}

		c.Status(http.StatusNoContent)
	}
}
