package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/technobugproject/technobug/accounts"
	"github.com/technobugproject/technobug/community"
	"github.com/technobugproject/technobug/progress"
	"github.com/technobugproject/technobug/server/middlewares"
	"github.com/technobugproject/technobug/utils"
	. "github.com/technobugproject/technobug/utils/log"
	"gorm.io/gorm"
)

// APIDeps is the dependency injection for the HTTP edge.
type APIDeps struct {
	DB        *gorm.DB
	Snapshots *utils.RedisSnapshotStore
	Mail      accounts.Sender
}

// RegisterRoutes attaches every API endpoint to the router. Handlers only
// parse the request and serialize the result; all semantics live in the
// accounts, community and progress packages.
func RegisterRoutes(router *gin.Engine, deps *APIDeps) {
	api := router.Group("/api")
	api.Use(middlewares.ResolveUser())

	api.POST("/register", deps.register)
	api.POST("/login", deps.login)
	api.POST("/reset_password", deps.resetPassword)
	api.POST("/verify_reset_code", deps.verifyResetCode)

	api.GET("/posts", deps.listPosts)
	api.GET("/posts/:id/thread", deps.postThread)
	api.GET("/code_examples", deps.listCodeExamples)
	api.GET("/progress", deps.getProgress)
	api.GET("/progress/suggestions", deps.getSuggestions)

	authed := api.Group("")
	authed.Use(middlewares.RequireUser())
	authed.POST("/visit", deps.recordVisit)
	authed.POST("/likes/toggle", deps.toggleLike)
	authed.POST("/posts", deps.createPost)
	authed.DELETE("/posts/:id", deps.deletePost)
	authed.POST("/comments", deps.createComment)
	authed.DELETE("/comments/:id", deps.deleteComment)
	authed.PUT("/profile", deps.updateProfile)
}

func (deps *APIDeps) register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	user, err := accounts.Register(deps.DB, req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.Id, "username": user.Username})
}

func (deps *APIDeps) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	user, err := accounts.Authenticate(deps.DB, req.Email, req.Password)
	if err != nil {
		respondError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.Id, "username": user.Username})
}

func (deps *APIDeps) resetPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := accounts.IssueResetCode(deps.DB, deps.Mail, req.Email); err != nil {
		respondError(c, "reset_password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Um código de redefinição foi enviado para o seu e-mail."})
}

func (deps *APIDeps) verifyResetCode(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := accounts.VerifyResetCode(deps.DB, req.Email, req.Code, req.NewPassword); err != nil {
		respondError(c, "verify_reset_code", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Senha redefinida com sucesso."})
}

func (deps *APIDeps) recordVisit(c *gin.Context) {
	var req struct {
		PageKey string `json:"page_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	// Best-effort telemetry, always 204 back to the page.
	progress.RecordVisit(deps.DB, middlewares.CurrentUserId(c), req.PageKey)
	progress.InvalidateSnapshot(deps.Snapshots, middlewares.CurrentUserId(c))
	c.Status(http.StatusNoContent)
}

func (deps *APIDeps) getProgress(c *gin.Context) {
	snapshot := progress.LoadSnapshot(deps.DB, deps.Snapshots, middlewares.CurrentUserId(c))
	c.JSON(http.StatusOK, snapshot)
}

func (deps *APIDeps) getSuggestions(c *gin.Context) {
	suggestions := progress.SuggestNextActions(deps.DB, middlewares.CurrentUserId(c))
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (deps *APIDeps) toggleLike(c *gin.Context) {
	var req struct {
		TargetKind string `json:"target_kind" binding:"required"`
		TargetId   string `json:"target_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}

	var target community.LikeTarget
	switch community.TargetKind(req.TargetKind) {
	case community.TargetPost:
		target = community.PostTarget(req.TargetId)
	case community.TargetComment:
		target = community.CommentTarget(req.TargetId)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "target_kind must be 'post' or 'comment'"})
		return
	}

	userID := middlewares.CurrentUserId(c)
	result, err := community.ToggleLike(deps.DB, userID, target)
	if err != nil {
		respondError(c, "toggle_like", err)
		return
	}
	progress.InvalidateSnapshot(deps.Snapshots, userID)
	c.JSON(http.StatusOK, result)
}

func (deps *APIDeps) listPosts(c *gin.Context) {
	posts, err := community.ListPosts(deps.DB)
	if err != nil {
		respondError(c, "list_posts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (deps *APIDeps) createPost(c *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	userID := middlewares.CurrentUserId(c)
	post, err := community.CreatePost(deps.DB, userID, req.Content, req.Category)
	if err != nil {
		respondError(c, "create_post", err)
		return
	}
	progress.InvalidateSnapshot(deps.Snapshots, userID)
	c.JSON(http.StatusCreated, post)
}

func (deps *APIDeps) deletePost(c *gin.Context) {
	userID := middlewares.CurrentUserId(c)
	if err := community.DeletePost(deps.DB, userID, c.Param("id")); err != nil {
		respondError(c, "delete_post", err)
		return
	}
	progress.InvalidateSnapshot(deps.Snapshots, userID)
	c.Status(http.StatusNoContent)
}

func (deps *APIDeps) postThread(c *gin.Context) {
	thread, err := community.AssembleThread(deps.DB, c.Param("id"))
	if err != nil {
		respondError(c, "post_thread", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": thread})
}

func (deps *APIDeps) createComment(c *gin.Context) {
	var req struct {
		PostId   string  `json:"post_id" binding:"required"`
		ParentId *string `json:"parent_id"`
		Content  string  `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	userID := middlewares.CurrentUserId(c)
	comment, err := community.CreateComment(deps.DB, userID, req.PostId, req.ParentId, req.Content)
	if err != nil {
		respondError(c, "create_comment", err)
		return
	}
	progress.InvalidateSnapshot(deps.Snapshots, userID)
	c.JSON(http.StatusCreated, comment)
}

func (deps *APIDeps) deleteComment(c *gin.Context) {
	userID := middlewares.CurrentUserId(c)
	if err := community.DeleteComment(deps.DB, userID, c.Param("id")); err != nil {
		respondError(c, "delete_comment", err)
		return
	}
	progress.InvalidateSnapshot(deps.Snapshots, userID)
	c.Status(http.StatusNoContent)
}

func (deps *APIDeps) updateProfile(c *gin.Context) {
	var req struct {
		Username       *string `json:"username"`
		ProfilePicture *string `json:"profile_picture"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	user, err := accounts.UpdateProfile(deps.DB, middlewares.CurrentUserId(c), accounts.ProfileUpdate{
		Username:       req.Username,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondError(c, "update_profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.Id, "username": user.Username, "profile_picture": user.ProfilePicture})
}

func (deps *APIDeps) listCodeExamples(c *gin.Context) {
	examples, err := community.ListCodeExamples(deps.DB, c.Query("category"))
	if err != nil {
		respondError(c, "list_code_examples", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code_examples": examples})
}

// respondError maps domain errors onto HTTP statuses. Anything unmapped is a
// storage failure: logged with the operation name and returned as 500.
func respondError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, community.ErrNotFound),
		errors.Is(err, accounts.ErrUserNotFound),
		errors.Is(err, accounts.ErrCodeInvalid):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, community.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, accounts.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, accounts.ErrEmailTaken),
		errors.Is(err, accounts.ErrUsernameTaken),
		errors.Is(err, accounts.ErrPasswordTooShort),
		errors.Is(err, accounts.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	default:
		Log.Error("operation ", operation, " failed for user ", middlewares.CurrentUserId(c), ": ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "internal error"})
	}
}
