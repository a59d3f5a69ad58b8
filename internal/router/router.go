package router

import (
	"emberlink/internal/handlers"
	"emberlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the HTTP surface. LoadUser runs on everything so
// optional-session listings can annotate vote state; AuthRequired gates the
// mutating routes.
func RegisterRoutes(
	r *gin.Engine,
	gate *middleware.SessionGate,
	authHandler *handlers.AuthHandler,
	postHandler *handlers.PostHandler,
	commentHandler *handlers.CommentHandler,
	voteHandler *handlers.VoteHandler,
) {
	r.Use(gate.LoadUser())

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/logout", authHandler.Logout)
		auth.GET("/user", gate.AuthRequired(), authHandler.User)
	}

	posts := r.Group("/posts")
	{
		posts.GET("", postHandler.List)
		posts.GET("/:id", postHandler.Get)
		posts.GET("/:id/comments", commentHandler.ListForPost)

		posts.POST("", gate.AuthRequired(), postHandler.Create)
		posts.POST("/:id/upvote", gate.AuthRequired(), voteHandler.UpvotePost)
		posts.POST("/:id/comment", gate.AuthRequired(), commentHandler.CreateOnPost)
	}

	comments := r.Group("/comments")
	{
		comments.GET("/:id/comments", commentHandler.ListReplies)

		comments.POST("/:id", gate.AuthRequired(), commentHandler.Reply)
		comments.POST("/:id/upvote", gate.AuthRequired(), voteHandler.UpvoteComment)
	}
}
