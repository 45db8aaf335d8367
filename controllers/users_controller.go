package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	models "github.com/phillip/campaign-hub-go/models"
)

// ---------------- LIST ----------------
func ListUsers(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := env.dbContext(c)
		defer cancel()

		users, err := env.Users.List(ctx)
		if err != nil {
			env.fail(c, "list users", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// ---------------- CREATE ----------------

// CreateUser accepts any subset of the user fields, including an empty body.
func CreateUser(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.UserInput
		if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := env.dbContext(c)
		defer cancel()

		user, err := env.Users.Create(ctx, models.NewUser(input, env.now()))
		if err != nil {
			env.fail(c, "create user", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add user"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// ---------------- DELETE ----------------
func DeleteUser(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := env.dbContext(c)
		defer cancel()

		if _, err := env.Users.Delete(ctx, c.Param("id")); err != nil {
			env.fail(c, "delete user", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
	}
}
