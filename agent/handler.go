package agent

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sonnes/offerchat/core"
)

const (
	msgInvalidRequest = "invalid request"
	msgMissingToken   = "Missing session_token"
)

// Handler returns a gin engine serving POST /api/query.
func (a *Agent) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	a.Register(r.Group("/api"))
	return r
}

// Register mounts the query route on an existing group.
func (a *Agent) Register(g *gin.RouterGroup) {
	g.POST("/query", a.query)
}

// query handles POST /api/query.
func (a *Agent) query(c *gin.Context) {
	var req core.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}
	if req.SessionToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingToken})
		return
	}
	c.JSON(http.StatusOK, a.Run(c.Request.Context(), req.SessionToken, req.Query))
}
