package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contacts"
	"github.com/Zachkp/portfolio/internal/content"
)

func (s *Server) setupAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	api.POST("/contacts/", s.createContact)
	api.GET("/projects/", s.listProjects)
	api.GET("/projects/:id", s.getProject)

	authed := api.Group("/", s.admin.requireAPI())
	authed.GET("/contacts/", s.listContacts)
	authed.GET("/contacts/:id", s.getContact)
	authed.PATCH("/contacts/:id", s.updateContact)
	authed.DELETE("/contacts/:id", s.deleteContact)
}

func (s *Server) createContact(c *gin.Context) {
	var req contacts.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid JSON body"})
		return
	}

	contact, err := s.contacts.Submit(c.Request.Context(), req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

func (s *Server) listContacts(c *gin.Context) {
	opts := contacts.ListOptions{Status: c.Query("status_filter")}
	var err error
	if opts.Offset, err = intQuery(c, "skip", 0); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "skip must be an integer"})
		return
	}
	if opts.Limit, err = intQuery(c, "limit", 100); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be an integer"})
		return
	}

	list, err := s.contacts.List(c.Request.Context(), opts)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}
	contact, err := s.contacts.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) updateContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}
	var upd contacts.StatusUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid JSON body"})
		return
	}
	contact, err := s.contacts.UpdateStatus(c.Request.Context(), id, upd)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

func (s *Server) deleteContact(c *gin.Context) {
	id, ok := contactID(c)
	if !ok {
		return
	}
	if err := s.contacts.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listProjects(c *gin.Context) {
	projects := s.site.Projects
	if c.Query("featured_only") == "true" {
		projects = content.FeaturedProjects(projects)
	}
	if projects == nil {
		projects = []content.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (s *Server) getProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid project id"})
		return
	}
	project, ok := content.ProjectByID(s.site.Projects, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

func (s *Server) writeError(c *gin.Context, err error) {
	var verr *contacts.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": verr.Fields})
	case errors.Is(err, contacts.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": "Contact not found"})
	default:
		s.log.WithFields(map[string]any{"request_id": c.GetString("request_id")}).Error(err, "request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

func contactID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid contact id"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
