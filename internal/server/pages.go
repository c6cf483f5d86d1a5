package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/contactform"
	"github.com/Zachkp/portfolio/internal/theme"
)

const themeCookieMaxAge = 365 * 24 * 60 * 60

// cookieStore persists the theme preference in the visitor's browser.
type cookieStore struct {
	c *gin.Context
}

func (s cookieStore) Load() (string, error) {
	return s.c.Cookie(theme.Key)
}

func (s cookieStore) Save(value string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	// Not HttpOnly: the page script reads it to avoid a flash of the wrong theme.
	s.c.SetCookie(theme.Key, value, themeCookieMaxAge, "/", "", false, false)
	return nil
}

func (s *Server) themeFor(c *gin.Context) *theme.Manager {
	return theme.New(cookieStore{c: c}, s.log)
}

func (s *Server) setupPageRoutes(r *gin.Engine) {
	r.GET("/", s.index)

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{"Form": contactform.Snapshot{}})
	})
	r.POST("/contact", s.submitContact)
	r.POST("/contact/reset", s.resetContact)

	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{"Experience": s.site.Experience})
	})
	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{
			"Education":      s.site.Education,
			"Certifications": s.site.Certifications,
		})
	})

	r.POST("/theme/toggle", s.toggleTheme)
	r.GET("/resume", s.downloadResume)

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"Title": "Privacy Policy",
			"Theme": s.themeFor(c),
		})
	})
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Site":  s.site,
		"Theme": s.themeFor(c),
		"Form":  contactform.Snapshot{},
	})
}

// submitContact runs one contact form workflow per request and renders
// exactly one of: the form with inline errors, the success panel, or the
// error panel.
func (s *Server) submitContact(c *gin.Context) {
	wf := contactform.New(s.submitter, s.log)
	for _, f := range contactform.AllFields {
		wf.Update(f, c.PostForm(f.String()))
	}

	err := wf.Submit(c.Request.Context())
	snap := wf.Snapshot()

	switch snap.Status.State {
	case contactform.StateSuccess:
		c.HTML(http.StatusOK, "contact-success.html", gin.H{"Form": snap})
	case contactform.StateError:
		c.HTML(http.StatusOK, "contact-error.html", gin.H{"Form": snap})
	default:
		var verr *contactform.ValidationError
		if err != nil && !errors.As(err, &verr) {
			s.log.Error(err, "unexpected contact form result")
		}
		c.HTML(http.StatusOK, "contact.html", gin.H{"Form": snap})
	}
}

// resetContact is "send another message" / "try again": back to an idle form.
// The error panel posts the previous values so they survive the retry.
func (s *Server) resetContact(c *gin.Context) {
	wf := contactform.New(s.submitter, s.log)
	for _, f := range contactform.AllFields {
		wf.Update(f, c.PostForm(f.String()))
	}
	c.HTML(http.StatusOK, "contact.html", gin.H{"Form": wf.Snapshot()})
}

func (s *Server) toggleTheme(c *gin.Context) {
	m := s.themeFor(c)
	m.Toggle()

	trigger, _ := json.Marshal(map[string]any{
		"themeChanged": map[string]string{"theme": m.Value()},
	})
	c.Header("HX-Trigger", string(trigger))
	c.JSON(http.StatusOK, gin.H{"theme": m.Value(), "dark": m.IsDark()})
}

func (s *Server) downloadResume(c *gin.Context) {
	if _, err := os.Stat(s.cfg.ResumePath); err != nil {
		s.log.Error(err, "resume not available")
		c.String(http.StatusNotFound, "Resume not available")
		return
	}
	c.FileAttachment(s.cfg.ResumePath, s.site.Profile.ResumeFilename)
}
