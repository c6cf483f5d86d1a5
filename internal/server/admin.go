// admin.go - privacy-conscious admin area: visitor stats and the contact inbox
package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contacts"
	"github.com/Zachkp/portfolio/internal/logger"
)

const adminCookie = "admin_token"

// visitorRetention is how long visitor rows are kept.
const visitorRetention = "-12 months"

// VisitorMetric is one tracked page view. The IP is stored hashed.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// AdminStats feeds the dashboard and the stats export.
type AdminStats struct {
	TotalVisitors    int64              `json:"total_visitors"`
	UniqueVisitors   int64              `json:"unique_visitors"`
	VisitorsToday    int64              `json:"visitors_today"`
	VisitorsThisWeek int64              `json:"visitors_this_week"`
	Contacts         map[string]int64   `json:"contacts"`
	RecentContacts   []contacts.Contact `json:"recent_contacts"`
	RecentVisitors   []VisitorMetric    `json:"recent_visitors"`
}

type adminAuth struct {
	token        string
	salt         string
	username     string
	password     string
	passwordHash []byte
}

func newAdminAuth(cfg config.AdminConfig) (*adminAuth, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	salt, err := generateToken()
	if err != nil {
		return nil, err
	}
	a := &adminAuth{token: token, salt: salt, username: cfg.Username, password: cfg.Password}
	if cfg.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		a.passwordHash = []byte(cfg.PasswordHash)
	}
	return a, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate admin token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	var passOK bool
	if a.passwordHash != nil {
		passOK = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}
	return userOK && passOK
}

func (a *adminAuth) authenticated(c *gin.Context) bool {
	token, err := c.Cookie(adminCookie)
	if err != nil || token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) == 1
}

// requirePage redirects unauthenticated browsers to the login page.
func (a *adminAuth) requirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticated(c) {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAPI rejects unauthenticated API calls with 401.
func (a *adminAuth) requireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.authenticated(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}
		c.Next()
	}
}

type visitorTracker struct {
	db   *sql.DB
	salt string
	log  *logger.Logger
	wg   sync.WaitGroup
}

func newVisitorTracker(db *sql.DB, salt string, log *logger.Logger) *visitorTracker {
	return &visitorTracker{db: db, salt: salt, log: log}
}

// hashIP is consistent per IP for the life of the process.
func (v *visitorTracker) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + v.salt))
	return hex.EncodeToString(sum[:])[:16]
}

var untrackedPrefixes = []string{"/static/", "/images/", "/admin/", "/api/", "/favicon", "/privacy", "/theme/"}

// middleware records page views in the background. Static assets, admin
// pages and the API are skipped, and Do Not Track is honoured.
func (v *visitorTracker) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != http.MethodGet || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		ip, ua := c.ClientIP(), c.GetHeader("User-Agent")
		v.wg.Add(1)
		go func() {
			defer v.wg.Done()
			v.record(context.Background(), ip, ua, path)
		}()
		c.Next()
	}
}

func (v *visitorTracker) record(ctx context.Context, ip, userAgent, path string) {
	_, err := v.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, v.hashIP(ip), userAgent, path, time.Now().UTC())
	if err != nil {
		v.log.Error(err, "error recording visitor")
	}
}

// wait blocks until background inserts finish.
func (v *visitorTracker) wait() {
	v.wg.Wait()
}

// purge deletes visitor rows past the retention window.
func (v *visitorTracker) purge(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().AddDate(-1, 0, 0)
	res, err := v.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// cleanup purges once at startup and then daily until ctx ends.
func (v *visitorTracker) cleanup(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		n, err := v.purge(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			v.log.Error(err, "error cleaning up old visitor data")
		} else if n > 0 {
			v.log.WithFields(map[string]any{"rows": n, "retention": visitorRetention}).Info("privacy cleanup removed old visitor records")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (v *visitorTracker) recent(ctx context.Context, limit int) ([]VisitorMetric, error) {
	rows, err := v.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []VisitorMetric{}
	for rows.Next() {
		var m VisitorMetric
		if err := rows.Scan(&m.ID, &m.HashedIP, &m.UserAgent, &m.Path, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Server) adminStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	db := s.visitors.db
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.AddDate(0, 0, -7)}},
	}
	for _, q := range counts {
		if err := db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return nil, err
		}
	}

	var err error
	if stats.Contacts, err = s.contacts.Counts(ctx); err != nil {
		return nil, err
	}
	if stats.RecentContacts, err = s.contacts.List(ctx, contacts.ListOptions{Limit: 10}); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.visitors.recent(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"Title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		who := s.visitors.hashIP(c.ClientIP())
		if !s.admin.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			s.log.WithFields(map[string]any{"client": who}).Warn("failed admin login attempt")
			c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
				"Title": "Admin Login",
				"Error": "Invalid credentials",
			})
			return
		}
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(adminCookie, s.admin.token, 3600*24, "/", "", false, true)
		s.log.WithFields(map[string]any{"client": who}).Info("admin login successful")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// JSON callers get 401 rather than the login redirect.
	r.GET("/admin/api/stats", s.admin.requireAPI(), func(c *gin.Context) {
		stats, err := s.adminStats(c.Request.Context())
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin := r.Group("/admin", s.admin.requirePage())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.adminStats(c.Request.Context())
		if err != nil {
			s.log.Error(err, "error loading admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"Error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"Stats": stats})
	})


	admin.GET("/contacts", func(c *gin.Context) {
		status := c.Query("status")
		list, err := s.contacts.List(c.Request.Context(), contacts.ListOptions{Status: status})
		if err != nil {
			c.HTML(http.StatusBadRequest, "admin-error.html", gin.H{"Error": "Failed to load messages"})
			return
		}
		c.HTML(http.StatusOK, "admin-contacts.html", gin.H{
			"Contacts": list,
			"Filter":   status,
			"Statuses": contacts.Statuses,
		})
	})

	// HTMX: change a message's status and re-render its row.
	admin.POST("/contacts/:id/status", func(c *gin.Context) {
		id, ok := contactID(c)
		if !ok {
			return
		}
		contact, err := s.contacts.UpdateStatus(c.Request.Context(), id, contacts.StatusUpdate{Status: c.PostForm("status")})
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.HTML(http.StatusOK, "admin-contact-row.html", gin.H{"Contact": contact, "Statuses": contacts.Statuses})
	})

	admin.DELETE("/contacts/:id", func(c *gin.Context) {
		id, ok := contactID(c)
		if !ok {
			return
		}
		if err := s.contacts.Delete(c.Request.Context(), id); err != nil {
			s.writeError(c, err)
			return
		}
		s.log.WithFields(map[string]any{"contact_id": id}).Info("contact deleted by admin")
		c.Status(http.StatusOK)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visitors, err := s.visitors.recent(c.Request.Context(), 200)
		if err != nil {
			s.log.Error(err, "error loading visitors")
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"Error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"Visitors": visitors})
	})

	admin.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := s.visitors.purge(c.Request.Context())
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.adminStats(c.Request.Context())
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})
}
