// Package handler exposes the JSON API consumed by the browser form.
package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"signsheet/internal/auth"
	"signsheet/internal/config"
	"signsheet/internal/eventcfg"
	"signsheet/internal/record"
)

// Adapter failures are collapsed into one message for the client; the
// detailed error only goes to the log.
const genericErrMsg = "Something went wrong. Please try again."

// Handler holds the collaborators behind the API routes.
type Handler struct {
	svc    *record.Service
	events *eventcfg.Store
	app    config.App
}

// New wires a handler.
func New(svc *record.Service, events *eventcfg.Store, app config.App) *Handler {
	return &Handler{svc: svc, events: events, app: app}
}

// Register mounts the API under the given group. Destructive routes go
// through the admin gate, which is a no-op without a configured passcode.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/config", h.GetConfig)
	api.PUT("/config", h.PutConfig)

	api.POST("/records", h.CreateRecord)
	api.GET("/records", h.ListRecords)
	api.POST("/reset-confirm", h.ResetConfirm)

	api.POST("/auth/token", h.IssueToken)

	guard := auth.AdminAuth(h.app.AdminPasscode, h.app.JWTSigningKey, h.app.JWTIssuer)
	api.DELETE("/records/:id", guard, h.DeleteRecord)
	api.DELETE("/records", guard, h.ClearRecords)
}

// ---------- Event configuration ----------

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.events.Load(c.Request.Context())
	if err != nil {
		log.Printf("load event config: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrMsg})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) PutConfig(c *gin.Context) {
	var cfg eventcfg.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cfg.EventDate != "" {
		if _, err := time.Parse("2006-01-02", cfg.EventDate); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "eventDate must be YYYY-MM-DD"})
			return
		}
	}

	// Editing setup fields is a non-destructive interaction.
	h.svc.Gate().Reset()

	if err := h.events.Save(c.Request.Context(), cfg); err != nil {
		log.Printf("save event config: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrMsg})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// ---------- Records ----------

type submission struct {
	CompleteName string        `json:"completeName" binding:"required"`
	Sex          string        `json:"sex" binding:"required"`
	Designation  string        `json:"designation" binding:"required"`
	Division     string        `json:"division" binding:"required"`
	Status       record.Status `json:"status"`
	Signature    string        `json:"signature" binding:"required"`
}

func (h *Handler) CreateRecord(c *gin.Context) {
	var req submission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.svc.Submit(c.Request.Context(), record.Record{
		CompleteName: req.CompleteName,
		Sex:          req.Sex,
		Designation:  req.Designation,
		Division:     req.Division,
		Status:       req.Status,
		Signature:    req.Signature,
	})
	if err != nil {
		if errors.Is(err, record.ErrInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("submit record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrMsg})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *Handler) ListRecords(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("list records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrMsg})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) DeleteRecord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	disp, err := h.svc.RequestDelete(c.Request.Context(), id)
	if disp == record.Armed {
		c.JSON(http.StatusConflict, gin.H{
			"confirm": true,
			"message": fmt.Sprintf("Delete record %d? Click again within %s to confirm.", id, h.window()),
		})
		return
	}
	if err != nil {
		log.Printf("delete record %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "id": id})
}

func (h *Handler) ClearRecords(c *gin.Context) {
	disp, err := h.svc.RequestClear(c.Request.Context())
	if disp == record.Armed {
		c.JSON(http.StatusConflict, gin.H{
			"confirm": true,
			"message": fmt.Sprintf("Delete ALL records? Click again within %s to confirm.", h.window()),
		})
		return
	}
	if err != nil {
		log.Printf("clear records: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrMsg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "all": true})
}

// ResetConfirm drops any pending delete confirmation. The form calls this
// whenever the user edits an input.
func (h *Handler) ResetConfirm(c *gin.Context) {
	h.svc.Gate().Reset()
	c.Status(http.StatusNoContent)
}

// ---------- Auth ----------

func (h *Handler) IssueToken(c *gin.Context) {
	var req struct {
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, exp, err := auth.IssueAdmin(req.Passcode, h.app.AdminPasscode,
		h.app.JWTIssuer, h.app.JWTSigningKey, h.app.AdminTokenTTL)
	if err != nil {
		if errors.Is(err, auth.ErrBadPasscode) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid passcode"})
			return
		}
		log.Printf("issue admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": genericErrMsg})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "expires_at": exp.Unix()})
}

func (h *Handler) window() time.Duration {
	return h.svc.Gate().Window()
}
