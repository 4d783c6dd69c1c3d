package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aiforhelp/carebot/internal/core"
	"github.com/aiforhelp/carebot/internal/providers/health"
	"github.com/aiforhelp/carebot/internal/service/assistant"
	"github.com/aiforhelp/carebot/internal/service/memory"
	"github.com/aiforhelp/carebot/internal/service/pharmacy"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handlers struct {
	assistant *assistant.Assistant
	engine    *memory.Engine
	personas  *memory.PersonaRegistry
	pharmacy  *pharmacy.Service
	drugs     *health.DrugLookup
	symptoms  *health.SymptomChecker
}

func NewHandlers(
	assistant *assistant.Assistant,
	engine *memory.Engine,
	personas *memory.PersonaRegistry,
	pharmacy *pharmacy.Service,
	drugs *health.DrugLookup,
) *Handlers {
	return &Handlers{
		assistant: assistant,
		engine:    engine,
		personas:  personas,
		pharmacy:  pharmacy,
		drugs:     drugs,
		symptoms:  health.NewSymptomChecker(),
	}
}

func (h *Handlers) Register(router *gin.Engine) {
	router.GET("/healthz", h.healthz)

	router.POST("/chat", h.chat)
	router.GET("/history", h.history)
	router.GET("/personas", h.listPersonas)

	router.GET("/memory", h.listFacts)
	router.POST("/memory", h.upsertFact)
	router.DELETE("/memory/:key", h.deleteFact)
	router.PUT("/memory/rename", h.renameFact)

	router.GET("/drug-info", h.drugInfo)
	router.POST("/symptom-checker", h.symptomCheck)
	router.GET("/health-tip", h.healthTip)

	router.POST("/reminders", h.setReminder)
	router.GET("/reminders", h.listReminders)
	router.POST("/orders", h.placeOrder)
	router.GET("/orders", h.listOrders)
	router.POST("/orders/repeat", h.repeatOrder)
}

func (h *Handlers) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": core.CareBotVersion})
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
	Persona   string `json:"persona"`
}

func (h *Handlers) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Browser clients that do not track a session get a fresh one per call.
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	reply, err := h.assistant.Respond(c.Request.Context(), req.SessionID, req.Message, req.Persona)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": req.SessionID, "reply": reply})
}

func (h *Handlers) history(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	exchanges, err := h.engine.ListHistory(c.Request.Context(), c.Query("session_id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	if exchanges == nil {
		exchanges = []core.Exchange{}
	}
	c.JSON(http.StatusOK, gin.H{"exchanges": exchanges})
}

func (h *Handlers) listPersonas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"personas": h.personas.IDs(),
		"default":  memory.DefaultPersonaID,
	})
}

func (h *Handlers) listFacts(c *gin.Context) {
	facts, err := h.engine.ListFacts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"facts": facts})
}

type factRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *Handlers) upsertFact(c *gin.Context) {
	var req factRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.engine.UpsertFact(c.Request.Context(), req.Key, req.Value); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": req.Key, "value": req.Value})
}

func (h *Handlers) deleteFact(c *gin.Context) {
	if err := h.engine.DeleteFact(c.Request.Context(), c.Param("key")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type renameRequest struct {
	OldKey   string `json:"old_key"`
	NewKey   string `json:"new_key"`
	NewValue string `json:"new_value"`
}

func (h *Handlers) renameFact(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.engine.RenameFact(c.Request.Context(), req.OldKey, req.NewKey, req.NewValue); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": req.NewKey, "value": req.NewValue})
}

func (h *Handlers) drugInfo(c *gin.Context) {
	info, err := h.drugs.Search(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no label found for that drug"})
		return
	}
	c.JSON(http.StatusOK, info)
}

type symptomRequest struct {
	Symptoms []string `json:"symptoms"`
}

func (h *Handlers) symptomCheck(c *gin.Context) {
	var req symptomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if len(req.Symptoms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symptoms must not be empty"})
		return
	}
	c.JSON(http.StatusOK, h.symptoms.Check(req.Symptoms))
}

func (h *Handlers) healthTip(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tip": health.RandomTip()})
}

type reminderRequest struct {
	User     string `json:"user"`
	Medicine string `json:"medicine"`
	Time     string `json:"time"`
}

func (h *Handlers) setReminder(c *gin.Context) {
	var req reminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	rem, err := h.pharmacy.SetReminder(c.Request.Context(), req.User, req.Medicine, req.Time)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rem)
}

func (h *Handlers) listReminders(c *gin.Context) {
	reminders, err := h.pharmacy.Reminders(c.Request.Context(), c.Query("user"))
	if err != nil {
		writeError(c, err)
		return
	}
	if reminders == nil {
		reminders = []core.Reminder{}
	}
	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

type orderRequest struct {
	User     string `json:"user"`
	Medicine string `json:"medicine"`
	Quantity int    `json:"quantity"`
}

func (h *Handlers) placeOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ord, err := h.pharmacy.PlaceOrder(c.Request.Context(), req.User, req.Medicine, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ord)
}

func (h *Handlers) listOrders(c *gin.Context) {
	orders, err := h.pharmacy.Orders(c.Request.Context(), c.Query("user"))
	if err != nil {
		writeError(c, err)
		return
	}
	if orders == nil {
		orders = []core.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type repeatOrderRequest struct {
	User string `json:"user"`
}

func (h *Handlers) repeatOrder(c *gin.Context) {
	var req repeatOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ord, ok, err := h.pharmacy.RepeatLastOrder(c.Request.Context(), req.User)
	if err != nil {
		writeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no previous order to repeat"})
		return
	}
	c.JSON(http.StatusCreated, ord)
}

// writeError maps domain errors onto HTTP statuses. Storage detail stays out
// of responses.
func writeError(c *gin.Context, err error) {
	var verr *core.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	if errors.Is(err, core.ErrStorageUnavailable) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal storage error"})
		return
	}
	var serr *core.ServiceError
	if errors.As(err, &serr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "model service unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
