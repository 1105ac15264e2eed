package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/arcana-go/internal/app"
	"github.com/randomtoy/arcana-go/internal/domain"
	"github.com/randomtoy/arcana-go/internal/ports"
)

const maxQuestionLen = 500

type Handler struct {
	readings *app.ReadingService
	journal  *app.JournalService
}

func NewHandler(readings *app.ReadingService, journal *app.JournalService) *Handler {
	return &Handler{readings: readings, journal: journal}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	e.GET("/v1/spreads", h.ListSpreads)

	e.POST("/v1/readings", h.NewReading)
	e.GET("/v1/readings", h.ListReadings)
	e.GET("/v1/readings/:id", h.GetReading)

	e.POST("/v1/journal", h.CreateEntry)
	e.GET("/v1/journal", h.ListEntries)
	e.GET("/v1/journal/:id", h.GetEntry)
	e.PUT("/v1/journal/:id", h.UpdateEntry)
	e.DELETE("/v1/journal/:id", h.DeleteEntry)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListSpreads(c echo.Context) error {
	spreads, err := h.readings.ListSpreads(c.Request().Context())
	if err != nil {
		return mapError(c, err)
	}

	out := make([]SpreadResponse, len(spreads))
	for i, sp := range spreads {
		out[i] = toSpreadResponse(sp)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) NewReading(c echo.Context) error {
	var req NewReadingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
	}
	if len(req.Question) > maxQuestionLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "question must be at most 500 characters"})
	}
	if req.Spread == "" {
		req.Spread = "three_card"
	}
	if req.Deck == "" {
		req.Deck = "rider_waite"
	}

	start := time.Now()
	reading, err := h.readings.NewReading(c.Request().Context(), app.NewReadingRequest{
		UserID:   req.UserID,
		Question: req.Question,
		DeckID:   req.Deck,
		SpreadID: req.Spread,
	})
	if err != nil {
		return mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)
	resp := toReadingResponse(reading)
	resp.Meta = MetaResp{RequestID: requestID, LatencyMS: time.Since(start).Milliseconds()}

	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetReading(c echo.Context) error {
	reading, err := h.readings.GetReading(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toReadingResponse(reading))
}

func (h *Handler) ListReadings(c echo.Context) error {
	userID := c.QueryParam("user")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user query parameter is required"})
	}

	readings, err := h.readings.ListReadings(c.Request().Context(), userID)
	if err != nil {
		return mapError(c, err)
	}

	out := make([]ReadingResponse, len(readings))
	for i, r := range readings {
		out[i] = toReadingResponse(r)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) CreateEntry(c echo.Context) error {
	var req JournalEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.UserID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "title is required"})
	}

	entry, err := h.journal.CreateEntry(c.Request().Context(), toEntryRequest(req))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toEntryResponse(entry))
}

func (h *Handler) GetEntry(c echo.Context) error {
	entry, err := h.journal.GetEntry(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

func (h *Handler) ListEntries(c echo.Context) error {
	filter := ports.JournalFilter{
		UserID:    c.QueryParam("user"),
		Mood:      domain.Mood(c.QueryParam("mood")),
		ReadingID: c.QueryParam("reading"),
	}
	if filter.UserID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user query parameter is required"})
	}

	entries, err := h.journal.ListEntries(c.Request().Context(), filter)
	if err != nil {
		return mapError(c, err)
	}

	out := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) UpdateEntry(c echo.Context) error {
	var req JournalEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	entry, err := h.journal.UpdateEntry(c.Request().Context(), c.Param("id"), toEntryRequest(req))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, toEntryResponse(entry))
}

func (h *Handler) DeleteEntry(c echo.Context) error {
	if err := h.journal.DeleteEntry(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toSpreadResponse(sp domain.SpreadDefinition) SpreadResponse {
	positions := make([]PositionResponse, len(sp.Positions))
	for i, p := range sp.Positions {
		positions[i] = PositionResponse{ID: p.ID, Name: p.Name, Meaning: p.Meaning}
	}
	return SpreadResponse{
		ID:        sp.ID,
		Name:      sp.Name,
		CardCount: sp.Layout.CardCount,
		Positions: positions,
	}
}

func toReadingResponse(r domain.Reading) ReadingResponse {
	cards := make([]CardResponse, len(r.Cards))
	for i, dc := range r.Cards {
		meaning := dc.Meanings.Upright
		if dc.Orientation == domain.Reversed {
			meaning = dc.Meanings.Reversed
		}
		cards[i] = CardResponse{
			ID:           dc.ID,
			Name:         dc.Name,
			Arcana:       dc.Arcana,
			Suit:         dc.Suit,
			Position:     dc.Position,
			PositionName: dc.PositionName,
			Orientation:  dc.Orientation,
			Keywords:     dc.Keywords,
			Meaning:      meaning,
		}
	}

	interpCards := make([]CardReadingResp, len(r.Interpretation.Cards))
	for i, cr := range r.Interpretation.Cards {
		interpCards[i] = CardReadingResp{
			Name:           cr.Name,
			Position:       cr.Position,
			Interpretation: cr.Interpretation,
		}
	}

	return ReadingResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Question:   r.Question,
		SpreadType: r.SpreadType,
		Cards:      cards,
		Interpretation: InterpretationResp{
			ID:                  r.Interpretation.ID,
			Summary:             r.Interpretation.Summary,
			Introduction:        r.Interpretation.Introduction,
			Cards:               interpCards,
			CardInteractions:    r.Interpretation.CardInteractions,
			Guidance:            r.Interpretation.Guidance,
			ReflectionQuestions: r.Interpretation.ReflectionQuestions,
		},
		CreatedAt: r.CreatedAt,
	}
}

func toEntryRequest(req JournalEntryRequest) app.NewEntryRequest {
	return app.NewEntryRequest{
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Mood:      domain.Mood(req.Mood),
		ReadingID: req.ReadingID,
		Tags:      req.Tags,
	}
}

func toEntryResponse(e domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Content:   e.Content,
		Mood:      string(e.Mood),
		ReadingID: e.ReadingID,
		Tags:      e.Tags,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrReadingNotFound),
		errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrDeckNotFound),
		errors.Is(err, domain.ErrSpreadNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidMood),
		errors.Is(err, domain.ErrEmptySpread),
		errors.Is(err, domain.ErrSpreadExceedsDeck):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUpstreamLLM), errors.Is(err, domain.ErrInvalidLLMJSON):
		slog.Error("upstream LLM failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "upstream LLM failure"})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
