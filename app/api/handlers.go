package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/user/learnlog/app/database"
	"github.com/user/learnlog/app/pipeline"
)

const logsPerPage = 12

const logNotFoundFragment = `<div class="alert alert-error">로그를 찾을 수 없습니다.</div>`

func NewHandler(processor QueryProcessorInterface, logRepo database.LogRepository,
	tagRepo database.TagRepository, refRepo database.ReferenceRepository) *Handler {
	return &Handler{
		processor: processor,
		logRepo:   logRepo,
		tagRepo:   tagRepo,
		refRepo:   refRepo,
	}
}

func (h *Handler) GetMainPage(c *gin.Context) {
	html, err := render("main.html", nil)
	if err != nil {
		slog.Error("Template error", "template", "main.html", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) GetLogListPage(c *gin.Context) {
	opts := listOptionsFromQuery(c)

	logs, hasNext, err := h.logRepo.List(opts)
	if err != nil {
		slog.Error("Database error", "operation", "list_logs", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	html, err := render("list.html", gin.H{
		"Logs":        logs,
		"HasNext":     hasNext,
		"NextPage":    opts.Page + 1,
		"CurrentSort": opts.Sort,
		"SearchQuery": opts.Query,
	})
	if err != nil {
		slog.Error("Template error", "template", "list.html", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if logCount, err := h.logRepo.GetLogCount(); err == nil {
		health["logs"] = logCount
	}

	if refCount, err := h.refRepo.GetReferenceCount(); err == nil {
		health["references"] = refCount
	}

	c.JSON(http.StatusOK, health)
}

// ProcessQuery handles the form surface: the response is always an HTML
// fragment, error or result, suitable for swapping into the page.
func (h *Handler) ProcessQuery(c *gin.Context) {
	query := c.PostForm("query")

	result, err := h.processor.Process(c.Request.Context(), query)
	if err != nil {
		h.renderErrorFragment(c, err)
		return
	}

	html, err := render("result.html", gin.H{"Log": result.Log})
	if err != nil {
		slog.Error("Template error", "template", "result.html", "error", err)
		h.renderErrorFragment(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type sseMessage struct {
	event string
	data  interface{}
}

// ProcessQueryStream runs the pipeline while streaming progress events,
// then a terminal complete or error event carrying the rendered fragment.
// The connection lives for exactly one run.
func (h *Handler) ProcessQueryStream(c *gin.Context) {
	query := c.PostForm("query")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	// Buffered for every possible event so the pipeline goroutine never
	// blocks if the client disconnects mid-run.
	events := make(chan sseMessage, pipeline.TotalSteps+1)

	go func() {
		defer close(events)

		result, err := h.processor.Run(c.Request.Context(), query, func(p pipeline.Progress) {
			events <- sseMessage{event: "progress", data: p}
		})
		if err != nil {
			html, renderErr := render("error.html", gin.H{"ErrorMessage": err.Error()})
			if renderErr != nil {
				slog.Error("Template error", "template", "error.html", "error", renderErr)
			}
			events <- sseMessage{event: "error", data: gin.H{"html": html}}
			return
		}

		html, err := render("result.html", gin.H{"Log": result.Log})
		if err != nil {
			slog.Error("Template error", "template", "result.html", "error", err)
			events <- sseMessage{event: "error", data: gin.H{"html": ""}}
			return
		}

		events <- sseMessage{event: "complete", data: gin.H{"html": html}}
	}()

	c.Stream(func(w io.Writer) bool {
		msg, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(msg.event, msg.data)
		return true
	})
}

type queryInput struct {
	Query string `json:"query" binding:"required"`
}

func (h *Handler) ProcessQueryJSON(c *gin.Context) {
	var input queryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query 필드는 필수입니다."})
		return
	}

	result, err := h.processor.Process(c.Request.Context(), input.Query)
	if err != nil {
		var verr *pipeline.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
			return
		}

		slog.Error("Pipeline error", "operation", "process_query", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    toLogDTO(result.Log),
	})
}

// GetLogCards serves card fragments for infinite scroll.
func (h *Handler) GetLogCards(c *gin.Context) {
	opts := listOptionsFromQuery(c)

	logs, hasNext, err := h.logRepo.List(opts)
	if err != nil {
		slog.Error("Database error", "operation", "list_logs", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	html, err := render("log_cards.html", gin.H{
		"Logs":        logs,
		"HasNext":     hasNext,
		"NextPage":    opts.Page + 1,
		"CurrentSort": opts.Sort,
		"SearchQuery": opts.Query,
	})
	if err != nil {
		slog.Error("Template error", "template", "log_cards.html", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GetLogDetail serves the detail modal fragment and counts the view.
// An unknown id renders an inline error fragment rather than a 404 so
// the modal swap still happens.
func (h *Handler) GetLogDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(logNotFoundFragment))
		return
	}

	log, err := h.logRepo.GetLog(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_log", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if log == nil {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(logNotFoundFragment))
		return
	}

	if err := h.logRepo.IncrementViewCount(id); err != nil {
		slog.Error("Database error", "operation", "increment_view_count", "id", id, "error", err)
	} else {
		log.ViewCount++
	}

	html, err := render("log_detail.html", gin.H{"Log": log})
	if err != nil {
		slog.Error("Template error", "template", "log_detail.html", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type bookmarkInput struct {
	IsBookmarked *bool `json:"is_bookmarked" binding:"required"`
}

func (h *Handler) SetBookmark(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "로그를 찾을 수 없습니다."})
		return
	}

	var input bookmarkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_bookmarked 필드는 필수입니다."})
		return
	}

	log, err := h.logRepo.GetLog(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_log", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if log == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "로그를 찾을 수 없습니다."})
		return
	}

	if err := h.logRepo.SetBookmarked(id, *input.IsBookmarked); err != nil {
		slog.Error("Database error", "operation", "set_bookmarked", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_bookmarked": *input.IsBookmarked})
}

func (h *Handler) renderErrorFragment(c *gin.Context, err error) {
	message := err.Error()

	var verr *pipeline.ValidationError
	if errors.As(err, &verr) {
		message = verr.Message
	} else {
		slog.Error("Pipeline error", "operation", "process_query", "error", err)
	}

	html, renderErr := render("error.html", gin.H{"ErrorMessage": message})
	if renderErr != nil {
		slog.Error("Template error", "template", "error.html", "error", renderErr)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func listOptionsFromQuery(c *gin.Context) database.ListOptions {
	q := c.Query("q")

	sort := c.Query("sort")
	if sort == "" {
		if q != "" {
			sort = database.SortRelevance
		} else {
			sort = database.SortLatest
		}
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	return database.ListOptions{
		Query:      q,
		Sort:       sort,
		Tag:        c.Query("tag"),
		Bookmarked: c.Query("bookmarked") == "true",
		Page:       page,
		PerPage:    logsPerPage,
	}
}
