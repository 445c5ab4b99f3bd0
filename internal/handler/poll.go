package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adityasharma9336/society-management-system/internal/model"
	"github.com/adityasharma9336/society-management-system/internal/repository"
	"github.com/adityasharma9336/society-management-system/internal/service"
)

// PollHandler serves the community poll endpoints.
type PollHandler struct {
	Svc *service.PollService
}

func NewPollHandler(svc *service.PollService) *PollHandler {
	if svc == nil {
		panic("nil service passed to NewPollHandler")
	}
	return &PollHandler{Svc: svc}
}

type pollOptionResp struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

type pollResp struct {
	ID             uint64           `json:"id"`
	Question       string           `json:"question"`
	CreatedBy      uint64           `json:"created_by"`
	Deadline       time.Time        `json:"deadline"`
	Status         string           `json:"status"`
	Options        []pollOptionResp `json:"options"`
	HasVoted       bool             `json:"hasVoted"`
	UserVoteOption *int             `json:"userVoteOption,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

func toPollResp(p model.Poll, options []model.PollOption, voted bool, voteIdx int, now time.Time) pollResp {
	resp := pollResp{
		ID:        p.ID,
		Question:  p.Question,
		CreatedBy: p.CreatedBy,
		Deadline:  p.Deadline,
		Status:    service.EffectiveStatus(p, now),
		Options:   make([]pollOptionResp, 0, len(options)),
		HasVoted:  voted,
		CreatedAt: p.CreatedAt,
	}
	for _, o := range options {
		resp.Options = append(resp.Options, pollOptionResp{Index: o.OptionIndex, Text: o.Text, Votes: o.Votes})
	}
	if voted {
		idx := voteIdx
		resp.UserVoteOption = &idx
	}
	return resp
}

// Create handles POST /api/polls for admins.
func (h *PollHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Question string   `json:"question"`
		Options  []string `json:"options"`
		Deadline string   `json:"deadline"` // RFC3339
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	deadline, err := time.Parse(time.RFC3339, body.Deadline)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "deadline must be RFC3339"})
	}
	options := make([]string, 0, len(body.Options))
	for _, o := range body.Options {
		o = strings.TrimSpace(o)
		if o != "" {
			options = append(options, o)
		}
	}
	p, err := h.Svc.Create(c.Request().Context(), uid, strings.TrimSpace(body.Question), options, deadline.UTC())
	if err != nil {
		if wrote, werr := badRequestIfInvalid(c, err); wrote {
			return werr
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create poll failed"})
	}
	opts, err := h.Svc.Polls.Options(c.Request().Context(), p.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load poll failed"})
	}
	return c.JSON(http.StatusCreated, toPollResp(p, opts, false, 0, time.Now()))
}

// List handles GET /api/polls, annotating each poll with the caller's
// ballot and a deadline-aware status.
func (h *PollHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	polls, err := h.Svc.Polls.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load polls failed"})
	}
	now := time.Now()
	items := make([]pollResp, 0, len(polls))
	for _, p := range polls {
		opts, err := h.Svc.Polls.Options(ctx, p.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load polls failed"})
		}
		idx, voted, err := h.Svc.Polls.VoteOf(ctx, p.ID, uid)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load polls failed"})
		}
		items = append(items, toPollResp(p, opts, voted, idx, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Vote handles PUT /api/polls/:id/vote with body {"optionIndex": n}.
// Every failed precondition short of a missing poll is a 400.
func (h *PollHandler) Vote(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid poll id"})
	}
	var body struct {
		OptionIndex *int `json:"optionIndex"`
	}
	if err := c.Bind(&body); err != nil || body.OptionIndex == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "optionIndex is required"})
	}
	res, err := h.Svc.Vote(c.Request().Context(), id, uid, *body.OptionIndex)
	if err != nil {
		if wrote, werr := badRequestIfInvalid(c, err); wrote {
			return werr
		}
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "poll not found"})
		case errors.Is(err, repository.ErrInvalidState):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "poll is closed"})
		case errors.Is(err, repository.ErrAlreadyVoted):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "already voted"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "vote failed"})
	}
	return c.JSON(http.StatusOK, toPollResp(res.Poll, res.Options, res.HasVoted, res.UserVoteOption, time.Now()))
}

// Close handles PUT /api/polls/:id/close for admins.
func (h *PollHandler) Close(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid poll id"})
	}
	if err := h.Svc.Polls.Close(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "poll not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "close poll failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "poll closed"})
}
