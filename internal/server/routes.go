package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
	"github.com/tartampluch/go-keepintouch/internal/model"
	"github.com/tartampluch/go-keepintouch/internal/store"
)

// itemDTO is the wire shape of a timeline/backlog entry. Priority stays
// server-side: it only encodes sort order, which the response order already
// carries (and a never-contacted backlog priority is infinite, which JSON
// cannot represent).
type itemDTO struct {
	Kind       model.ItemKind `json:"kind"`
	FriendID   string         `json:"friend_id"`
	FriendName string         `json:"friend_name"`
	Title      string         `json:"title"`
	Subtitle   string         `json:"subtitle"`
	Date       time.Time      `json:"date"`
}

func toDTOs(items []model.TimelineItem) []itemDTO {
	out := make([]itemDTO, len(items))
	for i, it := range items {
		out[i] = itemDTO{
			Kind:       it.Kind,
			FriendID:   it.FriendID,
			FriendName: it.FriendName,
			Title:      it.Title,
			Subtitle:   it.Subtitle,
			Date:       it.Date,
		}
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := s.db.Ping() == nil
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": config.Version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}

// derive loads the roster and settings; both engines run over the same
// snapshot so the urgent set stays consistent.
func (s *Server) derive(r *http.Request) ([]model.TimelineItem, []model.TimelineItem, error) {
	ctx := r.Context()
	friends, err := s.db.ListFriends(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	settings, err := s.db.Settings(ctx)
	if err != nil {
		return nil, nil, err
	}

	now := s.clock.Now()
	timeline, urgent := s.engine.DeriveTimeline(friends, settings, now)
	backlog := s.engine.DeriveBacklog(friends, settings, now, urgent)
	return timeline, backlog, nil
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, _, err := s.derive(r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"items": toDTOs(timeline)})
}

func (s *Server) handleBacklog(w http.ResponseWriter, r *http.Request) {
	_, backlog, err := s.derive(r)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"items": toDTOs(backlog)})
}

type friendDTO struct {
	model.Friend
	Status engine.Status `json:"status"`
}

func (s *Server) handleListFriends(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tier := model.Tier(r.URL.Query().Get("tier"))
	if tier != "" {
		if _, err := model.ParseTier(string(tier)); err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	friends, err := s.db.ListFriends(ctx, tier)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	now := s.clock.Now()
	out := make([]friendDTO, len(friends))
	for i, f := range friends {
		birthdayToday := false
		if f.Birthday != nil {
			_, daysUntil := engine.NextOccurrence(*f.Birthday, now)
			birthdayToday = daysUntil == 0
		}
		out[i] = friendDTO{
			Friend: f,
			Status: engine.ClassifyStatus(f.LastContactedAt, f.ContactFrequencyDays, birthdayToday, now),
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"friends": out})
}

type createFriendRequest struct {
	Name          string `json:"name"`
	Birthday      string `json:"birthday,omitempty"`
	Tier          string `json:"tier"`
	Starred       bool   `json:"starred"`
	FrequencyDays int    `json:"contact_frequency_days"`
}

func (s *Server) handleCreateFriend(w http.ResponseWriter, r *http.Request) {
	var req createFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}

	tier := model.TierCordialities
	if req.Tier != "" {
		parsed, err := model.ParseTier(req.Tier)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		tier = parsed
	}

	f := model.Friend{
		Name:                 req.Name,
		Tier:                 tier,
		Starred:              req.Starred,
		ContactFrequencyDays: req.FrequencyDays,
	}
	if req.Birthday != "" {
		b, err := engine.ParseBirthday(req.Birthday)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		f.Birthday = b
	}
	if f.ContactFrequencyDays == 0 {
		settings, err := s.db.Settings(r.Context())
		if err == nil {
			f.ContactFrequencyDays = settings.DefaultContactFrequencyDays
		}
	}

	if err := s.db.CreateFriend(r.Context(), &f); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, f)
}

type logInteractionRequest struct {
	Note       string     `json:"note"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

func (s *Server) handleLogInteraction(w http.ResponseWriter, r *http.Request) {
	friendID := chi.URLParam(r, "friendID")

	var req logInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}

	occurredAt := s.clock.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	in, err := s.db.AddInteraction(r.Context(), friendID, req.Note, occurredAt)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, in)
}

// handleCalendar serves the ICS feed with conditional-request support. The
// payload is rebuilt per request (the roster is small); the ETag makes the
// rebuild invisible to polling calendar clients.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	friends, err := s.db.ListFriends(r.Context(), "")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data, _, err := s.builder.Build(friends, s.clock.Now(), "")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, etag)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
