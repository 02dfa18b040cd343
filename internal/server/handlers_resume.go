package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// keepAliveInterval spaces the comments sent on an idle event stream
const keepAliveInterval = 30 * time.Second

// ResumeResponse is the body of GET /api/resume
type ResumeResponse struct {
	Document *types.ResumeDocument `json:"document"`
	Banner   string                `json:"banner,omitempty"`
	Ready    bool                  `json:"ready"`
}

func (s *Server) resumeResponse() ResumeResponse {
	return ResumeResponse{
		Document: s.builder.Document(),
		Banner:   s.builder.Banner(),
		Ready:    s.builder.Ready(),
	}
}

// handleGetResume returns the current document
func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.resumeResponse())
}

// handleUpdateSection replaces one section with the request body
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	section, err := types.ParseSection(r.PathValue("section"))
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}

	value, err := decodeSection(r, section)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := s.builder.UpdateSection(section, value); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, s.resumeResponse())
}

// decodeSection reads the body as the section's type, validating every item
// and assigning ids to new ones
func decodeSection(r *http.Request, section types.Section) (any, error) {
	dec := json.NewDecoder(r.Body)
	switch section {
	case types.SectionPersonalInfo:
		var info types.PersonalInfo
		if err := dec.Decode(&info); err != nil {
			return nil, &ErrValidation{Field: string(section), Message: "invalid request body"}
		}
		return info, nil

	case types.SectionAchievements:
		var items []types.Achievement
		if err := dec.Decode(&items); err != nil {
			return nil, &ErrValidation{Field: string(section), Message: "expected an array of achievements"}
		}
		seen := seenIDs{}
		for i := range items {
			if err := items[i].Validate(); err != nil {
				return nil, itemError(section, i, err)
			}
			if err := seen.add(section, i, items[i].ID); err != nil {
				return nil, err
			}
			assignID(&items[i].ID)
		}
		return items, nil

	case types.SectionWorkExperience:
		var items []types.WorkExperience
		if err := dec.Decode(&items); err != nil {
			return nil, &ErrValidation{Field: string(section), Message: "expected an array of positions"}
		}
		seen := seenIDs{}
		for i := range items {
			if err := items[i].Validate(); err != nil {
				return nil, itemError(section, i, err)
			}
			if err := seen.add(section, i, items[i].ID); err != nil {
				return nil, err
			}
			assignID(&items[i].ID)
			if items[i].Current {
				items[i].EndDate = types.PresentEndDate
			}
		}
		return items, nil

	case types.SectionEducation:
		var items []types.Education
		if err := dec.Decode(&items); err != nil {
			return nil, &ErrValidation{Field: string(section), Message: "expected an array of education entries"}
		}
		seen := seenIDs{}
		for i := range items {
			if err := items[i].Validate(); err != nil {
				return nil, itemError(section, i, err)
			}
			if err := seen.add(section, i, items[i].ID); err != nil {
				return nil, err
			}
			assignID(&items[i].ID)
		}
		return items, nil

	case types.SectionSkills:
		var items []types.Skill
		if err := dec.Decode(&items); err != nil {
			return nil, &ErrValidation{Field: string(section), Message: "expected an array of skills"}
		}
		seen := seenIDs{}
		for i := range items {
			if err := items[i].Validate(); err != nil {
				return nil, itemError(section, i, err)
			}
			if err := seen.add(section, i, items[i].ID); err != nil {
				return nil, err
			}
			assignID(&items[i].ID)
		}
		return items, nil
	}
	return nil, &builder.SectionError{Section: section, Message: "unknown section"}
}

func itemError(section types.Section, index int, err error) error {
	return &ErrValidation{Field: fmt.Sprintf("%s[%d]", section, index), Message: err.Error()}
}

// seenIDs maps each client-supplied id to the first item that used it
type seenIDs map[string]int

func (s seenIDs) add(section types.Section, index int, id string) error {
	if id == "" {
		return nil
	}
	if first, ok := s[id]; ok {
		return &ErrValidation{
			Field:   fmt.Sprintf("%s[%d]", section, index),
			Message: fmt.Sprintf("duplicate id %q (already used by item %d)", id, first),
		}
	}
	s[id] = index
	return nil
}

func assignID(id *string) {
	if *id == "" {
		*id = editor.DefaultIDFunc()
	}
}

// handleResetResume clears the document when the request carries confirm=true
func (s *Server) handleResetResume(w http.ResponseWriter, r *http.Request) {
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !confirmed {
		s.errorResponse(w, http.StatusBadRequest, MsgResetNotConfirmed)
		return
	}

	if _, err := s.builder.Reset(r.Context(), editor.AlwaysConfirm); err != nil {
		// The in-memory document is already cleared; the banner reports the failed erase
		log.Printf("Error clearing persisted resume: %v", err)
	}
	s.jsonResponse(w, http.StatusOK, s.resumeResponse())
}

// handlePreview returns the plain text preview
func (s *Server) handlePreview(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rendering.RenderPreview(s.builder.Document())))
}

// handleExport renders the document to a PDF and returns it as an attachment
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, fmt.Sprintf(MsgServiceUnavailable, "export"))
		return
	}

	result, err := s.exporter.Export(r.Context(), s.builder.Document())
	if err != nil {
		if !errors.Is(err, export.ErrExportInProgress) {
			log.Printf("Error exporting PDF: %v", err)
		}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(result.PDF)))
	if result.Location != "" {
		w.Header().Set("X-Export-Location", result.Location)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PDF)
}

// handleEvents streams document events until the client disconnects
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		s.errorResponse(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	events := make(chan builder.Event, 16)
	unsubscribe := s.builder.Subscribe(func(e builder.Event) {
		select {
		case events <- e:
		default:
			log.Printf("[SSE] Dropping %s event for slow client", e.Type)
		}
	})
	defer unsubscribe()

	stream, err := openEventStream(w)
	if err != nil {
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case e := <-events:
			if err := stream.send(e); err != nil {
				return
			}
		case <-ticker.C:
			if err := stream.ping(); err != nil {
				return
			}
		}
	}
}
