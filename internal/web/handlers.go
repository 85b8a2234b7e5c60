package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bilgiconline/isealim/internal/application"
	"github.com/bilgiconline/isealim/internal/auth"
	"github.com/bilgiconline/isealim/internal/logging"
	"github.com/bilgiconline/isealim/internal/queue"
	"github.com/bilgiconline/isealim/internal/validate"
)

// handleSubmit accepts a multipart application submission: the form fields
// plus the CV file under the "cv" part.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := s.limiter.Acquire(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	defer s.limiter.Release()

	// Leave headroom for the text fields beyond the CV size cap.
	maxBody := s.cfg.Submit.MaxFileSize + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(maxBody); err != nil {
		writeError(w, r, http.StatusBadRequest, "request body too large or invalid form")
		return
	}

	if err := s.verifier.Check(r.Context(), r.FormValue("captchaToken"), r.RemoteAddr); err != nil {
		respondError(w, r, err)
		return
	}

	militaryStatus, err := application.ParseMilitaryStatus(r.FormValue("militaryStatus"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	form := validate.FormData{
		FullName:          r.FormValue("fullName"),
		Email:             r.FormValue("email"),
		Phone:             r.FormValue("phone"),
		Position:          r.FormValue("position"),
		Experience:        r.FormValue("experience"),
		ExpectedSalary:    r.FormValue("expectedSalary"),
		Availability:      r.FormValue("availability"),
		OtherRequests:     r.FormValue("otherRequests"),
		Education:         r.FormValue("education"),
		Certificates:      r.FormValue("certificates"),
		References:        r.FormValue("references"),
		MilitaryStatus:    militaryStatus,
		TravelRestriction: r.FormValue("travelRestriction") == "true",
		KVKKApproval:      r.FormValue("kvkkApproval") == "true",
	}

	var fileName string
	var size int64
	file, header, err := r.FormFile("cv")
	if err == nil {
		defer file.Close()
		fileName = header.Filename
		size = header.Size
	}

	ctx, cancel := contextWithTimeout(r, s.cfg.Submit.Timeout)
	defer cancel()

	logger := logging.WithFields(ctx, "applicant", form.Email, "cv_file", fileName)
	logger.Info("submission started")

	rec, err := s.pipeline.Submit(ctx, form, fileName, file, size)
	if err != nil {
		respondError(w, r, err)
		return
	}

	logger.Info("submission completed", "application_id", rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// contextWithTimeout bounds the request context when a positive timeout is
// configured.
func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), d)
}

// listResponse is the reviewer's queue view: filtered applications plus
// counters over the unfiltered set.
type listResponse struct {
	Applications []application.Record `json:"applications"`
	Stats        queue.Stats          `json:"stats"`
}

// handleList returns the ordered application list, optionally filtered by
// the q (free text) and status query parameters.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	if statusFilter == "" {
		statusFilter = queue.StatusAll
	}
	if statusFilter != queue.StatusAll {
		if _, err := application.ParseStatus(statusFilter); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
	}

	records, err := s.repo.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{
		Applications: queue.Apply(records, r.URL.Query().Get("q"), statusFilter),
		Stats:        queue.Summarize(records),
	})
}

// handleStream delivers application list snapshots via Server-Sent Events.
// Every insert or status change produces a fresh full snapshot with its
// counters, the same shape handleList returns; slow clients only ever see
// the latest one.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	ch, release, err := s.feed.Subscribe(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	defer release()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming not supported")
		return
	}

	eventID := 0
	for {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(listResponse{
				Applications: snapshot,
				Stats:        queue.Summarize(snapshot),
			})
			if err != nil {
				logging.FromContext(r.Context()).Error("snapshot encode failed", "error", err)
				return
			}
			eventID++
			fmt.Fprintf(w, "id: %s\nevent: applications\ndata: %s\n\n", strconv.Itoa(eventID), data)
			flusher.Flush()

		case <-r.Context().Done():
			// Client disconnected
			return
		}
	}
}

// statusUpdateRequest is the PATCH body for a reviewer decision.
type statusUpdateRequest struct {
	Status string `json:"status"`
}

// handleUpdateStatus moves an application to a new workflow state.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "missing application id")
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	status, err := application.ParseStatus(req.Status)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.review.SetStatus(r.Context(), id, status); err != nil {
		respondError(w, r, err)
		return
	}

	reviewer, _ := auth.ReviewerFromContext(r.Context())
	logging.FromContext(r.Context()).Info("status updated",
		"application_id", id,
		"status", status,
		"reviewer", reviewer,
	)

	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": string(status)})
}

// loginRequest is the reviewer sign-in body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin verifies reviewer credentials and establishes a session.
// The token is returned in the body and also set as an HttpOnly cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.auth.SignIn(req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.auth.TokenTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleLogout clears the session cookie. Tokens are stateless, so logout
// is cookie disposal only.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth reports liveness plus submission limiter occupancy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"subscribers": s.feed.SubscriberCount(),
		"submissions": s.limiter.Status(),
	})
}
