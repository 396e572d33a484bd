package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dekarrin/pbe/server/dao"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

var (
	errContentType   = errors.New("request content-type is not application/json")
	errReadBody      = errors.New("could not read request body")
	errMalformedJSON = errors.New("malformed JSON in request")
)

type loginRequest struct {
	APIKey string `json:"api_key"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := parseJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !s.checkAPIKey(req.APIKey) {
		http.Error(w, "invalid API key", http.StatusUnauthorized)
		return
	}

	tok, err := s.generateJWT()
	if err != nil {
		http.Error(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	renderJSON(w, http.StatusCreated, loginResponse{Token: tok})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req submittedJob
	if err := parseJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfgJSON, err := json.Marshal(req.Config)
	if err != nil {
		http.Error(w, "could not encode config", http.StatusInternalServerError)
		return
	}

	j, err := s.store.Jobs().Create(r.Context(), dao.Job{
		Grammar:  req.Grammar,
		Examples: []byte(req.Examples),
		Config:   cfgJSON,
		Status:   dao.StatusQueued,
	})
	if err != nil {
		http.Error(w, "could not create job", http.StatusInternalServerError)
		return
	}

	j, err = s.runInline(r.Context(), j)
	if err != nil {
		http.Error(w, "could not run job", http.StatusInternalServerError)
		return
	}

	renderJSON(w, http.StatusAccepted, toJobView(j))
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "not a valid job ID", http.StatusBadRequest)
		return
	}

	j, err := s.store.Jobs().GetByID(r.Context(), id)
	if err != nil {
		if err == dao.ErrNotFound {
			http.Error(w, "no such job", http.StatusNotFound)
			return
		}
		http.Error(w, "could not look up job", http.StatusInternalServerError)
		return
	}

	if j.Status == dao.StatusQueued || j.Status == dao.StatusRunning {
		j, err = s.continueInline(r.Context(), j)
		if err != nil {
			http.Error(w, "could not advance job", http.StatusInternalServerError)
			return
		}
	}

	renderJSON(w, http.StatusOK, toJobView(j))
}

// renderJSON and parseJSON follow tunaq/server/server.go's renderJSON/
// parseJSON exactly: a thin wrapper around encoding/json with a fixed
// Content-Type check on the way in.
func renderJSON(w http.ResponseWriter, status int, v any) {
	js, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}

func parseJSON(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		return errContentType
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return errReadBody
	}

	if err := json.Unmarshal(body, v); err != nil {
		return errMalformedJSON
	}
	return nil
}
