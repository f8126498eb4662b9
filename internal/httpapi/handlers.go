package httpapi

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/zeebo/blake3"

	"github.com/footprint-tools/verb/internal/dispatchers"
	"github.com/footprint-tools/verb/internal/stream"
	"github.com/footprint-tools/verb/internal/usage"
)

const maxBodyBytes = 64 << 10

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// handleHealthz handles GET /healthz.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, HealthzResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Commands:      len(s.engine.Commands()),
	})
}

// handleDispatch handles POST /v1/dispatch.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	actor := s.actor(r)
	result, err := s.dispatcher.Dispatch(actor, req.Input)
	if err != nil {
		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("http: dispatch %q for %s: %v", req.Input, actor.Name(), err)
		}
		respondJSON(w, status, body)
		return
	}

	respondJSON(w, http.StatusOK, DispatchResponse{Result: result})
}

// handleSuggest handles GET /v1/suggest?input=...
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	respondJSON(w, http.StatusOK, SuggestResponse{
		Input:       input,
		Suggestions: s.engine.Suggest(s.actor(r), input),
	})
}

// handleCommands handles GET /v1/commands. The ETag is a blake3 digest of
// the listing, so clients can poll cheaply for tree changes.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	cmds := s.engine.Commands()
	infos := make([]CommandInfo, 0, len(cmds))
	for _, c := range cmds {
		infos = append(infos, CommandInfo{
			Usage:      c.Usage(),
			Summary:    c.Summary,
			Category:   c.Category.String(),
			Permission: c.Permission,
		})
	}

	fp, err := Fingerprint(infos)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fingerprint commands"})
		return
	}

	etag := `"` + fp + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	respondJSON(w, http.StatusOK, CommandsResponse{Fingerprint: fp, Commands: infos})
}

// handleTokenize handles GET /v1/tokenize?input=...
func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	tokens, err := stream.Tokenize(r.URL.Query().Get("input"))
	if err != nil {
		status, body := errorResponse(err)
		respondJSON(w, status, body)
		return
	}
	if tokens == nil {
		tokens = []string{}
	}
	respondJSON(w, http.StatusOK, TokenizeResponse{Tokens: tokens})
}

// Fingerprint hashes the command listing with blake3.
func Fingerprint(infos []CommandInfo) (string, error) {
	data, err := json.Marshal(infos)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}

// errorResponse maps a dispatch failure to a status code and body.
func errorResponse(err error) (int, ErrorResponse) {
	if errors.Is(err, dispatchers.ErrCancelled) {
		return http.StatusTooManyRequests, ErrorResponse{Error: err.Error(), Kind: "cancelled"}
	}

	var uerr *usage.Error
	if !errors.As(err, &uerr) {
		return http.StatusInternalServerError, ErrorResponse{Error: err.Error()}
	}

	pos := uerr.Position
	body := ErrorResponse{
		Error:       uerr.Message,
		Kind:        uerr.Kind.String(),
		Position:    &pos,
		Token:       uerr.Token,
		Parameter:   uerr.Parameter,
		Expected:    uerr.Expected,
		Permission:  uerr.Permission,
		Suggestions: uerr.Suggestions,
		ExitCode:    uerr.GetExitCode(),
	}

	switch uerr.Kind {
	case usage.ErrUnknownCommand:
		return http.StatusNotFound, body
	case usage.ErrNoPermission:
		return http.StatusForbidden, body
	case usage.ErrCommandInvocation:
		var inner *usage.Error
		if errors.As(uerr.Cause, &inner) {
			return http.StatusUnprocessableEntity, body
		}
		return http.StatusInternalServerError, body
	default:
		return http.StatusBadRequest, body
	}
}
