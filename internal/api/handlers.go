package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/examples"
	"github.com/abhisek/thoughtchain/internal/export"
	"github.com/abhisek/thoughtchain/internal/reasoning"
	"github.com/abhisek/thoughtchain/internal/store"
)

const defaultRunLimit = 20

type classifyRequest struct {
	Problem string `json:"problem"`
}

type classifyResponse struct {
	Category reasoning.Category `json:"category"`
}

type segmentRequest struct {
	Text string `json:"text"`
}

type segmentResponse struct {
	reasoning.Transcript
	Summary export.DocumentSummary `json:"summary"`
}

type solveRequest struct {
	Problem     string             `json:"problem"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Category    reasoning.Category `json:"category"`
}

type solveResponse struct {
	export.Document
	Truncated bool `json:"truncated"`
}

type runListItem struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Problem   string             `json:"problem"`
	Category  reasoning.Category `json:"category"`
	Model     string             `json:"model"`
	Steps     int                `json:"steps"`
	Outcome   reasoning.Outcome  `json:"outcome"`
	LatencyMs int64              `json:"latency_ms"`
}

func (s *Server) readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", errInvalidRequest, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", errInvalidRequest, maxBodyBytes)
	}
	return body, nil
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	var req classifyRequest
	if err := decodeRequest("classify", body, &req); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, classifyResponse{Category: s.service.Classify(req.Problem)})
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	var req segmentRequest
	if err := decodeRequest("segment", body, &req); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	transcript := s.service.Segment(req.Text)
	if transcript.Steps == nil {
		transcript.Steps = []reasoning.Step{}
	}
	sum := reasoning.Summarize(transcript.Steps)
	counts := make(map[string]int, len(sum.Counts))
	for _, kc := range sum.Counts {
		counts[string(kc.Kind)] = kc.Count
	}
	writeJSON(w, http.StatusOK, segmentResponse{
		Transcript: *transcript,
		Summary: export.DocumentSummary{
			Total:       sum.Total,
			Counts:      counts,
			FinalAnswer: sum.FinalAnswer,
		},
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	var req solveRequest
	if err := decodeRequest("solve", body, &req); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	run, err := s.service.Solve(r.Context(), cot.SolveInput{
		Problem:     req.Problem,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Category:    req.Category,
	})
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{
		Document:  export.NewDocument(run),
		Truncated: run.Truncated(),
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	q := store.RunQuery{
		QueryOpts: store.QueryOpts{Limit: defaultRunLimit},
		Category:  r.URL.Query().Get("category"),
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: limit must be a positive integer", errInvalidRequest))
			return
		}
		q.Limit = n
	}

	runs, err := s.service.Recent(r.Context(), q)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	items := make([]runListItem, len(runs))
	for i, run := range runs {
		items[i] = runListItem{
			ID:        run.ID,
			CreatedAt: run.CreatedAt,
			Problem:   run.Problem,
			Category:  run.Category,
			Model:     run.Model,
			Steps:     run.StepCount(),
			Outcome:   run.Transcript.Outcome,
			LatencyMs: run.Latency.Milliseconds(),
		}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.service.Lookup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, export.NewDocument(run))
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	list := examples.All()
	if c := r.URL.Query().Get("category"); c != "" {
		list = examples.ByCategory(reasoning.Category(c))
	}
	if list == nil {
		list = []examples.Example{}
	}
	writeJSON(w, http.StatusOK, list)
}
