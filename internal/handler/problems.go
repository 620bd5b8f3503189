package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/abhisek/numbernexus/internal/hints"
	"github.com/abhisek/numbernexus/internal/i18n"
	"github.com/abhisek/numbernexus/internal/problemgen"
	"github.com/abhisek/numbernexus/internal/topic"
)

const maxProblemsPerRequest = 20

type problemView struct {
	Operation  problemgen.Operation  `json:"operation"`
	Difficulty problemgen.Difficulty `json:"difficulty,omitempty"`
	Num1       int                   `json:"num1"`
	Num2       int                   `json:"num2"`
	Question   string                `json:"question"`
	Answer     string                `json:"answer"`
	Fallback   bool                  `json:"fallback,omitempty"`
}

type hintView struct {
	hints.HintStrategy
	Operation        problemgen.Operation `json:"operation"`
	Category         hints.Category       `json:"category,omitempty"`
	BridgeThroughTen bool                 `json:"bridgeThroughTen"`
	Breakdown        *hints.Breakdown     `json:"breakdown,omitempty"`
}

// handleProblems serves GET /problems?operation=&difficulty=|maxSum=&exclude=n1,n2&count=.
func (h *Handler) handleProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	op, err := parseOperation(q.Get("operation"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	bound, err := parseBound(q.Get("difficulty"), q.Get("maxSum"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	exclude, err := parsePair(q.Get("exclude"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	count := 1
	if s := q.Get("count"); s != "" {
		count, err = strconv.Atoi(s)
		if err != nil || count < 1 || count > maxProblemsPerRequest {
			h.writeError(w, r, fmt.Errorf("count must be 1..%d: %w", maxProblemsPerRequest, errBadRequest))
			return
		}
	}

	out := make([]problemView, 0, count)
	for range count {
		p := h.gen.Problem(op, bound, exclude)
		h.metrics.ObserveProblem(string(p.Operation), string(p.Difficulty), p.Fallback)
		out = append(out, problemView{
			Operation:  p.Operation,
			Difficulty: p.Difficulty,
			Num1:       p.Operands.Num1,
			Num2:       p.Operands.Num2,
			Question:   p.Text,
			Answer:     problemgen.FormatAnswer(p),
			Fallback:   p.Fallback,
		})
		prev := p.Operands
		exclude = &prev
	}
	writeJSON(w, http.StatusOK, map[string]any{"problems": out})
}

// handleHint serves GET /hints?operation=&num1=&num2=.
func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	op, err := parseOperation(q.Get("operation"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	n1, err1 := parseOperand(q.Get("num1"))
	n2, err2 := parseOperand(q.Get("num2"))
	if err1 != nil || err2 != nil {
		h.writeError(w, r, fmt.Errorf("num1 and num2 must be non-negative integers: %w", errBadRequest))
		return
	}

	strategy := h.hints.StrategyFor(op, n1, n2)
	strategy.Title = i18n.FromContext(r.Context()).HintTitle(string(strategy.Type), strategy.Title)
	h.metrics.ObserveHint(string(strategy.Type))

	view := hintView{HintStrategy: strategy, Operation: op}
	if op == problemgen.OpAddition {
		view.Category = h.hints.Category(n1 + n2)
		view.BridgeThroughTen = h.hints.IsBridgeThroughTen(n1, n2)
		if view.BridgeThroughTen {
			b := h.hints.MakeTenBreakdown(n1, n2)
			view.Breakdown = &b
		}
	}
	writeJSON(w, http.StatusOK, view)
}

// parseOperation accepts a topic id; empty means addition.
func parseOperation(s string) (problemgen.Operation, error) {
	if s == "" {
		return problemgen.OpAddition, nil
	}
	id := topic.ID(strings.ToLower(s))
	if !topic.Valid(id) {
		return "", fmt.Errorf("unknown operation %q: %w", s, errBadRequest)
	}
	return problemgen.Operation(id), nil
}

func parseBound(difficulty, maxSum string) (problemgen.Bound, error) {
	switch {
	case difficulty != "" && maxSum != "":
		return problemgen.Bound{}, fmt.Errorf("difficulty and maxSum are exclusive: %w", errBadRequest)
	case maxSum != "":
		n, err := strconv.Atoi(maxSum)
		if err != nil || n < 1 {
			return problemgen.Bound{}, fmt.Errorf("maxSum must be a positive integer: %w", errBadRequest)
		}
		return problemgen.ForMaxSum(n), nil
	case difficulty != "":
		d := problemgen.Difficulty(strings.ToLower(difficulty))
		if !d.Valid() {
			return problemgen.Bound{}, fmt.Errorf("unknown difficulty %q: %w", difficulty, errBadRequest)
		}
		return problemgen.ForDifficulty(d), nil
	default:
		return problemgen.ForDifficulty(problemgen.Medium), nil
	}
}

// parsePair parses "n1,n2". Empty input means no pair.
func parsePair(s string) (*problemgen.OperandPair, error) {
	if s == "" {
		return nil, nil
	}
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("exclude must be n1,n2: %w", errBadRequest)
	}
	n1, err1 := parseOperand(a)
	n2, err2 := parseOperand(b)
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("exclude must be n1,n2: %w", errBadRequest)
	}
	return &problemgen.OperandPair{Num1: n1, Num2: n2}, nil
}

func parseOperand(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid operand %q: %w", s, errBadRequest)
	}
	return n, nil
}
