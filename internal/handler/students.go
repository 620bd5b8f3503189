package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/numbernexus/internal/achievements"
	"github.com/abhisek/numbernexus/internal/dashboard"
	"github.com/abhisek/numbernexus/internal/diagnosis"
	"github.com/abhisek/numbernexus/internal/i18n"
	"github.com/abhisek/numbernexus/internal/progression"
	"github.com/abhisek/numbernexus/internal/stats"
	"github.com/abhisek/numbernexus/internal/store"
	"github.com/abhisek/numbernexus/internal/topic"
)

type topicView struct {
	progression.MathTopicData
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Icon   string `json:"icon"`
}

type studentView struct {
	Student *store.StudentStats `json:"student"`
	Topics  []topicView         `json:"topics"`
}

type resultView struct {
	Student         *store.StudentStats        `json:"student"`
	Correct         bool                       `json:"correct"`
	Points          int                        `json:"points"`
	Topics          []topicView                `json:"topics"`
	NewlyUnlocked   []topic.ID                 `json:"newlyUnlocked"`
	NewAchievements []achievements.Achievement `json:"newAchievements"`
	Diagnosis       *diagnosis.DiagnosisResult `json:"diagnosis,omitempty"`
}

type dashboardView struct {
	*dashboard.Dashboard
	Topics []topicView                 `json:"topics"`
	Earned []achievements.Achievement `json:"earnedAchievements"`
	Locked []achievements.Achievement `json:"lockedAchievements"`
}

type createStudentRequest struct {
	Name string `json:"name"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty"`
}

type solveRequest struct {
	Topic      string `json:"topic"`
	Num1       int    `json:"num1"`
	Num2       int    `json:"num2"`
	Answer     string `json:"answer"`
	Correct    bool   `json:"correct"`
	ResponseMs int64  `json:"responseMs"`
	HintsUsed  int    `json:"hintsUsed"`
	Difficulty string `json:"difficulty"`
}

type drillRequest struct {
	Topic      string `json:"topic"`
	Correct    int    `json:"correct"`
	Attempted  int    `json:"attempted"`
	DurationMs int64  `json:"durationMs"`
}

func (h *Handler) handleListStudents(w http.ResponseWriter, r *http.Request) {
	list, err := h.stats.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []*store.StudentStats{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"students": list})
}

func (h *Handler) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := decodeBody(w, r, h.schemas.createStudent, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.stats.Create(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.studentView(r, st))
}

func (h *Handler) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.studentView(r, st))
}

func (h *Handler) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.stats.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := decodeBody(w, r, h.schemas.difficulty, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.stats.SetDifficulty(r.Context(), chi.URLParam(r, "id"), req.Difficulty)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.studentView(r, st))
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decodeBody(w, r, h.schemas.solve, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.stats.RecordSolve(r.Context(), chi.URLParam(r, "id"), stats.SolveInput{
		Topic:      req.Topic,
		Num1:       req.Num1,
		Num2:       req.Num2,
		Answer:     req.Answer,
		Correct:    req.Correct,
		ResponseMs: req.ResponseMs,
		HintsUsed:  req.HintsUsed,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.resultView(r, res))
}

func (h *Handler) handleDrill(w http.ResponseWriter, r *http.Request) {
	var req drillRequest
	if err := decodeBody(w, r, h.schemas.drill, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.stats.RecordDrill(r.Context(), chi.URLParam(r, "id"), stats.DrillInput{
		Topic:      req.Topic,
		Correct:    req.Correct,
		Attempted:  req.Attempted,
		DurationMs: req.DurationMs,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.resultView(r, res))
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	st, err := h.stats.Reset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.studentView(r, st))
}

func (h *Handler) handleTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.stats.Progress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"topics": localizeTopics(r, topics)})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboard.Build(r.Context(), chi.URLParam(r, "id"), time.Now())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboardView{
		Dashboard: d,
		Topics:    localizeTopics(r, d.Topics),
		Earned:    localizeAchievements(r, d.Earned),
		Locked:    localizeAchievements(r, d.Locked),
	})
}

func (h *Handler) studentView(r *http.Request, st *store.StudentStats) studentView {
	return studentView{
		Student: st,
		Topics:  localizeTopics(r, h.stats.Engine().CalculateTopicProgress(st)),
	}
}

func (h *Handler) resultView(r *http.Request, res *stats.Result) resultView {
	unlocked := res.NewlyUnlocked
	if unlocked == nil {
		unlocked = []topic.ID{}
	}
	return resultView{
		Student:         res.Stats,
		Correct:         res.Correct,
		Points:          res.Points,
		Topics:          localizeTopics(r, res.Topics),
		NewlyUnlocked:   unlocked,
		NewAchievements: localizeAchievements(r, res.NewAchievements),
		Diagnosis:       res.Diagnosis,
	}
}

func localizeTopics(r *http.Request, topics []progression.MathTopicData) []topicView {
	loc := i18n.FromContext(r.Context())
	out := make([]topicView, 0, len(topics))
	for _, d := range topics {
		t, err := topic.Get(d.ID)
		if err != nil {
			continue
		}
		out = append(out, topicView{
			MathTopicData: d,
			Name:          loc.TopicName(string(t.ID), t.Name),
			Symbol:        t.Symbol,
			Icon:          t.Icon,
		})
	}
	return out
}

func localizeAchievements(r *http.Request, as []achievements.Achievement) []achievements.Achievement {
	loc := i18n.FromContext(r.Context())
	out := make([]achievements.Achievement, len(as))
	for i, a := range as {
		a.Name = loc.AchievementName(a.ID, a.Name)
		out[i] = a
	}
	return out
}
