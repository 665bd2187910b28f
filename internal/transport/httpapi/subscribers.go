package httpapi

import (
	"encoding/json"
	"net/http"

	horoscopeuc "starcast/internal/usecase/horoscope"
)

type subscribeRequest struct {
	Email string `json:"email"`
	Sign  string `json:"sign"`
	Lang  string `json:"lang"`
}

type subscribeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Sign  string `json:"sign"`
	Lang  string `json:"lang"`
}

func (h *handler) subscribe(w http.ResponseWriter, r *http.Request) {
	var body subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	sub, err := h.svc.Subscribe(r.Context(), horoscopeuc.SubscribeInput{
		Email:    body.Email,
		Sign:     body.Sign,
		Language: body.Lang,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, subscribeResponse{
		ID:    sub.ID,
		Email: sub.Email,
		Sign:  sub.Sign,
		Lang:  sub.Language,
	})
}

type saveChartRequest struct {
	Email     string `json:"email"`
	Sun       string `json:"sun"`
	Rising    string `json:"rising"`
	BirthDate string `json:"birth_date"`
}

type saveChartResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Sun    string `json:"sun"`
	Rising string `json:"rising,omitempty"`
}

func (h *handler) saveChart(w http.ResponseWriter, r *http.Request) {
	var body saveChartRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	chart, err := h.svc.SaveChart(r.Context(), horoscopeuc.SaveChartInput{
		Email:     body.Email,
		Sun:       body.Sun,
		Rising:    body.Rising,
		BirthDate: body.BirthDate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, saveChartResponse{
		ID:     chart.ID,
		Email:  chart.Email,
		Sun:    chart.Sun,
		Rising: chart.Rising,
	})
}

type alertsResponse struct {
	Sent int `json:"sent"`
}

func (h *handler) sendWeeklyAlerts(w http.ResponseWriter, r *http.Request) {
	sent, err := h.svc.SendWeeklyAlerts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, alertsResponse{Sent: sent})
}
