package httpapi

import (
	"encoding/json"
	"net/http"

	horoscopeuc "starcast/internal/usecase/horoscope"
)

func (h *handler) daily(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	payload, err := h.svc.Daily(r.Context(), horoscopeuc.DailyInput{
		Sign:     q.Get("sign"),
		Day:      q.Get("day"),
		Language: q.Get("lang"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeRaw(w, http.StatusOK, payload)
}

type personalizedRequest struct {
	Sun    string `json:"sun"`
	Rising string `json:"rising"`
	Day    string `json:"day"`
	Lang   string `json:"lang"`
}

func (h *handler) personalized(w http.ResponseWriter, r *http.Request) {
	var body personalizedRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	payload, err := h.svc.Personalized(r.Context(), horoscopeuc.PersonalizedInput{
		Sun:      body.Sun,
		Rising:   body.Rising,
		Day:      body.Day,
		Language: body.Lang,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeRaw(w, http.StatusOK, payload)
}
