package server

import (
	"encoding/json"
	"net/http"
)

// All responses share one envelope: {"status":"success","data":...} for
// 2xx, {"status":"fail"|"error","message":...} otherwise: "fail" for
// client-caused 4xx, "error" for 5xx.

type successEnvelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

type failureEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, successEnvelope{Status: "success", Data: data})
}

func writeFailure(w http.ResponseWriter, code int, message string) {
	status := "error"
	if code >= 400 && code < 500 {
		status = "fail"
	}
	writeJSON(w, code, failureEnvelope{Status: status, Message: message})
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn("response encoding failed", "err", err)
	}
}
