package delivery

import (
	"encoding/json"
	"net/http"
)

type presignResponse struct {
	URL string `json:"url"`
}

// file_url выбран единственным именем поля; imageUrl больше не отдаётся.
type uploadResponse struct {
	FileURL string `json:"file_url"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
