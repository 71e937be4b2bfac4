package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/salary-predictor/internal/inference"
	"github.com/jonathan/salary-predictor/internal/types"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to Employee Salary Prediction API!"

// handleRoot returns the static welcome payload
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": WelcomeMessage})
}

// handlePredict handles POST /predict
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var payload any
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload); err != nil {
		s.errorResponse(w, &ErrRequestBody{Cause: err})
		return
	}

	res, err := s.predictor.Predict(r.Context(), payload)
	if err != nil {
		var inferenceErr *inference.InferenceError
		if errors.As(err, &inferenceErr) {
			log.Printf("[predict] unexpected inference error (request_id=%s): %v", requestID(r), err)
		}
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, res)
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{Status: "ok", ModelLoaded: s.predictor.Available()})
}

// handleModel describes the loaded model artifact
func (s *Server) handleModel(w http.ResponseWriter, _ *http.Request) {
	summary, err := s.predictor.Summary()
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handleExample returns a valid sample request body
func (s *Server) handleExample(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.ExampleEmployee())
}
