package devserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type wireJob struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Note           string `json:"note"`
	Service        string `json:"service"`
	PickupLocation string `json:"pickupLocation"`
	Destination    string `json:"destination"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
	Customer       struct {
		Name string `json:"name"`
	} `json:"customer"`
}

type wirePageInfo struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

func toWireJob(j *job) wireJob {
	out := wireJob{
		ID:             j.ID,
		Type:           j.Type,
		Title:          j.Title,
		Note:           j.Note,
		Service:        j.Service,
		PickupLocation: j.PickupLocation,
		Destination:    j.Destination,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
	out.Customer.Name = j.CustomerName
	return out
}

func (s *Server) handleGetAllJobs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	jobs, page, totalPages := s.store.ListJobs(page)
	out := make([]wireJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toWireJob(j))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"jobs":     out,
		"pageInfo": wirePageInfo{Page: page, TotalPages: totalPages},
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	j, ok := s.store.Job(chi.URLParam(r, "jobID"))
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": toWireJob(j)})
}
