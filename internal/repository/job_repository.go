package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"unitip-client/internal/api"
	"unitip-client/internal/domain"
)

// JobRepository exposes the delivery job operations of the Unitip API.
type JobRepository struct {
	client *api.Client
}

// NewJobRepository creates a job repository backed by the given API client.
func NewJobRepository(client *api.Client) *JobRepository {
	return &JobRepository{client: client}
}

type pageInfoDTO struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

type jobCustomerDTO struct {
	Name string `json:"name"`
}

type jobDTO struct {
	ID             string         `json:"id"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Note           string         `json:"note"`
	Service        string         `json:"service"`
	PickupLocation string         `json:"pickupLocation"`
	Destination    string         `json:"destination"`
	Status         string         `json:"status"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
	Customer       jobCustomerDTO `json:"customer"`
}

type getAllJobsResponse struct {
	Jobs     []jobDTO    `json:"jobs"`
	PageInfo pageInfoDTO `json:"pageInfo"`
}

type getJobResponse struct {
	Job jobDTO `json:"job"`
}

func mapJob(dto jobDTO) domain.Job {
	jobType := domain.JobTypeMulti
	if dto.Type == "single" {
		jobType = domain.JobTypeSingle
	}
	return domain.Job{
		ID:             dto.ID,
		Type:           jobType,
		Title:          dto.Title,
		Note:           dto.Note,
		Service:        dto.Service,
		PickupLocation: dto.PickupLocation,
		Destination:    dto.Destination,
		Status:         dto.Status,
		CreatedAt:      dto.CreatedAt,
		UpdatedAt:      dto.UpdatedAt,
		Customer:       domain.JobCustomer{Name: dto.Customer.Name},
	}
}

// GetAll lists one page of jobs. HasNext is derived from the pagination
// envelope; request the next page by calling again with page+1.
func (r *JobRepository) GetAll(ctx context.Context, page int) (domain.JobList, *domain.Failure) {
	if page < 1 {
		page = 1
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodGet,
		Path:      "/jobs",
		Query:     query,
		Operation: "job.get_all",
	}, mappedEmptyBody, func(body *getAllJobsResponse) domain.JobList {
		jobs := make([]domain.Job, 0, len(body.Jobs))
		for _, job := range body.Jobs {
			jobs = append(jobs, mapJob(job))
		}
		return domain.JobList{
			Jobs:    jobs,
			HasNext: body.PageInfo.Page < body.PageInfo.TotalPages,
		}
	})
}

// Get fetches one job's detail. The service type is part of the lookup
// because single and multi jobs live on different backend tables.
func (r *JobRepository) Get(ctx context.Context, id, service string) (domain.Job, *domain.Failure) {
	query := url.Values{}
	if service != "" {
		query.Set("type", service)
	}

	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodGet,
		Path:      "/jobs/" + url.PathEscape(id),
		Query:     query,
		Operation: "job.get",
	}, mappedEmptyBody, func(body *getJobResponse) domain.Job {
		return mapJob(body.Job)
	})
}
