// Package repository contains the per-domain API repositories. Every
// operation follows the same skeleton: read the session, perform one request,
// map the wire body into a domain value on success, and absorb every other
// outcome into a Failure. Nothing in this package panics or returns a raw
// transport error to callers.
package repository

import (
	"context"

	"unitip-client/internal/api"
	"unitip-client/internal/domain"
	"unitip-client/internal/observability"
)

// emptyBodyPolicy decides what a success status without a usable body maps
// to. The backend is inconsistent here and the difference is deliberate:
// some endpoints report it through the generic failure mapper, others with a
// dedicated message.
type emptyBodyPolicy int

const (
	mappedEmptyBody   emptyBodyPolicy = iota // fold into the failure mapper
	rejectedEmptyBody                        // dedicated "response body is null" failure
)

// roundTrip runs one operation end to end: request, status check, body
// mapping. Exactly one of the returned values is populated.
func roundTrip[T any, D any](
	ctx context.Context,
	client *api.Client,
	rq api.Request,
	policy emptyBodyPolicy,
	mapBody func(*T) D,
) (D, *domain.Failure) {
	var zero D

	resp, err := api.Do[T](ctx, client, rq)
	if err != nil {
		// Transport detail stays in the logs; callers only see the generic
		// failure message.
		observability.FromContext(ctx).Error("api request failed",
			"operation", rq.Operation, "error", err)
		return zero, domain.UnexpectedFailure()
	}

	if !resp.Successful() {
		return zero, resp.Failure()
	}

	if resp.Body == nil {
		if policy == rejectedEmptyBody {
			return zero, domain.NullBodyFailure()
		}
		return zero, resp.Failure()
	}

	return mapBody(resp.Body), nil
}
