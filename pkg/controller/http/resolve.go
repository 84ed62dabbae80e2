package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/service/slack"
	"github.com/watchtower-lab/slackbridge/pkg/usecase"
	"github.com/watchtower-lab/slackbridge/pkg/utils/errutil"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data) //nolint:errcheck // header already committed
}

type resolveResponse struct {
	Status    string `json:"status"`
	Prefix    string `json:"prefix,omitempty"`
	ChannelID string `json:"channel_id,omitempty"`
	JobID     string `json:"job_id,omitempty"`
}

// resolveChannelHandler looks a channel or user up by name. The
// outcome is one of resolved, not_found, or pending with a job ID to
// poll when the lookup was deferred.
func resolveChannelHandler(uc *usecase.ChannelUseCase) http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode resolve request"), http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			errutil.HandleHTTP(ctx, w, goerr.New("name is required"), http.StatusBadRequest)
			return
		}

		result, err := uc.Resolve(ctx, req.Name)
		if err != nil {
			if errors.Is(err, slack.ErrDuplicateDisplayName) {
				errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
				return
			}
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		switch {
		case result.Deferred():
			respondJSON(ctx, w, http.StatusAccepted, resolveResponse{
				Status: string(model.ResolutionPending),
				JobID:  result.JobID.String(),
			})
		case result.Resolution.Found():
			respondJSON(ctx, w, http.StatusOK, resolveResponse{
				Status:    string(model.ResolutionResolved),
				Prefix:    result.Resolution.Prefix,
				ChannelID: result.Resolution.ChannelID,
			})
		default:
			respondJSON(ctx, w, http.StatusNotFound, resolveResponse{
				Status: string(model.ResolutionNotFound),
				Prefix: result.Resolution.Prefix,
			})
		}
	}
}

// resolutionJobHandler reports the state of a deferred lookup
func resolutionJobHandler(uc *usecase.ChannelUseCase) http.HandlerFunc {
	type response struct {
		JobID     string `json:"job_id"`
		Name      string `json:"name"`
		Status    string `json:"status"`
		Prefix    string `json:"prefix,omitempty"`
		ChannelID string `json:"channel_id,omitempty"`
		Error     string `json:"error,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		jobID := chi.URLParam(r, "jobID")
		job, err := uc.GetJob(ctx, model.ResolutionJobID(jobID))
		if err != nil {
			if errors.Is(err, usecase.ErrJobNotFound) {
				errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
				return
			}
			errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
			return
		}

		respondJSON(ctx, w, http.StatusOK, response{
			JobID:     job.ID.String(),
			Name:      job.Name,
			Status:    string(job.Status),
			Prefix:    job.Prefix,
			ChannelID: job.ChannelID,
			Error:     job.Error,
		})
	}
}
