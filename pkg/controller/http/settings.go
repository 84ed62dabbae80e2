package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
	"github.com/watchtower-lab/slackbridge/pkg/usecase"
	"github.com/watchtower-lab/slackbridge/pkg/utils/errutil"
)

// settingSelector carries the addressing fields shared by every
// settings request, as query parameters or JSON body fields.
type settingSelector struct {
	Provider     string `json:"provider"`
	Type         string `json:"type"`
	User         string `json:"user,omitempty"`
	Team         string `json:"team,omitempty"`
	Project      string `json:"project,omitempty"`
	Organization string `json:"organization,omitempty"`
}

func selectorFromQuery(values url.Values) settingSelector {
	return settingSelector{
		Provider:     values.Get("provider"),
		Type:         values.Get("type"),
		User:         values.Get("user"),
		Team:         values.Get("team"),
		Project:      values.Get("project"),
		Organization: values.Get("organization"),
	}
}

func (x settingSelector) target() model.TargetSelector {
	return model.TargetSelector{
		User:         types.UserID(x.User),
		Team:         types.TeamID(x.Team),
		Project:      types.ProjectID(x.Project),
		Organization: types.OrganizationID(x.Organization),
	}
}

// settingStatus maps a use case failure to an HTTP status
func settingStatus(err error) int {
	if errors.Is(err, model.ErrInvalidTarget) || errors.Is(err, usecase.ErrInvalidSettingValue) ||
		errors.Is(err, types.ErrInvalidProvider) || errors.Is(err, types.ErrInvalidSettingType) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func getSettingHandler(uc *usecase.NotificationUseCase) http.HandlerFunc {
	type response struct {
		Value string `json:"value"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sel := selectorFromQuery(r.URL.Query())

		value, err := uc.Get(ctx, types.Provider(sel.Provider), types.SettingType(sel.Type), sel.target())
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, settingStatus(err))
			return
		}

		respondJSON(ctx, w, http.StatusOK, response{Value: value.String()})
	}
}

func putSettingHandler(uc *usecase.NotificationUseCase) http.HandlerFunc {
	type request struct {
		settingSelector
		Value string `json:"value"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode setting request"), http.StatusBadRequest)
			return
		}

		err := uc.Update(ctx, types.Provider(req.Provider), types.SettingType(req.Type),
			req.target(), types.SettingValue(req.Value))
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, settingStatus(err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteSettingHandler(uc *usecase.NotificationUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sel := selectorFromQuery(r.URL.Query())

		err := uc.Remove(ctx, types.Provider(sel.Provider), types.SettingType(sel.Type), sel.target())
		if err != nil {
			errutil.HandleHTTP(ctx, w, err, settingStatus(err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
