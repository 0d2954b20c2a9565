package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"
	"venued/internal/clients"
	"venued/internal/models"
	"venued/internal/providers"
	"venued/internal/scheduler"
	"venued/internal/services"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

const exposureCacheKey = "exposure:venue"

type CheckInServiceInterface interface {
	CheckIn(ctx context.Context, qrPayload string, plusSelected bool) (*models.VenueRecord, error)
	CheckOut(ctx context.Context, departure *time.Time) (*models.VenueRecord, error)
	Current(ctx context.Context) (*models.VenueRecord, error)
	Visited(ctx context.Context, includeHidden bool) ([]models.VenueRecord, error)
	Hide(ctx context.Context, checkOutId string) error
}

type ExposureInfoProvider interface {
	CurrentInfo(ctx context.Context) (models.VenueExposureInfo, error)
}

type ContactStatusSetter interface {
	SetStatus(ctx context.Context, status models.ContactStatus, since *time.Time) error
}

type ForegroundSetter interface {
	SetForeground(foreground bool)
}

type ApiController struct {
	logger    providers.Logger
	checkIns  CheckInServiceInterface
	exposure  ExposureInfoProvider
	contact   ContactStatusSetter
	appState  ForegroundSetter
	scheduler scheduler.SchedulerInterface
	cache     providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, checkIns *services.CheckInService, exposure *services.VenueExposureAggregator, contact *services.ContactStatusService, appState *services.AppState, sched scheduler.SchedulerInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		checkIns:  checkIns,
		exposure:  exposure,
		contact:   contact,
		appState:  appState,
		scheduler: sched,
		cache:     cache,
	}
}

// ExposureCacheInvalidator drops the cached exposure response after a sync
// changed the visit history.
type ExposureCacheInvalidator struct {
	cache providers.CacheProviderInterface
}

func (ei *ExposureCacheInvalidator) ExposureChanged() {
	ei.cache.Del(exposureCacheKey)
}

func NewExposureCacheInvalidator(cache providers.CacheProviderInterface) services.ExposureObserver {
	return &ExposureCacheInvalidator{cache: cache}
}

type checkInRequest struct {
	QrPayload    string `json:"qrPayload"`
	PlusSelected bool   `json:"plusSelected"`
}

type checkOutRequest struct {
	Departure *time.Time `json:"departure"`
}

type appStateRequest struct {
	Foreground bool `json:"foreground"`
}

type contactStatusRequest struct {
	Status models.ContactStatus `json:"status"`
	Since  *time.Time           `json:"since"`
}

type branchResponse struct {
	Name    string `json:"name"`
	DidWork bool   `json:"didWork"`
	Error   string `json:"error,omitempty"`
}

type runResponse struct {
	Skipped  bool             `json:"skipped"`
	Branches []branchResponse `json:"branches"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrNotCheckedIn), errors.Is(err, services.ErrRecordNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidCheckOut), errors.Is(err, clients.ErrInvalidQrPayload):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		ac.logger.Errorf(providers.TypeHttp, "Request failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *ApiController) CheckIn(w http.ResponseWriter, r *http.Request) {
	var payload checkInRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	rec, err := ac.checkIns.CheckIn(r.Context(), payload.QrPayload, payload.PlusSelected)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (ac *ApiController) CheckOut(w http.ResponseWriter, r *http.Request) {
	var payload checkOutRequest
	if r.ContentLength != 0 && !decodeBody(w, r, &payload) {
		return
	}
	rec, err := ac.checkIns.CheckOut(r.Context(), payload.Departure)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (ac *ApiController) Current(w http.ResponseWriter, r *http.Request) {
	rec, err := ac.checkIns.Current(r.Context())
	if err != nil {
		ac.writeError(w, err)
		return
	}
	if rec == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (ac *ApiController) Visited(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("hidden") == "1"
	records, err := ac.checkIns.Visited(r.Context(), includeHidden)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (ac *ApiController) Hide(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := ac.checkIns.Hide(r.Context(), id); err != nil {
		ac.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) Exposure(w http.ResponseWriter, r *http.Request) {
	if data, ok := ac.cache.Get(exposureCacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	info, err := ac.exposure.CurrentInfo(r.Context())
	if err != nil {
		ac.writeError(w, err)
		return
	}
	gson, err := json.Marshal(info)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.cache.Set(exposureCacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) SetAppState(w http.ResponseWriter, r *http.Request) {
	var payload appStateRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	ac.appState.SetForeground(payload.Foreground)
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) SetContactStatus(w http.ResponseWriter, r *http.Request) {
	var payload contactStatusRequest
	if !decodeBody(w, r, &payload) {
		return
	}
	if err := ac.contact.SetStatus(r.Context(), payload.Status, payload.Since); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (ac *ApiController) TriggerSync(w http.ResponseWriter, r *http.Request) {
	report := ac.scheduler.RunOnce(r.Context())
	resp := runResponse{Skipped: report.Skipped, Branches: make([]branchResponse, 0, len(report.Branches))}
	for _, b := range report.Branches {
		br := branchResponse{Name: b.Name, DidWork: b.DidWork}
		if b.Err != nil {
			br.Error = b.Err.Error()
		}
		resp.Branches = append(resp.Branches, br)
	}
	writeJSON(w, http.StatusOK, resp)
}
