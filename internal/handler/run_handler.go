package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mrollo/retailgen/internal/models"
	"github.com/mrollo/retailgen/internal/service"
)

// CreateRunRequest is the POST /runs payload. Every knob is optional;
// omitted values fall back to the configured defaults. Rates use pointers
// so an explicit zero is distinguishable from an omitted field.
type CreateRunRequest struct {
	Customers            int      `json:"customers" validate:"omitempty,min=1,max=100000000"`
	Orders               int      `json:"orders" validate:"omitempty,min=1,max=1000000000"`
	CustomerBatchSize    int      `json:"customer_batch_size" validate:"omitempty,min=1"`
	OrderBatchSize       int      `json:"order_batch_size" validate:"omitempty,min=1"`
	TransactionBatchSize int      `json:"transaction_batch_size" validate:"omitempty,min=1"`
	DuplicationRate      *float64 `json:"duplication_rate" validate:"omitempty,gte=0,lte=100"`
	ContactMatchRate     *float64 `json:"contact_match_rate" validate:"omitempty,gte=0,lte=1"`
	NameTypoRate         *float64 `json:"name_typo_rate" validate:"omitempty,gte=0,lte=1"`
	TypoProbability      *float64 `json:"typo_probability" validate:"omitempty,gte=0,lte=1"`
	CountryFillRate      *float64 `json:"country_fill_rate" validate:"omitempty,gte=0,lte=1"`
	DOBFillRate          *float64 `json:"dob_fill_rate" validate:"omitempty,gte=0,lte=1"`
	EmailFillRate        *float64 `json:"email_fill_rate" validate:"omitempty,gte=0,lte=1"`
	PhoneFillRate        *float64 `json:"phone_fill_rate" validate:"omitempty,gte=0,lte=1"`
	Seed                 int64    `json:"seed"`
}

// RunHandler handles generation run HTTP requests
type RunHandler struct {
	runService service.RunService
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewRunHandler creates a new run handler
func NewRunHandler(runService service.RunService, logger *slog.Logger) *RunHandler {
	return &RunHandler{
		runService: runService,
		validate:   validator.New(),
		logger:     logger,
	}
}

// CreateRun handles POST /runs
func (h *RunHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req CreateRunRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error())
		return
	}

	run, err := h.runService.Create(r.Context(), req.toParams())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, run)
}

// GetRun handles GET /runs/{id}
func (h *RunHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "INVALID_ID", "Invalid run ID")
		return
	}

	run, err := h.runService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, run)
}

// ListRuns handles GET /runs
func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("page_size"))

	filter := models.RunFilter{
		Status:   query.Get("status"),
		Page:     page,
		PageSize: pageSize,
	}

	runs, pagination, err := h.runService.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, map[string]any{
		"runs":       runs,
		"pagination": pagination,
	})
}

// toParams maps the request onto run parameters. Unset counts stay zero
// and unset rates become -1; the run service resolves both against the
// configured defaults.
func (r *CreateRunRequest) toParams() models.RunParams {
	return models.RunParams{
		Customers:            r.Customers,
		Orders:               r.Orders,
		CustomerBatchSize:    r.CustomerBatchSize,
		OrderBatchSize:       r.OrderBatchSize,
		TransactionBatchSize: r.TransactionBatchSize,
		DuplicationRate:      rateOrSentinel(r.DuplicationRate),
		ContactMatchRate:     rateOrSentinel(r.ContactMatchRate),
		NameTypoRate:         rateOrSentinel(r.NameTypoRate),
		TypoProbability:      rateOrSentinel(r.TypoProbability),
		CountryFillRate:      rateOrSentinel(r.CountryFillRate),
		DOBFillRate:          rateOrSentinel(r.DOBFillRate),
		EmailFillRate:        rateOrSentinel(r.EmailFillRate),
		PhoneFillRate:        rateOrSentinel(r.PhoneFillRate),
		Seed:                 r.Seed,
	}
}

func rateOrSentinel(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}
