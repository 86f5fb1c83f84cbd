package http

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/epq-service/internal/domain/dto"
	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/i18n"
	"github.com/guttosm/epq-service/internal/middleware"
	"github.com/guttosm/epq-service/internal/service"
)

const (
	// DefaultHistoryTimeout bounds a history write or read made on behalf of a request.
	DefaultHistoryTimeout = 2 * time.Second
	// MaxDemandUpload is the largest demand CSV accepted.
	MaxDemandUpload = 10 << 20

	demandFileField = "file"
)

// Handler serves the optimisation, demand and history routes.
type Handler struct {
	optimizer      service.CostOptimizer
	history        service.HistoryService
	demand         service.DemandEstimator
	audit          *middleware.AsyncLogger
	historyTimeout time.Duration
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHistory records successful optimisations and serves GET /api/history.
func WithHistory(history service.HistoryService) HandlerOption {
	return func(h *Handler) {
		h.history = history
	}
}

// WithDemandEstimator replaces the default CSV demand estimator.
func WithDemandEstimator(demand service.DemandEstimator) HandlerOption {
	return func(h *Handler) {
		if demand != nil {
			h.demand = demand
		}
	}
}

// WithAuditLogger stores an audit entry per domain action.
func WithAuditLogger(al *middleware.AsyncLogger) HandlerOption {
	return func(h *Handler) {
		h.audit = al
	}
}

// WithHistoryTimeout sets the timeout of history calls.
func WithHistoryTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.historyTimeout = d
		}
	}
}

// NewHandler creates a Handler. Without WithHistory, nothing is recorded
// and GET /api/history answers 503.
func NewHandler(optimizer service.CostOptimizer, opts ...HandlerOption) *Handler {
	h := &Handler{
		optimizer:      optimizer,
		demand:         service.NewCSVDemandEstimator(),
		historyTimeout: DefaultHistoryTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Optimize handles POST /api/optimize.
//
// @Summary      Optimise a lot size
// @Description  Builds the total cost function TC(Q), differentiates it exactly and returns the positive critical point Q* with TC(Q*) and the convexity check. Supports idempotency via Idempotency-Key header.
// @Tags         Optimisation
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.OptimizeRequest true "Cost parameters"
// @Success      200 {object} dto.SuccessResponse{data=model.OptimizationResult} "Optimal lot size"
// @Failure      400 {object} dto.ErrorResponse "Invalid parameter; details.field names it"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      422 {object} dto.ErrorResponse "No feasible or no convex optimum"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/optimize [post]
func (h *Handler) Optimize(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.OptimizeRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	params := req.ToParameters()
	result, err := h.optimizer.Optimize(params)
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionOptimize, "Lot size optimisation failed", err, params.Fields())
		_ = c.Error(err)
		return
	}

	requestID := middleware.GetRequestID(c)
	h.recordHistory(c, func(ctx context.Context) error {
		return h.history.Record(ctx, requestID, params, result)
	})
	middleware.AuditLog(h.audit, c, model.ActionOptimize, "Lot size optimised", map[string]interface{}{
		"optimal_lot_size": result.OptimalLotSize,
		"total_cost":       result.TotalCost,
	})

	builder.SuccessOK(result)
}

// OptimizePortfolio handles POST /api/optimize/portfolio.
//
// @Summary      Optimise a portfolio
// @Description  Optimises each item independently and sums the minimal costs. The first failing item fails the request and is named in the message.
// @Tags         Optimisation
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.PortfolioRequest true "Portfolio items"
// @Success      200 {object} dto.SuccessResponse{data=model.PortfolioResult} "Per-item optima and total"
// @Failure      400 {object} dto.ErrorResponse "Invalid parameter"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      422 {object} dto.ErrorResponse "No feasible or no convex optimum for an item"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/optimize/portfolio [post]
func (h *Handler) OptimizePortfolio(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindJSON[dto.PortfolioRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	items := req.ToItems()
	fields := map[string]interface{}{"items": len(items)}
	result, err := h.optimizer.OptimizePortfolio(items)
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionOptimizePortfolio, "Portfolio optimisation failed", err, fields)
		_ = c.Error(err)
		return
	}

	requestID := middleware.GetRequestID(c)
	h.recordHistory(c, func(ctx context.Context) error {
		return h.history.RecordPortfolio(ctx, requestID, items, result)
	})
	fields["total_cost"] = result.TotalCost
	middleware.AuditLog(h.audit, c, model.ActionOptimizePortfolio, "Portfolio optimised", fields)

	builder.SuccessOK(result)
}

// EstimateDemand handles POST /api/demand/estimate.
//
// @Summary      Estimate annual demand
// @Description  Reads a daily sales CSV with a "Sales Quantity" column and returns the mean daily quantity scaled to 365 days. Send the CSV as multipart field "file" or as a text/csv body.
// @Tags         Demand
// @Accept       multipart/form-data
// @Accept       text/csv
// @Produce      json
// @Param        file formData file false "Daily sales CSV"
// @Success      200 {object} dto.SuccessResponse{data=model.DemandEstimate} "Estimated demand"
// @Failure      400 {object} dto.ErrorResponse "Missing or unreadable CSV"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/demand/estimate [post]
func (h *Handler) EstimateDemand(c *gin.Context) {
	builder := NewResponseBuilder(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxDemandUpload)

	body, closeBody, err := demandBody(c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyDemandFileRequired, err)
		return
	}
	defer closeBody()

	estimate, err := h.demand.Estimate(c.Request.Context(), body)
	if err != nil {
		middleware.AuditLogError(h.audit, c, model.ActionEstimateDemand, "Demand estimation failed", err, nil)
		_ = c.Error(err)
		return
	}

	middleware.AuditLog(h.audit, c, model.ActionEstimateDemand, "Demand estimated", map[string]interface{}{
		"rows":          estimate.Rows,
		"annual_demand": estimate.AnnualDemand,
	})
	builder.SuccessOK(estimate)
}

var errNoDemandFile = errors.New("no demand csv in request")

// demandBody returns the uploaded file of a multipart request, or the raw
// body of a text/csv request.
func demandBody(c *gin.Context) (io.Reader, func(), error) {
	mediaType, _, _ := mime.ParseMediaType(c.ContentType())
	switch mediaType {
	case "multipart/form-data":
		fh, err := c.FormFile(demandFileField)
		if err != nil {
			return nil, nil, err
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	case "text/csv", "text/plain", "application/csv":
		if c.Request.ContentLength == 0 {
			return nil, nil, errNoDemandFile
		}
		return c.Request.Body, func() {}, nil
	}
	return nil, nil, errNoDemandFile
}

// ListHistory handles GET /api/history.
//
// @Summary      List optimisation history
// @Description  Returns stored optimisation runs, newest first.
// @Tags         History
// @Produce      json
// @Param        limit query int false "Maximum rows (1-1000, default 100)"
// @Param        kind query string false "single or portfolio" Enums(single, portfolio)
// @Success      200 {object} dto.SuccessResponse{data=[]model.HistoryRecord} "History rows"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid credentials"
// @Failure      403 {object} dto.ErrorResponse "Token lacks the history:read scope"
// @Failure      503 {object} dto.ErrorResponse "History backend unavailable"
// @Security     ApiKeyAuth
// @Security     BearerAuth
// @Router       /api/history [get]
func (h *Handler) ListHistory(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidHistoryQuery, err)
		return
	}
	if h.history == nil {
		_ = c.Error(service.ErrHistoryDisabled)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.historyTimeout)
	defer cancel()

	records, err := h.history.List(ctx, q.ToOptions())
	if err != nil {
		_ = c.Error(err)
		return
	}
	builder.SuccessOK(records)
}

// recordHistory runs write with its own timeout. The write survives client
// disconnects and its failure never fails the request.
func (h *Handler) recordHistory(c *gin.Context, write func(ctx context.Context) error) {
	if h.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), h.historyTimeout)
	defer cancel()

	if err := write(ctx); err != nil {
		log.Warn().Err(err).Str("request_id", middleware.GetRequestID(c)).Msg("Optimisation not recorded in history")
	}
}
