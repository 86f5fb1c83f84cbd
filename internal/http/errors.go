package http

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/epq-service/internal/domain/dto"
	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/i18n"
	"github.com/guttosm/epq-service/internal/repository"
	"github.com/guttosm/epq-service/internal/service"
)

// DomainErrorMapper maps optimiser and history errors onto API responses.
func DomainErrorMapper(c *gin.Context, err error) (int, dto.ErrorResponse, bool) {
	locale := i18n.GetLocale(c)
	tr := i18n.GetTranslator()

	var (
		invalid   *model.InvalidInputError
		nonConvex *model.NonConvexResultError
		csvErr    *csv.ParseError
		tooLarge  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &invalid):
		resp := dto.NewError(dto.ErrCodeInvalidRequest, tr.Translatef(i18n.ErrKeyInvalidField, locale, invalid.Field)).
			WithDetail("field", invalid.Field).
			WithDetail("reason", invalid.Reason)
		return http.StatusBadRequest, resp, true

	case errors.As(err, &nonConvex):
		resp := dto.NewError(dto.ErrCodeUnprocessable, tr.Translate(i18n.ErrKeyNonConvexResult, locale)).
			WithDetail("candidate", formatFloat(nonConvex.Candidate)).
			WithDetail("second_derivative", formatFloat(nonConvex.SecondDerivative))
		return http.StatusUnprocessableEntity, resp, true

	case errors.Is(err, model.ErrNoFeasibleSolution):
		var nf *model.NoFeasibleSolutionError
		resp := dto.NewError(dto.ErrCodeUnprocessable, tr.Translate(i18n.ErrKeyNoFeasibleSolution, locale))
		if errors.As(err, &nf) {
			resp = resp.WithDetail("reason", nf.Reason)
		}
		return http.StatusUnprocessableEntity, resp, true

	case errors.Is(err, repository.ErrHistoryUnavailable), errors.Is(err, service.ErrHistoryDisabled):
		return http.StatusServiceUnavailable,
			dto.NewError(dto.ErrCodeUnavailable, tr.Translate(i18n.ErrKeyHistoryUnavailable, locale)), true

	case errors.Is(err, service.ErrMissingColumn),
		errors.Is(err, service.ErrNoDemandRows),
		errors.Is(err, service.ErrInvalidDemandValue),
		errors.As(err, &csvErr),
		errors.As(err, &tooLarge):
		resp := dto.NewError(dto.ErrCodeInvalidRequest, tr.Translate(i18n.ErrKeyInvalidDemandCSV, locale)).
			WithDetail("reason", err.Error())
		return http.StatusBadRequest, resp, true
	}
	return 0, dto.ErrorResponse{}, false
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
