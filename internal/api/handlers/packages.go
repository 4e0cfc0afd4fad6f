package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"tour-package-service/internal/api/dto"
	"tour-package-service/internal/domain"
	"tour-package-service/internal/platform/apperr"
	"tour-package-service/internal/platform/obs"
	"tour-package-service/internal/services"

	"github.com/rs/zerolog"
)

type PackageGenerator interface {
	GeneratePackage(ctx context.Context, req services.PackageRequest) (domain.TravelPackage, error)
}

type PackageHandler struct {
	Service PackageGenerator
}

// Generate recommends the best package for a region under optional caps.
// An unknown region yields an empty package, not an error.
func (h *PackageHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PackageRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		e := apperr.Wrap(err, apperr.CodeInvalidInput, "invalid json body")
		writeError(w, r, apperr.Status(e), apperr.PublicMessage(e))
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		e := apperr.New(apperr.CodeInvalidInput, "body must contain only one JSON object")
		writeError(w, r, apperr.Status(e), apperr.PublicMessage(e))
		return
	}

	if err := req.Validate(); err != nil {
		e := apperr.InvalidInput("region_id", "required, at most 64 characters")
		writeError(w, r, apperr.Status(e), apperr.PublicMessage(e))
		return
	}

	pkg, err := h.Service.GeneratePackage(r.Context(), services.PackageRequest{
		RegionID: req.RegionID,
		Limits:   domain.NewLimits(req.MaxDays, req.MaxBudget),
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().
			Str("req_id", obs.RequestID(r.Context())).
			Err(err).
			Msg("generate package failed")
		writeError(w, r, apperr.Status(err), apperr.PublicMessage(err))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPackageResponse(pkg))
}
