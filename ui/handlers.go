package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"studysize/app"
	"studysize/domain/design"
	apperrors "studysize/internal/errors"
	"studysize/internal/plot"
)

const maxBodyBytes = 1 << 20

// groupInputs is shared by every scalar endpoint. For odds ratios Exposed and
// Unexposed are the exposure prevalence among cases and controls.
type groupInputs struct {
	Measure    string   `json:"measure" validate:"required,oneof=risk_difference risk_ratio rate_difference rate_ratio odds_ratio"`
	Exposed    *float64 `json:"exposed" validate:"required"`
	Unexposed  *float64 `json:"unexposed" validate:"required"`
	GroupRatio *float64 `json:"group_ratio"`
	CI         *float64 `json:"ci"`
}

type sampleSizeBody struct {
	groupInputs
	Precision *float64 `json:"precision" validate:"required"`
}

type precisionBody struct {
	groupInputs
	NIndex *float64 `json:"n_index" validate:"required"`
}

type upperBoundBody struct {
	groupInputs
	UpperLimit *float64 `json:"upper_limit" validate:"required"`
	Prob       *float64 `json:"prob" validate:"required"`
}

type plotBody struct {
	app.SweepRequest
	X     string `json:"x" validate:"required"`
	Y     string `json:"y" validate:"required"`
	Group string `json:"group"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleListFunctions(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.calc.Functions())
}

func (a *App) handleGetFunction(w http.ResponseWriter, r *http.Request) {
	fn, err := a.calc.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		a.writeError(w, apperrors.WithCode(apperrors.CodeNotFound, err))
		return
	}
	a.writeJSON(w, http.StatusOK, fn)
}

func (a *App) handleSampleSize(w http.ResponseWriter, r *http.Request) {
	var body sampleSizeBody
	if !a.decode(w, r, &body) {
		return
	}
	measure, groups, ratio, ci := a.common(body.groupInputs)
	res, err := a.calc.SampleSize(design.SampleSizeRequest{
		Measure:    measure,
		Precision:  *body.Precision,
		Groups:     groups,
		GroupRatio: ratio,
		Confidence: ci,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *App) handlePrecision(w http.ResponseWriter, r *http.Request) {
	var body precisionBody
	if !a.decode(w, r, &body) {
		return
	}
	measure, groups, ratio, ci := a.common(body.groupInputs)
	res, err := a.calc.Precision(design.PrecisionRequest{
		Measure:    measure,
		NIndex:     *body.NIndex,
		Groups:     groups,
		GroupRatio: ratio,
		Confidence: ci,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

func (a *App) handleUpperBound(w http.ResponseWriter, r *http.Request) {
	var body upperBoundBody
	if !a.decode(w, r, &body) {
		return
	}
	measure, groups, ratio, ci := a.common(body.groupInputs)
	res, err := a.calc.UpperBound(design.UpperBoundRequest{
		Measure:    measure,
		UpperLimit: *body.UpperLimit,
		Prob:       *body.Prob,
		Groups:     groups,
		GroupRatio: ratio,
		Confidence: ci,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, res)
}

// handleMap runs a sweep. JSON responses carry the sweep metadata; other
// formats stream just the table with the metadata in headers.
func (a *App) handleMap(w http.ResponseWriter, r *http.Request) {
	var req app.SweepRequest
	if !a.decode(w, r, &req) {
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	writer, err := a.writers.Lookup(format)
	if err != nil {
		a.writeError(w, apperrors.WithCode(apperrors.CodeInvalidInput, err))
		return
	}

	result, err := a.sweeps.Map(r.Context(), req)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if writer.Format() == "json" {
		a.writeJSON(w, http.StatusOK, result)
		return
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, result.Table); err != nil {
		a.writeError(w, apperrors.Wrap(err, "failed to render sweep"))
		return
	}
	w.Header().Set("Content-Type", writer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s.%s", result.Function, writer.Format())))
	w.Header().Set("X-Sweep-Id", result.SweepID.String())
	w.Header().Set("X-Sweep-Fingerprint", result.Fingerprint.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (a *App) handlePlot(w http.ResponseWriter, r *http.Request) {
	var body plotBody
	if !a.decode(w, r, &body) {
		return
	}
	result, err := a.sweeps.Map(r.Context(), body.SweepRequest)
	if err != nil {
		a.writeError(w, err)
		return
	}
	chart, err := plot.Lines(result.Table, body.X, body.Y, body.Group)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, chart)
}

// decode reads and validates a JSON body, writing a 400 on failure.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		a.writeError(w, apperrors.InvalidInput(fmt.Sprintf("malformed request body: %v", err)))
		return false
	}
	if err := a.validate.Struct(dst); err != nil {
		a.writeError(w, validationError(err))
		return false
	}
	return true
}

func (a *App) common(in groupInputs) (design.EffectMeasure, design.Groups, float64, float64) {
	ratio := design.DefaultGroupRatio
	if in.GroupRatio != nil {
		ratio = *in.GroupRatio
	}
	ci := a.config.DefaultConfidence
	if in.CI != nil {
		ci = *in.CI
	}
	return design.EffectMeasure(in.Measure), design.Groups{Index: *in.Exposed, Comparison: *in.Unexposed}, ratio, ci
}

func validationError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.InvalidInput(err.Error())
	}
	fe := verrs[0]
	msg := fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag())
	if fe.Param() != "" {
		msg = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	appErr := apperrors.InvalidInput(msg)
	appErr.Param = fe.Field()
	return appErr
}

func (a *App) writeError(w http.ResponseWriter, err error) {
	appErr := apperrors.FromDomain(err)
	status := apperrors.HTTPStatus(appErr.Code)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed: %v", err)
	} else {
		a.logger.Debug("request rejected: %v", err)
	}
	if err := encodeJSON(w, status, errorBody{Code: appErr.Code, Message: appErr.Message, Param: appErr.Param}); err != nil {
		http.Error(w, appErr.Message, status)
	}
}

// writeJSON encodes before writing the status so an unencodable value still
// gets an error response.
func (a *App) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	if err := encodeJSON(w, status, v); err != nil {
		a.writeError(w, apperrors.InternalError(fmt.Sprintf("failed to encode response: %v", err)))
	}
}

func encodeJSON(w http.ResponseWriter, status int, v interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
	return nil
}
