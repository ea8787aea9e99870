// Package server exposes the comparison engine over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/invest-compare/internal/compare"
	"github.com/iwvelando/invest-compare/internal/config"
	"github.com/iwvelando/invest-compare/pkg/comparison"
	"github.com/iwvelando/invest-compare/pkg/constants"
	"github.com/iwvelando/invest-compare/pkg/output"
	"github.com/iwvelando/invest-compare/pkg/realestate"
	"github.com/iwvelando/invest-compare/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	options       []compare.Option
}

// NewHandler constructs the HTTP handler that serves the comparison API.
// options are applied to the comparison service behind every request.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, options ...compare.Option) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, options: options}

	mux := http.NewServeMux()

	// Single comparisons from JSON bodies
	mux.HandleFunc("/api/compare/stocks", h.handleCompareStocks)
	mux.HandleFunc("/api/compare/realestate", h.handleCompareRealEstate)

	// Every active scenario of an uploaded configuration
	mux.HandleFunc("/api/compare", h.handleCompareConfig)

	// PDF rendering of an uploaded configuration
	mux.HandleFunc("/api/report", h.handleReport)

	// Config serialization endpoint for editor downloads
	mux.HandleFunc("/api/config/export", h.handleConfigExport)

	mux.HandleFunc("/api/presets", h.handlePresets)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type compareResponse struct {
	Reports  []compare.Report `json:"reports"`
	CSV      string           `json:"csv"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration string           `json:"duration"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// service builds the comparison service for one request.
func (h *handler) service(breakEven bool) *compare.Service {
	opts := append([]compare.Option(nil), h.options...)
	if breakEven {
		opts = append(opts, compare.WithBreakEven(true))
	}
	return compare.NewService(h.logger, opts...)
}

func (h *handler) handleCompareStocks(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareStocks"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var in comparison.StockInput
	if !h.decodeJSON(w, r, &in, op) {
		return
	}

	report, err := h.service(coerceBool(r.URL.Query().Get("breakEven"))).CompareStocks(r.Context(), in)
	if err != nil {
		h.respondCompareError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *handler) handleCompareRealEstate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareRealEstate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var in realestate.Input
	if !h.decodeJSON(w, r, &in, op) {
		return
	}

	report, err := h.service(coerceBool(r.URL.Query().Get("breakEven"))).CompareRealEstate(r.Context(), in)
	if err != nil {
		h.respondCompareError(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *handler) handleCompareConfig(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompareConfig"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	cfg, ok := h.readUploadedConfig(w, r, op)
	if !ok {
		return
	}

	warnings := cfg.ValidateConfiguration()
	breakEven := cfg.BreakEven || coerceBool(r.FormValue("breakEven"))
	reports, err := h.service(breakEven).Run(r.Context(), cfg)
	if err != nil {
		h.respondCompareError(w, err, op)
		return
	}

	csvData, err := output.CsvString(reports)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("comparison computed",
		zap.String("op", op),
		zap.Int("reports", len(reports)),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, compareResponse{
		Reports:  reports,
		CSV:      csvData,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	cfg, ok := h.readUploadedConfig(w, r, op)
	if !ok {
		return
	}

	reports, err := h.service(cfg.BreakEven).Run(r.Context(), cfg)
	if err != nil {
		h.respondCompareError(w, err, op)
		return
	}
	if len(reports) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "no active scenarios to report", op)
		return
	}

	pdf, err := output.PDFReport(reports)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invest-compare-report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.logger.Warn("failed to write PDF response", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handlePresets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"presets":       config.Presets(),
		"benchmarkName": constants.BenchmarkName,
		"benchmarkRate": constants.BenchmarkAnnualRate,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var payload map[string]interface{}
	if !h.decodeJSON(w, r, &payload, op) {
		return
	}
	if payload == nil {
		payload = make(map[string]interface{})
	}

	yamlBytes, err := marshalOrderedConfigYAML(payload)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

// readUploadedConfig parses the multipart "file" field as a configuration.
func (h *handler) readUploadedConfig(w http.ResponseWriter, r *http.Request, op string) (*config.Configuration, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		if isTooLarge(err) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing configuration file", op)
		return nil, false
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.logger.Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return nil, false
	}

	cfg, err := config.LoadConfigurationFromReader(&buf)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	return cfg, true
}

// decodeJSON reads a size-limited JSON body into target, answering the
// request itself on failure.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(target); err != nil {
		if isTooLarge(err) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

func (h *handler) respondCompareError(w http.ResponseWriter, err error, op string) {
	var inputErr *validation.InputError
	if errors.As(err, &inputErr) {
		h.logger.Info("rejected invalid input",
			zap.String("op", op),
			zap.String("field", inputErr.Field),
			zap.String("error", err.Error()),
		)
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: inputErr.Field})
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to compare: %v", err), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("comparison request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, errorResponse{Error: msg})
}

// writeJSON encodes payload before committing the status so an encoding
// failure still reaches the client as a 500.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}

// configKeyOrder lists top-level configuration keys in the order they are
// exported; anything else follows alphabetically.
var configKeyOrder = []string{"logging", "output", "cache", "breakEven", "presets", "stocks", "realEstate"}

func marshalOrderedConfigYAML(payload map[string]interface{}) ([]byte, error) {
	items := make([]orderedItem, 0, len(payload))
	seen := make(map[string]struct{})

	for _, key := range configKeyOrder {
		if value, ok := payload[key]; ok {
			items = append(items, orderedItem{key: key, value: value})
			seen[key] = struct{}{}
		}
	}

	remainingKeys := make([]string, 0, len(payload))
	for key := range payload {
		if _, already := seen[key]; already {
			continue
		}
		remainingKeys = append(remainingKeys, key)
	}
	sort.Strings(remainingKeys)
	for _, key := range remainingKeys {
		items = append(items, orderedItem{key: key, value: payload[key]})
	}

	return yaml.Marshal(orderedConfig{items: items})
}

type orderedConfig struct {
	items []orderedItem
}

type orderedItem struct {
	key   string
	value interface{}
}

func (o orderedConfig) MarshalYAML() (interface{}, error) {
	mapNode := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
	}

	for _, item := range o.items {
		keyNode := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: item.key,
		}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(item.value); err != nil {
			return nil, err
		}
		mapNode.Content = append(mapNode.Content, keyNode, valueNode)
	}

	return mapNode, nil
}

func coerceBool(value interface{}) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return false
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return parsed
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return false
}
