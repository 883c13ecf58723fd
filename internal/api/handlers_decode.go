// handlers_decode.go - Export decoding handlers
package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdt-route/backend/internal/models"
	"github.com/mdt-route/backend/internal/storage"
	"github.com/vmihailenco/msgpack/v5"
)

// DecodeHandlerImpl implements the DecodeHandler interface
type DecodeHandlerImpl struct {
	decoder      RouteDecoder
	store        storage.RouteStore
	maxBatchSize int
}

// NewDecodeHandler creates a new decode handler. A nil store disables persistence.
func NewDecodeHandler(dec RouteDecoder, store storage.RouteStore, maxBatchSize int) DecodeHandler {
	return &DecodeHandlerImpl{
		decoder:      dec,
		store:        store,
		maxBatchSize: maxBatchSize,
	}
}

type decodeResponse struct {
	ID string `json:"id,omitempty"`
	*models.DecodeResult
}

// HandleDecode decodes an export string into a resolved route, optionally storing it
func (h *DecodeHandlerImpl) HandleDecode(c echo.Context) error {
	var req decodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.decoder.Decode(req.Input)
	if err != nil {
		return NewDecodeError(err)
	}

	resp := decodeResponse{DecodeResult: result}
	if req.Persist {
		if h.store == nil {
			return &APIError{
				Status:  http.StatusServiceUnavailable,
				Code:    "SERVICE_UNAVAILABLE",
				Message: "route persistence is disabled",
			}
		}
		summary, err := h.store.Save(c.Request().Context(), req.Input, result)
		if err != nil {
			return NewInternalError("failed to store route", err)
		}
		resp.ID = summary.ID
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleDecodeRaw returns the deserialized value tree without route extraction
func (h *DecodeHandlerImpl) HandleDecodeRaw(c echo.Context) error {
	var req rawDecodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	value, err := h.decoder.DecodeValue(req.Input)
	if err != nil {
		return NewDecodeError(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"kind":  value.Kind().String(),
		"value": value.Interface(),
	})
}

// HandleDecodeMsgpack decodes an export string and returns the result as msgpack
func (h *DecodeHandlerImpl) HandleDecodeMsgpack(c echo.Context) error {
	var req rawDecodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.decoder.Decode(req.Input)
	if err != nil {
		return NewDecodeError(err)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(result); err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}

	return c.Blob(http.StatusOK, "application/msgpack", buf.Bytes())
}

type batchItemResponse struct {
	Index  int                  `json:"index"`
	Result *models.DecodeResult `json:"result,omitempty"`
	Error  *APIError            `json:"error,omitempty"`
}

// HandleDecodeBatch decodes several export strings in parallel
func (h *DecodeHandlerImpl) HandleDecodeBatch(c echo.Context) error {
	var req batchDecodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if h.maxBatchSize > 0 && len(req.Inputs) > h.maxBatchSize {
		apiErr := NewValidationError("inputs")
		apiErr.Details = fmt.Sprintf("batch of %d exceeds the limit of %d", len(req.Inputs), h.maxBatchSize)
		return apiErr
	}

	items := h.decoder.DecodeBatch(c.Request().Context(), req.Inputs)

	resp := make([]batchItemResponse, len(items))
	failed := 0
	for i, item := range items {
		resp[i] = batchItemResponse{Index: item.Index, Result: item.Result}
		if item.Err != nil {
			resp[i].Error = NewDecodeError(item.Err)
			failed++
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":     resp,
		"succeeded": len(items) - failed,
		"failed":    failed,
	})
}
