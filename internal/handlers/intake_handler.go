package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/recuperacasa/intake-api/internal/domain/form"
	"github.com/recuperacasa/intake-api/internal/intake"
	"github.com/recuperacasa/intake-api/internal/logger"
	"github.com/recuperacasa/intake-api/internal/response"
)

var errPartTooLarge = errors.New("request part exceeds size limit")

// IntakeHandler serves one form kind's endpoint. All four endpoints are
// this handler constructed with a different Definition.
type IntakeHandler struct {
	def         form.Definition
	pipeline    *intake.Pipeline
	maxFileSize int64
	maxBodySize int64
	log         *log.Logger
}

// NewIntakeHandler creates the handler for one form kind
func NewIntakeHandler(def form.Definition, pipeline *intake.Pipeline, maxFileSize, maxBodySize int64) *IntakeHandler {
	return &IntakeHandler{
		def:         def,
		pipeline:    pipeline,
		maxFileSize: maxFileSize,
		maxBodySize: maxBodySize,
		log:         logger.Handler(def.Kind.String()),
	}
}

// Handle processes POST requests for the handler's form kind. Bodies may
// be multipart/form-data (the only way to attach files), JSON objects,
// or urlencoded forms. No field is required; absent fields are stored
// empty. The only server-side failure surfaced to the caller is a failed
// store write.
func (h *IntakeHandler) Handle(c *gin.Context) {
	values, files, err := h.parseRequest(c)
	if err != nil {
		if errors.Is(err, errPartTooLarge) {
			h.log.Warn("request rejected, part too large", "error", err)
			response.PayloadTooLarge(c)
			return
		}
		h.log.Warn("request body could not be parsed", "error", err)
		response.BadRequest(c)
		return
	}

	id, err := h.pipeline.Execute(c.Request.Context(), h.def, values, files)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, id)
}

// parseRequest flattens the request body into named values and a list of
// uploaded file parts, whatever the content type.
func (h *IntakeHandler) parseRequest(c *gin.Context) (map[string]string, []*multipart.FileHeader, error) {
	switch c.ContentType() {
	case "multipart/form-data":
		return h.parseMultipart(c)
	case "application/json":
		values, err := h.parseJSON(c)
		return values, nil, err
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, nil, fmt.Errorf("parse form: %w", err)
		}
		values := make(map[string]string, len(c.Request.PostForm))
		for key, list := range c.Request.PostForm {
			// Repeated field names keep the first value.
			if len(list) > 0 {
				values[key] = list[0]
			}
		}
		return values, nil, nil
	}
}

// parseMultipart streams the body part by part, so files keep their
// arrival order across field names and their bytes are discarded as soon
// as they are counted. Any field name is accepted as an attachment
// carrier. A file part over the per-file ceiling rejects the request.
func (h *IntakeHandler) parseMultipart(c *gin.Context) (map[string]string, []*multipart.FileHeader, error) {
	reader, err := c.Request.MultipartReader()
	if err != nil {
		return nil, nil, fmt.Errorf("open multipart reader: %w", err)
	}

	values := make(map[string]string)
	var files []*multipart.FileHeader
	var valueBytes int64

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read multipart part: %w", err)
		}

		if part.FileName() == "" {
			data, err := io.ReadAll(io.LimitReader(part, h.maxBodySize+1))
			if err != nil {
				return nil, nil, fmt.Errorf("read field %q: %w", part.FormName(), err)
			}
			valueBytes += int64(len(data))
			if valueBytes > h.maxBodySize {
				return nil, nil, fmt.Errorf("field %q: %w", part.FormName(), errPartTooLarge)
			}
			// Repeated field names keep the first value.
			if _, seen := values[part.FormName()]; !seen {
				values[part.FormName()] = string(data)
			}
			continue
		}

		size, err := io.Copy(io.Discard, io.LimitReader(part, h.maxFileSize+1))
		if err != nil {
			return nil, nil, fmt.Errorf("read file %q: %w", part.FileName(), err)
		}
		if size > h.maxFileSize {
			return nil, nil, fmt.Errorf("file %q: %w", part.FileName(), errPartTooLarge)
		}

		files = append(files, &multipart.FileHeader{
			Filename: part.FileName(),
			Header:   part.Header,
			Size:     size,
		})
	}

	return values, files, nil
}

// parseJSON reads a flat JSON object; non-string scalars are stored in
// their printed form, exactly as received. An empty body counts as an
// empty object, so a bare POST still stores a row.
func (h *IntakeHandler) parseJSON(c *gin.Context) (map[string]string, error) {
	var body map[string]any
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	values := make(map[string]string, len(body))
	for key, value := range body {
		switch v := value.(type) {
		case string:
			values[key] = v
		case nil:
			// absent stays absent
		default:
			values[key] = fmt.Sprint(v)
		}
	}
	return values, nil
}
