package delivery

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/spaces_gateway/internal/domain"
	"github.com/Vovarama1992/spaces_gateway/internal/metrics"
	"github.com/Vovarama1992/spaces_gateway/internal/ports"
	"github.com/dustin/go-humanize"
)

const (
	serviceName = "spaces_gateway"

	// сколько multipart держим в памяти, остальное уходит во временные файлы
	multipartMemory = 8 << 20

	msgDeleted = "File deleted successfully"
)

type StorageHandler struct {
	svc            ports.S3Service
	log            *logger.ZapLogger
	metrics        *metrics.Metrics
	maxUploadBytes int64
}

func NewStorageHandler(svc ports.S3Service, log *logger.ZapLogger, m *metrics.Metrics, maxUploadBytes int64) *StorageHandler {
	return &StorageHandler{
		svc:            svc,
		log:            log,
		metrics:        m,
		maxUploadBytes: maxUploadBytes,
	}
}

// GET /generate-presigned-url?bucket_name=...&key=...
func (h *StorageHandler) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ports.PresignRequest{
		BucketName: q.Get("bucket_name"),
		ObjectKey:  q.Get("key"),
	}

	res, err := h.svc.GeneratePresignedURL(r.Context(), req)
	if err != nil {
		if domain.IsValidation(err) {
			writeError(w, http.StatusUnprocessableEntity, "query parameters bucket_name and key are required")
			return
		}
		h.storageFailure("presign", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, presignResponse{URL: res.URL})
}

// POST /upload/ (multipart, поле file)
func (h *StorageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("file exceeds %s limit", humanize.IBytes(uint64(h.maxUploadBytes))))
			return
		}
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err, Service: serviceName})
		writeError(w, http.StatusBadRequest, domain.ErrNoFile.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.ErrNoFile.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "read uploaded file", Error: err, Service: serviceName})
		writeError(w, http.StatusInternalServerError, "failed to read file: "+err.Error())
		return
	}

	res, err := h.svc.UploadObject(r.Context(), ports.UploadRequest{
		FileBytes:   data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		if domain.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.storageFailure("upload", err)
		status := http.StatusInternalServerError
		if ports.KindOf(err) == ports.CredentialsMissing {
			status = http.StatusUnauthorized
		}
		writeError(w, status, err.Error())
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("uploaded %s (%s)", header.Filename, humanize.Bytes(uint64(len(data)))),
		Service: serviceName,
	})
	writeJSON(w, http.StatusOK, uploadResponse{FileURL: res.FileURL})
}

// POST /delete/?filename=...
func (h *StorageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")

	if err := h.svc.DeleteObject(r.Context(), ports.DeleteRequest{Filename: filename}); err != nil {
		if domain.IsValidation(err) {
			writeError(w, http.StatusUnprocessableEntity, "query parameter filename is required")
			return
		}
		h.storageFailure("delete", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: msgDeleted})
}

func (h *StorageHandler) storageFailure(op string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveStorageError(op, err)
	}
	h.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("%s failed (%s)", op, ports.KindOf(err)),
		Error:   err,
		Service: serviceName,
	})
}
