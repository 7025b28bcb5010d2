package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/swissround/internal/adapters/repository"
	"github.com/okian/swissround/internal/domain/types"
)

const defaultArchiveLimit = 20

// ArchiveDependencies defines the interface for archive reads.
type ArchiveDependencies interface {
	Archived(ctx context.Context, limit int) ([]repository.Archived, error)
	ArchivedRecord(ctx context.Context, id string) (types.Record, error)
}

// ArchiveHandler handles archive requests.
type ArchiveHandler struct {
	deps     ArchiveDependencies
	maxLimit int
}

// NewArchiveHandler creates a new archive handler.
func NewArchiveHandler(deps ArchiveDependencies, maxLimit int) *ArchiveHandler {
	if maxLimit < 1 {
		maxLimit = defaultArchiveLimit
	}
	return &ArchiveHandler{deps: deps, maxLimit: maxLimit}
}

// HandleList handles GET /archive?limit=N. The limit defaults to the maximum.
func (h *ArchiveHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	n := h.maxLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		var err error
		n, err = strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
		return
	}
	list, err := h.deps.Archived(r.Context(), n)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []repository.Archived{}
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGet handles GET /archive/{id}.
func (h *ArchiveHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/archive/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	rec, err := h.deps.ArchivedRecord(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
