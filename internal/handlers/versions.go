package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"promptbox/internal/models"
	"promptbox/internal/store"
)

// Versions handles the per-project version history. Versions are append
// only: there is no update or delete endpoint.
type Versions struct {
	versions *store.VersionStore
}

// NewVersions creates the version handler group.
func NewVersions(versions *store.VersionStore) *Versions {
	return &Versions{versions: versions}
}

// Create snapshots a new version of the project's prompt.
// POST /api/projects/{id}/versions
func (h *Versions) Create(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r)
	if !ok {
		return
	}

	var in models.Version
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Content) == "" {
		writeDetail(w, http.StatusBadRequest, "版本内容不能为空")
		return
	}

	created, err := h.versions.Create(projectID, &in)
	if err != nil {
		slog.Error("create version", "error", err)
		writeDetail(w, http.StatusInternalServerError, "创建版本失败")
		return
	}
	if created == nil {
		writeDetail(w, http.StatusNotFound, "项目不存在")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// List returns the project's versions, newest first.
// GET /api/projects/{id}/versions
func (h *Versions) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r)
	if !ok {
		return
	}

	items, err := h.versions.ListByProject(projectID)
	if err != nil {
		slog.Error("list versions", "error", err)
		writeDetail(w, http.StatusInternalServerError, "加载版本失败")
		return
	}
	if items == nil {
		items = []models.Version{}
	}
	writeJSON(w, http.StatusOK, items)
}
