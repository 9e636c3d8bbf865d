package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"promptbox/internal/models"
	"promptbox/internal/store"
)

// Projects handles project CRUD, filtering, and the favorite toggle.
type Projects struct {
	projects *store.ProjectStore
}

// NewProjects creates the project handler group.
func NewProjects(projects *store.ProjectStore) *Projects {
	return &Projects{projects: projects}
}

// List returns projects, newest first, with optional filters.
// GET /api/projects?category_id=&search=&is_favorite=
func (h *Projects) List(w http.ResponseWriter, r *http.Request) {
	var filter store.ProjectFilter

	q := r.URL.Query()
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "无效的分类 ID")
			return
		}
		filter.CategoryID = &id
	}
	if raw := q.Get("is_favorite"); raw != "" {
		fav, err := strconv.ParseBool(raw)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, "无效的收藏筛选")
			return
		}
		filter.Favorite = &fav
	}
	filter.Search = q.Get("search")

	items, err := h.projects.List(filter)
	if err != nil {
		slog.Error("list projects", "error", err)
		writeDetail(w, http.StatusInternalServerError, "加载项目失败")
		return
	}
	if items == nil {
		items = []models.Project{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create stores a new project and stamps its timestamps.
// POST /api/projects
func (h *Projects) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Project
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeDetail(w, http.StatusBadRequest, "项目名称不能为空")
		return
	}

	created, err := h.projects.Create(&in)
	if err != nil {
		slog.Error("create project", "error", err)
		writeDetail(w, http.StatusInternalServerError, "创建项目失败")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// Get returns a single project by ID.
// GET /api/projects/{id}
func (h *Projects) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.projects.FindByID(id)
	if err != nil {
		slog.Error("find project", "error", err)
		writeDetail(w, http.StatusInternalServerError, "加载项目失败")
		return
	}
	if p == nil {
		writeDetail(w, http.StatusNotFound, "项目不存在")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update overwrites the project's fields and refreshes updated_at.
// PUT /api/projects/{id}
func (h *Projects) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in models.Project
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeDetail(w, http.StatusBadRequest, "项目名称不能为空")
		return
	}
	in.ID = id

	updated, err := h.projects.Update(&in)
	if err != nil {
		slog.Error("update project", "error", err)
		writeDetail(w, http.StatusInternalServerError, "更新项目失败")
		return
	}
	if updated == nil {
		writeDetail(w, http.StatusNotFound, "项目不存在")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// ToggleFavorite flips the favorite flag.
// POST /api/projects/{id}/favorite
func (h *Projects) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	updated, err := h.projects.ToggleFavorite(id)
	if err != nil {
		slog.Error("toggle favorite", "error", err)
		writeDetail(w, http.StatusInternalServerError, "更新项目失败")
		return
	}
	if updated == nil {
		writeDetail(w, http.StatusNotFound, "项目不存在")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete removes a project and all of its versions.
// DELETE /api/projects/{id}
func (h *Projects) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.projects.Delete(id)
	if err != nil {
		slog.Error("delete project", "error", err)
		writeDetail(w, http.StatusInternalServerError, "删除项目失败")
		return
	}
	if !deleted {
		writeDetail(w, http.StatusNotFound, "项目不存在")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
