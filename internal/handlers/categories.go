// Package handlers implements the JSON API handlers. Handlers decode the
// request, call the store or AI gateway, and serialize the result; missing
// entities become 404s with the message the SPA displays verbatim.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"promptbox/internal/models"
	"promptbox/internal/store"
)

// Categories handles category CRUD and reordering.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates the category handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List returns all categories in display order.
// GET /api/categories
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List()
	if err != nil {
		slog.Error("list categories", "error", err)
		writeDetail(w, http.StatusInternalServerError, "加载分类失败")
		return
	}
	if items == nil {
		items = []models.Category{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Create adds a category at the end of the display order.
// POST /api/categories
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in models.Category
	if !decodeJSON(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeDetail(w, http.StatusBadRequest, "分类名称不能为空")
		return
	}
	if in.Color == "" {
		in.Color = "blue"
	}

	created, err := h.categories.Create(&in)
	if err != nil {
		slog.Error("create category", "error", err)
		writeDetail(w, http.StatusInternalServerError, "创建分类失败")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// Update overwrites a category's name, color, and icon.
// PUT /api/categories/{id}
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.categories.FindByID(id)
	if err != nil {
		slog.Error("find category", "error", err)
		writeDetail(w, http.StatusInternalServerError, "加载分类失败")
		return
	}
	if existing == nil {
		writeDetail(w, http.StatusNotFound, "分类不存在")
		return
	}

	var in models.Category
	if !decodeJSON(w, r, &in) {
		return
	}

	existing.Name = in.Name
	existing.Color = in.Color
	existing.Icon = in.Icon
	if err := h.categories.Update(existing); err != nil {
		slog.Error("update category", "error", err)
		writeDetail(w, http.StatusInternalServerError, "更新分类失败")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// Delete removes a category. Projects in it are detached, not deleted.
// DELETE /api/categories/{id}
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.categories.FindByID(id)
	if err != nil {
		slog.Error("find category", "error", err)
		writeDetail(w, http.StatusInternalServerError, "加载分类失败")
		return
	}
	if existing == nil {
		writeDetail(w, http.StatusNotFound, "分类不存在")
		return
	}

	if err := h.categories.Delete(id); err != nil {
		slog.Error("delete category", "error", err)
		writeDetail(w, http.StatusInternalServerError, "删除分类失败")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Reorder persists a new display order for the given categories.
// PUT /api/categories/reorder
func (h *Categories) Reorder(w http.ResponseWriter, r *http.Request) {
	var items []store.ReorderItem
	if !decodeJSON(w, r, &items) {
		return
	}

	if err := h.categories.Reorder(items); err != nil {
		slog.Error("reorder categories", "error", err)
		writeDetail(w, http.StatusInternalServerError, "保存排序失败")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
