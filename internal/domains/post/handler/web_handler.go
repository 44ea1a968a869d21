package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"institute-backend/internal/domains/post/service"
)

const featuredLimit = 3

// WebHandler renders the server-side pages: the public blog and the
// admin editor shell.
type WebHandler struct {
	service service.Service
}

func NewWebHandler(service service.Service) *WebHandler {
	return &WebHandler{
		service: service,
	}
}

// ============================================
// PUBLIC PAGES
// ============================================

// Home handles GET / — the landing page with featured posts.
// Read failures degrade to an empty featured section.
func (h *WebHandler) Home(c *gin.Context) {
	cards := h.service.FeaturedCards(c.Request.Context(), featuredLimit)

	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title":    "Home",
		"Featured": cards,
	})
}

// BlogList handles GET /blog.
func (h *WebHandler) BlogList(c *gin.Context) {
	cards := h.service.PublishedCards(c.Request.Context())

	c.HTML(http.StatusOK, "blog_list.html", gin.H{
		"Title": "Blog",
		"Posts": cards,
	})
}

// BlogDetail handles GET /blog/:slug. Absent-or-unpublished renders the
// not-found page.
func (h *WebHandler) BlogDetail(c *gin.Context) {
	slug := c.Param("slug")

	view, err := h.service.ViewBySlug(c.Request.Context(), slug)
	if err != nil {
		h.NotFoundPage(c)
		return
	}

	c.HTML(http.StatusOK, "blog_detail.html", gin.H{
		"Title":       view.Title,
		"Post":        view,
		"MetaExcerpt": view.MetaExcerpt,
		// Content is sanitized at save time; injected as-is here.
		"Body": template.HTML(view.Body),
	})
}

// NotFoundPage renders the standard 404 page.
func (h *WebHandler) NotFoundPage(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{
		"Title": "Page not found",
	})
}

// ============================================
// ADMIN PAGES (behind AdminPageGate)
// ============================================

// AdminDashboard handles GET /admin — list of all posts, drafts included.
func (h *WebHandler) AdminDashboard(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
			"Title": "Posts",
			"Error": "Could not load posts. Try again.",
		})
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"Title": "Posts",
		"Posts": posts,
	})
}

// AdminCreate handles GET /admin/create — a blank editor.
func (h *WebHandler) AdminCreate(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_editor.html", gin.H{
		"Title": "New post",
	})
}

// AdminEdit handles GET /admin/edit/:id — the editor with an existing
// post loaded.
func (h *WebHandler) AdminEdit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFoundPage(c)
		return
	}

	post, err := h.service.GetPost(c.Request.Context(), id)
	if err != nil {
		h.NotFoundPage(c)
		return
	}

	c.HTML(http.StatusOK, "admin_editor.html", gin.H{
		"Title": "Edit post",
		"Post":  post,
	})
}
