package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veloria/catalog-api/internal/domain"
	"github.com/veloria/catalog-api/internal/httpserver/deps"
)

func ListBlogPosts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := d.Blogs.List(r.Context())
		if err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, posts)
	}
}

func GetBlogPost(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := d.Blogs.FindByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

func CreateBlogPost(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b domain.BlogPost
		if !decodeBody(w, r, &b) {
			return
		}
		b.ID = ""
		if err := b.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Blogs.Create(r.Context(), &b); err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusCreated, b)
	}
}

func UpdateBlogPost(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b domain.BlogPost
		if !decodeBody(w, r, &b) {
			return
		}
		b.ID = chi.URLParam(r, "id")
		if err := b.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Blogs.Update(r.Context(), &b); err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, b)
	}
}

func DeleteBlogPost(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Blogs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
