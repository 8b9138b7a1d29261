package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veloria/catalog-api/internal/domain"
	"github.com/veloria/catalog-api/internal/httpserver/deps"
)

func ListProducts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := d.Products.List(r.Context())
		if err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, products)
	}
}

func GetProduct(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := d.Products.FindByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func CreateProduct(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p domain.Product
		if !decodeBody(w, r, &p) {
			return
		}
		p.ID = ""
		p.Slug = ""
		if err := p.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Products.Create(r.Context(), &p); err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusCreated, p)
	}
}

func UpdateProduct(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p domain.Product
		if !decodeBody(w, r, &p) {
			return
		}
		p.ID = chi.URLParam(r, "id")
		if err := p.Validate(); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := d.Products.Update(r.Context(), &p); err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func DeleteProduct(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			respondStoreError(w, d.Logger, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
