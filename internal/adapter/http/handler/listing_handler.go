package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/adapter/http/response"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/contact"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/domain"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/pipeline"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/listing/validation"
	"github.com/Abdurahmanit/GroupProject/hostlecart/internal/platform/logger"
)

// ImagesField is the multipart field that carries listing photos.
const ImagesField = "images"

type ListingHandler struct {
	listings       ListingService
	uploads        UploadService
	moderation     ModerationService
	favorites      FavoriteService
	countryCode    string
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewListingHandler(
	listings ListingService,
	uploads UploadService,
	moderation ModerationService,
	favorites FavoriteService,
	countryCode string,
	maxUploadBytes int64,
	log *logger.Logger,
) *ListingHandler {
	return &ListingHandler{
		listings:       listings,
		uploads:        uploads,
		moderation:     moderation,
		favorites:      favorites,
		countryCode:    countryCode,
		maxUploadBytes: maxUploadBytes,
		logger:         log.Named("ListingHandler"),
	}
}

// HandleBrowse serves one page of approved listings. Unparseable filters are ignored.
func (h *ListingHandler) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := pipeline.Criteria{
		Search:    q.Get("search"),
		Category:  domain.Category(q.Get("category")),
		Condition: domain.Condition(q.Get("condition")),
		PriceMin:  pipeline.ParsePriceBound(q.Get("priceMin")),
		PriceMax:  pipeline.ParsePriceBound(q.Get("priceMax")),
		Sort:      pipeline.SortKey(q.Get("sort")),
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		page = 1
	}

	result, err := h.listings.Browse(r.Context(), criteria, page)
	if err != nil {
		writeError(w, h.logger, "Browse", err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *ListingHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	product, err := h.listings.GetListing(r.Context(), chi.URLParam(r, "id"), middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, "GetListing", err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// HandleContact returns the WhatsApp and phone links for a listing's seller.
func (h *ListingHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	product, err := h.listings.GetListing(r.Context(), chi.URLParam(r, "id"), middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, "Contact", err)
		return
	}
	response.JSON(w, http.StatusOK, contact.For(h.countryCode, product))
}

func (h *ListingHandler) HandleMyListings(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	products, err := h.listings.MyListings(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, h.logger, "MyListings", err)
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}
	response.JSON(w, http.StatusOK, products)
}

// HandleCreateListing accepts the multipart upload form with its images.
func (h *ListingHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		response.Error(w, http.StatusRequestEntityTooLarge, "Upload is too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, "Upload is too large")
			return
		}
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.Warn("Failed to remove multipart temp files", zap.Error(err))
		}
	}()

	form := validation.UploadForm{
		ProductName:   r.FormValue("productName"),
		Category:      r.FormValue("category"),
		Condition:     r.FormValue("condition"),
		Price:         r.FormValue("price"),
		Negotiable:    parseBool(r.FormValue("negotiable")),
		SellerName:    r.FormValue("sellerName"),
		Address:       r.FormValue("address"),
		ContactNumber: r.FormValue("contactNumber"),
	}
	files, err := readFiles(r.MultipartForm.File[ImagesField])
	if err != nil {
		h.logger.Warn("Failed to read uploaded image", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "Failed to read uploaded images")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	product, err := h.uploads.Submit(r.Context(), actor.UserID, form, files)
	if err != nil {
		writeError(w, h.logger, "CreateListing", err)
		return
	}
	response.JSON(w, http.StatusCreated, product)
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *ListingHandler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	err := h.moderation.SetStatus(r.Context(), middleware.ActorFromContext(r.Context()), id, domain.ListingStatus(req.Status))
	if err != nil {
		writeError(w, h.logger, "SetStatus", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

func (h *ListingHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	favorite, err := h.favorites.Toggle(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, "ToggleFavorite", err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"favorite": favorite})
}

func (h *ListingHandler) HandleGetFavorites(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	ids, err := h.favorites.List(r.Context(), actor.UserID)
	if err != nil {
		writeError(w, h.logger, "GetFavorites", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	response.JSON(w, http.StatusOK, map[string][]string{"listingIds": ids})
}

func readFiles(headers []*multipart.FileHeader) ([]domain.UploadedFile, error) {
	files := make([]domain.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, domain.UploadedFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "on", "1", "yes":
		return true
	}
	return false
}
