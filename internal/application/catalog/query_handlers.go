package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/estantedev/estante/internal/domain/catalog"
	pkgerrors "github.com/estantedev/estante/pkg/errors"
	"github.com/estantedev/estante/pkg/interfaces"
	"github.com/estantedev/estante/pkg/pagination"
)

const (
	msgBooksFound      = "Book(s) retrieved successfully"
	msgGendersFound    = "Gender(s) retrieved successfully"
	msgPublishersFound = "Publisher(s) retrieved successfully"
	msgCoverFound      = "Book cover retrieved successfully"

	msgErrSearchingBooks      = "Error searching Book(s)"
	msgErrSearchingGenders    = "Error searching Gender(s)"
	msgErrSearchingPublishers = "Error searching Publisher(s)"
	msgErrReadingCover        = "Error reading Book cover"

	viewCacheTTL = 5 * time.Minute
)

// BookQueryHandler serves book reads. Single-item reads go through the
// cache; searches always hit the repository.
type BookQueryHandler struct {
	repos   RepositoryFactory
	storage CoverStorage
	cache   interfaces.Cache
	logger  interfaces.Logger
}

// NewBookQueryHandler creates a new book query handler.
func NewBookQueryHandler(repos RepositoryFactory, storage CoverStorage, cache interfaces.Cache, logger interfaces.Logger) *BookQueryHandler {
	return &BookQueryHandler{repos: repos, storage: storage, cache: cache, logger: logger}
}

// HandleSearch runs the paginated book search.
func (h *BookQueryHandler) HandleSearch(ctx context.Context, query SearchBooksQuery) (DataResult[pagination.PagedResult[BookView]], error) {
	page, err := h.repos.Books().Search(ctx, catalog.SearchQuery{
		Spec:     buildBookSpecification(query),
		OrderBy:  parseOrder(query.Order, bookSortColumns),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return failureData[pagination.PagedResult[BookView]](msgErrSearchingBooks), err
	}

	return successData(msgBooksFound, projectPage(page, newBookView)), nil
}

// HandleGet fetches one book by id, consulting the cache first.
func (h *BookQueryHandler) HandleGet(ctx context.Context, query GetBookQuery) (DataResult[BookView], error) {
	cacheKey := "book:" + query.BookID.String()

	if cached, err := h.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		var view BookView
		if err := json.Unmarshal(cached, &view); err == nil {
			return successData(msgBooksFound, view), nil
		}
	}

	book, err := h.repos.Books().GetByIDNoTracking(ctx, query.BookID)
	if err != nil {
		return failureData[BookView](msgErrSearchingBooks), pkgerrors.Persistence("loading book", err)
	}
	if book == nil {
		return failureData[BookView](msgErrSearchingBooks), pkgerrors.NotFound("book not found")
	}

	view := newBookView(book)
	if encoded, err := json.Marshal(view); err == nil {
		if err := h.cache.Set(ctx, cacheKey, encoded, viewCacheTTL); err != nil {
			h.logger.Warn("caching book view failed", interfaces.Error(err))
		}
	}

	return successData(msgBooksFound, view), nil
}

// HandleGetCover reads a book's stored cover image.
func (h *BookQueryHandler) HandleGetCover(ctx context.Context, query GetBookCoverQuery) (DataResult[CoverView], error) {
	book, err := h.repos.Books().GetByIDNoTracking(ctx, query.BookID)
	if err != nil {
		return failureData[CoverView](msgErrReadingCover), pkgerrors.Persistence("loading book", err)
	}
	if book == nil {
		return failureData[CoverView](msgErrReadingCover), pkgerrors.NotFound("book not found")
	}
	if book.CoverName == "" {
		return failureData[CoverView](msgErrReadingCover), pkgerrors.NotFound("book has no cover")
	}

	content, err := h.storage.Read(ctx, book.CoverName)
	if err != nil {
		return failureData[CoverView](msgErrReadingCover), pkgerrors.Wrap(pkgerrors.ErrorTypeInternal, "reading cover image", err)
	}
	if content == nil {
		return failureData[CoverView](msgErrReadingCover), pkgerrors.NotFound("cover image not found")
	}

	return successData(msgCoverFound, CoverView{FileName: book.CoverName, Content: content}), nil
}

// GenderQueryHandler serves gender reads.
type GenderQueryHandler struct {
	repos  RepositoryFactory
	cache  interfaces.Cache
	logger interfaces.Logger
}

// NewGenderQueryHandler creates a new gender query handler.
func NewGenderQueryHandler(repos RepositoryFactory, cache interfaces.Cache, logger interfaces.Logger) *GenderQueryHandler {
	return &GenderQueryHandler{repos: repos, cache: cache, logger: logger}
}

// HandleSearch runs the paginated gender search.
func (h *GenderQueryHandler) HandleSearch(ctx context.Context, query SearchGendersQuery) (DataResult[pagination.PagedResult[GenderView]], error) {
	page, err := h.repos.Genders().Search(ctx, catalog.SearchQuery{
		Spec:     buildGenderSpecification(query),
		OrderBy:  parseOrder(query.Order, nameSortColumns),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return failureData[pagination.PagedResult[GenderView]](msgErrSearchingGenders), err
	}

	return successData(msgGendersFound, projectPage(page, newGenderView)), nil
}

// HandleGet fetches one gender by id, consulting the cache first.
func (h *GenderQueryHandler) HandleGet(ctx context.Context, query GetGenderQuery) (DataResult[GenderView], error) {
	cacheKey := "gender:" + query.GenderID.String()

	if cached, err := h.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		var view GenderView
		if err := json.Unmarshal(cached, &view); err == nil {
			return successData(msgGendersFound, view), nil
		}
	}

	gender, err := h.repos.Genders().GetByIDNoTracking(ctx, query.GenderID)
	if err != nil {
		return failureData[GenderView](msgErrSearchingGenders), pkgerrors.Persistence("loading gender", err)
	}
	if gender == nil {
		return failureData[GenderView](msgErrSearchingGenders), pkgerrors.NotFound("gender not found")
	}

	view := newGenderView(gender)
	if encoded, err := json.Marshal(view); err == nil {
		if err := h.cache.Set(ctx, cacheKey, encoded, viewCacheTTL); err != nil {
			h.logger.Warn("caching gender view failed", interfaces.Error(err))
		}
	}

	return successData(msgGendersFound, view), nil
}

// PublisherQueryHandler serves publisher reads.
type PublisherQueryHandler struct {
	repos  RepositoryFactory
	cache  interfaces.Cache
	logger interfaces.Logger
}

// NewPublisherQueryHandler creates a new publisher query handler.
func NewPublisherQueryHandler(repos RepositoryFactory, cache interfaces.Cache, logger interfaces.Logger) *PublisherQueryHandler {
	return &PublisherQueryHandler{repos: repos, cache: cache, logger: logger}
}

// HandleSearch runs the paginated publisher search.
func (h *PublisherQueryHandler) HandleSearch(ctx context.Context, query SearchPublishersQuery) (DataResult[pagination.PagedResult[PublisherView]], error) {
	page, err := h.repos.Publishers().Search(ctx, catalog.SearchQuery{
		Spec:     buildPublisherSpecification(query),
		OrderBy:  parseOrder(query.Order, nameSortColumns),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return failureData[pagination.PagedResult[PublisherView]](msgErrSearchingPublishers), err
	}

	return successData(msgPublishersFound, projectPage(page, newPublisherView)), nil
}

// HandleGet fetches one publisher by id, consulting the cache first.
func (h *PublisherQueryHandler) HandleGet(ctx context.Context, query GetPublisherQuery) (DataResult[PublisherView], error) {
	cacheKey := "publisher:" + query.PublisherID.String()

	if cached, err := h.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		var view PublisherView
		if err := json.Unmarshal(cached, &view); err == nil {
			return successData(msgPublishersFound, view), nil
		}
	}

	publisher, err := h.repos.Publishers().GetByIDNoTracking(ctx, query.PublisherID)
	if err != nil {
		return failureData[PublisherView](msgErrSearchingPublishers), pkgerrors.Persistence("loading publisher", err)
	}
	if publisher == nil {
		return failureData[PublisherView](msgErrSearchingPublishers), pkgerrors.NotFound("publisher not found")
	}

	view := newPublisherView(publisher)
	if encoded, err := json.Marshal(view); err == nil {
		if err := h.cache.Set(ctx, cacheKey, encoded, viewCacheTTL); err != nil {
			h.logger.Warn("caching publisher view failed", interfaces.Error(err))
		}
	}

	return successData(msgPublishersFound, view), nil
}
