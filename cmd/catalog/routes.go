package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appcatalog "github.com/estantedev/estante/internal/application/catalog"
	pkgerrors "github.com/estantedev/estante/pkg/errors"
)

type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func registerRoutes(mux *http.ServeMux, r routes, log *zap.Logger) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	registerBookRoutes(mux, r.books, log)
	registerGenderRoutes(mux, r.genders, log)
	registerPublisherRoutes(mux, r.publishers, log)
}

func registerBookRoutes(mux *http.ServeMux, h handlerSet, log *zap.Logger) {
	mux.HandleFunc("POST /api/books", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Title       string    `json:"title"`
			Author      string    `json:"author"`
			ISBN        string    `json:"isbn"`
			Synopsis    string    `json:"synopsis"`
			GenderID    uuid.UUID `json:"gender_id"`
			PublisherID uuid.UUID `json:"publisher_id"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleCreate(req.Context(), appcatalog.CreateBookCommand{
			Title:       body.Title,
			Author:      body.Author,
			ISBN:        body.ISBN,
			Synopsis:    body.Synopsis,
			GenderID:    body.GenderID,
			PublisherID: body.PublisherID,
		})
		writeResult(w, log, result.Result, result.Data, err, http.StatusCreated)
	})

	mux.HandleFunc("GET /api/books", func(w http.ResponseWriter, req *http.Request) {
		query, ok := parseBookSearch(w, req)
		if !ok {
			return
		}
		result, err := h.queries.HandleSearch(req.Context(), query)
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("GET /api/books/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		result, err := h.queries.HandleGet(req.Context(), appcatalog.GetBookQuery{BookID: id})
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("PUT /api/books/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		var body struct {
			Title       string    `json:"title"`
			Author      string    `json:"author"`
			ISBN        string    `json:"isbn"`
			Synopsis    string    `json:"synopsis"`
			GenderID    uuid.UUID `json:"gender_id"`
			PublisherID uuid.UUID `json:"publisher_id"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleUpdate(req.Context(), appcatalog.UpdateBookCommand{
			BookID:      id,
			Title:       body.Title,
			Author:      body.Author,
			ISBN:        body.ISBN,
			Synopsis:    body.Synopsis,
			GenderID:    body.GenderID,
			PublisherID: body.PublisherID,
		})
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("DELETE /api/books", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			BookIDs []uuid.UUID `json:"book_ids"`
			UserID  uuid.UUID   `json:"user_id"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleDeletes(req.Context(), appcatalog.DeletesBookCommand{
			BookIDs: body.BookIDs,
			UserID:  body.UserID,
		})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})

	mux.HandleFunc("POST /api/books/activate", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			BookIDs []uuid.UUID `json:"book_ids"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleAtives(req.Context(), appcatalog.AtivesBookCommand{BookIDs: body.BookIDs})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})

	mux.HandleFunc("POST /api/books/disable", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			BookIDs []uuid.UUID `json:"book_ids"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleDisables(req.Context(), appcatalog.DisablesBookCommand{BookIDs: body.BookIDs})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})

	mux.HandleFunc("POST /api/books/{id}/cover", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		file, header, err := req.FormFile("cover")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiResponse{Message: "cover file is required"})
			return
		}
		defer file.Close()

		result, err := h.commands.HandleUploadCover(req.Context(), appcatalog.UploadBookCoverCommand{
			BookID:   id,
			FileName: header.Filename,
			Content:  file,
		})
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("GET /api/books/{id}/cover", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		result, err := h.queries.HandleGetCover(req.Context(), appcatalog.GetBookCoverQuery{BookID: id})
		if err != nil {
			writeJSON(w, statusFor(err), apiResponse{
				Message: result.Message,
				Errors:  pkgerrors.Details(err),
			})
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(result.Data.FileName))
		w.WriteHeader(http.StatusOK)
		w.Write(result.Data.Content)
	})
}

func registerGenderRoutes(mux *http.ServeMux, h genderHandlerSet, log *zap.Logger) {
	mux.HandleFunc("POST /api/genders", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleCreate(req.Context(), appcatalog.CreateGenderCommand{
			Name:        body.Name,
			Description: body.Description,
		})
		writeResult(w, log, result.Result, result.Data, err, http.StatusCreated)
	})

	mux.HandleFunc("GET /api/genders", func(w http.ResponseWriter, req *http.Request) {
		query, ok := parseNamedSearch(w, req)
		if !ok {
			return
		}
		result, err := h.queries.HandleSearch(req.Context(), appcatalog.SearchGendersQuery(query))
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("GET /api/genders/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		result, err := h.queries.HandleGet(req.Context(), appcatalog.GetGenderQuery{GenderID: id})
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("PUT /api/genders/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleUpdate(req.Context(), appcatalog.UpdateGenderCommand{
			GenderID:    id,
			Name:        body.Name,
			Description: body.Description,
		})
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("DELETE /api/genders/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		userID, err := uuid.Parse(req.URL.Query().Get("user_id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiResponse{Message: "user_id is required"})
			return
		}
		result, err := h.commands.HandleDelete(req.Context(), appcatalog.DeleteGenderCommand{GenderID: id, UserID: userID})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})

	mux.HandleFunc("POST /api/genders/{id}/activate", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		result, err := h.commands.HandleAtive(req.Context(), appcatalog.AtiveGenderCommand{GenderID: id})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})

	mux.HandleFunc("POST /api/genders/{id}/disable", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		result, err := h.commands.HandleDisable(req.Context(), appcatalog.DisableGenderCommand{GenderID: id})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})
}

func registerPublisherRoutes(mux *http.ServeMux, h publisherHandlerSet, log *zap.Logger) {
	mux.HandleFunc("POST /api/publishers", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleCreate(req.Context(), appcatalog.CreatePublisherCommand{
			Name:        body.Name,
			Description: body.Description,
		})
		writeResult(w, log, result.Result, result.Data, err, http.StatusCreated)
	})

	mux.HandleFunc("GET /api/publishers", func(w http.ResponseWriter, req *http.Request) {
		query, ok := parseNamedSearch(w, req)
		if !ok {
			return
		}
		result, err := h.queries.HandleSearch(req.Context(), appcatalog.SearchPublishersQuery(query))
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("GET /api/publishers/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		result, err := h.queries.HandleGet(req.Context(), appcatalog.GetPublisherQuery{PublisherID: id})
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("PUT /api/publishers/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		var body struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if !decodeBody(w, req, &body) {
			return
		}
		result, err := h.commands.HandleUpdate(req.Context(), appcatalog.UpdatePublisherCommand{
			PublisherID: id,
			Name:        body.Name,
			Description: body.Description,
		})
		writeResult(w, log, result.Result, result.Data, err, http.StatusOK)
	})

	mux.HandleFunc("DELETE /api/publishers/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		userID, err := uuid.Parse(req.URL.Query().Get("user_id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiResponse{Message: "user_id is required"})
			return
		}
		result, err := h.commands.HandleDelete(req.Context(), appcatalog.DeletePublisherCommand{PublisherID: id, UserID: userID})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})

	mux.HandleFunc("POST /api/publishers/{id}/activate", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		result, err := h.commands.HandleAtive(req.Context(), appcatalog.AtivePublisherCommand{PublisherID: id})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})

	mux.HandleFunc("POST /api/publishers/{id}/disable", func(w http.ResponseWriter, req *http.Request) {
		id, ok := pathID(w, req)
		if !ok {
			return
		}
		result, err := h.commands.HandleDisable(req.Context(), appcatalog.DisablePublisherCommand{PublisherID: id})
		writeResult(w, log, result, nil, err, http.StatusOK)
	})
}

func parseBookSearch(w http.ResponseWriter, req *http.Request) (appcatalog.SearchBooksQuery, bool) {
	q := req.URL.Query()
	query := appcatalog.SearchBooksQuery{
		Filter: q.Get("filter"),
		Title:  q.Get("title"),
		Author: q.Get("author"),
		ISBN:   q.Get("isbn"),
		Order:  q.Get("order"),
	}

	var ok bool
	if query.Page, query.PageSize, ok = parsePaging(w, q.Get("page"), q.Get("page_size")); !ok {
		return query, false
	}
	if query.ID, ok = parseOptionalUUID(w, q.Get("id"), "id"); !ok {
		return query, false
	}
	if query.GenderID, ok = parseOptionalUUID(w, q.Get("gender_id"), "gender_id"); !ok {
		return query, false
	}
	if query.PublisherID, ok = parseOptionalUUID(w, q.Get("publisher_id"), "publisher_id"); !ok {
		return query, false
	}
	query.IsDeleted = parseOptionalBool(q.Get("is_deleted"))
	query.CreatedAt = parseOptionalTime(q.Get("created_at"))
	return query, true
}

// namedSearch covers the gender and publisher search parameters, which
// share the same shape.
func parseNamedSearch(w http.ResponseWriter, req *http.Request) (appcatalog.SearchGendersQuery, bool) {
	q := req.URL.Query()
	query := appcatalog.SearchGendersQuery{
		Filter:      q.Get("filter"),
		Name:        q.Get("name"),
		Description: q.Get("description"),
		Order:       q.Get("order"),
	}

	var ok bool
	if query.Page, query.PageSize, ok = parsePaging(w, q.Get("page"), q.Get("page_size")); !ok {
		return query, false
	}
	if query.ID, ok = parseOptionalUUID(w, q.Get("id"), "id"); !ok {
		return query, false
	}
	query.IsDeleted = parseOptionalBool(q.Get("is_deleted"))
	query.CreatedAt = parseOptionalTime(q.Get("created_at"))
	return query, true
}

func parsePaging(w http.ResponseWriter, pageRaw, sizeRaw string) (int, int, bool) {
	page, size := 1, 10
	var err error
	if pageRaw != "" {
		if page, err = strconv.Atoi(pageRaw); err != nil {
			writeJSON(w, http.StatusBadRequest, apiResponse{Message: "page must be an integer"})
			return 0, 0, false
		}
	}
	if sizeRaw != "" {
		if size, err = strconv.Atoi(sizeRaw); err != nil {
			writeJSON(w, http.StatusBadRequest, apiResponse{Message: "page_size must be an integer"})
			return 0, 0, false
		}
	}
	return page, size, true
}

func parseOptionalUUID(w http.ResponseWriter, raw, name string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: name + " must be a uuid"})
		return nil, false
	}
	return &id, true
}

func parseOptionalBool(raw string) *bool {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}

func parseOptionalTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &value
}

func pathID(w http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(req.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "id must be a uuid"})
		return uuid.Nil, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, req *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(req.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Message: "invalid request body"})
		return false
	}
	return true
}

func writeResult(w http.ResponseWriter, log *zap.Logger, result appcatalog.Result, data interface{}, err error, okStatus int) {
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error("request failed", zap.Error(err))
		}
		writeJSON(w, status, apiResponse{
			Success: false,
			Message: result.Message,
			Errors:  pkgerrors.Details(err),
		})
		return
	}
	writeJSON(w, okStatus, apiResponse{
		Success: true,
		Message: result.Message,
		Data:    data,
	})
}

func writeJSON(w http.ResponseWriter, status int, body apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func statusFor(err error) int {
	switch {
	case pkgerrors.IsValidation(err), pkgerrors.IsArgument(err):
		return http.StatusBadRequest
	case pkgerrors.IsNotFound(err):
		return http.StatusNotFound
	case pkgerrors.IsConflict(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
