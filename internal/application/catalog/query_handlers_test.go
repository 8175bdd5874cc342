package catalog_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	appcatalog "github.com/estantedev/estante/internal/application/catalog"
	"github.com/estantedev/estante/internal/domain/catalog"
	gormpersist "github.com/estantedev/estante/internal/infrastructure/persistence/gorm"
	"github.com/estantedev/estante/pkg/cache"
	pkgerrors "github.com/estantedev/estante/pkg/errors"
	"github.com/estantedev/estante/pkg/logger"
	"github.com/estantedev/estante/test/testutil"
)

type QueryHandlerTestSuite struct {
	suite.Suite

	ctx     context.Context
	reader  *gormpersist.RepositoryFactory
	cache   *cache.InMemoryCache
	storage *memoryCoverStorage
	books   *appcatalog.BookQueryHandler
	genders *appcatalog.GenderQueryHandler

	genderID    uuid.UUID
	publisherID uuid.UUID
}

func (s *QueryHandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	db := testutil.NewTestDB(s.T())
	s.reader = gormpersist.NewDetachedRepositoryFactory(db)
	s.cache = cache.NewInMemoryCache()
	s.storage = newMemoryCoverStorage()
	s.books = appcatalog.NewBookQueryHandler(s.reader, s.storage, s.cache, logger.NewNoop())
	s.genders = appcatalog.NewGenderQueryHandler(s.reader, s.cache, logger.NewNoop())
	s.genderID = uuid.New()
	s.publisherID = uuid.New()
}

func (s *QueryHandlerTestSuite) seed(title, author string) *catalog.Book {
	book := catalog.NewBook(title, author, "9788520925089", "", s.genderID, s.publisherID)
	book.TakeEvents()
	s.Require().NoError(s.reader.Books().Add(s.ctx, book))
	return book
}

func (s *QueryHandlerTestSuite) TestSearchEmptyTable() {
	result, err := s.books.HandleSearch(s.ctx, appcatalog.SearchBooksQuery{
		Page:     1,
		PageSize: 10,
	})

	s.Require().NoError(err)
	s.True(result.Success)
	s.Empty(result.Data.Data)
	s.NotNil(result.Data.Data)
	s.Equal(int64(0), result.Data.RowCount)
	s.Equal(0, result.Data.PageCount)
	s.Equal(1, result.Data.CurrentPage)
	s.Equal(10, result.Data.PageSize)
}

func (s *QueryHandlerTestSuite) TestFreeTextFilterMatchesAnyField() {
	s.seed("Dom Casmurro", "Machado de Assis")
	s.seed("A Hora da Estrela", "Clarice Lispector")
	s.seed("Memórias de Machado", "Outro Autor")

	result, err := s.books.HandleSearch(s.ctx, appcatalog.SearchBooksQuery{
		Filter:   "Machado",
		Page:     1,
		PageSize: 10,
	})

	s.Require().NoError(err)
	s.True(result.Success)
	s.Equal(int64(2), result.Data.RowCount)
	s.Len(result.Data.Data, 2)
}

func (s *QueryHandlerTestSuite) TestWhitespaceFilterMatchesEverything() {
	s.seed("Dom Casmurro", "Machado de Assis")
	s.seed("A Hora da Estrela", "Clarice Lispector")

	result, err := s.books.HandleSearch(s.ctx, appcatalog.SearchBooksQuery{
		Filter:   "   ",
		Page:     1,
		PageSize: 10,
	})

	s.Require().NoError(err)
	s.Equal(int64(2), result.Data.RowCount)
}

func (s *QueryHandlerTestSuite) TestFieldFiltersCombineWithAnd() {
	s.seed("Dom Casmurro", "Machado de Assis")
	s.seed("Dom Quixote", "Miguel de Cervantes")

	result, err := s.books.HandleSearch(s.ctx, appcatalog.SearchBooksQuery{
		Title:    "Dom",
		Author:   "Machado",
		Page:     1,
		PageSize: 10,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Data.Data, 1)
	s.Equal("Dom Casmurro", result.Data.Data[0].Title)
}

func (s *QueryHandlerTestSuite) TestIsDeletedFilter() {
	active := s.seed("Dom Casmurro", "Machado de Assis")
	disabled := s.seed("Quincas Borba", "Machado de Assis")
	s.Require().NoError(s.reader.Books().Disable(s.ctx, disabled.ID))

	deleted := true
	result, err := s.books.HandleSearch(s.ctx, appcatalog.SearchBooksQuery{
		IsDeleted: &deleted,
		Page:      1,
		PageSize:  10,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Data.Data, 1)
	s.Equal(disabled.ID, result.Data.Data[0].ID)
	s.NotEqual(active.ID, result.Data.Data[0].ID)
}

func (s *QueryHandlerTestSuite) TestOrderWhitelisting() {
	s.seed("B", "Autor")
	s.seed("A", "Autor")
	s.seed("C", "Autor")

	result, err := s.books.HandleSearch(s.ctx, appcatalog.SearchBooksQuery{
		Order:    "Title desc",
		Page:     1,
		PageSize: 10,
	})
	s.Require().NoError(err)
	s.Equal("C", result.Data.Data[0].Title)

	// unknown columns fall back to the default ordering instead of failing
	result, err = s.books.HandleSearch(s.ctx, appcatalog.SearchBooksQuery{
		Order:    "synopsis; drop table books",
		Page:     1,
		PageSize: 10,
	})
	s.Require().NoError(err)
	s.Len(result.Data.Data, 3)
}

func (s *QueryHandlerTestSuite) TestSearchInvalidPaging() {
	result, err := s.books.HandleSearch(s.ctx, appcatalog.SearchBooksQuery{Page: 0, PageSize: 10})

	s.False(result.Success)
	s.True(pkgerrors.IsArgument(err))
}

func (s *QueryHandlerTestSuite) TestGetMissingBook() {
	result, err := s.books.HandleGet(s.ctx, appcatalog.GetBookQuery{BookID: uuid.New()})

	s.False(result.Success)
	s.True(pkgerrors.IsNotFound(err))
}

func (s *QueryHandlerTestSuite) TestGetCachesView() {
	book := s.seed("Dom Casmurro", "Machado de Assis")

	result, err := s.books.HandleGet(s.ctx, appcatalog.GetBookQuery{BookID: book.ID})
	s.Require().NoError(err)
	s.Equal("Dom Casmurro", result.Data.Title)

	cached, err := s.cache.Get(s.ctx, "book:"+book.ID.String())
	s.Require().NoError(err)
	s.NotNil(cached)

	// a second read is served from the cache even if the row changes
	s.Require().NoError(s.reader.Books().RemoveByID(s.ctx, book.ID))
	result, err = s.books.HandleGet(s.ctx, appcatalog.GetBookQuery{BookID: book.ID})
	s.Require().NoError(err)
	s.Equal("Dom Casmurro", result.Data.Title)
}

func (s *QueryHandlerTestSuite) TestGenderSearch() {
	gender := catalog.NewGender("Romance", "Ficção romântica")
	gender.TakeEvents()
	s.Require().NoError(s.reader.Genders().Add(s.ctx, gender))

	result, err := s.genders.HandleSearch(s.ctx, appcatalog.SearchGendersQuery{
		Filter:   "romântica",
		Page:     1,
		PageSize: 10,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Data.Data, 1)
	s.Equal("Romance", result.Data.Data[0].Name)
}

func (s *QueryHandlerTestSuite) TestGetCover() {
	book := s.seed("Dom Casmurro", "Machado de Assis")
	s.storage.files["capa.png"] = []byte("png bytes")
	book.SetCover("/covers/capa.png", "capa.png")
	book.TakeEvents()
	s.Require().NoError(s.reader.Books().Update(s.ctx, book))

	result, err := s.books.HandleGetCover(s.ctx, appcatalog.GetBookCoverQuery{BookID: book.ID})

	s.Require().NoError(err)
	s.Equal("capa.png", result.Data.FileName)
	s.Equal([]byte("png bytes"), result.Data.Content)
}

func (s *QueryHandlerTestSuite) TestGetCoverWithoutCover() {
	book := s.seed("Dom Casmurro", "Machado de Assis")

	_, err := s.books.HandleGetCover(s.ctx, appcatalog.GetBookCoverQuery{BookID: book.ID})
	s.True(pkgerrors.IsNotFound(err))
}

func TestQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlerTestSuite))
}
