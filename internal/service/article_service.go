package service

import (
	"errors"

	"blogapi/internal/exception"
	"blogapi/internal/model"
	"blogapi/internal/repository"

	"gorm.io/gorm"
)

type ArticleService struct {
	articles  repository.ArticleRepository
	comments  repository.CommentRepository
	likes     repository.LikeRepository
	access    *AccessService
	validator *Validator
}

func NewArticleService(
	articles repository.ArticleRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	access *AccessService,
	validator *Validator,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		comments:  comments,
		likes:     likes,
		access:    access,
		validator: validator,
	}
}

// ArticleInput carries the writable fields of an article.
type ArticleInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	State   string   `json:"state"`
	Tags    []string `json:"tags"`
}

func validateArticleState(state string) error {
	switch state {
	case model.ArticleStateDraft, model.ArticleStatePublished, model.ArticleStateArchived:
		return nil
	}
	return exception.InvalidData(map[string]string{
		"state": "must be draft, published or archived",
	})
}

// CreateArticle creates an article for the caller. An empty state means
// draft.
func (s *ArticleService) CreateArticle(p Principal, input ArticleInput) (*model.Article, error) {
	if err := s.access.EnsureCanCreateArticle(p); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateArticle(input.Title, input.Content); err != nil {
		return nil, err
	}
	if input.State == "" {
		input.State = model.ArticleStateDraft
	}
	if err := validateArticleState(input.State); err != nil {
		return nil, err
	}

	article := &model.Article{
		AuthorID: p.UserID,
		Title:    input.Title,
		Content:  input.Content,
		State:    input.State,
	}
	if err := s.articles.Create(article); err != nil {
		return nil, err
	}
	if len(input.Tags) > 0 {
		if err := s.articles.ReplaceTags(article, input.Tags); err != nil {
			return nil, err
		}
	}
	return article, nil
}

// GetArticle returns one article with its like count. Reading someone
// else's published article counts a view; the increment happens in the
// database so concurrent readers never lose counts.
func (s *ArticleService) GetArticle(p Principal, articleID string) (*model.Article, error) {
	article, err := s.articles.FindByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, exception.NotFound("article not found")
	}
	if err := s.access.EnsureCanGetArticle(p, article.AuthorID, article.State); err != nil {
		return nil, err
	}

	if article.State == model.ArticleStatePublished && p.UserID != article.AuthorID {
		if err := s.articles.IncrementViews(articleID); err == nil {
			article.Views++
		}
	}

	count, err := s.likes.CountByTarget(model.TargetTypeArticle, articleID)
	if err != nil {
		return nil, err
	}
	article.LikeCount = count

	if p.IsAuth {
		like, err := s.likes.FindByUserAndTarget(p.UserID, model.TargetTypeArticle, articleID)
		if err != nil {
			return nil, err
		}
		article.IsRated = like != nil
	}

	return article, nil
}

// ArticleListQuery is the caller-facing filter for article listings.
type ArticleListQuery struct {
	Limit    int
	Offset   int
	OrderBy  string
	State    string
	AuthorID string
	Search   string
}

// GetArticles lists articles. Callers without the unrestricted read
// capability see published articles only, except when filtering by their
// own author id.
func (s *ArticleService) GetArticles(p Principal, q ArticleListQuery) ([]*model.Article, int64, error) {
	if q.Limit == 0 {
		q.Limit = 20
	}
	if err := s.validator.ValidatePagination(q.Limit, q.Offset); err != nil {
		return nil, 0, err
	}

	params := repository.ArticleQuery{
		Limit:    q.Limit,
		Offset:   q.Offset,
		OrderBy:  q.OrderBy,
		State:    q.State,
		AuthorID: q.AuthorID,
		Search:   q.Search,
	}

	selfQuery := p.IsAuth && q.AuthorID == p.UserID &&
		p.Permissions.Has(model.PermGetSelfArticle)
	if !p.Permissions.Has(model.PermGetArticle) && !selfQuery {
		if !p.Permissions.Has(model.PermGetPublishedArticle) {
			return nil, 0, exception.ErrAccessDenied
		}
		params.State = model.ArticleStatePublished
	}

	articles, total, err := s.articles.FindAll(params)
	if err != nil {
		return nil, 0, err
	}

	for _, article := range articles {
		count, err := s.likes.CountByTarget(model.TargetTypeArticle, article.ID)
		if err != nil {
			return nil, 0, err
		}
		article.LikeCount = count
	}

	return articles, total, nil
}

// UpdateArticle rewrites an article's fields. Deleted articles are gone for
// writers too.
func (s *ArticleService) UpdateArticle(p Principal, articleID string, input ArticleInput) (*model.Article, error) {
	article, err := s.articles.FindByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil || article.State == model.ArticleStateDeleted {
		return nil, exception.NotFound("article not found")
	}
	if err := s.access.EnsureCanUpdateArticle(p, article.AuthorID); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateArticle(input.Title, input.Content); err != nil {
		return nil, err
	}
	if input.State == "" {
		input.State = article.State
	}
	if err := validateArticleState(input.State); err != nil {
		return nil, err
	}

	article.Title = input.Title
	article.Content = input.Content
	article.State = input.State
	if err := s.articles.Save(article); err != nil {
		return nil, err
	}
	if input.Tags != nil {
		if err := s.articles.ReplaceTags(article, input.Tags); err != nil {
			return nil, err
		}
	}
	return article, nil
}

// DeleteArticle removes an article together with its whole comment forest
// and like edges.
func (s *ArticleService) DeleteArticle(p Principal, articleID string) error {
	article, err := s.articles.FindByID(articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return exception.NotFound("article not found")
	}
	if err := s.access.EnsureCanDeleteArticle(p, article.AuthorID); err != nil {
		return err
	}

	if err := s.comments.DeleteByArticleID(articleID); err != nil {
		return err
	}
	if err := s.likes.DeleteByTarget(model.TargetTypeArticle, articleID); err != nil {
		return err
	}
	return s.articles.Delete(articleID)
}

// RateArticle toggles the caller's like on an article to an explicit target
// state. Races between concurrent likes resolve at the unique index.
func (s *ArticleService) RateArticle(p Principal, articleID, state string) error {
	if err := s.access.EnsureCanRateArticle(p); err != nil {
		return err
	}
	if err := s.validator.ValidateRateState(state); err != nil {
		return err
	}

	article, err := s.articles.FindByID(articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return exception.NotFound("article not found")
	}
	if article.State != model.ArticleStatePublished {
		return exception.BadRequest("article is not published")
	}
	if article.AuthorID == p.UserID {
		return exception.BadRequest("cannot rate your own article")
	}

	existing, err := s.likes.FindByUserAndTarget(p.UserID, model.TargetTypeArticle, articleID)
	if err != nil {
		return err
	}

	switch model.RateState(state) {
	case model.RateStateLike:
		if existing != nil {
			return exception.BadRequest("article is already rated")
		}
		err := s.likes.Create(&model.Like{
			UserID:     p.UserID,
			TargetType: model.TargetTypeArticle,
			TargetID:   articleID,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return exception.BadRequest("article is already rated")
		}
		return err
	case model.RateStateNeutral:
		if existing == nil {
			return exception.BadRequest("article is not rated")
		}
		return s.likes.DeleteByUserAndTarget(p.UserID, model.TargetTypeArticle, articleID)
	}
	return nil
}
