package service

import (
	"errors"
	"time"

	"blogapi/internal/exception"
	"blogapi/internal/model"
	"blogapi/internal/repository"

	"gorm.io/gorm"
)

// CommentAnswerNotifier fans a reply event out to the parent comment's
// author. Implementations must be best-effort: a failed notification never
// fails the comment write.
type CommentAnswerNotifier interface {
	NotifyCommentAnswer(ownerID, commentID, byUsername string)
}

// CommentNode is one comment in the assembled tree, with its direct
// answers nested.
type CommentNode struct {
	ID             string         `json:"id"`
	AuthorID       string         `json:"author_id"`
	AuthorUsername string         `json:"author_username"`
	Content        string         `json:"content"`
	State          string         `json:"state"`
	Level          int            `json:"level"`
	IsRated        bool           `json:"is_rated"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty"`
	Answers        []*CommentNode `json:"answers"`
}

type CommentService struct {
	comments  repository.CommentRepository
	tree      repository.CommentTreeRepository
	articles  repository.ArticleRepository
	likes     repository.LikeRepository
	access    *AccessService
	validator *Validator
	notifier  CommentAnswerNotifier

	// editWindow bounds how long an author may edit their own comment.
	// Zero disables the bound. Elevated editors are never bound.
	editWindow time.Duration
}

func NewCommentService(
	comments repository.CommentRepository,
	tree repository.CommentTreeRepository,
	articles repository.ArticleRepository,
	likes repository.LikeRepository,
	access *AccessService,
	validator *Validator,
	notifier CommentAnswerNotifier,
	editWindow time.Duration,
) *CommentService {
	return &CommentService{
		comments:   comments,
		tree:       tree,
		articles:   articles,
		likes:      likes,
		access:     access,
		validator:  validator,
		notifier:   notifier,
		editWindow: editWindow,
	}
}

// AddComment creates a comment under an article, optionally as an answer to
// parentID. The comment row and its closure-table branch commit atomically.
func (s *CommentService) AddComment(p Principal, articleID, content string, parentID *string) (*model.Comment, error) {
	if err := s.access.EnsureCanCreateComment(p); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateCommentContent(content); err != nil {
		return nil, err
	}

	article, err := s.articles.FindByID(articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, exception.NotFound("article not found")
	}
	if article.State != model.ArticleStatePublished {
		return nil, exception.BadRequest("article is not open for comments")
	}

	// A root comment has no parent edge and starts at level 0. An answer
	// extends its parent's ancestor chain, so the parent must exist, be
	// published, and belong to the same article.
	parentLevel := -1
	var parentAuthorID string
	if parentID != nil {
		parent, err := s.comments.FindByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, exception.NotFound("parent comment not found")
		}
		if parent.State == model.CommentStateDeleted {
			return nil, exception.BadRequest("cannot answer a deleted comment")
		}
		edge, err := s.tree.FindSelfEdge(*parentID)
		if err != nil {
			return nil, err
		}
		if edge == nil {
			return nil, exception.NotFound("parent comment not found")
		}
		if edge.ArticleID != articleID {
			return nil, exception.BadRequest("parent comment belongs to another article")
		}
		parentLevel = edge.Level
		parentAuthorID = parent.AuthorID
	}

	comment := &model.Comment{
		AuthorID: p.UserID,
		Content:  content,
		State:    model.CommentStatePublished,
	}
	if err := s.comments.CreateWithBranch(comment, parentID, articleID, parentLevel); err != nil {
		return nil, err
	}

	// Answering your own comment makes no notification.
	if s.notifier != nil && parentAuthorID != "" && parentAuthorID != p.UserID {
		s.notifier.NotifyCommentAnswer(parentAuthorID, comment.ID, p.Username)
	}

	return comment, nil
}

// GetComment returns a single comment. Deleted comments come back as
// tombstones unless the caller holds the elevated read capability.
func (s *CommentService) GetComment(p Principal, commentID string) (*model.Comment, error) {
	if err := s.access.EnsureCanGetPublishedComment(p); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, exception.NotFound("comment not found")
	}

	if comment.State == model.CommentStateDeleted && !s.canSeeDeleted(p) {
		redacted := *comment
		redacted.Content = model.TombstoneContent
		return &redacted, nil
	}
	return comment, nil
}

// GetComments returns the full comment forest of an article, assembled from
// the closure table's self-edges in one pass.
func (s *CommentService) GetComments(p Principal, articleID string) ([]*CommentNode, error) {
	if err := s.access.EnsureCanGetPublishedComment(p); err != nil {
		return nil, err
	}

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

	rows, err := s.comments.FindTreeByArticle(articleID)
	if err != nil {
		return nil, err
	}

	rated := map[string]bool{}
	if p.IsAuth && len(rows) > 0 {
		ids := make([]string, len(rows))
		for i, row := range rows {
			ids[i] = row.ID
		}
		rated, err = s.likes.FindUserLikedTargets(p.UserID, model.TargetTypeComment, ids)
		if err != nil {
			return nil, err
		}
	}

	return s.assembleTree(p, rows, rated), nil
}

// assembleTree links rows into a forest in O(n): index every node by id,
// then attach each node to its nearest ancestor. Rows arrive ordered by
// creation time, so answer slices stay chronological.
func (s *CommentService) assembleTree(p Principal, rows []repository.CommentTreeRow, rated map[string]bool) []*CommentNode {
	seeDeleted := s.canSeeDeleted(p)

	index := make(map[string]*CommentNode, len(rows))
	roots := make([]*CommentNode, 0)
	for _, row := range rows {
		node := &CommentNode{
			ID:             row.ID,
			AuthorID:       row.AuthorID,
			AuthorUsername: row.AuthorUsername,
			Content:        row.Content,
			State:          row.State,
			Level:          row.Level,
			IsRated:        rated[row.ID],
			CreatedAt:      row.CreatedAt,
			UpdatedAt:      row.UpdatedAt,
			Answers:        []*CommentNode{},
		}
		if row.State == model.CommentStateDeleted && !seeDeleted {
			node.Content = model.TombstoneContent
		}
		index[row.ID] = node
	}
	for _, row := range rows {
		node := index[row.ID]
		if row.NearestAncestorID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := index[*row.NearestAncestorID]
		if !ok {
			// Orphaned edge, should not happen. Surface the node rather
			// than drop it.
			roots = append(roots, node)
			continue
		}
		parent.Answers = append(parent.Answers, node)
	}
	return roots
}

// UpdateComment rewrites a comment's content. Owners are bound by the edit
// window; holders of the unrestricted update capability are not.
func (s *CommentService) UpdateComment(p Principal, commentID, content string) (*model.Comment, error) {
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, exception.NotFound("comment not found")
	}

	if err := s.access.EnsureCanUpdateComment(p, comment.AuthorID); err != nil {
		return nil, err
	}
	if comment.State == model.CommentStateDeleted {
		return nil, exception.BadRequest("comment is deleted")
	}
	if err := s.validator.ValidateCommentContent(content); err != nil {
		return nil, err
	}

	if s.editWindow > 0 && !p.Permissions.Has(model.PermUpdateComment) {
		if time.Since(comment.CreatedAt) > s.editWindow {
			return nil, exception.Forbidden("comment can no longer be edited")
		}
	}

	now := time.Now()
	comment.Content = content
	comment.UpdatedAt = &now
	if err := s.comments.Save(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment tombstones a comment: the state flips to deleted, the tree
// keeps its shape, and descendants keep their ancestor chains.
func (s *CommentService) DeleteComment(p Principal, commentID string) error {
	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return exception.NotFound("comment not found")
	}

	if err := s.access.EnsureCanDeleteComment(p, comment.AuthorID); err != nil {
		return err
	}
	if comment.State == model.CommentStateDeleted {
		return exception.BadRequest("comment is already deleted")
	}

	comment.State = model.CommentStateDeleted
	return s.comments.Save(comment)
}

// DeleteAllComments removes every comment and branch of an article. Unlike
// single-comment deletion this is a hard delete, used when an article is
// being torn down.
func (s *CommentService) DeleteAllComments(p Principal, articleID string) error {
	if err := s.access.EnsureCanDeleteAllComments(p); err != nil {
		return err
	}

	article, err := s.articles.FindByID(articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return exception.NotFound("article not found")
	}

	return s.comments.DeleteByArticleID(articleID)
}

// RateComment toggles the caller's like on a comment to an explicit target
// state. Repeating the current state is rejected so clients learn their
// view is stale.
func (s *CommentService) RateComment(p Principal, commentID, state string) error {
	if err := s.access.EnsureCanRateComment(p); err != nil {
		return err
	}
	if err := s.validator.ValidateRateState(state); err != nil {
		return err
	}

	comment, err := s.comments.FindByID(commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return exception.NotFound("comment not found")
	}
	if comment.State == model.CommentStateDeleted {
		return exception.BadRequest("cannot rate a deleted comment")
	}
	if comment.AuthorID == p.UserID {
		return exception.BadRequest("cannot rate your own comment")
	}

	existing, err := s.likes.FindByUserAndTarget(p.UserID, model.TargetTypeComment, commentID)
	if err != nil {
		return err
	}

	switch model.RateState(state) {
	case model.RateStateLike:
		if existing != nil {
			return exception.BadRequest("comment is already rated")
		}
		err := s.likes.Create(&model.Like{
			UserID:     p.UserID,
			TargetType: model.TargetTypeComment,
			TargetID:   commentID,
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return exception.BadRequest("comment is already rated")
		}
		return err
	case model.RateStateNeutral:
		if existing == nil {
			return exception.BadRequest("comment is not rated")
		}
		return s.likes.DeleteByUserAndTarget(p.UserID, model.TargetTypeComment, commentID)
	}
	return nil
}

func (s *CommentService) canSeeDeleted(p Principal) bool {
	return s.access.EnsureCanGetComment(p) == nil
}
