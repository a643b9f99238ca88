package service

import (
	"sort"
	"time"

	"blogapi/internal/model"
	"blogapi/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// memStore is an in-memory comment store with real closure-table semantics:
// one self-edge per comment plus one row per proper ancestor. It backs both
// the comment repository and the tree repository in tests.
type memStore struct {
	comments  map[string]*model.Comment
	edges     []model.CommentTreeEdge
	usernames map[string]string
	seq       int
	base      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		comments:  make(map[string]*model.Comment),
		usernames: make(map[string]string),
		base:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) CreateWithBranch(comment *model.Comment, parentID *string, articleID string, parentLevel int) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = m.base.Add(time.Duration(m.seq) * time.Second)
	m.seq++

	stored := *comment
	m.comments[comment.ID] = &stored

	level := parentLevel + 1
	if parentID != nil {
		for _, e := range m.edges {
			if e.DescendantID == *parentID {
				m.edges = append(m.edges, model.CommentTreeEdge{
					AncestorID:        e.AncestorID,
					DescendantID:      comment.ID,
					NearestAncestorID: parentID,
					ArticleID:         articleID,
					Level:             level,
				})
			}
		}
	}
	m.edges = append(m.edges, model.CommentTreeEdge{
		AncestorID:        comment.ID,
		DescendantID:      comment.ID,
		NearestAncestorID: parentID,
		ArticleID:         articleID,
		Level:             level,
	})
	return nil
}

func (m *memStore) FindByID(id string) (*model.Comment, error) {
	comment, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *comment
	return &copied, nil
}

func (m *memStore) Save(comment *model.Comment) error {
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *memStore) FindTreeByArticle(articleID string) ([]repository.CommentTreeRow, error) {
	var rows []repository.CommentTreeRow
	for _, e := range m.edges {
		if e.ArticleID != articleID || e.AncestorID != e.DescendantID {
			continue
		}
		comment := m.comments[e.DescendantID]
		rows = append(rows, repository.CommentTreeRow{
			ID:                comment.ID,
			AuthorID:          comment.AuthorID,
			AuthorUsername:    m.usernames[comment.AuthorID],
			Content:           comment.Content,
			State:             comment.State,
			NearestAncestorID: e.NearestAncestorID,
			Level:             e.Level,
			CreatedAt:         comment.CreatedAt,
			UpdatedAt:         comment.UpdatedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func (m *memStore) DeleteByArticleID(articleID string) error {
	var kept []model.CommentTreeEdge
	for _, e := range m.edges {
		if e.ArticleID == articleID {
			if e.AncestorID == e.DescendantID {
				delete(m.comments, e.DescendantID)
			}
			continue
		}
		kept = append(kept, e)
	}
	m.edges = kept
	return nil
}

// Tree repository side.

func (m *memStore) CreateBranch(tx *gorm.DB, parentID *string, newCommentID, articleID string, parentLevel int) error {
	panic("tests create comments through CreateWithBranch")
}

func (m *memStore) FindSelfEdge(commentID string) (*model.CommentTreeEdge, error) {
	for _, e := range m.edges {
		if e.AncestorID == commentID && e.DescendantID == commentID {
			copied := e
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteArticleBranches(tx *gorm.DB, articleID string) error {
	return m.DeleteByArticleID(articleID)
}

// ancestorIDs returns every proper ancestor recorded for a comment.
func (m *memStore) ancestorIDs(commentID string) []string {
	var ids []string
	for _, e := range m.edges {
		if e.DescendantID == commentID && e.AncestorID != commentID {
			ids = append(ids, e.AncestorID)
		}
	}
	sort.Strings(ids)
	return ids
}

type fakeArticles struct {
	items      map[string]*model.Article
	increments map[string]int
	lastQuery  repository.ArticleQuery
}

func newFakeArticles() *fakeArticles {
	return &fakeArticles{
		items:      make(map[string]*model.Article),
		increments: make(map[string]int),
	}
}

func (f *fakeArticles) Create(article *model.Article) error {
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	stored := *article
	f.items[article.ID] = &stored
	return nil
}

func (f *fakeArticles) FindByID(id string) (*model.Article, error) {
	article, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *article
	return &copied, nil
}

func (f *fakeArticles) FindAll(params repository.ArticleQuery) ([]*model.Article, int64, error) {
	f.lastQuery = params
	var out []*model.Article
	for _, a := range f.items {
		if params.State != "" && a.State != params.State {
			continue
		}
		if params.AuthorID != "" && a.AuthorID != params.AuthorID {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	if params.Offset < len(out) {
		out = out[params.Offset:]
	} else {
		out = nil
	}
	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, total, nil
}

func (f *fakeArticles) Save(article *model.Article) error {
	stored := *article
	f.items[article.ID] = &stored
	return nil
}

func (f *fakeArticles) ReplaceTags(article *model.Article, titles []string) error {
	tags := make([]model.Tag, len(titles))
	for i, title := range titles {
		tags[i] = model.Tag{ID: uuid.New().String(), Title: title}
	}
	article.Tags = tags
	if stored, ok := f.items[article.ID]; ok {
		stored.Tags = tags
	}
	return nil
}

func (f *fakeArticles) IncrementViews(id string) error {
	article, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	article.Views++
	f.increments[id]++
	return nil
}

func (f *fakeArticles) Delete(id string) error {
	delete(f.items, id)
	return nil
}

type fakeLikes struct {
	items map[string]model.Like
}

func newFakeLikes() *fakeLikes {
	return &fakeLikes{items: make(map[string]model.Like)}
}

func likeKey(userID, targetType, targetID string) string {
	return userID + "|" + targetType + "|" + targetID
}

func (f *fakeLikes) Create(like *model.Like) error {
	key := likeKey(like.UserID, like.TargetType, like.TargetID)
	if _, ok := f.items[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if like.ID == "" {
		like.ID = uuid.New().String()
	}
	f.items[key] = *like
	return nil
}

func (f *fakeLikes) FindByUserAndTarget(userID, targetType, targetID string) (*model.Like, error) {
	like, ok := f.items[likeKey(userID, targetType, targetID)]
	if !ok {
		return nil, nil
	}
	return &like, nil
}

func (f *fakeLikes) DeleteByUserAndTarget(userID, targetType, targetID string) error {
	delete(f.items, likeKey(userID, targetType, targetID))
	return nil
}

func (f *fakeLikes) DeleteByTarget(targetType, targetID string) error {
	for key, like := range f.items {
		if like.TargetType == targetType && like.TargetID == targetID {
			delete(f.items, key)
		}
	}
	return nil
}

func (f *fakeLikes) CountByTarget(targetType, targetID string) (int64, error) {
	var count int64
	for _, like := range f.items {
		if like.TargetType == targetType && like.TargetID == targetID {
			count++
		}
	}
	return count, nil
}

func (f *fakeLikes) FindUserLikedTargets(userID, targetType string, targetIDs []string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, id := range targetIDs {
		if _, ok := f.items[likeKey(userID, targetType, id)]; ok {
			out[id] = true
		}
	}
	return out, nil
}

type notifierCall struct {
	OwnerID    string
	CommentID  string
	ByUsername string
}

type fakeNotifier struct {
	calls []notifierCall
}

func (f *fakeNotifier) NotifyCommentAnswer(ownerID, commentID, byUsername string) {
	f.calls = append(f.calls, notifierCall{OwnerID: ownerID, CommentID: commentID, ByUsername: byUsername})
}

type fakeNotifs struct {
	items map[string]*model.Notification
}

func newFakeNotifs() *fakeNotifs {
	return &fakeNotifs{items: make(map[string]*model.Notification)}
}

func (f *fakeNotifs) Create(notification *model.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	stored := *notification
	f.items[notification.ID] = &stored
	return nil
}

func (f *fakeNotifs) FindByID(id string) (*model.Notification, error) {
	notification, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	copied := *notification
	return &copied, nil
}

func (f *fakeNotifs) FindByOwnerID(ownerID string, limit, offset int) ([]*model.Notification, error) {
	var out []*model.Notification
	for _, n := range f.items {
		if n.OwnerID == ownerID {
			copied := *n
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotifs) CountByOwnerID(ownerID string) (int64, error) {
	var count int64
	for _, n := range f.items {
		if n.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifs) Delete(id string) error {
	delete(f.items, id)
	return nil
}

// Principal helpers.

func activeUser(id string) Principal {
	return NewPrincipal(&model.User{
		ID: id, Username: "user-" + id, Role: model.RoleUser, State: model.UserStateActive,
	})
}

func activeModerator(id string) Principal {
	return NewPrincipal(&model.User{
		ID: id, Username: "mod-" + id, Role: model.RoleModerator, State: model.UserStateActive,
	})
}

func activeAdmin(id string) Principal {
	return NewPrincipal(&model.User{
		ID: id, Username: "admin-" + id, Role: model.RoleAdmin, State: model.UserStateActive,
	})
}

func blockedUser(id string) Principal {
	return NewPrincipal(&model.User{
		ID: id, Username: "user-" + id, Role: model.RoleUser, State: model.UserStateBlocked,
	})
}
