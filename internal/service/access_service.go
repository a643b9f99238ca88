package service

import (
	"blogapi/internal/exception"
	"blogapi/internal/model"
)

// AccessService decides, per action, whether a principal may proceed. Every
// method is a total function over its explicit inputs: it returns nil,
// exception.ErrAuthentication, or exception.ErrAccessDenied, and nothing
// else. No state, no time, no I/O.
//
// The shared shape: authentication first, then the active-account check,
// then ownership/capability OR-branches. Read guards on published resources
// add a branch that works for unauthenticated principals too.
type AccessService struct{}

func NewAccessService() *AccessService {
	return &AccessService{}
}

func (s *AccessService) requireActive(p Principal) error {
	if !p.IsAuth {
		return exception.ErrAuthentication
	}
	if p.State != model.UserStateActive {
		return exception.ErrAccessDenied
	}
	return nil
}

func (s *AccessService) EnsureCanCreateArticle(p Principal) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if !p.Permissions.Has(model.PermCreateArticle) {
		return exception.ErrAccessDenied
	}
	return nil
}

func (s *AccessService) EnsureCanGetArticle(p Principal, authorID, articleState string) error {
	if !p.IsAuth {
		if articleState == model.ArticleStatePublished && p.Permissions.Has(model.PermGetPublishedArticle) {
			return nil
		}
		if p.Permissions.Has(model.PermGetArticle) {
			return nil
		}
		return exception.ErrAccessDenied
	}

	if p.State != model.UserStateActive {
		return exception.ErrAccessDenied
	}

	if p.Permissions.Has(model.PermGetArticle) {
		return nil
	}
	if p.UserID == authorID && p.Permissions.Has(model.PermGetSelfArticle) {
		return nil
	}
	if articleState == model.ArticleStatePublished && p.Permissions.Has(model.PermGetPublishedArticle) {
		return nil
	}
	return exception.ErrAccessDenied
}

func (s *AccessService) EnsureCanUpdateArticle(p Principal, authorID string) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if p.UserID == authorID && p.Permissions.Has(model.PermUpdateSelfArticle) {
		return nil
	}
	if p.Permissions.Has(model.PermUpdateArticle) {
		return nil
	}
	return exception.ErrAccessDenied
}

func (s *AccessService) EnsureCanDeleteArticle(p Principal, authorID string) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if p.UserID == authorID && p.Permissions.Has(model.PermDeleteSelfArticle) {
		return nil
	}
	if p.Permissions.Has(model.PermDeleteArticle) {
		return nil
	}
	return exception.ErrAccessDenied
}

func (s *AccessService) EnsureCanRateArticle(p Principal) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if !p.Permissions.Has(model.PermRateArticle) {
		return exception.ErrAccessDenied
	}
	return nil
}

func (s *AccessService) EnsureCanCreateComment(p Principal) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if !p.Permissions.Has(model.PermCreateComment) {
		return exception.ErrAccessDenied
	}
	return nil
}

// EnsureCanGetPublishedComment gates plain comment reads. It is evaluable
// for unauthenticated principals: guests hold the published-comment token.
func (s *AccessService) EnsureCanGetPublishedComment(p Principal) error {
	if p.Permissions.Has(model.PermGetPublishedComment) {
		return nil
	}
	if p.Permissions.Has(model.PermGetComment) {
		return nil
	}
	return exception.ErrAccessDenied
}

// EnsureCanGetComment gates the elevated read that sees deleted comments
// unredacted.
func (s *AccessService) EnsureCanGetComment(p Principal) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if !p.Permissions.Has(model.PermGetComment) {
		return exception.ErrAccessDenied
	}
	return nil
}

func (s *AccessService) EnsureCanUpdateComment(p Principal, authorID string) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if p.UserID == authorID && p.Permissions.Has(model.PermUpdateSelfComment) {
		return nil
	}
	if p.Permissions.Has(model.PermUpdateComment) {
		return nil
	}
	return exception.ErrAccessDenied
}

func (s *AccessService) EnsureCanDeleteComment(p Principal, authorID string) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if p.UserID == authorID && p.Permissions.Has(model.PermDeleteSelfComment) {
		return nil
	}
	if p.Permissions.Has(model.PermDeleteComment) {
		return nil
	}
	return exception.ErrAccessDenied
}

// EnsureCanDeleteAllComments gates the administrative bulk delete: only the
// unrestricted delete capability qualifies, ownership does not apply.
func (s *AccessService) EnsureCanDeleteAllComments(p Principal) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if !p.Permissions.Has(model.PermDeleteComment) {
		return exception.ErrAccessDenied
	}
	return nil
}

func (s *AccessService) EnsureCanRateComment(p Principal) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if !p.Permissions.Has(model.PermRateComment) {
		return exception.ErrAccessDenied
	}
	return nil
}

func (s *AccessService) EnsureCanGetSelfNotifications(p Principal) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if !p.Permissions.Has(model.PermGetSelfNotifications) {
		return exception.ErrAccessDenied
	}
	return nil
}

func (s *AccessService) EnsureCanDeleteSelfNotification(p Principal) error {
	if err := s.requireActive(p); err != nil {
		return err
	}
	if !p.Permissions.Has(model.PermDeleteSelfNotification) {
		return exception.ErrAccessDenied
	}
	return nil
}
