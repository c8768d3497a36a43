package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/memoryboard/internal/listing"
	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

// CreatePostInput holds the fields of a new post.
type CreatePostInput struct {
	Nickname string    `valid:"required"`
	Title    string    `valid:"required"`
	Content  string    `valid:"required"`
	Secret   string    `valid:"required"`
	ImageURL string    `valid:"required"`
	Tags     []string  `valid:"-"`
	Location string    `valid:"-"`
	Moment   time.Time `valid:"required"`
	IsPublic bool      `valid:"-"`
}

// UpdatePostInput changes the fields that are set. Secret must match the
// current secret; a non-empty NewSecret replaces it.
type UpdatePostInput struct {
	Secret    string
	Nickname  *string
	Title     *string
	Content   *string
	ImageURL  *string
	Tags      *[]string
	Location  *string
	Moment    *time.Time
	IsPublic  *bool
	NewSecret string
}

// PostQuery filters, sorts and pages a post listing.
type PostQuery struct {
	Page     int
	PageSize int
	Sort     string
	Keyword  string
	IsPublic *bool
}

// CreatePost stores a new post in an existing group and evaluates the group's badges.
func (s *Service) CreatePost(ctx context.Context, groupID string, in CreatePostInput) (*PostView, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, loadErr(err, "group", groupID)
	}

	hashed, err := s.hashSecret(in.Secret)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		GroupID:    groupID,
		Nickname:   in.Nickname,
		Title:      in.Title,
		Content:    in.Content,
		SecretHash: hashed,
		ImageURL:   in.ImageURL,
		Tags:       in.Tags,
		Location:   in.Location,
		Moment:     in.Moment.UTC(),
		IsPublic:   in.IsPublic,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, internal("failed to create post", err)
	}

	slog.Info("Post created", "post_id", post.ID, "group_id", groupID)

	s.refreshBadgesFor(ctx, groupID)

	view := viewPost(post, 0)
	return &view, nil
}

// ListPosts returns one page of the posts of a group.
func (s *Service) ListPosts(ctx context.Context, groupID string, q PostQuery) (*listing.Result[PostSummary], error) {
	key, err := listing.ParsePostSort(q.Sort)
	if err != nil {
		return nil, invalid("%s", err.Error())
	}
	page := s.page(q.Page, q.PageSize)

	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, loadErr(err, "group", groupID)
	}

	posts, err := s.store.FindPosts(ctx, storage.PostFilter{
		GroupID: groupID,
		Public:  q.IsPublic,
		Keyword: q.Keyword,
	})
	if err != nil {
		return nil, internal("failed to list posts", err)
	}

	summaries, err := s.summarizePosts(ctx, posts)
	if err != nil {
		return nil, err
	}

	listing.Sort(summaries, key)
	result := listing.Paginate(summaries, page)
	return &result, nil
}

// GetPostDetail returns a post with its comments.
func (s *Service) GetPostDetail(ctx context.Context, postID string) (*PostDetail, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, loadErr(err, "post", postID)
	}

	comments, err := s.store.FindComments(ctx, postID)
	if err != nil {
		return nil, internal("failed to list comments", err)
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = viewComment(c)
	}
	listing.Sort(views, listing.SortLatest)

	return &PostDetail{
		PostView: viewPost(post, len(comments)),
		Comments: views,
	}, nil
}

// UpdatePost changes a post after checking its secret.
func (s *Service) UpdatePost(ctx context.Context, postID string, in UpdatePostInput) (*PostView, error) {
	if err := validatePostUpdate(in); err != nil {
		return nil, err
	}

	post, err := s.authorizePost(ctx, postID, in.Secret)
	if err != nil {
		return nil, err
	}

	if in.Nickname != nil {
		post.Nickname = *in.Nickname
	}
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.ImageURL != nil {
		post.ImageURL = *in.ImageURL
	}
	if in.Tags != nil {
		post.Tags = *in.Tags
	}
	if in.Location != nil {
		post.Location = *in.Location
	}
	if in.Moment != nil {
		post.Moment = in.Moment.UTC()
	}
	if in.IsPublic != nil {
		post.IsPublic = *in.IsPublic
	}
	if in.NewSecret != "" {
		if post.SecretHash, err = s.hashSecret(in.NewSecret); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, loadErr(err, "post", postID)
	}

	slog.Info("Post updated", "post_id", postID, "group_id", post.GroupID)

	s.refreshBadgesFor(ctx, post.GroupID)

	counts, err := s.store.CountCommentsByPost(ctx, postID)
	if err != nil {
		return nil, internal("failed to count comments", err)
	}

	view := viewPost(post, counts[postID])
	return &view, nil
}

func validatePostUpdate(in UpdatePostInput) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"Nickname", in.Nickname},
		{"Title", in.Title},
		{"Content", in.Content},
		{"ImageURL", in.ImageURL},
	}
	for _, f := range fields {
		if f.value != nil && *f.value == "" {
			return invalid("%s: non zero value required", f.name)
		}
	}
	if in.Moment != nil && in.Moment.IsZero() {
		return invalid("Moment: non zero value required")
	}
	return nil
}

// DeletePost removes a post and its comments after checking the post secret.
func (s *Service) DeletePost(ctx context.Context, postID, secret string) error {
	if _, err := s.authorizePost(ctx, postID, secret); err != nil {
		return err
	}

	res, err := s.cascade.DeletePost(ctx, postID)
	s.recordCascade(res.Groups, res.Posts, res.Comments)
	if err != nil {
		s.metrics.Failed("cascade")
		return internal("failed to delete post", err)
	}

	slog.Info("Post deleted", "post_id", postID, "comments", res.Comments)

	return nil
}

// LikePost adds one like and returns the new count.
func (s *Service) LikePost(ctx context.Context, postID string) (int64, error) {
	likes, err := s.store.IncrementPostLikes(ctx, postID)
	if err != nil {
		return 0, loadErr(err, "post", postID)
	}
	s.metrics.Liked("post")

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		slog.Error("Badge evaluation skipped", "post_id", postID, "error", err)
		return likes, nil
	}
	s.refreshBadgesFor(ctx, post.GroupID)

	return likes, nil
}

// IsPostPublic reports the visibility of a post.
func (s *Service) IsPostPublic(ctx context.Context, postID string) (bool, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return false, loadErr(err, "post", postID)
	}
	return post.IsPublic, nil
}

// VerifyPostSecret checks a post secret.
func (s *Service) VerifyPostSecret(ctx context.Context, postID, secret string) (*Verification, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, loadErr(err, "post", postID)
	}
	return &Verification{Matched: s.gate.Verify(secret, post.SecretHash)}, nil
}

func (s *Service) authorizePost(ctx context.Context, postID, secret string) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, loadErr(err, "post", postID)
	}
	if !s.gate.Verify(secret, post.SecretHash) {
		return nil, forbidden("post")
	}
	return post, nil
}

// summarizePosts projects posts with their live comment counts.
func (s *Service) summarizePosts(ctx context.Context, posts []*models.Post) ([]PostSummary, error) {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	counts, err := s.store.CountCommentsByPost(ctx, ids...)
	if err != nil {
		return nil, internal("failed to count comments", err)
	}

	summaries := make([]PostSummary, len(posts))
	for i, p := range posts {
		summaries[i] = summarizePost(p, counts[p.ID])
	}
	return summaries, nil
}
