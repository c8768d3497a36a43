package api

import "time"

// Group is the wire form of a group. Listings fill BadgeCount and leave
// Badges empty; single-group responses carry both.
type Group struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ImageURL     string    `json:"imageUrl"`
	IsPublic     bool      `json:"isPublic"`
	LikeCount    int64     `json:"likeCount"`
	Badges       []string  `json:"badges,omitempty"`
	BadgeCount   int       `json:"badgeCount"`
	PostCount    int       `json:"postCount"`
	Introduction string    `json:"introduction"`
	CreatedAt    time.Time `json:"createdAt"`
	DDay         int       `json:"dDay"`
}

// Post is the wire form of a post. Listings leave Content empty.
type Post struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupId"`
	Nickname     string    `json:"nickname"`
	Title        string    `json:"title"`
	Content      string    `json:"content,omitempty"`
	ImageURL     string    `json:"imageUrl"`
	Tags         []string  `json:"tags"`
	Location     string    `json:"location"`
	Moment       time.Time `json:"moment"`
	IsPublic     bool      `json:"isPublic"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Comment is the wire form of a comment.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// PageInfo describes one page of a listing.
type PageInfo struct {
	CurrentPage    int `json:"currentPage"`
	TotalPages     int `json:"totalPages"`
	TotalItemCount int `json:"totalItemCount"`
}

// Groups

type CreateGroupRequest struct {
	Name         string `json:"name"`
	Secret       string `json:"secret"`
	ImageURL     string `json:"imageUrl"`
	IsPublic     bool   `json:"isPublic"`
	Introduction string `json:"introduction"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct {
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	SortBy   string `json:"sortBy"`
	Keyword  string `json:"keyword"`
	IsPublic *bool  `json:"isPublic,omitempty"`
}

type ListGroupsResponse struct {
	PageInfo
	Data []*Group `json:"data"`
}

// GetGroupDetailRequest opens a group. Private groups need Secret or an
// access pass sent as "Authorization: Bearer <pass>".
type GetGroupDetailRequest struct {
	GroupID string `json:"groupId"`
	Secret  string `json:"secret,omitempty"`
}

type GetGroupDetailResponse struct {
	Group *Group  `json:"group"`
	Posts []*Post `json:"posts"`
}

type UpdateGroupRequest struct {
	GroupID      string  `json:"groupId"`
	Secret       string  `json:"secret"`
	Name         *string `json:"name,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	IsPublic     *bool   `json:"isPublic,omitempty"`
	Introduction *string `json:"introduction,omitempty"`
	NewSecret    string  `json:"newSecret,omitempty"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
	Secret  string `json:"secret"`
}

type DeleteGroupResponse struct{}

type LikeGroupRequest struct {
	GroupID string `json:"groupId"`
}

type LikeGroupResponse struct {
	LikeCount int64 `json:"likeCount"`
}

type IsGroupPublicRequest struct {
	GroupID string `json:"groupId"`
}

type IsGroupPublicResponse struct {
	ID       string `json:"id"`
	IsPublic bool   `json:"isPublic"`
}

type VerifyGroupSecretRequest struct {
	GroupID string `json:"groupId"`
	Secret  string `json:"secret"`
}

type VerifyGroupSecretResponse struct {
	Matched bool `json:"matched"`
	// AccessPass is set when Matched is true.
	AccessPass string     `json:"accessPass,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

// Posts

type CreatePostRequest struct {
	GroupID  string    `json:"groupId"`
	Nickname string    `json:"nickname"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Secret   string    `json:"secret"`
	ImageURL string    `json:"imageUrl"`
	Tags     []string  `json:"tags"`
	Location string    `json:"location"`
	Moment   time.Time `json:"moment"`
	IsPublic bool      `json:"isPublic"`
}

type CreatePostResponse struct {
	Post *Post `json:"post"`
}

type ListPostsRequest struct {
	GroupID  string `json:"groupId"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	SortBy   string `json:"sortBy"`
	Keyword  string `json:"keyword"`
	IsPublic *bool  `json:"isPublic,omitempty"`
}

type ListPostsResponse struct {
	PageInfo
	Data []*Post `json:"data"`
}

type GetPostDetailRequest struct {
	PostID string `json:"postId"`
}

type GetPostDetailResponse struct {
	Post     *Post      `json:"post"`
	Comments []*Comment `json:"comments"`
}

type UpdatePostRequest struct {
	PostID    string     `json:"postId"`
	Secret    string     `json:"secret"`
	Nickname  *string    `json:"nickname,omitempty"`
	Title     *string    `json:"title,omitempty"`
	Content   *string    `json:"content,omitempty"`
	ImageURL  *string    `json:"imageUrl,omitempty"`
	Tags      *[]string  `json:"tags,omitempty"`
	Location  *string    `json:"location,omitempty"`
	Moment    *time.Time `json:"moment,omitempty"`
	IsPublic  *bool      `json:"isPublic,omitempty"`
	NewSecret string     `json:"newSecret,omitempty"`
}

type UpdatePostResponse struct {
	Post *Post `json:"post"`
}

type DeletePostRequest struct {
	PostID string `json:"postId"`
	Secret string `json:"secret"`
}

type DeletePostResponse struct{}

type LikePostRequest struct {
	PostID string `json:"postId"`
}

type LikePostResponse struct {
	LikeCount int64 `json:"likeCount"`
}

type IsPostPublicRequest struct {
	PostID string `json:"postId"`
}

type IsPostPublicResponse struct {
	ID       string `json:"id"`
	IsPublic bool   `json:"isPublic"`
}

type VerifyPostSecretRequest struct {
	PostID string `json:"postId"`
	Secret string `json:"secret"`
}

type VerifyPostSecretResponse struct {
	Matched bool `json:"matched"`
}

// Comments

type CreateCommentRequest struct {
	PostID   string `json:"postId"`
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
	Secret   string `json:"secret"`
}

type CreateCommentResponse struct {
	Comment *Comment `json:"comment"`
}

type ListCommentsRequest struct {
	PostID   string `json:"postId"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type ListCommentsResponse struct {
	PageInfo
	Data []*Comment `json:"data"`
}

type UpdateCommentRequest struct {
	CommentID string  `json:"commentId"`
	Secret    string  `json:"secret"`
	Nickname  *string `json:"nickname,omitempty"`
	Content   *string `json:"content,omitempty"`
	NewSecret string  `json:"newSecret,omitempty"`
}

type UpdateCommentResponse struct {
	Comment *Comment `json:"comment"`
}

type DeleteCommentRequest struct {
	CommentID string `json:"commentId"`
	Secret    string `json:"secret"`
}

type DeleteCommentResponse struct{}
