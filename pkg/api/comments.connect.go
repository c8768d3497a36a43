package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// CommentServiceName is the fully-qualified name of the CommentService.
const CommentServiceName = ServiceVersion + "CommentService"

// Procedure names, usable as HTTP routes.
const (
	CommentServiceCreateCommentProcedure = "/" + CommentServiceName + "/CreateComment"
	CommentServiceListCommentsProcedure  = "/" + CommentServiceName + "/ListComments"
	CommentServiceUpdateCommentProcedure = "/" + CommentServiceName + "/UpdateComment"
	CommentServiceDeleteCommentProcedure = "/" + CommentServiceName + "/DeleteComment"
)

// CommentServiceHandler is implemented by the server side of the CommentService.
type CommentServiceHandler interface {
	CreateComment(context.Context, *connect.Request[CreateCommentRequest]) (*connect.Response[CreateCommentResponse], error)
	ListComments(context.Context, *connect.Request[ListCommentsRequest]) (*connect.Response[ListCommentsResponse], error)
	UpdateComment(context.Context, *connect.Request[UpdateCommentRequest]) (*connect.Response[UpdateCommentResponse], error)
	DeleteComment(context.Context, *connect.Request[DeleteCommentRequest]) (*connect.Response[DeleteCommentResponse], error)
}

// NewCommentServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewCommentServiceHandler(svc CommentServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createCommentHandler := connect.NewUnaryHandler(CommentServiceCreateCommentProcedure, svc.CreateComment, opts...)
	listCommentsHandler := connect.NewUnaryHandler(CommentServiceListCommentsProcedure, svc.ListComments, opts...)
	updateCommentHandler := connect.NewUnaryHandler(CommentServiceUpdateCommentProcedure, svc.UpdateComment, opts...)
	deleteCommentHandler := connect.NewUnaryHandler(CommentServiceDeleteCommentProcedure, svc.DeleteComment, opts...)
	return "/" + CommentServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case CommentServiceCreateCommentProcedure:
			createCommentHandler.ServeHTTP(w, r)
		case CommentServiceListCommentsProcedure:
			listCommentsHandler.ServeHTTP(w, r)
		case CommentServiceUpdateCommentProcedure:
			updateCommentHandler.ServeHTTP(w, r)
		case CommentServiceDeleteCommentProcedure:
			deleteCommentHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// CommentServiceClient calls a remote CommentService.
type CommentServiceClient struct {
	createComment *connect.Client[CreateCommentRequest, CreateCommentResponse]
	listComments  *connect.Client[ListCommentsRequest, ListCommentsResponse]
	updateComment *connect.Client[UpdateCommentRequest, UpdateCommentResponse]
	deleteComment *connect.Client[DeleteCommentRequest, DeleteCommentResponse]
}

// NewCommentServiceClient creates a client for the CommentService at baseURL.
func NewCommentServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CommentServiceClient {
	opts = clientOptions(opts)
	return &CommentServiceClient{
		createComment: connect.NewClient[CreateCommentRequest, CreateCommentResponse](httpClient, baseURL+CommentServiceCreateCommentProcedure, opts...),
		listComments:  connect.NewClient[ListCommentsRequest, ListCommentsResponse](httpClient, baseURL+CommentServiceListCommentsProcedure, opts...),
		updateComment: connect.NewClient[UpdateCommentRequest, UpdateCommentResponse](httpClient, baseURL+CommentServiceUpdateCommentProcedure, opts...),
		deleteComment: connect.NewClient[DeleteCommentRequest, DeleteCommentResponse](httpClient, baseURL+CommentServiceDeleteCommentProcedure, opts...),
	}
}

// CreateComment calls CommentService.CreateComment.
func (c *CommentServiceClient) CreateComment(ctx context.Context, req *connect.Request[CreateCommentRequest]) (*connect.Response[CreateCommentResponse], error) {
	return c.createComment.CallUnary(ctx, req)
}

// ListComments calls CommentService.ListComments.
func (c *CommentServiceClient) ListComments(ctx context.Context, req *connect.Request[ListCommentsRequest]) (*connect.Response[ListCommentsResponse], error) {
	return c.listComments.CallUnary(ctx, req)
}

// UpdateComment calls CommentService.UpdateComment.
func (c *CommentServiceClient) UpdateComment(ctx context.Context, req *connect.Request[UpdateCommentRequest]) (*connect.Response[UpdateCommentResponse], error) {
	return c.updateComment.CallUnary(ctx, req)
}

// DeleteComment calls CommentService.DeleteComment.
func (c *CommentServiceClient) DeleteComment(ctx context.Context, req *connect.Request[DeleteCommentRequest]) (*connect.Response[DeleteCommentResponse], error) {
	return c.deleteComment.CallUnary(ctx, req)
}
