// Package models defines the core domain models for the memory board.
//
// # Hierarchy
//
// Content forms a three level tree:
//   - Group: top level container with an append-only badge set
//   - Post: a memory shared inside a group
//   - Comment: a reply to a post
//
// Children reference their parent by ID (Post.GroupID, Comment.PostID).
// There are no back-pointers; stores index children by parent ID instead.
//
// # Derived values
//
// Post counts, comment counts and the group D-Day are never stored. They are
// computed when a view is built so they always reflect the live hierarchy.
//
// # Secrets
//
// Every entity carries a bcrypt hash of its secret in SecretHash. The field is
// excluded from JSON and never leaves the service in any view.
package models
