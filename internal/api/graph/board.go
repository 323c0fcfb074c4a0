package graph

import (
	"context"

	"bidwatch/backend/internal/dto"
)

// 分页默认值
const (
	defaultPage     = 1
	defaultPageSize = 20
)

// ────────────────────── Posts ──────────────────────

func (r *Resolver) Posts(ctx context.Context, args struct {
	Board    string
	Page     *int32
	PageSize *int32
}) (*dto.PostPage, error) {
	page := intOr(args.Page, defaultPage)
	size := intOr(args.PageSize, defaultPageSize)
	result, err := r.svc.Board.ListPosts(ctx, args.Board, page, size)
	if err != nil {
		if e := r.queryFailed("posts", err); e != nil {
			return nil, e
		}
		return &dto.PostPage{Items: []*dto.Post{}, Page: int32(page), PageSize: int32(size)}, nil
	}
	return result, nil
}

func (r *Resolver) Post(ctx context.Context, args struct {
	Board string
	ID    int32
}) (*dto.Post, error) {
	post, err := r.svc.Board.GetPost(ctx, args.Board, args.ID)
	return one(r, "post", post, err)
}

func (r *Resolver) PostCreate(ctx context.Context, args struct{ Input dto.PostInput }) (*dto.Post, error) {
	post, err := r.svc.Board.CreatePost(ctx, caller(ctx), &args.Input)
	if err != nil {
		return nil, r.mutationFailed("postCreate", "Failed to create post", err)
	}
	return post, nil
}

func (r *Resolver) PostUpdate(ctx context.Context, args struct {
	ID    int32
	Input dto.PostInput
}) (*dto.Post, error) {
	post, err := r.svc.Board.UpdatePost(ctx, caller(ctx), args.ID, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("postUpdate", "Failed to update post", err)
	}
	return post, nil
}

func (r *Resolver) PostDelete(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	if err := r.svc.Board.DeletePost(ctx, caller(ctx), args.ID); err != nil {
		return false, r.mutationFailed("postDelete", "Failed to delete post", err)
	}
	return true, nil
}

// ────────────────────── Comments ──────────────────────

func (r *Resolver) Comments(ctx context.Context, args struct{ PostID int32 }) ([]*dto.Comment, error) {
	rows, err := r.svc.Board.ListComments(ctx, args.PostID)
	return list(r, "comments", rows, err)
}

func (r *Resolver) CommentCreate(ctx context.Context, args struct{ Input dto.CommentInput }) (*dto.Comment, error) {
	c, err := r.svc.Board.CreateComment(ctx, caller(ctx), &args.Input)
	if err != nil {
		return nil, r.mutationFailed("commentCreate", "Failed to create comment", err)
	}
	return c, nil
}

func (r *Resolver) CommentUpdate(ctx context.Context, args struct {
	ID      int32
	Content string
}) (*dto.Comment, error) {
	c, err := r.svc.Board.UpdateComment(ctx, caller(ctx), args.ID, args.Content)
	if err != nil {
		return nil, r.mutationFailed("commentUpdate", "Failed to update comment", err)
	}
	return c, nil
}

func (r *Resolver) CommentDelete(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	if err := r.svc.Board.DeleteComment(ctx, caller(ctx), args.ID); err != nil {
		return false, r.mutationFailed("commentDelete", "Failed to delete comment", err)
	}
	return true, nil
}

// ────────────────────── Manuals ──────────────────────

func (r *Resolver) Manuals(ctx context.Context, args struct{ Category *string }) ([]*dto.Manual, error) {
	rows, err := r.svc.Doc.List(ctx, str(args.Category))
	return list(r, "manuals", rows, err)
}

func (r *Resolver) Manual(ctx context.Context, args struct{ ID int32 }) (*dto.Manual, error) {
	m, err := r.svc.Doc.Get(ctx, args.ID)
	return one(r, "manual", m, err)
}

func (r *Resolver) ManualsSearch(ctx context.Context, args struct{ Keyword string }) ([]*dto.Manual, error) {
	rows, err := r.svc.Doc.Search(ctx, args.Keyword)
	return list(r, "manualsSearch", rows, err)
}

func (r *Resolver) ManualCreate(ctx context.Context, args struct{ Input dto.ManualInput }) (*dto.Manual, error) {
	m, err := r.svc.Doc.Create(ctx, caller(ctx), &args.Input)
	if err != nil {
		return nil, r.mutationFailed("manualCreate", "Failed to create manual", err)
	}
	return m, nil
}

func (r *Resolver) ManualUpdate(ctx context.Context, args struct {
	ID    int32
	Input dto.ManualInput
}) (*dto.Manual, error) {
	m, err := r.svc.Doc.Update(ctx, caller(ctx), args.ID, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("manualUpdate", "Failed to update manual", err)
	}
	return m, nil
}

func (r *Resolver) ManualDelete(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	if err := r.svc.Doc.Delete(ctx, caller(ctx), args.ID); err != nil {
		return false, r.mutationFailed("manualDelete", "Failed to delete manual", err)
	}
	return true, nil
}
