package graph

import (
	"context"

	"bidwatch/backend/internal/dto"
)

// ────────────────────── Users ──────────────────────

func (r *Resolver) Users(ctx context.Context) ([]*dto.User, error) {
	users, err := r.svc.User.List(ctx, caller(ctx))
	return list(r, "users", users, err)
}

func (r *Resolver) UserUpdateRole(ctx context.Context, args struct {
	ID   int32
	Role string
}) (*dto.User, error) {
	user, err := r.svc.User.UpdateRole(ctx, caller(ctx), args.ID, args.Role)
	if err != nil {
		return nil, r.mutationFailed("userUpdateRole", "Failed to update user role", err)
	}
	return user, nil
}

// ────────────────────── Permissions ──────────────────────

func (r *Resolver) Permissions(ctx context.Context) ([]*dto.Permission, error) {
	rows, err := r.svc.Permission.List(ctx)
	return list(r, "permissions", rows, err)
}

func (r *Resolver) PermissionsByRole(ctx context.Context, args struct{ Role string }) ([]*dto.Permission, error) {
	rows, err := r.svc.Permission.ListByRole(ctx, args.Role)
	return list(r, "permissionsByRole", rows, err)
}

func (r *Resolver) PermissionUpsert(ctx context.Context, args struct{ Input dto.PermissionInput }) (*dto.Permission, error) {
	p, err := r.svc.Permission.Upsert(ctx, caller(ctx), &args.Input)
	if err != nil {
		return nil, r.mutationFailed("permissionUpsert", "Failed to save permission", err)
	}
	return p, nil
}

func (r *Resolver) PermissionDelete(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	if err := r.svc.Permission.Delete(ctx, caller(ctx), args.ID); err != nil {
		return false, r.mutationFailed("permissionDelete", "Failed to delete permission", err)
	}
	return true, nil
}
