package graph

import (
	"context"

	"bidwatch/backend/internal/dto"
)

// settingsMessages 一类配置记录的变更失败文案
type settingsMessages struct {
	create, update, remove string
}

func messagesFor(kind string) settingsMessages {
	return settingsMessages{
		create: "Failed to create " + kind + " settings",
		update: "Failed to update " + kind + " settings",
		remove: "Failed to delete " + kind + " settings",
	}
}

var (
	noticeListMsgs     = messagesFor("notice list")
	noticeDetailMsgs   = messagesFor("notice detail")
	noticeCategoryMsgs = messagesFor("notice category")
	nasPathMsgs        = messagesFor("NAS path")
	appDefaultMsgs     = messagesFor("app default")
)

// ────────────────────── 列表爬取配置 ──────────────────────

func (r *Resolver) SettingsNoticeListAll(ctx context.Context) ([]*dto.SettingsNoticeList, error) {
	rows, err := r.svc.Setting.NoticeLists(ctx)
	return list(r, "settingsNoticeListAll", rows, err)
}

func (r *Resolver) SettingsNoticeListOne(ctx context.Context, args struct{ Oid int32 }) (*dto.SettingsNoticeList, error) {
	row, err := r.svc.Setting.NoticeList(ctx, args.Oid)
	return one(r, "settingsNoticeListOne", row, err)
}

func (r *Resolver) SettingsNoticeListByOrg(ctx context.Context, args struct{ OrgName string }) (*dto.SettingsNoticeList, error) {
	row, err := r.svc.Setting.NoticeListByOrg(ctx, args.OrgName)
	return one(r, "settingsNoticeListByOrg", row, err)
}

func (r *Resolver) SettingsNoticeListCreate(ctx context.Context, args struct {
	Input dto.SettingsNoticeListInput
}) (*dto.SettingsNoticeList, error) {
	row, err := r.svc.Setting.CreateNoticeList(ctx, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsNoticeListCreate", noticeListMsgs.create, err)
	}
	return row, nil
}

func (r *Resolver) SettingsNoticeListUpdate(ctx context.Context, args struct {
	Oid   int32
	Input dto.SettingsNoticeListInput
}) (*dto.SettingsNoticeList, error) {
	row, err := r.svc.Setting.UpdateNoticeList(ctx, args.Oid, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsNoticeListUpdate", noticeListMsgs.update, err)
	}
	return row, nil
}

func (r *Resolver) SettingsNoticeListDelete(ctx context.Context, args struct{ Oid int32 }) (bool, error) {
	if err := r.svc.Setting.DeleteNoticeList(ctx, args.Oid); err != nil {
		return false, r.mutationFailed("settingsNoticeListDelete", noticeListMsgs.remove, err)
	}
	return true, nil
}

// ────────────────────── 详情爬取配置 ──────────────────────

func (r *Resolver) SettingsNoticeDetailAll(ctx context.Context) ([]*dto.SettingsNoticeDetail, error) {
	rows, err := r.svc.Setting.NoticeDetails(ctx)
	return list(r, "settingsNoticeDetailAll", rows, err)
}

func (r *Resolver) SettingsNoticeDetailOne(ctx context.Context, args struct{ Oid int32 }) (*dto.SettingsNoticeDetail, error) {
	row, err := r.svc.Setting.NoticeDetail(ctx, args.Oid)
	return one(r, "settingsNoticeDetailOne", row, err)
}

func (r *Resolver) SettingsNoticeDetailByOrg(ctx context.Context, args struct{ OrgName string }) (*dto.SettingsNoticeDetail, error) {
	row, err := r.svc.Setting.NoticeDetailByOrg(ctx, args.OrgName)
	return one(r, "settingsNoticeDetailByOrg", row, err)
}

func (r *Resolver) SettingsNoticeDetailCreate(ctx context.Context, args struct {
	Input dto.SettingsNoticeDetailInput
}) (*dto.SettingsNoticeDetail, error) {
	row, err := r.svc.Setting.CreateNoticeDetail(ctx, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsNoticeDetailCreate", noticeDetailMsgs.create, err)
	}
	return row, nil
}

func (r *Resolver) SettingsNoticeDetailUpdate(ctx context.Context, args struct {
	Oid   int32
	Input dto.SettingsNoticeDetailInput
}) (*dto.SettingsNoticeDetail, error) {
	row, err := r.svc.Setting.UpdateNoticeDetail(ctx, args.Oid, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsNoticeDetailUpdate", noticeDetailMsgs.update, err)
	}
	return row, nil
}

func (r *Resolver) SettingsNoticeDetailDelete(ctx context.Context, args struct{ Oid int32 }) (bool, error) {
	if err := r.svc.Setting.DeleteNoticeDetail(ctx, args.Oid); err != nil {
		return false, r.mutationFailed("settingsNoticeDetailDelete", noticeDetailMsgs.remove, err)
	}
	return true, nil
}

// ────────────────────── 分类规则 ──────────────────────

func (r *Resolver) SettingsNoticeCategoryAll(ctx context.Context) ([]*dto.SettingsNoticeCategory, error) {
	rows, err := r.svc.Setting.NoticeCategories(ctx)
	return list(r, "settingsNoticeCategoryAll", rows, err)
}

func (r *Resolver) SettingsNoticeCategoryOne(ctx context.Context, args struct{ Sn int32 }) (*dto.SettingsNoticeCategory, error) {
	row, err := r.svc.Setting.NoticeCategory(ctx, args.Sn)
	return one(r, "settingsNoticeCategoryOne", row, err)
}

func (r *Resolver) SettingsNoticeCategoryCreate(ctx context.Context, args struct {
	Input dto.SettingsNoticeCategoryInput
}) (*dto.SettingsNoticeCategory, error) {
	row, err := r.svc.Setting.CreateNoticeCategory(ctx, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsNoticeCategoryCreate", noticeCategoryMsgs.create, err)
	}
	return row, nil
}

func (r *Resolver) SettingsNoticeCategoryUpdate(ctx context.Context, args struct {
	Sn    int32
	Input dto.SettingsNoticeCategoryInput
}) (*dto.SettingsNoticeCategory, error) {
	row, err := r.svc.Setting.UpdateNoticeCategory(ctx, args.Sn, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsNoticeCategoryUpdate", noticeCategoryMsgs.update, err)
	}
	return row, nil
}

func (r *Resolver) SettingsNoticeCategoryDelete(ctx context.Context, args struct{ Sn int32 }) (bool, error) {
	if err := r.svc.Setting.DeleteNoticeCategory(ctx, args.Sn); err != nil {
		return false, r.mutationFailed("settingsNoticeCategoryDelete", noticeCategoryMsgs.remove, err)
	}
	return true, nil
}

func (r *Resolver) SettingsNoticeCategoryWeightSearch(ctx context.Context, args struct {
	Keywords string
	MinPoint *int32
	AddWhere *string
}) ([]*dto.CategoryNotice, error) {
	req := &dto.CategoryWeightSearchRequest{Keywords: args.Keywords, AddWhere: str(args.AddWhere)}
	if args.MinPoint != nil {
		req.MinPoint = *args.MinPoint
	}
	rows, err := r.svc.Setting.CategoryWeightSearch(ctx, req)
	return list(r, "settingsNoticeCategoryWeightSearch", rows, err)
}

func (r *Resolver) SettingsNoticeCategoryFilterNoticeList(ctx context.Context, args struct {
	Nots   *string
	DayGap *int32
	Field  *string
}) ([]*dto.CategoryNotice, error) {
	req := &dto.FilterNoticeListRequest{Nots: str(args.Nots), Field: str(args.Field)}
	if args.DayGap != nil {
		req.DayGap = *args.DayGap
	}
	rows, err := r.svc.Setting.FilterNoticeList(ctx, req)
	return list(r, "settingsNoticeCategoryFilterNoticeList", rows, err)
}

func (r *Resolver) SettingsNoticeCategoryParseKeywordWeights(ctx context.Context, args struct {
	KeywordWeightStr string
}) ([]*dto.KeywordWeight, error) {
	rows, err := r.svc.Setting.ParseKeywordWeights(ctx, args.KeywordWeightStr)
	return list(r, "settingsNoticeCategoryParseKeywordWeights", rows, err)
}

// ────────────────────── NAS 路径 ──────────────────────

func (r *Resolver) SettingsNasPathAll(ctx context.Context) ([]*dto.SettingsNasPath, error) {
	rows, err := r.svc.Setting.NasPaths(ctx)
	return list(r, "settingsNasPathAll", rows, err)
}

func (r *Resolver) SettingsNasPathOne(ctx context.Context, args struct{ ID int32 }) (*dto.SettingsNasPath, error) {
	row, err := r.svc.Setting.NasPath(ctx, args.ID)
	return one(r, "settingsNasPathOne", row, err)
}

func (r *Resolver) SettingsNasPathCreate(ctx context.Context, args struct {
	Input dto.SettingsNasPathInput
}) (*dto.SettingsNasPath, error) {
	row, err := r.svc.Setting.CreateNasPath(ctx, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsNasPathCreate", nasPathMsgs.create, err)
	}
	return row, nil
}

func (r *Resolver) SettingsNasPathUpdate(ctx context.Context, args struct {
	ID    int32
	Input dto.SettingsNasPathInput
}) (*dto.SettingsNasPath, error) {
	row, err := r.svc.Setting.UpdateNasPath(ctx, args.ID, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsNasPathUpdate", nasPathMsgs.update, err)
	}
	return row, nil
}

func (r *Resolver) SettingsNasPathDelete(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	if err := r.svc.Setting.DeleteNasPath(ctx, args.ID); err != nil {
		return false, r.mutationFailed("settingsNasPathDelete", nasPathMsgs.remove, err)
	}
	return true, nil
}

// ────────────────────── 应用默认值 ──────────────────────

func (r *Resolver) SettingsAppDefaultAll(ctx context.Context) ([]*dto.SettingsAppDefault, error) {
	rows, err := r.svc.Setting.AppDefaults(ctx)
	return list(r, "settingsAppDefaultAll", rows, err)
}

func (r *Resolver) SettingsAppDefaultOne(ctx context.Context, args struct{ ID int32 }) (*dto.SettingsAppDefault, error) {
	row, err := r.svc.Setting.AppDefault(ctx, args.ID)
	return one(r, "settingsAppDefaultOne", row, err)
}

func (r *Resolver) SettingsAppDefaultCreate(ctx context.Context, args struct {
	Input dto.SettingsAppDefaultInput
}) (*dto.SettingsAppDefault, error) {
	row, err := r.svc.Setting.CreateAppDefault(ctx, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsAppDefaultCreate", appDefaultMsgs.create, err)
	}
	return row, nil
}

func (r *Resolver) SettingsAppDefaultUpdate(ctx context.Context, args struct {
	ID    int32
	Input dto.SettingsAppDefaultInput
}) (*dto.SettingsAppDefault, error) {
	row, err := r.svc.Setting.UpdateAppDefault(ctx, args.ID, &args.Input)
	if err != nil {
		return nil, r.mutationFailed("settingsAppDefaultUpdate", appDefaultMsgs.update, err)
	}
	return row, nil
}

func (r *Resolver) SettingsAppDefaultDelete(ctx context.Context, args struct{ ID int32 }) (bool, error) {
	if err := r.svc.Setting.DeleteAppDefault(ctx, args.ID); err != nil {
		return false, r.mutationFailed("settingsAppDefaultDelete", appDefaultMsgs.remove, err)
	}
	return true, nil
}
