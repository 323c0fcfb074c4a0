package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"bidwatch/backend/internal/model"
	"bidwatch/backend/internal/repository"
	"bidwatch/backend/internal/search"
	pkgerrors "bidwatch/backend/pkg/errors"
)

// newMockRepository 组装全部 mock 的 Repository 聚合（未绑定数据库，事务为空操作）
func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		notice:     newMockNoticeRepo(),
		myBid:      newMockMyBidRepo(),
		logs:       &mockScrapingLogRepo{},
		post:       newMockPostRepo(),
		comment:    newMockCommentRepo(),
		manual:     newMockManualRepo(),
		permission: newMockPermissionRepo(),
		database:   &mockDatabaseRepo{},
	}
	return &repository.Repository{
		Notice:      m.notice,
		MyBid:       m.myBid,
		ScrapingLog: m.logs,
		Post:        m.post,
		Comment:     m.comment,
		Manual:      m.manual,
		Permission:  m.permission,
		Database:    m.database,
	}, m
}

type mocks struct {
	notice     *mockNoticeRepo
	myBid      *mockMyBidRepo
	logs       *mockScrapingLogRepo
	post       *mockPostRepo
	comment    *mockCommentRepo
	manual     *mockManualRepo
	permission *mockPermissionRepo
	database   *mockDatabaseRepo
}

// ── Mock NoticeRepository ──

type mockNoticeRepo struct {
	notices   map[string]map[int]*model.Notice // source → nid → notice
	lastQuery repository.NoticeQuery
	lastSince *time.Time
	failWith  error
}

func newMockNoticeRepo() *mockNoticeRepo {
	return &mockNoticeRepo{notices: map[string]map[int]*model.Notice{
		model.SourceGov:  {},
		model.SourceNara: {},
	}}
}

func (m *mockNoticeRepo) put(source string, n *model.Notice) {
	m.notices[source][n.Nid] = n
}

func (m *mockNoticeRepo) table(source string) (map[int]*model.Notice, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if source == "" {
		source = model.SourceGov
	}
	t, ok := m.notices[source]
	if !ok {
		return nil, repository.ErrUnknownSource
	}
	return t, nil
}

func (m *mockNoticeRepo) sorted(source string) ([]*model.Notice, error) {
	t, err := m.table(source)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Notice, 0, len(t))
	for _, n := range t {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nid > out[j].Nid })
	return out, nil
}

func (m *mockNoticeRepo) GetByID(_ context.Context, source string, nid int) (*model.Notice, error) {
	t, err := m.table(source)
	if err != nil {
		return nil, err
	}
	if n, ok := t[nid]; ok {
		cp := *n
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNoticeRepo) List(_ context.Context, source string, f repository.NoticeFilter) ([]model.Notice, error) {
	all, err := m.sorted(source)
	if err != nil {
		return nil, err
	}
	m.lastSince = f.Since
	var out []model.Notice
	for _, n := range all {
		if n.IsSelected == model.NoticeExcluded {
			continue
		}
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

// Search 与 SQL 语义一致的内存实现（忽略附加条件）
func (m *mockNoticeRepo) Search(_ context.Context, source string, q repository.NoticeQuery) ([]model.ScoredNotice, error) {
	m.lastQuery = q
	all, err := m.sorted(source)
	if err != nil {
		return nil, err
	}
	var out []model.ScoredNotice
	for _, n := range all {
		if n.IsSelected == model.NoticeExcluded || search.Excluded(n.Title, q.Nots) {
			continue
		}
		score := int(search.Score(n.Title, q.Weights))
		if score < q.MinPoint {
			continue
		}
		out = append(out, model.ScoredNotice{Notice: *n, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Nid > out[j].Nid
	})
	return out, nil
}

func (m *mockNoticeRepo) Statistics(_ context.Context, source string, since *time.Time, unit string) ([]model.NoticeStat, error) {
	all, err := m.sorted(source)
	if err != nil {
		return nil, err
	}
	m.lastSince = since
	counts := map[string]int64{}
	for _, n := range all {
		switch unit {
		case repository.StatByRegion:
			counts[n.OrgRegion]++
		case repository.StatByOrg:
			counts[n.OrgName]++
		default:
			counts[n.Category]++
		}
	}
	var out []model.NoticeStat
	for label, c := range counts {
		out = append(out, model.NoticeStat{Label: label, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (m *mockNoticeRepo) UpdateSelected(_ context.Context, source string, nids []int, selected int) (int64, error) {
	t, err := m.table(source)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, id := range nids {
		if notice, ok := t[id]; ok {
			notice.IsSelected = selected
			n++
		}
	}
	return n, nil
}

func (m *mockNoticeRepo) UpdateCategory(_ context.Context, source string, nids []int, category string) (int64, error) {
	t, err := m.table(source)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, id := range nids {
		if notice, ok := t[id]; ok {
			notice.Category = category
			n++
		}
	}
	return n, nil
}

// ── Mock MyBidRepository ──

type mockMyBidRepo struct {
	bids   map[string]*model.MyBid // "source:nid" → bid
	nextID int
}

func newMockMyBidRepo() *mockMyBidRepo {
	return &mockMyBidRepo{bids: make(map[string]*model.MyBid)}
}

func bidKey(source string, nid int) string {
	return fmt.Sprintf("%s:%d", source, nid)
}

func (m *mockMyBidRepo) Create(_ context.Context, bid *model.MyBid) error {
	key := bidKey(bid.Source, bid.Nid)
	if _, ok := m.bids[key]; ok {
		return pkgerrors.ErrDuplicate
	}
	m.nextID++
	bid.Mid = m.nextID
	bid.CreatedAt = time.Now()
	bid.UpdatedAt = bid.CreatedAt
	cp := *bid
	m.bids[key] = &cp
	return nil
}

func (m *mockMyBidRepo) GetByNid(_ context.Context, source string, nid int) (*model.MyBid, error) {
	if b, ok := m.bids[bidKey(source, nid)]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMyBidRepo) List(_ context.Context, status string) ([]model.MyBid, error) {
	var out []model.MyBid
	for _, b := range m.bids {
		if status == "" || b.Status == status {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mid < out[j].Mid })
	return out, nil
}

func (m *mockMyBidRepo) Update(_ context.Context, bid *model.MyBid) error {
	cp := *bid
	m.bids[bidKey(bid.Source, bid.Nid)] = &cp
	return nil
}

func (m *mockMyBidRepo) Delete(_ context.Context, source string, nid int) error {
	delete(m.bids, bidKey(source, nid))
	return nil
}

// ── Mock ScrapingLogRepository ──

type mockScrapingLogRepo struct {
	logs        []model.ScrapingLog
	errs        []model.ScrapingError
	lastSince   time.Time
	prunedUntil time.Time
}

func (m *mockScrapingLogRepo) ListLogs(_ context.Context, since time.Time) ([]model.ScrapingLog, error) {
	m.lastSince = since
	var out []model.ScrapingLog
	for _, l := range m.logs {
		if !l.Time.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *mockScrapingLogRepo) ListErrors(_ context.Context, since time.Time) ([]model.ScrapingError, error) {
	m.lastSince = since
	var out []model.ScrapingError
	for _, e := range m.errs {
		if !e.Time.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockScrapingLogRepo) Prune(_ context.Context, before time.Time) (int64, error) {
	m.prunedUntil = before
	var (
		kept []model.ScrapingLog
		n    int64
	)
	for _, l := range m.logs {
		if l.Time.Before(before) {
			n++
			continue
		}
		kept = append(kept, l)
	}
	m.logs = kept
	return n, nil
}

// ── Mock PostRepository ──

type mockPostRepo struct {
	posts  map[int]*model.Post
	nextID int
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[int]*model.Post)}
}

func (m *mockPostRepo) Create(_ context.Context, post *model.Post) error {
	m.nextID++
	post.ID = m.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id int) (*model.Post, error) {
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPostRepo) List(_ context.Context, board string, offset, limit int) ([]model.Post, int64, error) {
	var all []model.Post
	for _, p := range m.posts {
		if p.Board == board {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].IsNotice != all[j].IsNotice {
			return all[i].IsNotice
		}
		return all[i].ID > all[j].ID
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Post{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockPostRepo) Update(_ context.Context, post *model.Post) error {
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id int) error {
	delete(m.posts, id)
	return nil
}

// ── Mock CommentRepository ──

type mockCommentRepo struct {
	comments map[int]*model.Comment
	nextID   int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[int]*model.Comment)}
}

func (m *mockCommentRepo) Create(_ context.Context, c *model.Comment) error {
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id int) (*model.Comment, error) {
	if c, ok := m.comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommentRepo) ListByPost(_ context.Context, postID int) ([]model.Comment, error) {
	var out []model.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockCommentRepo) Update(_ context.Context, c *model.Comment) error {
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id int) error {
	delete(m.comments, id)
	return nil
}

// ── Mock ManualRepository ──

type mockManualRepo struct {
	manuals map[int]*model.Manual
	nextID  int
}

func newMockManualRepo() *mockManualRepo {
	return &mockManualRepo{manuals: make(map[int]*model.Manual)}
}

func (m *mockManualRepo) Create(_ context.Context, man *model.Manual) error {
	m.nextID++
	man.ID = m.nextID
	cp := *man
	m.manuals[man.ID] = &cp
	return nil
}

func (m *mockManualRepo) GetByID(_ context.Context, id int) (*model.Manual, error) {
	if man, ok := m.manuals[id]; ok {
		cp := *man
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockManualRepo) List(_ context.Context, category string) ([]model.Manual, error) {
	var out []model.Manual
	for _, man := range m.manuals {
		if category == "" || man.Category == category {
			out = append(out, *man)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockManualRepo) Search(_ context.Context, keyword string) ([]model.Manual, error) {
	var out []model.Manual
	for _, man := range m.manuals {
		if strings.Contains(man.Title, keyword) || strings.Contains(man.Markdown, keyword) {
			out = append(out, *man)
		}
	}
	return out, nil
}

func (m *mockManualRepo) Update(_ context.Context, man *model.Manual) error {
	cp := *man
	m.manuals[man.ID] = &cp
	return nil
}

func (m *mockManualRepo) Delete(_ context.Context, id int) error {
	delete(m.manuals, id)
	return nil
}

// ── Mock PermissionRepository ──

type mockPermissionRepo struct {
	perms  map[string]*model.Permission // "role:resource" → permission
	nextID int
}

func newMockPermissionRepo() *mockPermissionRepo {
	return &mockPermissionRepo{perms: make(map[string]*model.Permission)}
}

func (m *mockPermissionRepo) List(_ context.Context) ([]model.Permission, error) {
	var out []model.Permission
	for _, p := range m.perms {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockPermissionRepo) ListByRole(_ context.Context, role string) ([]model.Permission, error) {
	var out []model.Permission
	for _, p := range m.perms {
		if p.Role == role {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPermissionRepo) Get(_ context.Context, role, resource string) (*model.Permission, error) {
	if p, ok := m.perms[role+":"+resource]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPermissionRepo) Upsert(_ context.Context, p *model.Permission) error {
	key := p.Role + ":" + p.Resource
	if existing, ok := m.perms[key]; ok {
		p.ID = existing.ID
	} else {
		m.nextID++
		p.ID = m.nextID
	}
	cp := *p
	m.perms[key] = &cp
	return nil
}

func (m *mockPermissionRepo) Delete(_ context.Context, id int) (int64, error) {
	for k, p := range m.perms {
		if p.ID == id {
			delete(m.perms, k)
			return 1, nil
		}
	}
	return 0, nil
}

// ── Mock DatabaseRepository ──

type mockDatabaseRepo struct {
	columns  []repository.ColumnMeta
	result   *repository.QueryRows
	lastStmt string
	lastMax  int
}

func (m *mockDatabaseRepo) Columns(_ context.Context) ([]repository.ColumnMeta, error) {
	return m.columns, nil
}

func (m *mockDatabaseRepo) Query(_ context.Context, stmt string, maxRows int) (*repository.QueryRows, error) {
	m.lastStmt = stmt
	m.lastMax = maxRows
	if m.result == nil {
		return &repository.QueryRows{Columns: []string{}, Rows: []map[string]interface{}{}}, nil
	}
	return m.result, nil
}

// ── Fake backend.Client ──

// fakeAPI 按 "METHOD path" 返回预置的 JSON 响应或错误
type fakeAPI struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
	bodies    map[string]interface{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		responses: make(map[string]string),
		errs:      make(map[string]error),
		bodies:    make(map[string]interface{}),
	}
}

var errFakeNetwork = errors.New("connection refused")

func (f *fakeAPI) do(method, path string, body, out interface{}) error {
	key := method + " " + path
	f.calls = append(f.calls, key)
	f.bodies[key] = body
	if err, ok := f.errs[key]; ok {
		return err
	}
	if err, ok := f.errs["*"]; ok {
		return err
	}
	resp, ok := f.responses[key]
	if !ok || out == nil {
		return nil
	}
	return json.Unmarshal([]byte(resp), out)
}

func (f *fakeAPI) Get(_ context.Context, path string, out interface{}) error {
	return f.do("GET", path, nil, out)
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out interface{}) error {
	return f.do("POST", path, body, out)
}

func (f *fakeAPI) Put(_ context.Context, path string, body, out interface{}) error {
	return f.do("PUT", path, body, out)
}

func (f *fakeAPI) Delete(_ context.Context, path string, out interface{}) error {
	return f.do("DELETE", path, nil, out)
}

// ── Fake TokenBlacklist ──

type fakeBlacklist struct {
	jti string
	ttl time.Duration
}

func (f *fakeBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	f.jti = jti
	f.ttl = ttl
	return nil
}
