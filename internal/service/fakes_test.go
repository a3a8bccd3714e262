package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"propertyhub/internal/access"
	"propertyhub/internal/logger"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
)

// memStore backs every fake repository so a test can seed and inspect one place
type memStore struct {
	mu            sync.Mutex
	users         map[uuid.UUID]*model.User
	roles         []*model.RoleAssignment
	properties    map[uuid.UUID]*model.Property
	units         map[uuid.UUID]*model.Unit
	maintenance   map[uuid.UUID]*model.MaintenanceRequest
	payments      []*model.Payment
	receipts      map[uuid.UUID]*model.Receipt
	announcements []*model.Announcement
	messages      []*model.Message
	notifications []*model.Notification
	activity      []*model.ActivityLog
	writes        int

	failActivity     bool
	failNotification bool
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[uuid.UUID]*model.User{},
		properties:  map[uuid.UUID]*model.Property{},
		units:       map[uuid.UUID]*model.Unit{},
		maintenance: map[uuid.UUID]*model.MaintenanceRequest{},
		receipts:    map[uuid.UUID]*model.Receipt{},
	}
}

func (s *memStore) addUser(email, accountType string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &model.User{ID: uuid.New(), Email: email, FullName: email, AccountType: accountType}
	s.users[u.ID] = u
	return u
}

func (s *memStore) addProperty(owner uuid.UUID, name string) *model.Property {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &model.Property{ID: uuid.New(), OwnerID: owner, Name: name, PropertyCode: name}
	s.properties[p.ID] = p
	return p
}

func (s *memStore) assign(user, property uuid.UUID, role string) *model.RoleAssignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &model.RoleAssignment{ID: uuid.New(), UserID: user, PropertyID: property, Role: role, Status: model.AssignmentActive}
	s.roles = append(s.roles, a)
	return a
}

func (s *memStore) notificationsFor(user uuid.UUID, event string) []*model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Notification
	for _, n := range s.notifications {
		if n.UserID == user && (event == "" || n.EventType == event) {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) mutations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// visible mirrors applyScope for in-memory rows
func visible(scope access.Scope, tenant *uuid.UUID, property uuid.UUID, direct ...uuid.UUID) bool {
	in := func(id uuid.UUID) bool {
		for _, v := range scope.PropertyIDs {
			if v == id {
				return true
			}
		}
		return false
	}
	switch scope.Mode {
	case access.ModeTenant:
		if tenant != nil {
			return *tenant == scope.UserID
		}
		return in(property)
	case access.ModeProperties:
		return in(property)
	default:
		for _, d := range direct {
			if d == scope.UserID {
				return true
			}
		}
		return false
	}
}

func matches(f repository.ListFilter, tenant *uuid.UUID, property uuid.UUID, status string, direct ...uuid.UUID) bool {
	if !visible(f.Scope, tenant, property, direct...) {
		return false
	}
	if f.PropertyID != nil && *f.PropertyID != property {
		return false
	}
	if f.TenantID != nil && (tenant == nil || *tenant != *f.TenantID) {
		return false
	}
	return f.Status == "" || f.Status == status
}

func limit[T any](rows []T, n int) []T {
	if n > 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}

func stamp(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// --- users ---

type fakeUsers struct{ s *memStore }

func (r fakeUsers) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&u.ID)
	r.s.users[u.ID] = u
	r.s.writes++
	return nil
}

func (r fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- roles ---

type fakeRoles struct{ s *memStore }

func (r fakeRoles) Create(_ context.Context, a *model.RoleAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&a.ID)
	r.s.roles = append(r.s.roles, a)
	r.s.writes++
	return nil
}

func (r fakeRoles) Update(_ context.Context, a *model.RoleAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.roles {
		if existing.ID == a.ID {
			r.s.roles[i] = a
			r.s.writes++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r fakeRoles) FindByID(_ context.Context, id uuid.UUID) (*model.RoleAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.roles {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeRoles) Find(_ context.Context, userID, propertyID uuid.UUID, role string) (*model.RoleAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.roles {
		if a.UserID == userID && a.PropertyID == propertyID && a.Role == role {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeRoles) ListByUser(_ context.Context, userID uuid.UUID) ([]model.RoleAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.RoleAssignment
	for _, a := range r.s.roles {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r fakeRoles) ListByProperty(_ context.Context, propertyID uuid.UUID) ([]model.RoleAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.RoleAssignment
	for _, a := range r.s.roles {
		if a.PropertyID == propertyID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r fakeRoles) ActiveUserIDs(_ context.Context, propertyID uuid.UUID, roles ...string) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := map[uuid.UUID]bool{}
	var out []uuid.UUID
	for _, a := range r.s.roles {
		if a.PropertyID != propertyID || !a.IsActive() || seen[a.UserID] {
			continue
		}
		for _, role := range roles {
			if a.Role == role {
				seen[a.UserID] = true
				out = append(out, a.UserID)
				break
			}
		}
	}
	return out, nil
}

// --- properties ---

type fakeProperties struct{ s *memStore }

func (r fakeProperties) Create(_ context.Context, p *model.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&p.ID)
	r.s.properties[p.ID] = p
	r.s.writes++
	return nil
}

func (r fakeProperties) Update(_ context.Context, p *model.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.properties[p.ID] = p
	r.s.writes++
	return nil
}

func (r fakeProperties) FindByID(_ context.Context, id uuid.UUID) (*model.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.properties[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeProperties) List(_ context.Context, scope access.Scope, propertyID *uuid.UUID) ([]model.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Property
	for _, p := range r.s.properties {
		if matches(repository.ListFilter{Scope: scope, PropertyID: propertyID}, nil, p.ID, "", p.OwnerID) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r fakeProperties) OwnedIDs(_ context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []uuid.UUID
	for _, p := range r.s.properties {
		if p.OwnerID == ownerID {
			out = append(out, p.ID)
		}
	}
	return out, nil
}

func (r fakeProperties) NextReceiptSerial(_ context.Context, propertyID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.properties[propertyID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	p.ReceiptSerialCounter++
	r.s.writes++
	return p.ReceiptSerialCounter, nil
}

func (r fakeProperties) CountUnits(_ context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[uuid.UUID]int64{}
	for _, u := range r.s.units {
		for _, id := range propertyIDs {
			if u.PropertyID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

// --- units ---

type fakeUnits struct{ s *memStore }

func (r fakeUnits) Create(_ context.Context, u *model.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&u.ID)
	r.s.units[u.ID] = u
	r.s.writes++
	return nil
}

func (r fakeUnits) Update(_ context.Context, u *model.Unit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.units[u.ID] = u
	r.s.writes++
	return nil
}

func (r fakeUnits) FindByID(_ context.Context, id uuid.UUID) (*model.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.units[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeUnits) List(_ context.Context, f repository.ListFilter) ([]model.Unit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Unit
	for _, u := range r.s.units {
		var direct []uuid.UUID
		if u.TenantID != nil {
			direct = append(direct, *u.TenantID)
		}
		tenant := u.TenantID
		if tenant == nil {
			nobody := uuid.Nil
			tenant = &nobody
		}
		if matches(f, tenant, u.PropertyID, u.Status, direct...) {
			out = append(out, *u)
		}
	}
	return limit(out, f.Limit), nil
}

// --- maintenance ---

type fakeMaintenance struct{ s *memStore }

func (r fakeMaintenance) Create(_ context.Context, m *model.MaintenanceRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&m.ID)
	m.CreatedAt = time.Now()
	r.s.maintenance[m.ID] = m
	r.s.writes++
	return nil
}

func (r fakeMaintenance) Update(_ context.Context, m *model.MaintenanceRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.maintenance[m.ID] = m
	r.s.writes++
	return nil
}

func (r fakeMaintenance) FindByID(_ context.Context, id uuid.UUID) (*model.MaintenanceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.maintenance[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeMaintenance) List(_ context.Context, f repository.ListFilter) ([]model.MaintenanceRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.MaintenanceRequest
	for _, m := range r.s.maintenance {
		tenant := m.TenantID
		if matches(f, &tenant, m.PropertyID, m.Status, m.TenantID) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return limit(out, f.Limit), nil
}

// --- payments ---

type fakePayments struct{ s *memStore }

func (r fakePayments) Create(_ context.Context, p *model.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&p.ID)
	r.s.payments = append(r.s.payments, p)
	r.s.writes++
	return nil
}

func (r fakePayments) List(_ context.Context, f repository.ListFilter) ([]model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Payment
	for _, p := range r.s.payments {
		tenant := p.TenantID
		if matches(f, &tenant, p.PropertyID, p.Status, p.TenantID) {
			out = append(out, *p)
		}
	}
	return limit(out, f.Limit), nil
}

// --- receipts ---

type fakeReceipts struct{ s *memStore }

func (r fakeReceipts) Create(_ context.Context, rc *model.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.receipts {
		if existing.ReceiptNo == rc.ReceiptNo {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&rc.ID)
	rc.CreatedAt = time.Now()
	r.s.receipts[rc.ID] = rc
	r.s.writes++
	return nil
}

func (r fakeReceipts) Update(_ context.Context, rc *model.Receipt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.receipts[rc.ID] = rc
	r.s.writes++
	return nil
}

func (r fakeReceipts) FindByID(_ context.Context, id uuid.UUID) (*model.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rc, ok := r.s.receipts[id]; ok {
		cp := *rc
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeReceipts) List(_ context.Context, f repository.ListFilter) ([]model.Receipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Receipt
	for _, rc := range r.s.receipts {
		tenant := rc.TenantID
		if matches(f, &tenant, rc.PropertyID, rc.Status, rc.TenantID, rc.ApprovedBy) {
			out = append(out, *rc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReceiptNo > out[j].ReceiptNo })
	return limit(out, f.Limit), nil
}

// --- announcements ---

type fakeAnnouncements struct{ s *memStore }

func (r fakeAnnouncements) Create(_ context.Context, a *model.Announcement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&a.ID)
	r.s.announcements = append(r.s.announcements, a)
	r.s.writes++
	return nil
}

func (r fakeAnnouncements) List(_ context.Context, f repository.ListFilter) ([]model.Announcement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Announcement
	for _, a := range r.s.announcements {
		if matches(f, nil, a.PropertyID, "", a.CreatedBy) {
			out = append(out, *a)
		}
	}
	return limit(out, f.Limit), nil
}

// --- messages ---

type fakeMessages struct{ s *memStore }

func (r fakeMessages) Create(_ context.Context, m *model.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&m.ID)
	r.s.messages = append(r.s.messages, m)
	r.s.writes++
	return nil
}

func (r fakeMessages) ListForUser(_ context.Context, userID uuid.UUID, n int) ([]model.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Message
	for _, m := range r.s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, *m)
		}
	}
	return limit(out, n), nil
}

// --- notifications ---

type fakeNotifications struct{ s *memStore }

func (r fakeNotifications) Create(_ context.Context, n *model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failNotification {
		return errors.New("notifications table unavailable")
	}
	stamp(&n.ID)
	r.s.notifications = append(r.s.notifications, n)
	return nil
}

func (r fakeNotifications) FindForUser(_ context.Context, id, userID uuid.UUID) (*model.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ID == id && n.UserID == userID {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r fakeNotifications) SetRead(_ context.Context, n *model.Notification, read bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n.IsRead = read
	return nil
}

func (r fakeNotifications) ListForUser(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]model.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r fakeNotifications) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var updated int64
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}

// --- activity ---

type fakeAudit struct{ s *memStore }

func (r fakeAudit) Log(_ context.Context, entry *model.ActivityLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failActivity {
		return errors.New("activity table unavailable")
	}
	stamp(&entry.ID)
	r.s.activity = append(r.s.activity, entry)
	return nil
}

func (r fakeAudit) List(_ context.Context, f repository.ActivityFilter) ([]model.ActivityLog, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []model.ActivityLog
	for _, e := range r.s.activity {
		keep := e.UserID == f.UserID
		if !keep && e.PropertyID != nil {
			for _, id := range f.PropertyIDs {
				if id == *e.PropertyID {
					keep = true
				}
			}
		}
		if keep {
			all = append(all, *e)
		}
	}
	total := int64(len(all))
	if f.Offset >= len(all) {
		return []model.ActivityLog{}, total, nil
	}
	return limit(all[f.Offset:], f.Limit), total, nil
}

type inlineTx struct{}

func (inlineTx) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type recordingPusher struct {
	mu     sync.Mutex
	pushed map[uuid.UUID]int
}

func (p *recordingPusher) Push(userID uuid.UUID, _ *model.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pushed == nil {
		p.pushed = map[uuid.UUID]int{}
	}
	p.pushed[userID]++
}

// env wires every service over one memStore
type env struct {
	store  *memStore
	pusher *recordingPusher

	access        AccessService
	properties    PropertyService
	roles         RoleService
	maintenance   MaintenanceService
	payments      PaymentService
	receipts      ReceiptService
	announcements AnnouncementService
	messages      MessageService
	notifications NotificationService
	activity      ActivityService
	dashboard     DashboardService
}

func newEnv() *env {
	s := newMemStore()
	pusher := &recordingPusher{}
	users, roles, props, units := fakeUsers{s}, fakeRoles{s}, fakeProperties{s}, fakeUnits{s}
	recorder := NewRecorder(fakeAudit{s}, fakeNotifications{s}, pusher, logger.Discard())
	acc := NewAccessService(roles, props)

	return &env{
		store:         s,
		pusher:        pusher,
		access:        acc,
		properties:    NewPropertyService(props, units, roles, inlineTx{}, acc, recorder),
		roles:         NewRoleService(roles, users, props, units, inlineTx{}, acc, recorder),
		maintenance:   NewMaintenanceService(fakeMaintenance{s}, props, acc, recorder),
		payments:      NewPaymentService(fakePayments{s}, props, acc, recorder),
		receipts:      NewReceiptService(fakeReceipts{s}, props, roles, inlineTx{}, acc, recorder),
		announcements: NewAnnouncementService(fakeAnnouncements{s}, props, acc, recorder),
		messages:      NewMessageService(fakeMessages{s}, users, acc, recorder),
		notifications: NewNotificationService(fakeNotifications{s}, recorder),
		activity:      NewActivityService(fakeAudit{s}, acc),
		dashboard:     NewDashboardService(props, fakeMaintenance{s}, fakePayments{s}, fakeReceipts{s}, fakeAnnouncements{s}, acc, recorder),
	}
}

// fixture is one property with an owner-landlord and one active tenant
type fixture struct {
	landlord *model.User
	tenant   *model.User
	property *model.Property
}

func (e *env) fixture(name string) fixture {
	landlord := e.store.addUser(name+"-landlord@example.com", model.AccountLandlord)
	tenant := e.store.addUser(name+"-tenant@example.com", model.AccountTenant)
	property := e.store.addProperty(landlord.ID, name)
	e.store.assign(landlord.ID, property.ID, model.RoleLandlord)
	e.store.assign(tenant.ID, property.ID, model.RoleTenant)
	return fixture{landlord: landlord, tenant: tenant, property: property}
}
