package reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"stayhaven/models"
	"stayhaven/services/auth"
)

// fakeStore backs all fake repositories with one guarded state bag so
// tests can exercise concurrent reservations against shared data.
type fakeStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	listings map[string]*models.Listing
	bookings map[string]*models.Booking

	// failCreate makes booking creation fail inside the transaction.
	failCreate error
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Bookings = append([]string(nil), u.Bookings...)
	c.Listings = append([]string(nil), u.Listings...)
	return &c
}

func copyListing(l *models.Listing) *models.Listing {
	c := *l
	c.Bookings = append([]string(nil), l.Bookings...)
	c.BookingsIndex = copyBookingsIndex(l.BookingsIndex)
	return &c
}

func copyBookingsIndex(index models.BookingsIndex) models.BookingsIndex {
	out := models.BookingsIndex{}
	for y, months := range index {
		out[y] = map[string]map[string]bool{}
		for m, days := range months {
			out[y][m] = map[string]bool{}
			for d, reserved := range days {
				out[y][m][d] = reserved
			}
		}
	}
	return out
}

type storeSnapshot struct {
	users    map[string]*models.User
	listings map[string]*models.Listing
	bookings map[string]*models.Booking
}

func (st *fakeStore) snapshot() storeSnapshot {
	st.mu.Lock()
	defer st.mu.Unlock()

	snap := storeSnapshot{
		users:    map[string]*models.User{},
		listings: map[string]*models.Listing{},
		bookings: map[string]*models.Booking{},
	}
	for id, u := range st.users {
		snap.users[id] = copyUser(u)
	}
	for id, l := range st.listings {
		snap.listings[id] = copyListing(l)
	}
	for id, b := range st.bookings {
		c := *b
		snap.bookings[id] = &c
	}
	return snap
}

func (st *fakeStore) restore(snap storeSnapshot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.users = snap.users
	st.listings = snap.listings
	st.bookings = snap.bookings
}

// runTx mimics a multi-document transaction: every write applied by fn
// is rolled back when fn returns an error.
func (st *fakeStore) runTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := st.snapshot()
	if err := fn(ctx); err != nil {
		st.restore(snap)
		return err
	}
	return nil
}

type fakeListings struct{ st *fakeStore }

func (f *fakeListings) GetByID(_ context.Context, id string) (*models.Listing, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	l, ok := f.st.listings[id]
	if !ok {
		return nil, nil
	}
	return copyListing(l), nil
}

func (f *fakeListings) ApplyReservation(_ context.Context, id string, index models.BookingsIndex, bookingID string) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	l, ok := f.st.listings[id]
	if !ok {
		return errors.New("listing not found")
	}
	l.BookingsIndex = index
	l.Bookings = append(l.Bookings, bookingID)
	return nil
}

type fakeUsers struct{ st *fakeStore }

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (f *fakeUsers) AppendBooking(_ context.Context, id, bookingID string) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.Bookings = append(u.Bookings, bookingID)
	return nil
}

func (f *fakeUsers) AddIncome(_ context.Context, id string, amount int64) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	u, ok := f.st.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.Income += amount
	return nil
}

type fakeBookings struct{ st *fakeStore }

func (f *fakeBookings) Create(_ context.Context, booking *models.Booking) error {
	f.st.mu.Lock()
	defer f.st.mu.Unlock()
	if f.st.failCreate != nil {
		return f.st.failCreate
	}
	c := *booking
	f.st.bookings[booking.ID] = &c
	return nil
}

// fakeAuthorizer resolves static tokens against the store.
type fakeAuthorizer struct {
	st     *fakeStore
	tokens map[string]string // token -> user ID
}

func (a *fakeAuthorizer) Authorize(_ context.Context, creds auth.Credentials) (*models.User, error) {
	id, ok := a.tokens[creds.Token]
	if !ok {
		return nil, nil
	}
	a.st.mu.Lock()
	defer a.st.mu.Unlock()
	u, ok := a.st.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

type chargeCall struct {
	amount  int64
	source  string
	account string
}

type fakeGateway struct {
	mu    sync.Mutex
	calls []chargeCall
	err   error
}

func (g *fakeGateway) Charge(_ context.Context, amount int64, source, destinationAccount string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.calls = append(g.calls, chargeCall{amount: amount, source: source, account: destinationAccount})
	return nil
}

func (g *fakeGateway) chargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type fixture struct {
	st      *fakeStore
	gateway *fakeGateway
	svc     *DefaultReservationService
}

func newFixture() *fixture {
	st := &fakeStore{
		users: map[string]*models.User{
			"host-1": {
				ID:       "host-1",
				Name:     "Hollie Host",
				WalletID: "acct_1",
				Listings: []string{"listing-1"},
			},
			"tenant-1": {
				ID:   "tenant-1",
				Name: "Theo Tenant",
			},
		},
		listings: map[string]*models.Listing{
			"listing-1": {
				ID:            "listing-1",
				Title:         "Cabin by the lake",
				Host:          "host-1",
				Price:         50,
				BookingsIndex: models.BookingsIndex{},
			},
		},
		bookings: map[string]*models.Booking{},
	}

	gateway := &fakeGateway{}
	svc := &DefaultReservationService{
		Auth: &fakeAuthorizer{
			st: st,
			tokens: map[string]string{
				"tok-tenant": "tenant-1",
				"tok-host":   "host-1",
			},
		},
		Listings: &fakeListings{st: st},
		Users:    &fakeUsers{st: st},
		Bookings: &fakeBookings{st: st},
		Payments: gateway,
		Locker:   NewLocalListingLocker(),
		RunTx:    st.runTx,
		Logger:   zap.NewNop(),
	}
	return &fixture{st: st, gateway: gateway, svc: svc}
}

func reserveInput(listingID, checkIn, checkOut string) models.CreateBookingInput {
	return models.CreateBookingInput{
		ListingID: listingID,
		Source:    "src_test",
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	}
}

func TestReserve_Success(t *testing.T) {
	fx := newFixture()

	booking, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
		reserveInput("listing-1", "2024-06-10", "2024-06-12"))
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if booking.ID == "" {
		t.Fatalf("expected a booking ID")
	}
	if booking.Listing != "listing-1" || booking.Tenant != "tenant-1" {
		t.Fatalf("unexpected booking %+v", booking)
	}
	if booking.CheckIn != "2024-06-10" || booking.CheckOut != "2024-06-12" {
		t.Fatalf("unexpected booking range %s..%s", booking.CheckIn, booking.CheckOut)
	}

	if got := fx.gateway.chargeCount(); got != 1 {
		t.Fatalf("expected exactly one charge, got %d", got)
	}
	call := fx.gateway.calls[0]
	if call.amount != 150 {
		t.Fatalf("expected charge of 150, got %d", call.amount)
	}
	if call.account != "acct_1" {
		t.Fatalf("expected charge routed to acct_1, got %s", call.account)
	}

	fx.st.mu.Lock()
	defer fx.st.mu.Unlock()

	if _, ok := fx.st.bookings[booking.ID]; !ok {
		t.Fatalf("expected booking record to be persisted")
	}
	host := fx.st.users["host-1"]
	if host.Income != 150 {
		t.Fatalf("expected host income 150, got %d", host.Income)
	}
	tenant := fx.st.users["tenant-1"]
	if len(tenant.Bookings) != 1 || tenant.Bookings[0] != booking.ID {
		t.Fatalf("expected booking appended to tenant, got %v", tenant.Bookings)
	}
	listing := fx.st.listings["listing-1"]
	if len(listing.Bookings) != 1 || listing.Bookings[0] != booking.ID {
		t.Fatalf("expected booking appended to listing, got %v", listing.Bookings)
	}
	for _, d := range []string{"10", "11", "12"} {
		if !listing.BookingsIndex["2024"]["5"][d] {
			t.Fatalf("expected day %s of 2024-06 reserved on listing", d)
		}
	}
}

func TestReserve_Unauthenticated(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-stranger"},
		reserveInput("listing-1", "2024-06-10", "2024-06-12"))
	if CodeOf(err) != CodeUnauthenticated {
		t.Fatalf("expected %s, got %v", CodeUnauthenticated, err)
	}
	if got := fx.gateway.chargeCount(); got != 0 {
		t.Fatalf("expected no charges, got %d", got)
	}
}

func TestReserve_ListingNotFound(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
		reserveInput("listing-missing", "2024-06-10", "2024-06-12"))
	if CodeOf(err) != CodeNotFound {
		t.Fatalf("expected %s, got %v", CodeNotFound, err)
	}
}

func TestReserve_SelfBooking(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-host"},
		reserveInput("listing-1", "2024-06-10", "2024-06-12"))
	if CodeOf(err) != CodeSelfBooking {
		t.Fatalf("expected %s, got %v", CodeSelfBooking, err)
	}
	if got := fx.gateway.chargeCount(); got != 0 {
		t.Fatalf("expected no charges, got %d", got)
	}
}

func TestReserve_InvalidRange(t *testing.T) {
	fx := newFixture()

	t.Run("check out before check in", func(t *testing.T) {
		_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
			reserveInput("listing-1", "2024-06-12", "2024-06-10"))
		if CodeOf(err) != CodeInvalidRange {
			t.Fatalf("expected %s, got %v", CodeInvalidRange, err)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
			reserveInput("listing-1", "June 10th", "2024-06-12"))
		if CodeOf(err) != CodeInvalidRange {
			t.Fatalf("expected %s, got %v", CodeInvalidRange, err)
		}
	})

	if got := fx.gateway.chargeCount(); got != 0 {
		t.Fatalf("expected no charges, got %d", got)
	}
}

func TestReserve_DateConflict(t *testing.T) {
	fx := newFixture()

	if _, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
		reserveInput("listing-1", "2024-06-10", "2024-06-12")); err != nil {
		t.Fatalf("setup reservation failed: %v", err)
	}

	_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
		reserveInput("listing-1", "2024-06-12", "2024-06-14"))
	if CodeOf(err) != CodeDateConflict {
		t.Fatalf("expected %s, got %v", CodeDateConflict, err)
	}

	var re *Error
	if !errors.As(err, &re) {
		t.Fatalf("expected a reservation error, got %T", err)
	}
	if !re.Day.Equal(day(2024, time.June, 12)) {
		t.Fatalf("expected conflict on 2024-06-12, got %s", re.Day.Format(DayLayout))
	}

	if got := fx.gateway.chargeCount(); got != 1 {
		t.Fatalf("expected only the first attempt to charge, got %d", got)
	}
}

func TestReserve_HostUnavailable(t *testing.T) {
	fx := newFixture()
	fx.st.users["host-1"].WalletID = ""

	_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
		reserveInput("listing-1", "2024-06-10", "2024-06-12"))
	if CodeOf(err) != CodeHostUnavailable {
		t.Fatalf("expected %s, got %v", CodeHostUnavailable, err)
	}
	if got := fx.gateway.chargeCount(); got != 0 {
		t.Fatalf("expected no charges, got %d", got)
	}
}

func TestReserve_PaymentFailed(t *testing.T) {
	fx := newFixture()
	fx.gateway.err = errors.New("card declined")

	_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
		reserveInput("listing-1", "2024-06-10", "2024-06-12"))
	if CodeOf(err) != CodePaymentFailed {
		t.Fatalf("expected %s, got %v", CodePaymentFailed, err)
	}

	fx.st.mu.Lock()
	defer fx.st.mu.Unlock()
	if len(fx.st.bookings) != 0 {
		t.Fatalf("expected no bookings persisted, got %d", len(fx.st.bookings))
	}
	if income := fx.st.users["host-1"].Income; income != 0 {
		t.Fatalf("expected host income untouched, got %d", income)
	}
	if reserved := countReserved(fx.st.listings["listing-1"].BookingsIndex); reserved != 0 {
		t.Fatalf("expected empty calendar, got %d reserved days", reserved)
	}
}

func TestReserve_CommitFailureRollsBack(t *testing.T) {
	fx := newFixture()
	fx.st.failCreate = errors.New("write concern error")

	_, err := fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"},
		reserveInput("listing-1", "2024-06-10", "2024-06-12"))
	if CodeOf(err) != CodeCommitFailed {
		t.Fatalf("expected %s, got %v", CodeCommitFailed, err)
	}

	fx.st.mu.Lock()
	defer fx.st.mu.Unlock()
	if len(fx.st.bookings) != 0 {
		t.Fatalf("expected no bookings after rollback, got %d", len(fx.st.bookings))
	}
	if income := fx.st.users["host-1"].Income; income != 0 {
		t.Fatalf("expected host income rolled back, got %d", income)
	}
	if got := len(fx.st.users["tenant-1"].Bookings); got != 0 {
		t.Fatalf("expected tenant bookings rolled back, got %d", got)
	}
	if reserved := countReserved(fx.st.listings["listing-1"].BookingsIndex); reserved != 0 {
		t.Fatalf("expected calendar rolled back, got %d reserved days", reserved)
	}
}

func TestReserve_ConcurrentOverlapSingleWinner(t *testing.T) {
	fx := newFixture()

	inputs := []models.CreateBookingInput{
		reserveInput("listing-1", "2024-06-10", "2024-06-12"),
		reserveInput("listing-1", "2024-06-12", "2024-06-14"),
	}

	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input models.CreateBookingInput) {
			defer wg.Done()
			_, errs[i] = fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"}, input)
		}(i, input)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case CodeOf(err) == CodeDateConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner and one conflict, got %d wins and %d conflicts", wins, conflicts)
	}
	if got := fx.gateway.chargeCount(); got != 1 {
		t.Fatalf("expected exactly one charge, got %d", got)
	}

	fx.st.mu.Lock()
	defer fx.st.mu.Unlock()
	if reserved := countReserved(fx.st.listings["listing-1"].BookingsIndex); reserved != 3 {
		t.Fatalf("expected 3 reserved days from the winning attempt, got %d", reserved)
	}
}

func TestReserve_DistinctListingsDoNotContend(t *testing.T) {
	fx := newFixture()
	fx.st.listings["listing-2"] = &models.Listing{
		ID:            "listing-2",
		Title:         "Loft downtown",
		Host:          "host-1",
		Price:         80,
		BookingsIndex: models.BookingsIndex{},
	}

	inputs := []models.CreateBookingInput{
		reserveInput("listing-1", "2024-06-10", "2024-06-12"),
		reserveInput("listing-2", "2024-06-10", "2024-06-12"),
	}

	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input models.CreateBookingInput) {
			defer wg.Done()
			_, errs[i] = fx.svc.Reserve(context.Background(), auth.Credentials{Token: "tok-tenant"}, input)
		}(i, input)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("reservation %d failed: %v", i, err)
		}
	}
	if got := fx.gateway.chargeCount(); got != 2 {
		t.Fatalf("expected two charges, got %d", got)
	}

	fx.st.mu.Lock()
	defer fx.st.mu.Unlock()
	if income := fx.st.users["host-1"].Income; income != 150+240 {
		t.Fatalf("expected combined income 390, got %d", income)
	}
}
