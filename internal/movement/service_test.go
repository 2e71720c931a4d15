package movement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rgoodman/depot/internal/audit"
	"github.com/rgoodman/depot/internal/movement"
	"github.com/rgoodman/depot/internal/product"
)

// fakeRepo is an in-memory Repository whose transactions stage changes and
// only publish them on Commit, mirroring the rollback behavior of the real
// store closely enough to exercise the reconciliation invariants.
type fakeRepo struct {
	products  map[uuid.UUID]*product.Product
	movements map[uuid.UUID]*movement.Movement
	audits    []auditRecord
}

type auditRecord struct {
	ProductID   uuid.UUID
	Action      audit.Action
	PerformedBy string
}

func newFakeRepo(products ...*product.Product) *fakeRepo {
	r := &fakeRepo{
		products:  make(map[uuid.UUID]*product.Product),
		movements: make(map[uuid.UUID]*movement.Movement),
	}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}

	return r
}

func (r *fakeRepo) quantity(t *testing.T, id uuid.UUID) int {
	t.Helper()

	p, ok := r.products[id]
	require.True(t, ok)

	return p.Quantity
}

func (r *fakeRepo) GetMovement(_ context.Context, id uuid.UUID) (*movement.Movement, error) {
	m, ok := r.movements[id]
	if !ok {
		return nil, movement.ErrNotFound
	}

	cp := *m

	return &cp, nil
}

func (r *fakeRepo) ListMovements(_ context.Context, _ movement.ListFilter) ([]*movement.Movement, error) {
	var ms []*movement.Movement
	for _, m := range r.movements {
		cp := *m
		ms = append(ms, &cp)
	}

	return ms, nil
}

func (r *fakeRepo) Begin(_ context.Context) (movement.Tx, error) {
	tx := &fakeTx{
		repo:      r,
		products:  make(map[uuid.UUID]*product.Product, len(r.products)),
		movements: make(map[uuid.UUID]*movement.Movement, len(r.movements)),
	}
	for id, p := range r.products {
		cp := *p
		tx.products[id] = &cp
	}

	for id, m := range r.movements {
		cp := *m
		tx.movements[id] = &cp
	}

	return tx, nil
}

type fakeTx struct {
	repo      *fakeRepo
	products  map[uuid.UUID]*product.Product
	movements map[uuid.UUID]*movement.Movement
	audits    []auditRecord
	committed bool
}

func (t *fakeTx) GetProductForUpdate(_ context.Context, productID uuid.UUID) (*product.Product, error) {
	p, ok := t.products[productID]
	if !ok {
		return nil, product.ErrNotFound
	}

	cp := *p

	return &cp, nil
}

func (t *fakeTx) GetMovementForUpdate(_ context.Context, id uuid.UUID) (*movement.Movement, error) {
	m, ok := t.movements[id]
	if !ok {
		return nil, movement.ErrNotFound
	}

	cp := *m

	return &cp, nil
}

func (t *fakeTx) AdjustQuantity(_ context.Context, productID uuid.UUID, delta int) (int, error) {
	p, ok := t.products[productID]
	if !ok {
		return 0, product.ErrNotFound
	}

	if p.Quantity+delta < 0 {
		return 0, movement.ErrInsufficientStock
	}

	p.Quantity += delta

	return p.Quantity, nil
}

func (t *fakeTx) InsertMovement(_ context.Context, m *movement.Movement) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	cp := *m
	t.movements[m.ID] = &cp

	return nil
}

func (t *fakeTx) UpdateMovement(_ context.Context, m *movement.Movement) error {
	if _, ok := t.movements[m.ID]; !ok {
		return movement.ErrNotFound
	}

	cp := *m
	t.movements[m.ID] = &cp

	return nil
}

func (t *fakeTx) DeleteMovement(_ context.Context, id uuid.UUID) error {
	if _, ok := t.movements[id]; !ok {
		return movement.ErrNotFound
	}

	delete(t.movements, id)

	return nil
}

func (t *fakeTx) InsertAudit(_ context.Context, productID uuid.UUID, action audit.Action, performedBy string) error {
	t.audits = append(t.audits, auditRecord{ProductID: productID, Action: action, PerformedBy: performedBy})

	return nil
}

func (t *fakeTx) Commit() error {
	t.repo.products = t.products
	t.repo.movements = t.movements
	t.repo.audits = append(t.repo.audits, t.audits...)
	t.committed = true

	return nil
}

func (t *fakeTx) Rollback() error { return nil }

func newProduct(quantity int) *product.Product {
	return &product.Product{
		ID:                uuid.New(),
		SKU:               "SKU-" + uuid.NewString()[:8],
		Name:              "Widget",
		Quantity:          quantity,
		LowStockThreshold: 10,
	}
}

func TestService_Create_AppliesEffect(t *testing.T) {
	type testCase struct {
		name     string
		kind     movement.Kind
		start    int
		quantity int
		want     int
	}

	tests := []testCase{
		{name: "InboundAdds", kind: movement.KindInbound, start: 100, quantity: 50, want: 150},
		{name: "OutboundSubtracts", kind: movement.KindOutbound, start: 100, quantity: 30, want: 70},
		{name: "OutboundToZero", kind: movement.KindOutbound, start: 30, quantity: 30, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProduct(tt.start)
			repo := newFakeRepo(p)
			svc := movement.NewService(repo)

			m, err := svc.Create(context.Background(), movement.CreateParams{
				ProductID:  p.ID,
				Kind:       tt.kind,
				Quantity:   tt.quantity,
				Party:      "Acme",
				OccurredOn: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			}, "carol")
			require.NoError(t, err)
			assert.NotEmpty(t, m.ID)
			assert.Equal(t, tt.want, repo.quantity(t, p.ID))
			require.Len(t, repo.audits, 1)
			assert.Equal(t, audit.ActionUpdate, repo.audits[0].Action)
			assert.Equal(t, "carol", repo.audits[0].PerformedBy)
		})
	}
}

func TestService_Create_InsufficientStock(t *testing.T) {
	p := newProduct(10)
	repo := newFakeRepo(p)
	svc := movement.NewService(repo)

	_, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID,
		Kind:      movement.KindOutbound,
		Quantity:  30,
	}, "carol")
	require.ErrorIs(t, err, movement.ErrInsufficientStock)

	assert.Equal(t, 10, repo.quantity(t, p.ID))
	assert.Empty(t, repo.movements)
	assert.Empty(t, repo.audits)
}

func TestService_Create_Invalid(t *testing.T) {
	p := newProduct(10)
	svc := movement.NewService(newFakeRepo(p))

	_, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID,
		Kind:      movement.Kind("sideways"),
		Quantity:  1,
	}, "carol")
	assert.ErrorIs(t, err, movement.ErrInvalidKind)

	_, err = svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID,
		Kind:      movement.KindInbound,
		Quantity:  0,
	}, "carol")
	assert.ErrorIs(t, err, movement.ErrInvalidQuantity)

	_, err = svc.Create(context.Background(), movement.CreateParams{
		ProductID: uuid.New(),
		Kind:      movement.KindInbound,
		Quantity:  5,
	}, "carol")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestService_CreateThenDelete_RestoresQuantity(t *testing.T) {
	for _, kind := range []movement.Kind{movement.KindInbound, movement.KindOutbound} {
		t.Run(string(kind), func(t *testing.T) {
			p := newProduct(100)
			repo := newFakeRepo(p)
			svc := movement.NewService(repo)

			m, err := svc.Create(context.Background(), movement.CreateParams{
				ProductID: p.ID,
				Kind:      kind,
				Quantity:  25,
			}, "carol")
			require.NoError(t, err)

			require.NoError(t, svc.Delete(context.Background(), m.ID, "carol"))
			assert.Equal(t, 100, repo.quantity(t, p.ID))
			assert.Empty(t, repo.movements)
		})
	}
}

func TestService_Update_SameProduct_NetDifference(t *testing.T) {
	// Changing an outbound from 30 to 40 must move the quantity by exactly
	// -(40-30), never by -(30+40).
	p := newProduct(100)
	repo := newFakeRepo(p)
	svc := movement.NewService(repo)

	m, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID,
		Kind:      movement.KindOutbound,
		Quantity:  30,
	}, "carol")
	require.NoError(t, err)
	require.Equal(t, 70, repo.quantity(t, p.ID))

	newQty := 40

	updated, err := svc.Update(context.Background(), m.ID, movement.UpdateParams{Quantity: &newQty}, "carol")
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Quantity)
	assert.Equal(t, 60, repo.quantity(t, p.ID))

	// Shrinking it back gives the stock back.
	newQty = 10

	_, err = svc.Update(context.Background(), m.ID, movement.UpdateParams{Quantity: &newQty}, "carol")
	require.NoError(t, err)
	assert.Equal(t, 90, repo.quantity(t, p.ID))
}

func TestService_Update_SameProduct_InsufficientStock(t *testing.T) {
	p := newProduct(100)
	repo := newFakeRepo(p)
	svc := movement.NewService(repo)

	m, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID,
		Kind:      movement.KindOutbound,
		Quantity:  30,
	}, "carol")
	require.NoError(t, err)

	// 70 left; growing the dispatch to 101 needs 31 more than exists.
	newQty := 101

	_, err = svc.Update(context.Background(), m.ID, movement.UpdateParams{Quantity: &newQty}, "carol")
	require.ErrorIs(t, err, movement.ErrInsufficientStock)

	assert.Equal(t, 70, repo.quantity(t, p.ID))

	got, err := svc.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Quantity)
}

func TestService_Update_MoveProduct(t *testing.T) {
	a := newProduct(100)
	b := newProduct(50)
	repo := newFakeRepo(a, b)
	svc := movement.NewService(repo)

	m, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: a.ID,
		Kind:      movement.KindOutbound,
		Quantity:  20,
	}, "carol")
	require.NoError(t, err)
	require.Equal(t, 80, repo.quantity(t, a.ID))

	updated, err := svc.Update(context.Background(), m.ID, movement.UpdateParams{ProductID: &b.ID}, "carol")
	require.NoError(t, err)
	assert.Equal(t, b.ID, updated.ProductID)

	// A gets its 20 back, B loses 20.
	assert.Equal(t, 100, repo.quantity(t, a.ID))
	assert.Equal(t, 30, repo.quantity(t, b.ID))
}

func TestService_Update_MoveProduct_AbortLeavesBothUntouched(t *testing.T) {
	a := newProduct(100)
	b := newProduct(5)
	repo := newFakeRepo(a, b)
	svc := movement.NewService(repo)

	m, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: a.ID,
		Kind:      movement.KindOutbound,
		Quantity:  20,
	}, "carol")
	require.NoError(t, err)

	auditsBefore := len(repo.audits)

	// B cannot absorb a 20-unit dispatch. Neither product may change, in
	// particular A must not keep the leaked reversal.
	_, err = svc.Update(context.Background(), m.ID, movement.UpdateParams{ProductID: &b.ID}, "carol")
	require.ErrorIs(t, err, movement.ErrInsufficientStock)

	assert.Equal(t, 80, repo.quantity(t, a.ID))
	assert.Equal(t, 5, repo.quantity(t, b.ID))
	assert.Len(t, repo.audits, auditsBefore)

	got, err := svc.Get(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ProductID)
}

func TestService_Update_ReversingInboundCannotOverdraw(t *testing.T) {
	// Stock from an inbound receipt that was already dispatched cannot be
	// taken back by shrinking the receipt.
	p := newProduct(0)
	repo := newFakeRepo(p)
	svc := movement.NewService(repo)

	in, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID,
		Kind:      movement.KindInbound,
		Quantity:  50,
	}, "carol")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID,
		Kind:      movement.KindOutbound,
		Quantity:  40,
	}, "carol")
	require.NoError(t, err)
	require.Equal(t, 10, repo.quantity(t, p.ID))

	newQty := 5

	_, err = svc.Update(context.Background(), in.ID, movement.UpdateParams{Quantity: &newQty}, "carol")
	require.ErrorIs(t, err, movement.ErrInsufficientStock)
	assert.Equal(t, 10, repo.quantity(t, p.ID))
}

func TestService_Delete_NotFound(t *testing.T) {
	svc := movement.NewService(newFakeRepo())

	err := svc.Delete(context.Background(), uuid.New(), "carol")
	assert.ErrorIs(t, err, movement.ErrNotFound)
}

func TestService_LedgerScenario(t *testing.T) {
	// Product starts at 100. Inbound +50 -> 150. Outbound -30 -> 120.
	// Growing that outbound to 40 -> 110.
	p := newProduct(100)
	repo := newFakeRepo(p)
	svc := movement.NewService(repo)

	_, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID, Kind: movement.KindInbound, Quantity: 50,
	}, "dana")
	require.NoError(t, err)
	assert.Equal(t, 150, repo.quantity(t, p.ID))

	out, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: p.ID, Kind: movement.KindOutbound, Quantity: 30,
	}, "dana")
	require.NoError(t, err)
	assert.Equal(t, 120, repo.quantity(t, p.ID))

	newQty := 40

	_, err = svc.Update(context.Background(), out.ID, movement.UpdateParams{Quantity: &newQty}, "dana")
	require.NoError(t, err)
	assert.Equal(t, 110, repo.quantity(t, p.ID))
}

func TestService_Create_RollsBackOnAuditFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := movement.NewMockRepository(ctrl)
	tx := movement.NewMockTx(ctrl)
	svc := movement.NewService(repo)

	productID := uuid.New()
	boom := errors.New("audit insert failed")

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetProductForUpdate(gomock.Any(), productID).Return(&product.Product{ID: productID, Quantity: 3}, nil)
	tx.EXPECT().AdjustQuantity(gomock.Any(), productID, 5).Return(8, nil)
	tx.EXPECT().InsertMovement(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().InsertAudit(gomock.Any(), productID, audit.ActionUpdate, "carol").Return(boom)
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: productID,
		Kind:      movement.KindInbound,
		Quantity:  5,
	}, "carol")
	assert.ErrorIs(t, err, boom)
}

func TestService_Create_BeginError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := movement.NewMockRepository(ctrl)
	svc := movement.NewService(repo)

	repo.EXPECT().Begin(gomock.Any()).Return(nil, errors.New("pool exhausted"))

	_, err := svc.Create(context.Background(), movement.CreateParams{
		ProductID: uuid.New(),
		Kind:      movement.KindInbound,
		Quantity:  1,
	}, "carol")
	assert.Error(t, err)
}

func TestService_Update_LocksProductsInIDOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := movement.NewMockRepository(ctrl)
	tx := movement.NewMockTx(ctrl)
	svc := movement.NewService(repo)

	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	moveID := uuid.New()

	existing := &movement.Movement{
		ID:        moveID,
		ProductID: b,
		Kind:      movement.KindOutbound,
		Quantity:  10,
	}

	repo.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	tx.EXPECT().GetMovementForUpdate(gomock.Any(), moveID).Return(existing, nil)

	gomock.InOrder(
		// Target product a sorts before source product b; locks must still
		// be taken in id order regardless of transfer direction.
		tx.EXPECT().GetProductForUpdate(gomock.Any(), a).Return(&product.Product{ID: a, Quantity: 50}, nil),
		tx.EXPECT().GetProductForUpdate(gomock.Any(), b).Return(&product.Product{ID: b, Quantity: 50}, nil),
		tx.EXPECT().AdjustQuantity(gomock.Any(), b, 10).Return(60, nil),
		tx.EXPECT().AdjustQuantity(gomock.Any(), a, -10).Return(40, nil),
	)

	tx.EXPECT().UpdateMovement(gomock.Any(), gomock.Any()).Return(nil)
	tx.EXPECT().InsertAudit(gomock.Any(), a, audit.ActionUpdate, "carol").Return(nil)
	tx.EXPECT().InsertAudit(gomock.Any(), b, audit.ActionUpdate, "carol").Return(nil)
	tx.EXPECT().Commit().Return(nil)
	tx.EXPECT().Rollback().Return(nil)

	_, err := svc.Update(context.Background(), moveID, movement.UpdateParams{ProductID: &a}, "carol")
	require.NoError(t, err)
}
