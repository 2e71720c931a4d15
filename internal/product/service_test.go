package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rgoodman/depot/internal/product"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params product.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *product.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: product.CreateParams{
					SKU:      "WID-001",
					Name:     "Widget",
					Category: "hardware",
					Quantity: 25,
				},
			},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any(), "alice").
					DoAndReturn(func(_ context.Context, p *product.Product, _ string) error {
						p.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "DefaultsThreshold",
			args: args{
				params: product.CreateParams{SKU: "WID-002", Name: "Widget", Quantity: 1},
			},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any(), "alice").
					DoAndReturn(func(_ context.Context, p *product.Product, _ string) error {
						assert.Equal(t, 10, p.LowStockThreshold)
						p.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "MissingSKU",
			args:    args{params: product.CreateParams{Name: "Widget"}},
			wantErr: product.ErrInvalid,
		},
		{
			name:    "MissingName",
			args:    args{params: product.CreateParams{SKU: "WID-001"}},
			wantErr: product.ErrInvalid,
		},
		{
			name:    "NegativeQuantity",
			args:    args{params: product.CreateParams{SKU: "WID-001", Name: "Widget", Quantity: -1}},
			wantErr: product.ErrInvalid,
		},
		{
			name: "DuplicateSKU",
			args: args{params: product.CreateParams{SKU: "WID-001", Name: "Widget"}},
			setupMock: func(m *product.MockRepository) {
				m.EXPECT().
					CreateProduct(gomock.Any(), gomock.Any(), "alice").
					Return(product.ErrDuplicateSKU)
			},
			wantErr: product.ErrDuplicateSKU,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := product.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := product.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params, "alice")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Update_RequiresName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	err := svc.Update(context.Background(), &product.Product{ID: uuid.New()}, "alice")
	assert.ErrorIs(t, err, product.ErrInvalid)
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	archived := false
	filter := product.ListFilter{Query: "wid", LowStock: true, Archived: &archived}

	repo.EXPECT().
		ListProducts(gomock.Any(), filter).
		Return([]*product.Product{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	got, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := product.NewMockRepository(ctrl)
	svc := product.NewService(repo)

	id := uuid.New()
	repo.EXPECT().DeleteProduct(gomock.Any(), id).Return(errors.New("db down"))

	assert.Error(t, svc.Delete(context.Background(), id))
}

func TestProduct_LowStock(t *testing.T) {
	p := &product.Product{Quantity: 10, LowStockThreshold: 10}
	assert.True(t, p.LowStock())

	p.Quantity = 11
	assert.False(t, p.LowStock())
}
