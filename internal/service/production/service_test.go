package production

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/precast-backend/internal/domain"
	"github.com/heartmarshall/precast-backend/internal/service/conversion"
)

// ---------------------------------------------------------------------------
// Fixture
// ---------------------------------------------------------------------------

type configsFake map[domain.ProductName]domain.ProductConfig

func (f configsFake) GetForProduct(_ context.Context, name domain.ProductName) (*domain.ProductConfig, error) {
	c, ok := f[name]
	if !ok {
		return nil, fmt.Errorf("product_config %s: %w", name, domain.ErrNotFound)
	}
	return &c, nil
}

var testCategories = []domain.Category{
	{ID: "producao-x", Name: "Produção X", MeasurementTypes: []domain.MeasurementType{domain.MeasurementBoard, domain.MeasurementMold, domain.MeasurementUnit}},
	{ID: "a", Name: "A", MeasurementTypes: []domain.MeasurementType{domain.MeasurementUnit, domain.MeasurementBoard}},
	{ID: "b", Name: "B", MeasurementTypes: []domain.MeasurementType{domain.MeasurementUnit, domain.MeasurementBoard}},
}

type fixture struct {
	svc      *Service
	records  *recordRepoMock
	products *productRepoMock
	tx       *txManagerMock
	txCalls  int

	mu     sync.Mutex
	stored map[domain.Date]domain.ProductionRecord
}

func newFixture(t *testing.T, configs configsFake) *fixture {
	t.Helper()

	f := &fixture{stored: make(map[domain.Date]domain.ProductionRecord)}

	f.records = &recordRepoMock{
		GetFunc: func(_ context.Context, date domain.Date) (*domain.ProductionRecord, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			rec, ok := f.stored[date]
			if !ok {
				return nil, fmt.Errorf("production_record %s: %w", date, domain.ErrNotFound)
			}
			rec.Items = slices.Clone(rec.Items)
			return &rec, nil
		},
		UpsertFunc: func(_ context.Context, rec domain.ProductionRecord) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			rec.Items = slices.Clone(rec.Items)
			f.stored[rec.Date] = rec
			return nil
		},
		DeleteFunc: func(_ context.Context, date domain.Date) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			if _, ok := f.stored[date]; !ok {
				return fmt.Errorf("production_record %s: %w", date, domain.ErrNotFound)
			}
			delete(f.stored, date)
			return nil
		},
	}
	f.products = &productRepoMock{
		InsertFunc: func(context.Context, domain.ProductName) (bool, error) { return true, nil },
	}
	f.tx = &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			f.mu.Lock()
			f.txCalls++
			f.mu.Unlock()
			return fn(ctx)
		},
	}
	categories := &categoryRepoMock{
		ListFunc: func(context.Context) ([]domain.Category, error) { return testCategories, nil },
	}

	sessions := NewRegistry(time.Hour, time.Hour)
	t.Cleanup(sessions.Stop)

	f.svc = NewService(slog.Default(), f.records, f.products, categories,
		conversion.NewResolver(configs), f.tx, sessions)
	return f
}

func (f *fixture) seed(rec domain.ProductionRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[rec.Date] = rec
}

func telhaConfigs(perBoard int) configsFake {
	return configsFake{
		"TELHA 10": {Product: "TELHA 10", UnitsPerBoard: domain.Some(perBoard)},
	}
}

var day = domain.NewDate(2025, time.March, 5)

// ---------------------------------------------------------------------------
// Edit sessions
// ---------------------------------------------------------------------------

func TestAddItem_ResolvesTotalAndCommitRendersLine(t *testing.T) {
	t.Parallel()

	f := newFixture(t, telhaConfigs(12))
	ctx := context.Background()

	view, err := f.svc.OpenSession(ctx, day)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	it, err := f.svc.AddItem(ctx, view.ID, ItemInput{
		Product:         "  telha   10 ",
		Quantity:        3,
		Category:        "Produção X",
		MeasurementType: domain.MeasurementBoard,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if v, ok := it.TotalUnits.Get(); !ok || v != 36 {
		t.Errorf("total = (%d, %v), want 36", v, ok)
	}
	if it.Product != "TELHA 10" {
		t.Errorf("product = %q, want normalized", it.Product)
	}
	if got := f.products.InsertCalls(); len(got) != 1 || got[0] != "TELHA 10" {
		t.Errorf("product inserts = %v, want [TELHA 10]", got)
	}

	rec, err := f.svc.CommitEdit(ctx, view.ID)
	if err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}
	if !strings.Contains(rec.ReportText, "* TELHA 10: 3 tábuas = 36 unidades") {
		t.Errorf("report text missing item line:\n%s", rec.ReportText)
	}
	if f.txCalls != 1 {
		t.Errorf("RunInTx calls = %d, want 1", f.txCalls)
	}

	got, err := f.svc.GetSession(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got.State != StateViewing {
		t.Errorf("state after commit = %s, want viewing", got.State)
	}
}

func TestViewSession_StartsViewing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, telhaConfigs(12))
	ctx := context.Background()
	saved := domain.LineItem{
		ID: uuid.New(), Product: "TELHA 10", Category: "Produção X",
		Quantity: 2, MeasurementType: domain.MeasurementBoard, TotalUnits: domain.Some(24),
	}
	f.seed(domain.ProductionRecord{Date: day, Items: []domain.LineItem{saved}})

	view, err := f.svc.ViewSession(ctx, day)
	if err != nil {
		t.Fatalf("ViewSession: %v", err)
	}
	if view.State != StateViewing {
		t.Fatalf("state = %s, want viewing", view.State)
	}
	if len(view.Items) != 1 || view.Items[0].ID != saved.ID {
		t.Errorf("items = %v, want the saved item", view.Items)
	}

	in := ItemInput{Product: "TELHA 10", Quantity: 1, Category: "Produção X", MeasurementType: domain.MeasurementBoard}
	if _, err := f.svc.AddItem(ctx, view.ID, in); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("AddItem while viewing: got %v, want ErrConflict", err)
	}

	if _, err := f.svc.BeginEdit(ctx, view.ID); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if _, err := f.svc.AddItem(ctx, view.ID, in); err != nil {
		t.Fatalf("AddItem after BeginEdit: %v", err)
	}
}

func TestAddItem_ConfigurationRequiredLeavesBufferUnchanged(t *testing.T) {
	t.Parallel()

	f := newFixture(t, telhaConfigs(12))
	ctx := context.Background()

	view, err := f.svc.OpenSession(ctx, day)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	for _, in := range []ItemInput{
		{Product: "TELHA 10", Quantity: 2, Category: "Produção X", MeasurementType: domain.MeasurementMold},
		{Product: "BLOCO 09", Quantity: 2, Category: "Produção X", MeasurementType: domain.MeasurementBoard},
	} {
		_, err := f.svc.AddItem(ctx, view.ID, in)

		var cfgErr *domain.ConfigurationRequiredError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("AddItem(%s/%s): got %v, want ConfigurationRequiredError", in.Product, in.MeasurementType, err)
		}
		if cfgErr.MeasurementType != in.MeasurementType {
			t.Errorf("error measurement type = %s, want %s", cfgErr.MeasurementType, in.MeasurementType)
		}
		if !errors.Is(err, domain.ErrConfigurationRequired) {
			t.Errorf("error does not wrap ErrConfigurationRequired")
		}
	}

	got, _ := f.svc.GetSession(ctx, view.ID)
	if len(got.Items) != 0 {
		t.Errorf("buffer has %d items, want 0", len(got.Items))
	}
	if n := len(f.products.InsertCalls()); n != 0 {
		t.Errorf("product inserts = %d, want 0", n)
	}
}

func TestAddItem_UnitNeedsNoConfiguration(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})
	ctx := context.Background()
	view, _ := f.svc.OpenSession(ctx, day)

	it, err := f.svc.AddItem(ctx, view.ID, ItemInput{
		Product: "PISO 35X70", Quantity: 15, Category: "a", MeasurementType: domain.MeasurementUnit,
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if v, _ := it.TotalUnits.Get(); v != 15 {
		t.Errorf("total = %d, want 15", v)
	}
	if it.Category != "A" {
		t.Errorf("category = %q, want display name A", it.Category)
	}
}

func TestAddItem_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, telhaConfigs(12))
	ctx := context.Background()
	view, _ := f.svc.OpenSession(ctx, day)

	tests := []struct {
		name  string
		in    ItemInput
		field string
	}{
		{"zero quantity", ItemInput{Product: "TELHA 10", Quantity: 0, Category: "A", MeasurementType: domain.MeasurementUnit}, "quantity"},
		{"blank product", ItemInput{Product: "   ", Quantity: 1, Category: "A", MeasurementType: domain.MeasurementUnit}, "product"},
		{"missing category", ItemInput{Product: "TELHA 10", Quantity: 1, MeasurementType: domain.MeasurementUnit}, "category"},
		{"unknown category", ItemInput{Product: "TELHA 10", Quantity: 1, Category: "Nope", MeasurementType: domain.MeasurementUnit}, "category"},
		{"bad measurement", ItemInput{Product: "TELHA 10", Quantity: 1, Category: "A", MeasurementType: "crate"}, "measurement_type"},
		{"unsupported by category", ItemInput{Product: "TELHA 10", Quantity: 1, Category: "A", MeasurementType: domain.MeasurementMold}, "measurement_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AddItem(ctx, view.ID, tt.in)

			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("got %v, want ValidationError", err)
			}
			if vErr.Errors[0].Field != tt.field {
				t.Errorf("field = %q, want %q", vErr.Errors[0].Field, tt.field)
			}
		})
	}

	got, _ := f.svc.GetSession(ctx, view.ID)
	if len(got.Items) != 0 {
		t.Errorf("buffer has %d items after rejected adds", len(got.Items))
	}
}

func TestAddItem_AfterCommitConflicts(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})
	ctx := context.Background()
	view, _ := f.svc.OpenSession(ctx, day)

	in := ItemInput{Product: "X", Quantity: 1, Category: "A", MeasurementType: domain.MeasurementUnit}
	if _, err := f.svc.AddItem(ctx, view.ID, in); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := f.svc.CommitEdit(ctx, view.ID); err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}

	if _, err := f.svc.AddItem(ctx, view.ID, in); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("AddItem after commit: got %v, want ErrConflict", err)
	}
	if _, err := f.svc.CommitEdit(ctx, view.ID); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second CommitEdit: got %v, want ErrConflict", err)
	}

	if _, err := f.svc.BeginEdit(ctx, view.ID); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if _, err := f.svc.AddItem(ctx, view.ID, in); err != nil {
		t.Errorf("AddItem after BeginEdit: %v", err)
	}
}

func TestUpdateQuantity_KeepsRecordedRatio(t *testing.T) {
	t.Parallel()

	// Current factor is 15; the item was recorded at 12 per board.
	f := newFixture(t, telhaConfigs(15))
	ctx := context.Background()

	recorded := domain.LineItem{
		ID: uuid.New(), Product: "TELHA 10", Category: "Produção X",
		Quantity: 2, MeasurementType: domain.MeasurementBoard, TotalUnits: domain.Some(24),
	}
	f.seed(domain.ProductionRecord{Date: day, Items: []domain.LineItem{recorded}})

	view, err := f.svc.OpenSession(ctx, day)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("session items = %d, want 1", len(view.Items))
	}

	it, err := f.svc.UpdateQuantity(ctx, view.ID, recorded.ID, 5)
	if err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}
	if v, ok := it.TotalUnits.Get(); !ok || v != 60 {
		t.Errorf("total = (%d, %v), want 60", v, ok)
	}

	if _, err := f.svc.UpdateQuantity(ctx, view.ID, recorded.ID, 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("zero quantity: got %v, want ErrValidation", err)
	}
}

func TestRemoveItem_RegeneratesPreview(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})
	ctx := context.Background()
	view, _ := f.svc.OpenSession(ctx, day)

	a, _ := f.svc.AddItem(ctx, view.ID, ItemInput{Product: "P1", Quantity: 1, Category: "A", MeasurementType: domain.MeasurementUnit})
	_, _ = f.svc.AddItem(ctx, view.ID, ItemInput{Product: "P2", Quantity: 2, Category: "B", MeasurementType: domain.MeasurementUnit})

	if err := f.svc.RemoveItem(ctx, view.ID, a.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	got, err := f.svc.GetSession(ctx, view.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	want := "Produção do dia 05/03/2025\n\nB:\n* P2: 2 unidades"
	if got.ReportText != want {
		t.Errorf("preview = %q, want %q", got.ReportText, want)
	}
}

func TestCommitEdit_EmptyBufferRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})
	ctx := context.Background()
	view, _ := f.svc.OpenSession(ctx, day)

	if _, err := f.svc.CommitEdit(ctx, view.ID); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if len(f.records.UpsertCalls()) != 0 {
		t.Error("empty buffer reached the store")
	}
	got, _ := f.svc.GetSession(ctx, view.ID)
	if got.State != StateEditing {
		t.Errorf("state = %s, want editing", got.State)
	}
}

func TestCommitEdit_StoreErrorKeepsEditing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})
	storeErr := errors.New("connection refused")
	f.records.UpsertFunc = func(context.Context, domain.ProductionRecord) error { return storeErr }

	ctx := context.Background()
	view, _ := f.svc.OpenSession(ctx, day)
	_, _ = f.svc.AddItem(ctx, view.ID, ItemInput{Product: "P", Quantity: 1, Category: "A", MeasurementType: domain.MeasurementUnit})

	if _, err := f.svc.CommitEdit(ctx, view.ID); !errors.Is(err, storeErr) {
		t.Fatalf("got %v, want %v", err, storeErr)
	}
	got, _ := f.svc.GetSession(ctx, view.ID)
	if got.State != StateEditing || len(got.Items) != 1 {
		t.Errorf("session after failed commit = %s with %d items", got.State, len(got.Items))
	}
}

func TestCloseSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})
	ctx := context.Background()
	view, _ := f.svc.OpenSession(ctx, day)
	_, _ = f.svc.AddItem(ctx, view.ID, ItemInput{Product: "P", Quantity: 1, Category: "A", MeasurementType: domain.MeasurementUnit})

	if err := f.svc.CloseSession(ctx, view.ID); err != nil {
		t.Fatalf("CloseSession: %v", err)
	}
	if _, err := f.svc.GetSession(ctx, view.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetSession after close: got %v, want ErrNotFound", err)
	}
	if len(f.records.UpsertCalls()) != 0 {
		t.Error("closing a session persisted its buffer")
	}
	if err := f.svc.CloseSession(ctx, view.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second close: got %v, want ErrNotFound", err)
	}
}

func TestOpenSession_StoreError(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})
	storeErr := errors.New("timeout")
	f.records.GetFunc = func(context.Context, domain.Date) (*domain.ProductionRecord, error) { return nil, storeErr }

	if _, err := f.svc.OpenSession(context.Background(), day); !errors.Is(err, storeErr) {
		t.Errorf("got %v, want %v", err, storeErr)
	}
	if f.svc.sessions.Len() != 0 {
		t.Error("failed open registered a session")
	}
}

// ---------------------------------------------------------------------------
// Records
// ---------------------------------------------------------------------------

func TestSaveRecord_KeepsFirstSeenCategoryOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, telhaConfigs(12))

	rec, err := f.svc.SaveRecord(context.Background(), SaveRecordInput{
		Date: day,
		Items: []ItemInput{
			{Product: "TELHA 10", Quantity: 1, Category: "B", MeasurementType: domain.MeasurementBoard},
			{Product: "PISO", Quantity: 4, Category: "A", MeasurementType: domain.MeasurementUnit},
			{Product: "TELHA 10", Quantity: 2, Category: "B", MeasurementType: domain.MeasurementBoard},
		},
	})
	if err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}

	want := "Produção do dia 05/03/2025\n\n" +
		"B:\n* TELHA 10: 1 tábuas = 12 unidades\n* TELHA 10: 2 tábuas = 24 unidades\n\n" +
		"A:\n* PISO: 4 unidades"
	if rec.ReportText != want {
		t.Errorf("report = %q, want %q", rec.ReportText, want)
	}
	if got := f.products.InsertCalls(); len(got) != 2 {
		t.Errorf("product inserts = %v, want one per distinct product", got)
	}
	if f.txCalls != 1 {
		t.Errorf("RunInTx calls = %d, want 1", f.txCalls)
	}
}

func TestSaveRecord_ConfigurationRequiredWritesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t, telhaConfigs(12))

	_, err := f.svc.SaveRecord(context.Background(), SaveRecordInput{
		Date: day,
		Items: []ItemInput{
			{Product: "TELHA 10", Quantity: 1, Category: "Produção X", MeasurementType: domain.MeasurementBoard},
			{Product: "TELHA 10", Quantity: 1, Category: "Produção X", MeasurementType: domain.MeasurementMold},
		},
	})
	if !errors.Is(err, domain.ErrConfigurationRequired) {
		t.Fatalf("got %v, want ErrConfigurationRequired", err)
	}
	if len(f.records.UpsertCalls()) != 0 || len(f.products.InsertCalls()) != 0 {
		t.Error("rejected save reached the store")
	}
}

func TestSaveRecord_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})

	_, err := f.svc.SaveRecord(context.Background(), SaveRecordInput{
		Items: []ItemInput{{Product: "", Quantity: -1, Category: "A", MeasurementType: domain.MeasurementUnit}},
	})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	fields := make([]string, 0, len(vErr.Errors))
	for _, fe := range vErr.Errors {
		fields = append(fields, fe.Field)
	}
	want := []string{"date", "items[0].product", "items[0].quantity"}
	if !slices.Equal(fields, want) {
		t.Errorf("fields = %v, want %v", fields, want)
	}
}

func TestDeleteRecord_MissingIsNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})

	err := f.svc.DeleteRecord(context.Background(), domain.NewDate(1999, time.January, 1))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	t.Parallel()

	f := newFixture(t, configsFake{})
	f.seed(domain.ProductionRecord{Date: day})

	if err := f.svc.DeleteRecord(context.Background(), day); err != nil {
		t.Fatalf("DeleteRecord: %v", err)
	}
	if _, err := f.svc.GetRecord(context.Background(), day); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetRecord after delete: got %v, want ErrNotFound", err)
	}
}

func TestAddItem_ResolverErrorPropagates(t *testing.T) {
	t.Parallel()

	sessions := NewRegistry(time.Hour, time.Hour)
	t.Cleanup(sessions.Stop)

	storeErr := errors.New("pool closed")
	resolver := &unitResolverMock{
		HasConfigurationForFunc: func(context.Context, domain.ProductName, domain.MeasurementType) (bool, error) {
			return false, storeErr
		},
	}
	svc := NewService(slog.Default(),
		&recordRepoMock{GetFunc: func(context.Context, domain.Date) (*domain.ProductionRecord, error) {
			return nil, domain.ErrNotFound
		}},
		&productRepoMock{},
		&categoryRepoMock{ListFunc: func(context.Context) ([]domain.Category, error) { return testCategories, nil }},
		resolver, defaultTxMock(), sessions,
	)

	ctx := context.Background()
	view, err := svc.OpenSession(ctx, day)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	_, err = svc.AddItem(ctx, view.ID, ItemInput{Product: "X", Quantity: 1, Category: "A", MeasurementType: domain.MeasurementBoard})
	if !errors.Is(err, storeErr) {
		t.Errorf("got %v, want %v", err, storeErr)
	}
	if resolver.ResolveTotalUnitsCalls() != 0 {
		t.Error("total resolved after a failed configuration check")
	}
}
