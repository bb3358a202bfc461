package movements

import (
	"testing"
	"time"

	"burgerclub-backend/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildGroupsShoppingByDate(t *testing.T) {
	items := []models.ShoppingItem{
		{Name: "Tomate (2)", Price: 50, PurchaseDate: day(2025, 12, 10)},
		{Name: "Queso (1)", Price: 120, PurchaseDate: day(2025, 12, 10)},
		{Name: "Carne (3 kg)", Price: 450, PurchaseDate: day(2025, 12, 11)},
	}

	entries := Build(items, nil, nil)
	if len(entries) != 2 {
		t.Fatalf("expected 2 grouped entries got %d", len(entries))
	}

	// orden descendente: primero el 11
	first := entries[0]
	if first.Type != EntryShopping || !first.Date.Equal(day(2025, 12, 11)) {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if first.Amount != 450 || first.Details != "1 artículos" {
		t.Fatalf("unexpected aggregate: %+v", first)
	}

	second := entries[1]
	if second.Amount != 170 || second.Details != "2 artículos" {
		t.Fatalf("unexpected aggregate for 2025-12-10: %+v", second)
	}
	if second.Title != "Lista de Compras" {
		t.Fatalf("unexpected title %q", second.Title)
	}
}

func TestBuildPayrollEntries(t *testing.T) {
	payments := []models.PayrollPayment{
		{
			ID:          1,
			Amount:      1500,
			Notes:       "semana completa",
			PaymentDate: day(2025, 12, 9),
			Employee:    models.User{Name: "Ismerai"},
		},
		{
			ID:          2,
			Amount:      900,
			PaymentDate: day(2025, 12, 8),
			Employee:    models.User{Name: "Raúl"},
		},
	}

	entries := Build(nil, payments, nil)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries got %d", len(entries))
	}
	if entries[0].Title != "Pago Nómina: Ismerai" || entries[0].Details != "semana completa" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if entries[1].Details != "Sin notas" {
		t.Fatalf("expected default details got %q", entries[1].Details)
	}
}

func TestBuildSkipsNonAcceptedSales(t *testing.T) {
	acceptedAt := day(2025, 12, 10)
	sales := []models.NightSale{
		{TotalAmount: 800, Status: models.SaleStatusAccepted, AcceptedAt: &acceptedAt, Cook: models.User{Name: "Ismerai"}, Description: "noche sábado"},
		{TotalAmount: 500, Status: models.SaleStatusPending, Cook: models.User{Name: "Raúl"}},
		{TotalAmount: 300, Status: models.SaleStatusRejected, Cook: models.User{Name: "Raúl"}},
	}

	entries := Build(nil, nil, sales)
	if len(entries) != 1 {
		t.Fatalf("expected only the accepted sale, got %d entries", len(entries))
	}
	got := entries[0]
	if got.Type != EntryIncome || got.Amount != 800 {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if got.Title != "Venta Nocturna: Ismerai" || got.Details != "noche sábado" {
		t.Fatalf("unexpected presentation: %+v", got)
	}
}

func TestBuildInterleavesByDateDescending(t *testing.T) {
	acceptedAt := day(2025, 12, 11)
	items := []models.ShoppingItem{
		{Name: "Tomate (1)", Price: 30, PurchaseDate: day(2025, 12, 10)},
	}
	payments := []models.PayrollPayment{
		{Amount: 1200, PaymentDate: day(2025, 12, 12), Employee: models.User{Name: "Ismerai"}},
	}
	sales := []models.NightSale{
		{TotalAmount: 600, Status: models.SaleStatusAccepted, AcceptedAt: &acceptedAt, Cook: models.User{Name: "Raúl"}},
	}

	entries := Build(items, payments, sales)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries got %d", len(entries))
	}
	wantTypes := []EntryType{EntryPayroll, EntryIncome, EntryShopping}
	for i, want := range wantTypes {
		if entries[i].Type != want {
			t.Fatalf("position %d: expected %s got %s", i, want, entries[i].Type)
		}
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Date.After(entries[i-1].Date) {
			t.Fatalf("entries not in descending order at %d", i)
		}
	}
}
