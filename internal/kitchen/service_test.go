package kitchen

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"burgerclub-backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.KitchenList{}, &models.KitchenListItem{}, &models.ShoppingItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.UserRole) models.User {
	user := models.User{
		Name:         "Usuario " + string(role),
		Email:        string(role) + "@burgerclub.mx",
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSubmitValidation(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	if _, err := svc.Submit(&cook, "  ", date(2025, 12, 9), []Line{{Name: "Tomate"}}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle got %v", err)
	}
	if _, err := svc.Submit(&cook, "Compras", date(2025, 12, 9), nil); !errors.Is(err, ErrNoLines) {
		t.Fatalf("expected ErrNoLines got %v", err)
	}
	if _, err := svc.Submit(&cook, "Compras", date(2025, 12, 9), []Line{{Name: "  "}}); !errors.Is(err, ErrNoLines) {
		t.Fatalf("expected ErrNoLines for blank line name got %v", err)
	}

	var count int64
	db.Model(&models.KitchenList{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no lists got %d", count)
	}
}

func TestCookSubmitStaysPending(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	list, err := svc.Submit(&cook, "Ingredientes hamburguesas", date(2025, 12, 10), []Line{
		{Name: "Tomate", Quantity: "2 kg"},
		{Name: "Queso", Quantity: ""}, // cantidad vacía -> "1"
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if list.Status != models.ListStatusPending || list.ApprovedAt != nil {
		t.Fatalf("expected pending without approved_at, got %+v", list)
	}
	if list.Items[1].Quantity != "1" {
		t.Fatalf("expected default quantity 1 got %q", list.Items[1].Quantity)
	}

	var itemCount int64
	db.Model(&models.ShoppingItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Fatalf("cook submit must not materialize, got %d items", itemCount)
	}
}

func TestAdminSubmitAutoApprovesAndMaterializes(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	admin := seedUser(t, db, models.RoleAdmin)

	target := date(2025, 12, 12)
	list, err := svc.Submit(&admin, "Surtido urgente", target, []Line{
		{Name: "Tomate", Quantity: "0"},
		{Name: "Queso", Quantity: "5"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if list.Status != models.ListStatusApproved || list.ApprovedAt == nil {
		t.Fatalf("expected auto-approved, got %+v", list)
	}

	var items []models.ShoppingItem
	if err := db.Order("id asc").Find(&items).Error; err != nil {
		t.Fatalf("find items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 materialized items got %d", len(items))
	}
	if items[0].Name != "Tomate (0)" || items[1].Name != "Queso (5)" {
		t.Fatalf("unexpected names: %q, %q", items[0].Name, items[1].Name)
	}
	for _, item := range items {
		if item.Price != 0 {
			t.Fatalf("expected price 0 got %.2f", item.Price)
		}
		if item.IsCompleted {
			t.Fatalf("expected is_completed=false")
		}
		if !item.PurchaseDate.Equal(target) {
			t.Fatalf("expected purchase_date %v got %v", target, item.PurchaseDate)
		}
	}
}

func TestApproveMaterializesEveryLine(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	list, err := svc.Submit(&cook, "Para el sábado", date(2025, 12, 13), []Line{
		{Name: "Carne", Quantity: "3 kg", EstimatedPrice: 450},
		{Name: "Pan", Quantity: "poco"},
		{Name: "Cebolla", Quantity: "nada"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	purchaseDate := date(2025, 12, 13)
	if err := svc.Approve(list.ID, purchaseDate); err != nil {
		t.Fatalf("approve: %v", err)
	}

	var got models.KitchenList
	if err := db.First(&got, list.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.ListStatusApproved || got.ApprovedAt == nil {
		t.Fatalf("expected approved with timestamp, got %+v", got)
	}

	var items []models.ShoppingItem
	if err := db.Order("id asc").Find(&items).Error; err != nil {
		t.Fatalf("find items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items got %d", len(items))
	}
	expected := []struct {
		name  string
		price float64
	}{
		{"Carne (3 kg)", 450},
		{"Pan (poco)", 0},
		{"Cebolla (nada)", 0},
	}
	for i, want := range expected {
		if items[i].Name != want.name {
			t.Fatalf("item %d: expected %q got %q", i, want.name, items[i].Name)
		}
		if items[i].Price != want.price {
			t.Fatalf("item %d: expected price %.2f got %.2f", i, want.price, items[i].Price)
		}
		if !items[i].PurchaseDate.Equal(purchaseDate) {
			t.Fatalf("item %d: wrong purchase date %v", i, items[i].PurchaseDate)
		}
	}
}

func TestApproveFailureLeavesListPending(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	list, err := svc.Submit(&cook, "Para el domingo", date(2025, 12, 14), []Line{
		{Name: "Tomate", Quantity: "2"},
		{Name: "Queso", Quantity: "1"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// con la tabla de compras caída, la materialización falla a media
	// transacción y la lista debe quedar pendiente, sin compras sueltas
	if err := db.Migrator().DropTable(&models.ShoppingItem{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	if err := svc.Approve(list.ID, date(2025, 12, 14)); err == nil {
		t.Fatalf("expected approve to fail")
	}

	var got models.KitchenList
	if err := db.First(&got, list.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.ListStatusPending || got.ApprovedAt != nil {
		t.Fatalf("expected list still pending, got %+v", got)
	}

	// restaurada la tabla, el reintento aprueba y materializa completo
	if err := db.AutoMigrate(&models.ShoppingItem{}); err != nil {
		t.Fatalf("recreate table: %v", err)
	}
	if err := svc.Approve(list.ID, date(2025, 12, 14)); err != nil {
		t.Fatalf("retry approve: %v", err)
	}

	var itemCount int64
	db.Model(&models.ShoppingItem{}).Count(&itemCount)
	if itemCount != 2 {
		t.Fatalf("expected 2 items after retry got %d", itemCount)
	}
}

func TestListLeavesPendingOnlyOnce(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	list, err := svc.Submit(&cook, "Lista", date(2025, 12, 9), []Line{{Name: "Tomate", Quantity: "1"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.Approve(list.ID, date(2025, 12, 9)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// segunda transición: rechazada y sin volver a materializar
	if err := svc.Approve(list.ID, date(2025, 12, 9)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition got %v", err)
	}
	if err := svc.Reject(list.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition got %v", err)
	}

	var itemCount int64
	db.Model(&models.ShoppingItem{}).Count(&itemCount)
	if itemCount != 1 {
		t.Fatalf("expected exactly 1 materialized item got %d", itemCount)
	}
}

func TestRejectThenApproveFails(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	list, err := svc.Submit(&cook, "Lista", date(2025, 12, 9), []Line{{Name: "Tomate", Quantity: "1"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Reject(list.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := svc.Approve(list.ID, date(2025, 12, 9)); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition got %v", err)
	}

	var itemCount int64
	db.Model(&models.ShoppingItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Fatalf("rejected list must not materialize, got %d items", itemCount)
	}
}

func TestSoftDeleteRules(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)
	other := models.User{Name: "Otro", Email: "otro@burgerclub.mx", PasswordHash: "x", Role: models.RoleCook}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed other cook: %v", err)
	}

	list, err := svc.Submit(&cook, "Lista", date(2025, 12, 9), []Line{{Name: "Tomate", Quantity: "1"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.SoftDelete(list.ID, other.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner got %v", err)
	}

	if err := svc.SoftDelete(list.ID, cook.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	var got models.KitchenList
	db.First(&got, list.ID)
	if got.DeletedByCook == nil {
		t.Fatalf("expected deleted_by_cook stamped")
	}
	// la lista sigue existiendo para el admin
	if got.Status != models.ListStatusPending {
		t.Fatalf("soft delete must not change status, got %s", got.Status)
	}
}

func TestSoftDeleteOnlyWhilePending(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	list, err := svc.Submit(&cook, "Lista", date(2025, 12, 9), []Line{{Name: "Tomate", Quantity: "1"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Approve(list.ID, date(2025, 12, 9)); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := svc.SoftDelete(list.ID, cook.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition got %v", err)
	}
}

func TestHardDeleteWithMaterialize(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	list, err := svc.Submit(&cook, "Lista", date(2025, 12, 9), []Line{
		{Name: "Tomate", Quantity: "2"},
		{Name: "Queso", Quantity: "1"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Reject(list.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	// "re-agregar y borrar": materializa y luego elimina la lista
	purchaseDate := date(2025, 12, 14)
	if err := svc.HardDelete(list.ID, true, purchaseDate); err != nil {
		t.Fatalf("hard delete: %v", err)
	}

	var listCount, lineCount, itemCount int64
	db.Model(&models.KitchenList{}).Count(&listCount)
	db.Model(&models.KitchenListItem{}).Count(&lineCount)
	db.Model(&models.ShoppingItem{}).Count(&itemCount)
	if listCount != 0 || lineCount != 0 {
		t.Fatalf("expected list and lines gone, got %d/%d", listCount, lineCount)
	}
	if itemCount != 2 {
		t.Fatalf("expected 2 materialized items got %d", itemCount)
	}
}

func TestHardDeleteWithoutMaterialize(t *testing.T) {
	db := setupTestDB(t, t.Name())
	svc := NewService(db)
	cook := seedUser(t, db, models.RoleCook)

	list, err := svc.Submit(&cook, "Lista", date(2025, 12, 9), []Line{{Name: "Tomate", Quantity: "2"}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.HardDelete(list.ID, false, date(2025, 12, 9)); err != nil {
		t.Fatalf("hard delete: %v", err)
	}

	var itemCount int64
	db.Model(&models.ShoppingItem{}).Count(&itemCount)
	if itemCount != 0 {
		t.Fatalf("expected no materialized items got %d", itemCount)
	}
}

func TestClassifyQuantity(t *testing.T) {
	cases := []struct {
		quantity string
		want     Urgency
	}{
		{"0", UrgencyCritical},
		{"no", UrgencyCritical},
		{"NADA", UrgencyCritical},
		{" poco ", UrgencyLow},
		{"bajo", UrgencyLow},
		{"1", UrgencyLow},
		{"2", UrgencyLow},
		{"3", UrgencyOK},
		{"2 kg", UrgencyOK},
		{"suficiente", UrgencyOK},
	}
	for _, tc := range cases {
		if got := ClassifyQuantity(tc.quantity); got != tc.want {
			t.Fatalf("ClassifyQuantity(%q) = %s, want %s", tc.quantity, got, tc.want)
		}
	}
}
