package movements

import (
	"fmt"
	"sort"
	"time"

	"burgerclub-backend/internal/models"
)

type EntryType string

const (
	EntryShopping EntryType = "shopping"
	EntryPayroll  EntryType = "payroll"
	EntryIncome   EntryType = "income"
)

// Entry es un renglón del historial unificado de movimientos.
type Entry struct {
	Type    EntryType `json:"type"`
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Title   string    `json:"title"`
	Amount  float64   `json:"amount"`
	Details string    `json:"details"`
}

// Build arma el historial: una entrada sintética de "compras" por fecha (con
// conteo y suma), una por pago de nómina y una por corte aceptado, todo
// ordenado de lo más reciente a lo más viejo. Proyección pura: se recalcula
// sobre el snapshot de registros en cada vista, sin estado propio.
func Build(items []models.ShoppingItem, payments []models.PayrollPayment, sales []models.NightSale) []Entry {
	entries := make([]Entry, 0, len(payments)+len(sales))

	// Compras agrupadas por día
	type dayAgg struct {
		date  time.Time
		count int
		total float64
	}
	byDate := make(map[string]*dayAgg)
	for _, item := range items {
		key := item.PurchaseDate.Format("2006-01-02")
		agg, ok := byDate[key]
		if !ok {
			agg = &dayAgg{date: item.PurchaseDate}
			byDate[key] = agg
		}
		agg.count++
		agg.total += item.Price
	}
	for key, agg := range byDate {
		entries = append(entries, Entry{
			Type:    EntryShopping,
			ID:      "shopping-" + key,
			Date:    agg.date,
			Title:   "Lista de Compras",
			Amount:  agg.total,
			Details: fmt.Sprintf("%d artículos", agg.count),
		})
	}

	for _, pay := range payments {
		details := pay.Notes
		if details == "" {
			details = "Sin notas"
		}
		entries = append(entries, Entry{
			Type:    EntryPayroll,
			ID:      fmt.Sprintf("payroll-%d", pay.ID),
			Date:    pay.PaymentDate,
			Title:   "Pago Nómina: " + pay.Employee.Name,
			Amount:  pay.Amount,
			Details: details,
		})
	}

	for _, sale := range sales {
		if sale.Status != models.SaleStatusAccepted || sale.AcceptedAt == nil {
			continue
		}
		details := sale.Description
		if details == "" {
			details = "Corte de caja"
		}
		entries = append(entries, Entry{
			Type:    EntryIncome,
			ID:      fmt.Sprintf("sale-%d", sale.ID),
			Date:    *sale.AcceptedAt,
			Title:   "Venta Nocturna: " + sale.Cook.Name,
			Amount:  sale.TotalAmount,
			Details: details,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date.Equal(entries[j].Date) {
			return entries[i].ID < entries[j].ID // orden estable para fechas iguales
		}
		return entries[i].Date.After(entries[j].Date)
	})

	return entries
}
