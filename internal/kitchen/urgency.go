package kitchen

import "strings"

type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyLow      Urgency = "low"
	UrgencyOK       Urgency = "ok"
)

// ClassifyQuantity etiqueta la cantidad libre de un renglón para que el admin
// vea qué está agotado. Solo presentación; no condiciona ninguna transición.
func ClassifyQuantity(quantity string) Urgency {
	switch strings.ToLower(strings.TrimSpace(quantity)) {
	case "0", "no", "nada":
		return UrgencyCritical
	case "poco", "bajo", "1", "2":
		return UrgencyLow
	default:
		return UrgencyOK
	}
}
