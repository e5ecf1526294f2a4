// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package sentiment

// Aspect is one of the six fixed review dimensions. The taxonomy is fixed
// so aspect scores stay comparable across reviews and across time.
type Aspect string

// The six review aspects.
const (
	AspectTaste    Aspect = "taste"
	AspectQuality  Aspect = "quality"
	AspectService  Aspect = "service"
	AspectPrice    Aspect = "price"
	AspectQuantity Aspect = "quantity"
	AspectHygiene  Aspect = "hygiene"
)

// Aspects returns all aspects in their canonical order.
func Aspects() []Aspect {
	return []Aspect{AspectTaste, AspectQuality, AspectService, AspectPrice, AspectQuantity, AspectHygiene}
}

// Config holds the keyword tables the analyzer scores against. The tables
// are immutable once the analyzer is constructed; tests and non-Spanish
// deployments substitute their own.
type Config struct {
	// Positive and Negative are the polarity lexicons.
	Positive []string
	Negative []string

	// AspectKeywords maps each aspect to the words that mention it.
	AspectKeywords map[Aspect][]string
}

// DefaultConfig returns the Spanish-primary lexicon with English fallback
// terms, curated for marketplace food reviews.
func DefaultConfig() Config {
	return Config{
		Positive: []string{
			// Spanish
			"delicioso", "deliciosa", "rico", "rica", "sabroso", "sabrosa",
			"excelente", "bueno", "buena", "buenísimo", "buenísima", "genial",
			"increíble", "fresco", "fresca", "perfecto", "perfecta", "encanta",
			"encantó", "recomendado", "recomendable", "amable", "amables",
			"rápido", "rápida", "generoso", "generosa", "abundante", "limpio",
			"limpia", "espectacular", "maravilloso", "maravillosa", "feliz",
			// English fallback
			"delicious", "tasty", "fresh", "great", "good", "excellent",
			"amazing", "perfect", "friendly", "fast", "generous", "clean",
			"love", "wonderful",
		},
		Negative: []string{
			// Spanish
			"malo", "mala", "malísimo", "malísima", "feo", "fea", "horrible",
			"terrible", "pésimo", "pésima", "frío", "fría", "lento", "lenta",
			"caro", "cara", "carísimo", "carísima", "sucio", "sucia", "rancio",
			"rancia", "podrido", "podrida", "duro", "dura", "tarde", "poco",
			"poca", "pequeño", "pequeña", "decepcionante", "decepción",
			"grosero", "grosera", "vencido", "vencida", "incompleto",
			// English fallback
			"bad", "awful", "horrid", "cold", "slow", "expensive", "dirty",
			"stale", "rotten", "rude", "late", "disappointing", "tiny",
		},
		AspectKeywords: map[Aspect][]string{
			AspectTaste: {
				"sabor", "sabores", "gusto", "sazón", "receta", "taste",
				"flavor", "flavour",
			},
			AspectQuality: {
				"calidad", "comida", "producto", "productos", "estado",
				"frescura", "ingredientes", "quality", "food", "product",
			},
			AspectService: {
				"servicio", "atención", "trato", "personal", "entrega",
				"recogida", "empleado", "empleada", "service", "staff",
				"delivery",
			},
			AspectPrice: {
				"precio", "precios", "coste", "costo", "valor", "pagué",
				"price", "cost", "worth",
			},
			AspectQuantity: {
				"cantidad", "porción", "porciones", "tamaño", "ración",
				"raciones", "quantity", "portion", "size", "amount",
			},
			AspectHygiene: {
				"higiene", "limpieza", "envase", "envases", "empaque",
				"hygiene", "cleanliness", "packaging",
			},
		},
	}
}
