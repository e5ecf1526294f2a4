// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package intent

// Action tags an intent can request from the surrounding application.
// The UI decides how to execute them.
const (
	ActionShowOffers    = "show_offers"
	ActionShowMap       = "show_map"
	ActionShowFavorites = "show_favorites"
	ActionShowOrders    = "show_orders"
	ActionOpenPack      = "open_pack"
	ActionCollectReview = "collect_review"
)

// Well-known intent tags. The table is extensible; these constants exist
// for the tags other packages branch on.
const (
	TagUnknown            = "unknown"
	TagGreeting           = "greeting"
	TagFoodRecommendation = "food_recommendation"
	TagLocationBased      = "location_based"
	TagPriceInquiry       = "price_inquiry"
	TagCuisinePreference  = "cuisine_preference"
	TagPackInfo           = "pack_info"
	TagOrderStatus        = "order_status"
	TagComplaint          = "complaint"
	TagFarewell           = "farewell"
)

// Intent is one row of the intent table: trigger phrases that select it,
// reply templates to answer with, action tags for the UI, and canned
// follow-up suggestions.
type Intent struct {
	Tag         string
	Triggers    []string
	Templates   []string
	Actions     []string
	Suggestions []string
}

// DefaultTable returns the fixed intent table for the marketplace
// assistant. Order matters: ties in trigger counts resolve to the
// first-registered intent. New intents are added here, nowhere else.
func DefaultTable() []Intent {
	return []Intent{
		{
			Tag:      TagGreeting,
			Triggers: []string{"hola", "buenos días", "buenas tardes", "buenas noches", "hey", "hello", "hi"},
			Templates: []string{
				"¡Hola! Soy el asistente de TugoTugo. ¿Buscas algún pack sorpresa hoy?",
				"¡Hola! ¿Te ayudo a encontrar comida deliciosa a buen precio cerca de ti?",
				"¡Bienvenido de nuevo! ¿Qué te apetece rescatar hoy?",
			},
			Suggestions: []string{
				"Ver packs cerca de mí",
				"¿Qué hay de postres?",
				"Packs por menos de 5€",
			},
		},
		{
			Tag:      TagFoodRecommendation,
			Triggers: []string{"recomienda", "recomiéndame", "qué me sugieres", "sugerencia", "sorpréndeme", "qué hay bueno", "recommend"},
			Templates: []string{
				"Estos packs encajan con lo que sueles pedir:",
				"Según tus gustos, creo que esto te va a encantar:",
				"Tengo algunas sugerencias pensadas para ti:",
			},
			Actions: []string{ActionShowOffers},
			Suggestions: []string{
				"Muéstrame más opciones",
				"Solo packs vegetarianos",
				"¿Cuál es el más barato?",
			},
		},
		{
			Tag:      TagLocationBased,
			Triggers: []string{"cerca de mí", "cerca", "por aquí", "por la zona", "ubicación", "a cuánto está", "nearby"},
			Templates: []string{
				"Buscando packs disponibles cerca de ti...",
				"Estos establecimientos tienen packs activos en tu zona:",
				"Esto es lo que queda por tu zona ahora mismo:",
			},
			Actions: []string{ActionShowOffers, ActionShowMap},
			Suggestions: []string{
				"Ampliar el radio de búsqueda",
				"Ver en el mapa",
				"Ordenar por precio",
			},
		},
		{
			Tag:      TagPriceInquiry,
			Triggers: []string{"barato", "barata", "económico", "económica", "precio", "descuento", "oferta", "cuánto cuesta", "cheap"},
			Templates: []string{
				"Estos son los packs con mayor descuento ahora mismo:",
				"Si buscas ahorrar, empieza por aquí:",
				"Los mejores precios del momento:",
			},
			Actions: []string{ActionShowOffers},
			Suggestions: []string{
				"Packs por menos de 4€",
				"El mayor descuento de hoy",
				"Avísame de nuevas ofertas",
			},
		},
		{
			Tag:      TagCuisinePreference,
			Triggers: []string{"pizza", "sushi", "hamburguesa", "panadería", "pastelería", "vegano", "vegetariano", "me apetece", "tengo antojo"},
			Templates: []string{
				"¡Buena elección! Buscando packs de {cuisine_type}...",
				"Veamos qué establecimientos de {cuisine_type} tienen packs hoy:",
				"{cuisine_type} suena genial. Esto es lo que hay disponible:",
			},
			Actions: []string{ActionShowOffers},
			Suggestions: []string{
				"Ver otras cocinas",
				"Solo los mejor valorados",
				"¿Hay algo sin gluten?",
			},
		},
		{
			Tag:      TagPackInfo,
			Triggers: []string{"qué trae", "qué incluye", "contenido del pack", "qué lleva", "alérgenos", "ingredientes"},
			Templates: []string{
				"Los packs sorpresa incluyen el excedente del día; el contenido exacto varía, pero siempre respeta los alérgenos que marques en tu perfil.",
				"Cada pack es una sorpresa del excedente del día. Puedes filtrar por restricciones dietéticas en tu perfil.",
			},
			Actions: []string{ActionOpenPack},
			Suggestions: []string{
				"Configurar restricciones dietéticas",
				"Ver valoraciones del establecimiento",
			},
		},
		{
			Tag:      TagOrderStatus,
			Triggers: []string{"mi pedido", "mi reserva", "cuándo recojo", "hora de recogida", "estado de", "mis compras"},
			Templates: []string{
				"Aquí tienes tus reservas activas:",
				"Esto es lo que tienes pendiente de recoger:",
			},
			Actions: []string{ActionShowOrders},
			Suggestions: []string{
				"Ver historial de pedidos",
				"¿Puedo cambiar la hora de recogida?",
			},
		},
		{
			Tag:      TagComplaint,
			Triggers: []string{"queja", "reclamar", "problema con", "no me gustó", "estaba mal", "quiero devolver"},
			Templates: []string{
				"Siento que tu experiencia no haya sido buena. ¿Me cuentas qué pasó para ayudarte?",
				"Lamento el inconveniente. Voy a registrar tu caso para que el equipo lo revise.",
			},
			Actions: []string{ActionCollectReview},
			Suggestions: []string{
				"Hablar con soporte",
				"Dejar una valoración",
			},
		},
		{
			Tag:      TagFarewell,
			Triggers: []string{"adiós", "hasta luego", "gracias", "chao", "nos vemos", "bye"},
			Templates: []string{
				"¡Hasta pronto! Gracias por rescatar comida con TugoTugo.",
				"¡Gracias a ti! Cada pack rescatado cuenta.",
			},
			Suggestions: []string{
				"Ver mi impacto",
				"Packs para mañana",
			},
		},
	}
}
