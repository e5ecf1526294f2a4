// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package sentiment

import "math"

// PredictSatisfaction maps an analysis result to an expected star rating
// in {1, 1.5, ..., 5}: a linear map of the overall score to [1, 5], plus
// half the mean aspect score, plus a small confidence bonus, rounded to
// the nearest half star.
func PredictSatisfaction(r Result) float64 {
	base := 3 + 2*r.Score

	var aspectSum float64
	for _, aspect := range Aspects() {
		aspectSum += r.Aspects[aspect]
	}
	aspectMean := aspectSum / float64(len(Aspects()))

	raw := base + 0.5*aspectMean + 0.3*r.Confidence
	return math.Round(clamp(raw, 1, 5)*2) / 2
}

// Aspect thresholds for the recommendation rules.
const (
	aspectConcernThreshold  = -0.2
	overallConcernThreshold = -0.3
	overallPraiseThreshold  = 0.5
)

// Recommendations returns deterministic establishment-facing suggestions
// triggered by thresholds on the overall score and each aspect.
func Recommendations(r Result) []string {
	var out []string

	if r.Score < overallConcernThreshold {
		out = append(out, "Contactar al cliente para entender y resolver su mala experiencia")
	}
	if r.Aspects[AspectTaste] < aspectConcernThreshold {
		out = append(out, "Revisar las recetas y el sazón de los packs ofrecidos")
	}
	if r.Aspects[AspectQuality] < aspectConcernThreshold {
		out = append(out, "Verificar la frescura y el estado de los productos antes de entregarlos")
	}
	if r.Aspects[AspectService] < aspectConcernThreshold {
		out = append(out, "Reforzar la capacitación del personal en atención al cliente")
	}
	if r.Aspects[AspectPrice] < aspectConcernThreshold {
		out = append(out, "Reevaluar la relación precio-contenido del pack")
	}
	if r.Aspects[AspectQuantity] < aspectConcernThreshold {
		out = append(out, "Aumentar la porción o ajustar las expectativas en la descripción")
	}
	if r.Aspects[AspectHygiene] < aspectConcernThreshold {
		out = append(out, "Reforzar los protocolos de limpieza y empaque")
	}
	if r.Score > overallPraiseThreshold {
		out = append(out, "Compartir las reseñas positivas en el perfil del establecimiento")
	}

	if len(out) == 0 {
		out = append(out, "Mantener el estándar actual de calidad")
	}
	return out
}
